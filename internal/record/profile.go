package record

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownRule is returned for a rule name that has no coercion function.
	ErrUnknownRule = errors.New("unknown coercion rule")
	// ErrUnknownProfile is returned when a profile name cannot be resolved.
	ErrUnknownProfile = errors.New("unknown profile")
)

// Filter keeps only rows whose Column cell equals Equals and that have a cell
// for every Require column. It is applied to raw cells before coercion.
type Filter struct {
	Column  string
	Equals  string
	Require []string
}

// Profile selects the coercion rule for each column by exact name. Columns not
// listed pass through as strings.
type Profile struct {
	Name      string
	Rules     map[string]RuleName
	Filter    *Filter
	Delimiter rune
}

// Validate checks that every rule name resolves.
func (p Profile) Validate() error {
	for col, name := range p.Rules {
		if _, err := name.Rule(); err != nil {
			return fmt.Errorf("profile %s, column %s: %w", p.Name, col, err)
		}
	}
	if p.Filter != nil && p.Filter.Column == "" {
		return fmt.Errorf("profile %s: filter column is empty", p.Name)
	}
	return nil
}

// Columns lists the configured column names in sorted order.
func (p Profile) Columns() []string {
	out := make([]string, 0, len(p.Rules))
	for c := range p.Rules {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

const (
	ProfileLoadTest = "loadtest"
	ProfileIntelCPU = "intel-cpu"
)

// LoadTestProfile reads load-test tool exports (one row per sampled request).
func LoadTestProfile() Profile {
	rules := map[string]RuleName{}
	for _, c := range []string{"timeStamp", "elapsed", "bytes", "sentBytes", "Latency", "IdleTime", "Connect"} {
		rules[c] = RuleFloat
	}
	return Profile{Name: ProfileLoadTest, Rules: rules}
}

// IntelCPUProfile reads the Intel CPU specification export, desktop parts only.
func IntelCPUProfile() Profile {
	return Profile{
		Name: ProfileIntelCPU,
		Rules: map[string]RuleName{
			"Processor_Base_Frequency": RuleFrequency,
			"Max_Turbo_Frequency":      RuleFrequency,
			"Launch_Date":              RuleQuarter,
			"Max_Memory_Bandwidth":     RuleDecimal,
			"nb_of_Cores":              RuleInteger,
			"nb_of_Threads":            RuleInteger,
		},
		Filter: &Filter{Column: "Vertical_Segment", Equals: "Desktop", Require: []string{"Launch_Date"}},
	}
}

// Builtin returns a built-in profile by name.
func Builtin(name string) (Profile, error) {
	switch name {
	case ProfileLoadTest:
		return LoadTestProfile(), nil
	case ProfileIntelCPU:
		return IntelCPUProfile(), nil
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}
