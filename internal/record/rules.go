package record

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Rule converts one raw cell into a Value. Rules never fail: input they cannot
// interpret becomes a Null value.
type Rule func(raw string) Value

// RuleName is the configuration name of a built-in Rule.
type RuleName string

const (
	RuleFloat     RuleName = "float"
	RuleFrequency RuleName = "frequency"
	RuleQuarter   RuleName = "quarter"
	RuleDecimal   RuleName = "decimal"
	RuleInteger   RuleName = "integer"
	RuleString    RuleName = "string"
)

// RuleNames lists every accepted rule name.
var RuleNames = []RuleName{RuleFloat, RuleFrequency, RuleQuarter, RuleDecimal, RuleInteger, RuleString}

// Rule resolves the name to its coercion function.
func (n RuleName) Rule() (Rule, error) {
	switch n {
	case RuleFloat:
		return ParseFloat, nil
	case RuleFrequency:
		return ParseFrequency, nil
	case RuleQuarter:
		return ParseQuarter, nil
	case RuleDecimal:
		return ParseDecimal, nil
	case RuleInteger:
		return ParseInteger, nil
	case RuleString, "":
		return PassThrough, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRule, string(n))
}

var (
	nonNumeric = regexp.MustCompile(`[^\d.]+`)
	nonDigit   = regexp.MustCompile(`\D`)
)

// stripNumeric keeps only digits and decimal points.
func stripNumeric(s string) string { return nonNumeric.ReplaceAllString(s, "") }

// ParseFloat expects text that is already numeric, e.g. load-test exports.
func ParseFloat(raw string) Value {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return NullValue()
	}
	return FloatValue(f)
}

// ParseFrequency converts "3.4GHz" or "800 MHz" to Hz. Text without a
// recognised unit is Null.
func ParseFrequency(raw string) Value {
	s := strings.ToLower(raw)
	if len(s) < 1 {
		return NullValue()
	}
	var mult float64
	switch {
	case strings.Contains(s, "ghz"):
		mult = 1e9
	case strings.Contains(s, "mhz"):
		mult = 1e6
	default:
		return NullValue()
	}
	mag, err := strconv.ParseFloat(stripNumeric(s), 64)
	if err != nil {
		return NullValue()
	}
	return FloatValue(math.Round(mag * mult))
}

// ParseQuarter converts a fiscal quarter such as "Q3'19" into the quarter
// index year*4+quarter. Two-digit years above 30 are 19xx, the rest 20xx.
func ParseQuarter(raw string) Value {
	parts := strings.Split(raw, "'")
	if len(parts) < 2 {
		return NullValue()
	}
	q, err := strconv.Atoi(nonDigit.ReplaceAllString(parts[0], ""))
	if err != nil || q < 1 || q > 4 {
		return NullValue()
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return NullValue()
	}
	if year > 30 {
		year += 1900
	} else {
		year += 2000
	}
	return IntValue(int64(year*4 + q))
}

// FormatQuarter renders a quarter index as "Q<q>'<yy>".
func FormatQuarter(idx int64) string {
	if idx <= 0 {
		return ""
	}
	year := (idx - 1) / 4
	q := (idx-1)%4 + 1
	return fmt.Sprintf("Q%d'%02d", q, year%100)
}

// ParseDecimal strips units and punctuation ("$45.50 GB/s", "1,234") and
// parses what remains as a float.
func ParseDecimal(raw string) Value {
	n := stripNumeric(raw)
	if len(n) < 1 {
		return NullValue()
	}
	f, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return NullValue()
	}
	return FloatValue(f)
}

// ParseInteger is ParseDecimal for whole numbers; "2.5" is Null.
func ParseInteger(raw string) Value {
	n := stripNumeric(raw)
	if len(n) < 1 {
		return NullValue()
	}
	i, err := strconv.ParseInt(n, 10, 64)
	if err != nil {
		return NullValue()
	}
	return IntValue(i)
}

// PassThrough keeps the cell text unchanged.
func PassThrough(raw string) Value { return StringValue(raw) }
