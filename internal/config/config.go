package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataDir   string `mapstructure:"data_dir" yaml:"data_dir"`
	ImagesDir string `mapstructure:"images_dir" yaml:"images_dir" validate:"required"`

	// Load-test runs, charted left to right in this order.
	Runs []RunConfig `mapstructure:"runs" yaml:"runs" validate:"dive"`

	CPUPath  string `mapstructure:"cpu_path" yaml:"cpu_path" validate:"required"`
	CPUSheet string `mapstructure:"cpu_sheet" yaml:"cpu_sheet,omitempty"`

	// Chart sizes in pixels
	PanelWidth  int `mapstructure:"panel_width" yaml:"panel_width" validate:"gt=0"`
	PanelHeight int `mapstructure:"panel_height" yaml:"panel_height" validate:"gt=0"`
	ChartWidth  int `mapstructure:"chart_width" yaml:"chart_width" validate:"gt=0"`
	ChartHeight int `mapstructure:"chart_height" yaml:"chart_height" validate:"gt=0"`

	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows" validate:"gte=0"`

	// Custom profiles; a profile named like a built-in replaces it.
	Profiles []ProfileConfig `mapstructure:"profiles" yaml:"profiles,omitempty" validate:"dive"`
}

// RunConfig is one load-test export and its chart label.
type RunConfig struct {
	Label   string `mapstructure:"label" yaml:"label" validate:"required"`
	Path    string `mapstructure:"path" yaml:"path" validate:"required"`
	Connect bool   `mapstructure:"connect" yaml:"connect"`
}

// ProfileConfig declares a coercion profile. Rules are a list rather than a
// map because viper lowercases map keys and column names are case-sensitive.
type ProfileConfig struct {
	Name      string        `mapstructure:"name" yaml:"name" validate:"required"`
	Rules     []ColumnRule  `mapstructure:"rules" yaml:"rules" validate:"dive"`
	Filter    *FilterConfig `mapstructure:"filter" yaml:"filter,omitempty" validate:"omitempty"`
	Delimiter string        `mapstructure:"delimiter" yaml:"delimiter,omitempty" validate:"omitempty,oneof=comma semicolon tab pipe"`
}

type ColumnRule struct {
	Column string `mapstructure:"column" yaml:"column" validate:"required"`
	Rule   string `mapstructure:"rule" yaml:"rule" validate:"oneof=float frequency quarter decimal integer string"`
}

type FilterConfig struct {
	Column  string   `mapstructure:"column" yaml:"column" validate:"required"`
	Equals  string   `mapstructure:"equals" yaml:"equals"`
	Require []string `mapstructure:"require" yaml:"require,omitempty"`
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Global) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DataPath resolves a relative data file against DataDir.
func (c *Global) DataPath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.DataDir == "" {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

// ResolveProfile returns the custom profile with this name, or the built-in one.
func (c *Global) ResolveProfile(name string) (record.Profile, error) {
	for _, pc := range c.Profiles {
		if pc.Name == name {
			return pc.Profile()
		}
	}
	return record.Builtin(name)
}

// Profile converts the declaration into a record.Profile.
func (pc ProfileConfig) Profile() (record.Profile, error) {
	p := record.Profile{Name: pc.Name, Rules: make(map[string]record.RuleName, len(pc.Rules))}
	for _, r := range pc.Rules {
		p.Rules[r.Column] = record.RuleName(r.Rule)
	}
	if pc.Filter != nil {
		p.Filter = &record.Filter{Column: pc.Filter.Column, Equals: pc.Filter.Equals, Require: pc.Filter.Require}
	}
	switch strings.ToLower(pc.Delimiter) {
	case "":
	case "comma":
		p.Delimiter = ','
	case "semicolon":
		p.Delimiter = ';'
	case "tab":
		p.Delimiter = '\t'
	case "pipe":
		p.Delimiter = '|'
	default:
		return record.Profile{}, fmt.Errorf("profile %s: unsupported delimiter %q", pc.Name, pc.Delimiter)
	}
	if err := p.Validate(); err != nil {
		return record.Profile{}, err
	}
	return p, nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".chartloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.chartloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CHARTLOOM")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_dir", "data")
	v.SetDefault("images_dir", "images")
	v.SetDefault("runs", []map[string]any{
		{"label": "Single Thread, Multi Worker", "path": "10k_1t10w_worksteal.csv", "connect": false},
		{"label": "Multi Thread, Single Worker", "path": "10k_24t1w_worksteal3.csv", "connect": true},
		{"label": "Multi Thread, Multi Worker", "path": "10k_24t10w_worksteal.csv", "connect": true},
	})
	v.SetDefault("cpu_path", "Intel_CPUs.csv")
	v.SetDefault("cpu_sheet", "")
	v.SetDefault("panel_width", 700)
	v.SetDefault("panel_height", 500)
	v.SetDefault("chart_width", 1400)
	v.SetDefault("chart_height", 1050)
	v.SetDefault("sample_rows", 5)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine, a broken or missing explicit one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
