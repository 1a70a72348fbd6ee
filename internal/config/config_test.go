package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "images", c.ImagesDir)
	require.Len(t, c.Runs, 3)
	assert.Equal(t, "Single Thread, Multi Worker", c.Runs[0].Label)
	assert.False(t, c.Runs[0].Connect)
	assert.True(t, c.Runs[2].Connect)
	assert.Equal(t, filepath.Join("data", "Intel_CPUs.csv"), c.DataPath(c.CPUPath))
	assert.Equal(t, 700, c.PanelWidth)
	assert.Equal(t, 1050, c.ChartHeight)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("images_dir: from-file\nchart_width: 800\n"), 0o644))
	t.Setenv("CHARTLOOM_IMAGES_DIR", "from-env")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.ImagesDir)
	assert.Equal(t, 800, c.ChartWidth)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

const profilesYAML = `
profiles:
  - name: gpu
    delimiter: semicolon
    rules:
      - column: Launch_Date
        rule: quarter
      - column: Base_Clock
        rule: frequency
    filter:
      column: Segment
      equals: Desktop
      require: [Launch_Date]
  - name: loadtest
    rules:
      - column: elapsed
        rule: integer
`

func TestCustomProfiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(profilesYAML), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	p, err := c.ResolveProfile("gpu")
	require.NoError(t, err)
	assert.Equal(t, ';', p.Delimiter)
	assert.Equal(t, record.RuleQuarter, p.Rules["Launch_Date"])
	assert.Equal(t, record.RuleFrequency, p.Rules["Base_Clock"])
	require.NotNil(t, p.Filter)
	assert.Equal(t, "Segment", p.Filter.Column)
	assert.Equal(t, []string{"Launch_Date"}, p.Filter.Require)

	// custom profile replaces the built-in of the same name
	lt, err := c.ResolveProfile(record.ProfileLoadTest)
	require.NoError(t, err)
	assert.Equal(t, map[string]record.RuleName{"elapsed": record.RuleInteger}, lt.Rules)

	cpu, err := c.ResolveProfile(record.ProfileIntelCPU)
	require.NoError(t, err)
	assert.Equal(t, record.RuleQuarter, cpu.Rules["Launch_Date"])

	_, err = c.ResolveProfile("missing")
	assert.ErrorIs(t, err, record.ErrUnknownProfile)
}

func TestValidateRejectsBadRule(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	bad := "profiles:\n  - name: x\n    rules:\n      - column: a\n        rule: roman\n"
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestValidateRejectsZeroSize(t *testing.T) {
	c := &Global{ImagesDir: "images", CPUPath: "x.csv", PanelWidth: 0, PanelHeight: 1, ChartWidth: 1, ChartHeight: 1}
	require.Error(t, c.Validate())
	c.PanelWidth = 10
	require.NoError(t, c.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	c.ImagesDir = "out"
	c.Profiles = []ProfileConfig{{Name: "p", Rules: []ColumnRule{{Column: "Cores", Rule: "integer"}}}}

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, Save(c, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", got.ImagesDir)
	require.Len(t, got.Profiles, 1)
	assert.Equal(t, "Cores", got.Profiles[0].Rules[0].Column)
}

func TestProfileUnsupportedDelimiter(t *testing.T) {
	_, err := ProfileConfig{Name: "x", Delimiter: "colon"}.Profile()
	require.Error(t, err)
}
