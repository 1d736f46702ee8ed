package cfg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otdconvert/pkg/cfg"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := cfg.LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, cfg.DefaultMachine(), s.Machine)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.Empty(t, s.MetricsFile)
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.yaml")
	data := "machine: 142\nshaped_tool: 33\nlog:\n  level: debug\n  format: json\nmetrics_file: /tmp/otd.prom\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := cfg.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.MachineConfig{Number: 142, LinearTool: cfg.DefaultLinearTool, ShapedTool: 33}, s.Machine)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, "/tmp/otd.prom", s.MetricsFile)
}

func TestLoadSettingsEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OTDCONVERT_MACHINE", "155")
	t.Setenv("OTDCONVERT_LOG_LEVEL", "warn")

	s, err := cfg.LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, 155, s.Machine.Number)
	assert.Equal(t, "warn", s.LogLevel)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := cfg.LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMachineRanges(t *testing.T) {
	tests := []struct {
		number             int
		cutting, laminated bool
	}{
		{99, false, false},
		{100, true, false},
		{130, true, false},
		{199, true, false},
		{200, false, true},
		{250, false, true},
	}
	for _, test := range tests {
		m := cfg.NewMachine(test.number)
		assert.Equal(t, test.cutting, m.IsCuttingTable(), "machine %d", test.number)
		assert.Equal(t, test.laminated, m.IsLaminated(), "machine %d", test.number)
		assert.Equal(t, cfg.DefaultLinearTool, m.LinearTool)
		assert.Equal(t, cfg.DefaultShapedTool, m.ShapedTool)
	}
}
