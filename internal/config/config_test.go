package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ndtool/internal/array"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ndtool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, FormatText, cfg.Format)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, array.DefaultPrintOptions, cfg.PrintOptions())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeConfig(t, `
format: json
verbose: true
print:
  precision: 3
  separator: ", "
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, array.PrintOptions{Precision: 3, Separator: ", "}, cfg.PrintOptions())
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "print:\n  precision: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, 2, cfg.Print.Precision)
	assert.Equal(t, " ", cfg.Print.Separator)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "formt: json\n", "field formt not found"},
		{"unknown nested key", "print:\n  width: 80\n", "field width not found"},
		{"bad format", "format: xml\n", "format must be"},
		{"negative precision", "print:\n  precision: -1\n", "print.precision"},
		{"huge precision", "print:\n  precision: 40\n", "print.precision"},
		{"empty separator", "print:\n  separator: \"\"\n", "print.separator"},
		{"malformed yaml", "format: [json\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestDiscover(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := writeConfig(t, "format: json\n")
		cfg, used, err := Discover(path)
		require.NoError(t, err)
		assert.Equal(t, path, used)
		assert.Equal(t, FormatJSON, cfg.Format)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, _, err := Discover(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("working directory file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("verbose: true\n"), 0644))
		t.Chdir(dir)

		cfg, used, err := Discover("")
		require.NoError(t, err)
		assert.Equal(t, DefaultFile, used)
		assert.True(t, cfg.Verbose)
	})

	t.Run("no file", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, used, err := Discover("")
		require.NoError(t, err)
		assert.Empty(t, used)
		assert.Equal(t, Default(), cfg)
	})
}
