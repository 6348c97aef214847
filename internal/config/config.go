// Package config loads ndtool.yaml, the optional settings file.
//
//	format: json
//	verbose: false
//	print:
//	  precision: 4
//	  separator: " "
//
// Keys left out keep their defaults. Command-line flags override the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ndtool/internal/array"
)

// DefaultFile is the settings file looked up in the working directory
// when no --config flag is given.
const DefaultFile = "ndtool.yaml"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// maxPrecision is the most digits a float64 can meaningfully show.
const maxPrecision = 17

// Config holds the user-settable options.
type Config struct {
	// Format is the output format: "text" or "json".
	Format string `yaml:"format"`

	// Verbose enables debug logging on stderr.
	Verbose bool `yaml:"verbose"`

	Print Print `yaml:"print"`
}

// Print controls how arrays are rendered in text output.
type Print struct {
	Precision int    `yaml:"precision"`
	Separator string `yaml:"separator"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Format: FormatText,
		Print: Print{
			Precision: array.DefaultPrintOptions.Precision,
			Separator: array.DefaultPrintOptions.Separator,
		},
	}
}

// PrintOptions converts the print section for the array formatter.
func (c Config) PrintOptions() array.PrintOptions {
	return array.PrintOptions{Precision: c.Print.Precision, Separator: c.Print.Separator}
}

// Load reads and validates the settings file at path.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown keys, or has out-of-range values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the explicitly named file, or DefaultFile from the
// working directory if it exists, or falls back to Default. It returns
// the path that was loaded, empty when none was.
func Discover(explicit string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	if _, err := os.Stat(DefaultFile); err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(DefaultFile)
	return cfg, DefaultFile, err
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("format must be %q or %q, got %q", FormatText, FormatJSON, c.Format)
	}
	if c.Print.Precision < 0 || c.Print.Precision > maxPrecision {
		return fmt.Errorf("print.precision must be between 0 and %d, got %d", maxPrecision, c.Print.Precision)
	}
	if c.Print.Separator == "" {
		return fmt.Errorf("print.separator must not be empty")
	}
	return nil
}
