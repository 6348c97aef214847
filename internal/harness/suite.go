package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ndtool/internal/array"
)

// Suite is a named list of cases loaded from one YAML file.
type Suite struct {
	// Name identifies the suite and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the suite checks.
	Description string `yaml:"description"`

	Cases []Case `yaml:"cases"`

	// Dir is the directory the suite was loaded from. File operands are
	// resolved relative to it.
	Dir string `yaml:"-"`
}

// Case is one operation with its expected outcome.
type Case struct {
	Name string  `yaml:"name"`
	Op   string  `yaml:"op"`
	A    Operand `yaml:"a"`
	B    Operand `yaml:"b"`

	Expect      *Operand `yaml:"expect,omitempty"`
	ExpectDType string   `yaml:"expect_dtype,omitempty"`
	ExpectShape string   `yaml:"expect_shape,omitempty"`
	ExpectError string   `yaml:"expect_error,omitempty"`
}

// Operand keeps the raw YAML node of an operand until the case runs, so
// strings can be told apart from inline arrays.
type Operand struct {
	node *yaml.Node
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Operand) UnmarshalYAML(value *yaml.Node) error {
	o.node = value
	return nil
}

// IsSet reports whether the operand was present in the file.
func (o Operand) IsSet() bool {
	return o.node != nil && o.node.Tag != "!!null"
}

// Token returns the operand as an input token when it was written as a
// YAML string.
func (o Operand) Token() (string, bool) {
	if o.node == nil || o.node.Kind != yaml.ScalarNode || o.node.Tag != "!!str" {
		return "", false
	}
	return o.node.Value, true
}

// Op names accepted in case files.
const (
	OpIntersect = "intersect"
	OpAdd       = "add"
)

var knownCodes = []array.ErrorCode{
	array.ErrCodeInvalidInput,
	array.ErrCodeShapeMismatch,
	array.ErrCodeTypeMismatch,
}

// LoadSuite reads and parses a case file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}

	var suite Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	suite.Dir = filepath.Dir(path)

	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid case file %s: %w", path, err)
	}
	return &suite, nil
}

// LoadSuites loads one case file, or every *.yaml and *.yml file in a
// directory in name order.
func LoadSuites(path string) ([]*Suite, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}
	if !info.IsDir() {
		suite, err := LoadSuite(path)
		if err != nil {
			return nil, err
		}
		return []*Suite{suite}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no case files found in %s", path)
	}
	slices.Sort(files)

	suites := make([]*Suite, 0, len(files))
	for _, f := range files {
		suite, err := LoadSuite(f)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

// validateSuite checks that required fields are present and valid.
func validateSuite(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true

		if c.Op != OpIntersect && c.Op != OpAdd {
			return fmt.Errorf("cases[%d]: unknown op %q (want %q or %q)", i, c.Op, OpIntersect, OpAdd)
		}
		if !c.A.IsSet() || !c.B.IsSet() {
			return fmt.Errorf("cases[%d]: operands a and b are required", i)
		}

		hasResult := (c.Expect != nil && c.Expect.IsSet()) || c.ExpectDType != "" || c.ExpectShape != ""
		switch {
		case c.ExpectError != "" && hasResult:
			return fmt.Errorf("cases[%d]: expect_error cannot be combined with other expectations", i)
		case c.ExpectError == "" && !hasResult:
			return fmt.Errorf("cases[%d]: at least one expectation is required", i)
		}
		if c.ExpectError != "" && !slices.Contains(knownCodes, array.ErrorCode(c.ExpectError)) {
			return fmt.Errorf("cases[%d]: unknown error code %q", i, c.ExpectError)
		}
		if c.ExpectDType != "" {
			if _, err := array.ParseDType(c.ExpectDType); err != nil {
				return fmt.Errorf("cases[%d]: %w", i, err)
			}
		}
	}
	return nil
}
