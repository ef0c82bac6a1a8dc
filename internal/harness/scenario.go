package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/y2km/internal/y2km"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RangePolicy is "reject" (default) or "saturate".
	RangePolicy string `yaml:"range_policy,omitempty"`

	// Flow contains the steps to execute, in order.
	Flow []Step `yaml:"flow"`
}

// Step is a single codec or store operation.
type Step struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	// Values is the left operand. Month-counts for format, YYYY-MM otherwise.
	Values []string `yaml:"values,omitempty"`

	// Other is the right operand for binary operations.
	Other []string `yaml:"other,omitempty"`

	// By is the month offset for shift and unshift.
	By int `yaml:"by,omitempty"`

	// Indices are the positions for take.
	Indices []int `yaml:"indices,omitempty"`

	// Fill enables take-with-fill: NA fills with a missing element,
	// a YYYY-MM value fills with that month.
	Fill string `yaml:"fill,omitempty"`

	// Column names the stored column for put and get.
	Column string `yaml:"column,omitempty"`

	// Expect specifies the expected outcome. If nil the step must succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected outcome of a step.
type Expect struct {
	// Output is the expected rendered result. Nil skips the comparison.
	Output []string `yaml:"output,omitempty"`

	// Error is the expected error code (e.g. PARSE_ERROR).
	Error string `yaml:"error,omitempty"`
}

// Operation names.
const (
	OpParse     = "parse"
	OpFormat    = "format"
	OpDiff      = "diff"
	OpShift     = "shift"
	OpUnshift   = "unshift"
	OpAddDates  = "add_dates"
	OpEqual     = "eq"
	OpNotEqual  = "ne"
	OpLess      = "lt"
	OpLessEq    = "le"
	OpGreater   = "gt"
	OpGreaterEq = "ge"
	OpConcat    = "concat"
	OpTake      = "take"
	OpPut       = "put"
	OpGet       = "get"
)

var knownOps = map[string]bool{
	OpParse: true, OpFormat: true, OpDiff: true, OpShift: true, OpUnshift: true,
	OpAddDates: true, OpEqual: true, OpNotEqual: true, OpLess: true, OpLessEq: true,
	OpGreater: true, OpGreaterEq: true, OpConcat: true, OpTake: true, OpPut: true, OpGet: true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if _, err := y2km.ParseRangePolicy(s.RangePolicy); err != nil {
		return err
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	for i, step := range s.Flow {
		if !knownOps[step.Op] {
			return fmt.Errorf("flow[%d]: unknown op %q", i, step.Op)
		}
		if (step.Op == OpPut || step.Op == OpGet) && step.Column == "" {
			return fmt.Errorf("flow[%d]: %s requires column", i, step.Op)
		}
		if step.Expect != nil && step.Expect.Error != "" && step.Expect.Output != nil {
			return fmt.Errorf("flow[%d]: expect cannot have both output and error", i)
		}
	}
	return nil
}
