package harness

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSuiteName is used when a suite definition does not name itself.
const DefaultSuiteName = "expressions"

// CheckDefinition is one named check in a suite definition file.
type CheckDefinition struct {
	Name         string        `yaml:"name"`
	Expectations []Expectation `yaml:"expectations"`
}

// SuiteDefinition is the declarative form of a TestSuite.
type SuiteDefinition struct {
	Name   string            `yaml:"name"`
	Checks []CheckDefinition `yaml:"checks"`
}

// DefaultSuiteDefinition returns the built-in expression checks.
func DefaultSuiteDefinition() SuiteDefinition {
	return SuiteDefinition{
		Name: DefaultSuiteName,
		Checks: []CheckDefinition{
			{
				Name: "test_expressions",
				Expectations: []Expectation{
					{Expression: "20 + 20", Expected: "40"},
					{Expression: "true or false", Expected: "true"},
					{Expression: `true ? "hello" : nil`, Expected: "hello"},
					{Expression: `false ? "hello" : nil`, Expected: "nil"},
				},
			},
		},
	}
}

// LoadSuiteDefinition reads and validates a suite definition file.
func LoadSuiteDefinition(path string) (SuiteDefinition, error) {
	var def SuiteDefinition

	data, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("failed to read suite definition %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &def); err != nil {
		return def, fmt.Errorf("failed to parse suite definition %s: %w", path, err)
	}

	if def.Name == "" {
		def.Name = DefaultSuiteName
	}

	if err := def.Validate(); err != nil {
		return def, fmt.Errorf("invalid suite definition %s: %w", path, err)
	}
	return def, nil
}

// Validate checks that every check is named and every expectation has an
// expression. An empty expected value is allowed.
func (d SuiteDefinition) Validate() error {
	if len(d.Checks) == 0 {
		return fmt.Errorf("no checks defined")
	}

	seen := make(map[string]bool, len(d.Checks))
	for i, check := range d.Checks {
		if check.Name == "" {
			return fmt.Errorf("check %d: name is required", i)
		}
		if seen[check.Name] {
			return fmt.Errorf("check %s: duplicate name", check.Name)
		}
		seen[check.Name] = true

		for j, e := range check.Expectations {
			if strings.TrimSpace(e.Expression) == "" {
				return fmt.Errorf("check %s: expectation %d: expression is required", check.Name, j)
			}
		}
	}
	return nil
}

// BuildSuite registers every check of def on a new TestSuite, keeping the
// file order.
func BuildSuite(def SuiteDefinition, evaluator ExpressionEvaluator, reporter Reporter) *TestSuite {
	suite := NewTestSuite(def.Name, evaluator, reporter)
	for _, check := range def.Checks {
		suite.Expect(check.Name, check.Expectations...)
	}
	return suite
}
