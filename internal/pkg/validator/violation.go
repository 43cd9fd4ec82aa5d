package validator

import (
	"encoding/json"
	"fmt"
)

// Rule names the kind of constraint a value failed.
type Rule string

const (
	// RuleRequired is reported when a field is absent.
	RuleRequired Rule = "required"
	// RuleTooShort is reported when a value is below its minimum length.
	RuleTooShort Rule = "tooShort"
	// RuleTooLong is reported when a value exceeds its maximum length.
	RuleTooLong Rule = "tooLong"
	// RuleInvalidFormat is reported when a value does not match its format.
	RuleInvalidFormat Rule = "invalidFormat"
)

// Violation is a single failed constraint.
type Violation struct {
	Field   string `json:"field"`
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// Violations is the result of one validation run.
//
// It has set semantics: callers must not depend on the order of elements.
type Violations []Violation

// Error implements the error interface.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Has reports whether any violation was recorded for field.
func (vs Violations) Has(field string) bool {
	for _, v := range vs {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Field returns the violations recorded for field.
func (vs Violations) Field(field string) Violations {
	var out Violations
	for _, v := range vs {
		if v.Field == field {
			out = append(out, v)
		}
	}
	return out
}

// Rules returns the rule kinds recorded for field.
func (vs Violations) Rules(field string) []Rule {
	var out []Rule
	for _, v := range vs {
		if v.Field == field {
			out = append(out, v.Rule)
		}
	}
	return out
}

// Equal reports whether vs and other hold the same (field, rule) pairs,
// ignoring order and messages.
func (vs Violations) Equal(other Violations) bool {
	if len(vs) != len(other) {
		return false
	}

	type key struct {
		field string
		rule  Rule
	}

	counts := make(map[key]int, len(vs))
	for _, v := range vs {
		counts[key{v.Field, v.Rule}]++
	}
	for _, v := range other {
		k := key{v.Field, v.Rule}
		if counts[k] == 0 {
			return false
		}
		counts[k]--
	}
	return true
}
