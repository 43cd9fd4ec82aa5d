package validator

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidConstraint indicates a malformed constraint table.
var ErrInvalidConstraint = errors.New("validator: invalid constraint")

// Check selects what a Constraint verifies.
type Check int

const (
	// CheckRequired fails with RuleRequired when the field is absent.
	CheckRequired Check = iota + 1
	// CheckLength fails with RuleTooShort or RuleTooLong when the number of
	// code points falls outside [Min, Max]. A zero bound is not enforced.
	CheckLength
	// CheckFormat fails with RuleInvalidFormat when the named Format rejects the value.
	CheckFormat
)

// String returns the check name.
func (c Check) String() string {
	switch c {
	case CheckRequired:
		return "required"
	case CheckLength:
		return "length"
	case CheckFormat:
		return "format"
	default:
		return "unknown"
	}
}

// Constraint is one row of a constraint table.
type Constraint struct {
	// Field is the name looked up in the Source and reported in violations.
	Field string
	// Check selects the kind of constraint.
	Check Check
	// Min is the inclusive lower length bound (CheckLength only).
	Min int
	// Max is the inclusive upper length bound (CheckLength only).
	Max int
	// Format is the registered format name (CheckFormat only).
	Format string
	// Message is the translation key of the violation message.
	// Length messages receive the enforced bounds as {0} and {1}.
	Message string
}

// Source supplies field values to the engine.
type Source interface {
	// Lookup returns the value of field and whether it is present.
	// A present empty string is distinct from an absent field.
	Lookup(field string) (value string, ok bool)
}

// Values is a map-backed Source; missing keys are absent fields.
type Values map[string]string

// Lookup implements Source.
func (v Values) Lookup(field string) (string, bool) {
	value, ok := v[field]
	return value, ok
}

func (c Constraint) params() []string {
	if c.Check != CheckLength {
		return nil
	}

	switch {
	case c.Min > 0 && c.Max > 0:
		return []string{strconv.Itoa(c.Min), strconv.Itoa(c.Max)}
	case c.Min > 0:
		return []string{strconv.Itoa(c.Min)}
	case c.Max > 0:
		return []string{strconv.Itoa(c.Max)}
	default:
		return nil
	}
}

func (c Constraint) validate(formats map[string]FormatFunc) error {
	if c.Field == "" {
		return fmt.Errorf("%w: empty field name", ErrInvalidConstraint)
	}
	if c.Message == "" {
		return fmt.Errorf("%w: %s %s has no message", ErrInvalidConstraint, c.Field, c.Check)
	}

	switch c.Check {
	case CheckRequired:
	case CheckLength:
		if c.Min < 0 || c.Max < 0 {
			return fmt.Errorf("%w: %s has a negative length bound", ErrInvalidConstraint, c.Field)
		}
		if c.Min == 0 && c.Max == 0 {
			return fmt.Errorf("%w: %s length has no bound", ErrInvalidConstraint, c.Field)
		}
		if c.Max > 0 && c.Min > c.Max {
			return fmt.Errorf("%w: %s min %d exceeds max %d", ErrInvalidConstraint, c.Field, c.Min, c.Max)
		}
	case CheckFormat:
		if _, ok := formats[c.Format]; !ok {
			return fmt.Errorf("%w: %s uses unknown format %q", ErrInvalidConstraint, c.Field, c.Format)
		}
	default:
		return fmt.Errorf("%w: %s has unknown check %d", ErrInvalidConstraint, c.Field, c.Check)
	}

	return nil
}
