package cloudwatch

import (
	"errors"
	"fmt"
	"strings"
)

// Validation rules. A *ValidationError matches exactly one of these with errors.Is.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidFieldType     = errors.New("invalid field type")
	ErrInvalidTimeRange     = errors.New("invalid time range")
	ErrInvalidEnumValue     = errors.New("invalid enum value")
)

// Client and transport errors, wrapped with eris.
var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrRequestFailed    = errors.New("request failed")
	ErrNotInitialized   = errors.New("cloudwatch client not initialized")
)

// ValidationError reports the first rule an OptionSet violated.
type ValidationError struct {
	Rule     error
	Field    string
	Expected string   // expected type, or the end field for ErrInvalidTimeRange
	Value    string   // offending value, for ErrInvalidEnumValue
	Allowed  []string // allowed set, for ErrInvalidEnumValue
}

func (e *ValidationError) Error() string {
	switch e.Rule {
	case ErrMissingRequiredField:
		return fmt.Sprintf("%s: %s", e.Rule, e.Field)
	case ErrInvalidFieldType:
		return fmt.Sprintf("%s: %s must be a %s", e.Rule, e.Field, e.Expected)
	case ErrInvalidTimeRange:
		return fmt.Sprintf("%s: %s must be before %s", e.Rule, e.Field, e.Expected)
	case ErrInvalidEnumValue:
		return fmt.Sprintf("%s: %s=%q, allowed: %s", e.Rule, e.Field, e.Value, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Rule, e.Field)
}

// Is reports whether target is the rule this error was raised for.
func (e *ValidationError) Is(target error) bool {
	return e.Rule == target
}

// RuleName is the short label used for logs and metrics.
func (e *ValidationError) RuleName() string {
	switch e.Rule {
	case ErrMissingRequiredField:
		return "presence"
	case ErrInvalidFieldType:
		return "type"
	case ErrInvalidTimeRange:
		return "range"
	case ErrInvalidEnumValue:
		return "enum"
	}
	return "unknown"
}

// MissingRequiredField creates the error for an absent or empty required field.
func MissingRequiredField(field string) error {
	return &ValidationError{Rule: ErrMissingRequiredField, Field: field}
}

// InvalidFieldType creates the error for a value that is not of the expected kind.
func InvalidFieldType(field, expected string) error {
	return &ValidationError{Rule: ErrInvalidFieldType, Field: field, Expected: expected}
}

// InvalidTimeRange is raised when start is not strictly before end. Field holds the
// start field, Expected the end field.
func InvalidTimeRange(start, end string) error {
	return &ValidationError{Rule: ErrInvalidTimeRange, Field: start, Expected: end}
}

// InvalidEnumValue creates the error for a value outside the allowed set.
func InvalidEnumValue(field, value string, allowed []string) error {
	return &ValidationError{Rule: ErrInvalidEnumValue, Field: field, Value: value, Allowed: allowed}
}
