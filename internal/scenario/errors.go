package scenario

import "fmt"

// ErrorCategory classifies which contract a rejected input violated.
type ErrorCategory uint8

const (
	// CategoryMembership marks a value outside a closed set (wake category).
	CategoryMembership ErrorCategory = iota
	// CategoryRange marks a geometric value outside its bounds.
	CategoryRange
	// CategoryDimension marks mismatched sequence lengths, wrong column
	// counts, or a capacity profile of the wrong length.
	CategoryDimension
	// CategoryIndex marks an out-of-range indexed access.
	CategoryIndex
)

var categoryNames = [...]string{
	"membership",
	"range",
	"dimension",
	"index",
}

func (c ErrorCategory) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// ValidationError reports an input that violates a model contract. Entities
// are all-or-nothing: a constructor returning one of these has retained no
// partial state.
type ValidationError struct {
	Category ErrorCategory
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(category ErrorCategory, field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Category: category,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	}
}
