package placeholders

import (
	"fmt"
	"strings"
)

// ErrorKind tells which validation rule a placeholder set violated.
type ErrorKind uint8

const (
	// IllegalPlaceholder is reported for custom entries not following the
	// `__token_=value` syntax.
	IllegalPlaceholder ErrorKind = iota + 1
	// ReservedPlaceholder is reported for custom entries using a built-in token.
	ReservedPlaceholder
	// MissingPlaceholder is reported in strict mode for rule tokens that were
	// not supplied.
	MissingPlaceholder
	// IllegalPlaceholderValue is reported for values rejected by their rule.
	IllegalPlaceholderValue
	// IllegalOptionValue is reported for name, version or namespace values
	// not matching the generic value grammar.
	IllegalOptionValue
)

// String returns a human readable error kind.
func (kind ErrorKind) String() string {
	switch kind {
	case IllegalPlaceholder:
		return "illegal placeholder"
	case ReservedPlaceholder:
		return "reserved placeholder"
	case MissingPlaceholder:
		return "missing placeholder"
	case IllegalPlaceholderValue:
		return "illegal placeholder value"
	case IllegalOptionValue:
		return "illegal option value"
	}
	return "unknown placeholder error"
}

// ValidationError is returned by Resolve. Callers branch on Kind.
type ValidationError struct {
	// Kind is a violated rule.
	Kind ErrorKind
	// Items are offending entries: raw parameters, tokens or values.
	Items []string
	// Label is a rule label, set for IllegalPlaceholderValue only.
	Label string
}

var (
	// ErrIllegalPlaceholder matches any IllegalPlaceholder error with errors.Is.
	ErrIllegalPlaceholder = &ValidationError{Kind: IllegalPlaceholder}
	// ErrReservedPlaceholder matches any ReservedPlaceholder error with errors.Is.
	ErrReservedPlaceholder = &ValidationError{Kind: ReservedPlaceholder}
	// ErrMissingPlaceholder matches any MissingPlaceholder error with errors.Is.
	ErrMissingPlaceholder = &ValidationError{Kind: MissingPlaceholder}
	// ErrIllegalPlaceholderValue matches any IllegalPlaceholderValue error
	// with errors.Is.
	ErrIllegalPlaceholderValue = &ValidationError{Kind: IllegalPlaceholderValue}
	// ErrIllegalOptionValue matches any IllegalOptionValue error with errors.Is.
	ErrIllegalOptionValue = &ValidationError{Kind: IllegalOptionValue}
)

// Error returns error message.
func (e *ValidationError) Error() string {
	if e.Kind == IllegalPlaceholderValue && e.Label != "" {
		return fmt.Sprintf("%s for %q: %s", e.Kind, e.Label, strings.Join(e.Items, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(e.Items, ", "))
}

// Is reports whether target is a ValidationError of the same kind.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

func newValidationError(kind ErrorKind, items ...string) *ValidationError {
	return &ValidationError{Kind: kind, Items: items}
}
