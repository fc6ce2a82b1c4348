package engine

import (
	"errors"
	"fmt"
)

// VariantError reports an invalid variant composition or construction.
type VariantError struct {
	// Code identifies the error category.
	Code VariantErrorCode

	// Rule names the rule involved, if any.
	Rule string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// VariantErrorCode categorizes variant errors.
type VariantErrorCode string

const (
	// ErrCodeUnknownRule indicates a rule name not present in the variant.
	ErrCodeUnknownRule VariantErrorCode = "UNKNOWN_RULE"

	// ErrCodeDuplicateRule indicates a rule name used twice.
	ErrCodeDuplicateRule VariantErrorCode = "DUPLICATE_RULE"

	// ErrCodeUnknownLanguage indicates no vocabulary exists for a language.
	ErrCodeUnknownLanguage VariantErrorCode = "UNKNOWN_LANGUAGE"

	// ErrCodeBadPattern indicates a rule failed to build, usually because
	// its composed regular expression does not compile.
	ErrCodeBadPattern VariantErrorCode = "BAD_PATTERN"
)

// Error implements the error interface.
func (e *VariantError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Rule != "" {
		msg = fmt.Sprintf("%s: %s (rule=%s)", e.Code, e.Message, e.Rule)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *VariantError) Unwrap() error {
	return e.Err
}

// IsUnknownRule returns true if the error is an unknown rule error.
// Uses errors.As to handle wrapped errors.
func IsUnknownRule(err error) bool {
	return hasCode(err, ErrCodeUnknownRule)
}

// IsDuplicateRule returns true if the error is a duplicate rule error.
func IsDuplicateRule(err error) bool {
	return hasCode(err, ErrCodeDuplicateRule)
}

// IsUnknownLanguage returns true if no variant exists for the language.
func IsUnknownLanguage(err error) bool {
	return hasCode(err, ErrCodeUnknownLanguage)
}

func hasCode(err error, code VariantErrorCode) bool {
	var ve *VariantError
	if errors.As(err, &ve) {
		return ve.Code == code
	}
	return false
}
