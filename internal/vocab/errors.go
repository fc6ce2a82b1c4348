package vocab

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"
)

// SchemaError describes one problem with a vocabulary document.
type SchemaError struct {
	// File is the document name, as given to Parse or Validate.
	File string

	// Language is the document's language code when it could be read.
	Language string

	// Path is the offending field, e.g. "prefixes.3.value".
	Path string

	Message string

	// Pos is the source position, when known.
	Pos token.Pos
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Path, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// IsSchemaError reports whether err is or wraps a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
