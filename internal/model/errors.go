package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a primary entity lookup finds no row.
var ErrNotFound = errors.New("not found")

// ValidationError collects field-level problems with a request.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Invalid is shorthand for a ValidationError carrying a single message.
func Invalid(field, message string) *ValidationError {
	ve := NewValidationError()
	ve.Add(field, message)
	return ve
}

func (ve *ValidationError) Add(field, message string) {
	if ve.Fields == nil {
		ve.Fields = make(map[string][]string)
	}
	ve.Fields[field] = append(ve.Fields[field], message)
}

// Merge copies every message of other into ve, nesting the field names
// under prefix when it is not empty.
func (ve *ValidationError) Merge(prefix string, other *ValidationError) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		if prefix != "" {
			field = prefix + "." + field
		}
		for _, msg := range msgs {
			ve.Add(field, msg)
		}
	}
}

func (ve *ValidationError) HasErrors() bool {
	return len(ve.Fields) > 0
}

// ErrOrNil returns ve as an error, or a nil interface when nothing was added.
func (ve *ValidationError) ErrOrNil() error {
	if ve == nil || !ve.HasErrors() {
		return nil
	}
	return ve
}

func (ve *ValidationError) Error() string {
	if !ve.HasErrors() {
		return "validation failed"
	}

	fields := make([]string, 0, len(ve.Fields))
	for field := range ve.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(ve.Fields[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
