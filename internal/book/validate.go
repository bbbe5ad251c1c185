package book

import (
	"strings"

	"bookreviews/internal/entity"
	"bookreviews/internal/httpx"
)

// ValidationError carries every violated field constraint, never just the
// first one.
type ValidationError struct {
	Fields []httpx.ErrorDetail
}

func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		fields[i] = f.Field
	}
	return "invalid book fields: " + strings.Join(fields, ", ")
}

// validateBook checks the whole record against the schema constraints. It is
// run on the full merged record, so a partial update that pushes an untouched
// field out of range still fails.
func validateBook(b entity.Book) error {
	if details := httpx.ValidateStruct(b); len(details) > 0 {
		return &ValidationError{Fields: details}
	}
	return nil
}
