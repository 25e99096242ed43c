// Package forms keeps the editable state of the task, profile and
// credential forms together with their per-field error messages.
package forms

import (
	"errors"

	"taskdesk.com/taskdesk/internal/validators"
)

var ErrUnknownField = errors.New("unknown form field")

// errorBag stores at most one message per field. Entries are removed one at
// a time as the user edits, without re-running validation.
type errorBag struct {
	errs validators.FieldErrors
}

// Errors returns a copy of the current field errors.
func (b *errorBag) Errors() validators.FieldErrors {
	out := make(validators.FieldErrors, len(b.errs))
	for k, v := range b.errs {
		out[k] = v
	}
	return out
}

// FieldError returns the message for field, or "" when there is none.
func (b *errorBag) FieldError(field string) string {
	return b.errs[field]
}

func (b *errorBag) HasErrors() bool {
	return len(b.errs) > 0
}

// ClearFieldError drops the entry for field only.
func (b *errorBag) ClearFieldError(field string) {
	delete(b.errs, field)
}

func (b *errorBag) setErrors(errs validators.FieldErrors) {
	b.errs = errs
}

func (b *errorBag) clearErrors() {
	b.errs = nil
}
