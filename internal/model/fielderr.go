package model

// ErrorKind classifies a field-scoped validation failure.
type ErrorKind string

const (
	// KindRequired: the active protocol mandates the field and it is empty.
	KindRequired ErrorKind = "required"
	// KindFormat: the value fails its type-specific validator.
	KindFormat ErrorKind = "format"
)

// FieldError is one field-scoped validation failure. Unlike decode failures
// these are non-terminal: the record is returned alongside its error map so
// the caller can let the user fix fields incrementally.
type FieldError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// FieldErrors maps canonical field name -> first failure for that field.
// An empty map means the record is accepted.
type FieldErrors map[string]FieldError

func (fe FieldErrors) Put(field string, kind ErrorKind, message string) {
	if _, ok := fe[field]; ok {
		// Required beats format; first error per field wins otherwise.
		return
	}
	fe[field] = FieldError{Kind: kind, Message: message}
}

// Merge copies errors from other without overwriting existing entries.
func (fe FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		if _, ok := fe[k]; !ok {
			fe[k] = v
		}
	}
}
