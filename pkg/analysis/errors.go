package analysis

import "fmt"

// ValidationError reports a malformed input record. It is the only error
// kind the analyzers produce: validation failure aborts the call immediately
// with no partial result.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// Validate checks that the input carries the required fields. Optional
// fields are never validated here: unknown countries or missing metadata are
// "no data for this facet", not errors.
func (in *SubjectInput) Validate() error {
	if in == nil {
		return &ValidationError{Field: "entrada", Message: "la entrada es obligatoria"}
	}
	if in.SubjectID == "" {
		return &ValidationError{Field: "id_sujeto", Message: "el campo es obligatorio"}
	}
	if in.Text == "" {
		return &ValidationError{Field: "texto", Message: "el campo es obligatorio"}
	}
	return nil
}
