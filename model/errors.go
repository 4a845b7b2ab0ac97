package model

// FieldError ties a validation failure to the payload path that caused
// it, e.g. "fields[2].label" or "responses.<fieldId>".
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError carries everything a client needs to repair a
// rejected payload.
type ValidationError struct {
	Msg    string
	Fields []FieldError
}

func NewValidationError(msg string, fields ...FieldError) *ValidationError {
	return &ValidationError{Msg: msg, Fields: fields}
}

func (e *ValidationError) Error() string {
	return e.Msg
}
