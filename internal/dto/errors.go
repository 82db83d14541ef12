package dto

// ErrorResponse represents a simple error body
type ErrorResponse struct {
	Message string `json:"message"`
}

// FieldError represents a single invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse represents a 400 validation failure with
// per-field messages
type ValidationErrorResponse struct {
	Title  string       `json:"title"`
	Errors []FieldError `json:"errors"`
}
