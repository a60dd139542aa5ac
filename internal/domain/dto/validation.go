package dto

import "strings"

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every field error of one request.
type ValidationErrors []*ValidationError

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, &ValidationError{Field: field, Message: message})
}

// Empty reports whether no error was collected.
func (v ValidationErrors) Empty() bool { return len(v) == 0 }

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Details returns the errors keyed by field, for ErrorResponse.Details.
// Later errors on the same field are appended.
func (v ValidationErrors) Details() map[string]string {
	details := make(map[string]string, len(v))
	for _, e := range v {
		if prev, ok := details[e.Field]; ok {
			details[e.Field] = prev + "; " + e.Message
			continue
		}
		details[e.Field] = e.Message
	}
	return details
}
