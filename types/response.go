package types

import "time"

type APIResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    interface{}   `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// ErrorDetails is attached to failed responses produced by the global error handler.
type ErrorDetails struct {
	Timestamp time.Time    `json:"timestamp"`
	Status    int          `json:"status"`
	Kind      ErrorKind    `json:"kind,omitempty"`
	Reason    string       `json:"reason,omitempty"`
	Path      string       `json:"path"`
	Fields    []FieldError `json:"fields,omitempty"`
}
