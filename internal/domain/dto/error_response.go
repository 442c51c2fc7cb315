package dto

import "time"

// ErrorResponse is the error shape handed to reporting collaborators.
// It distinguishes the caller-facing message from the underlying detail.
type ErrorResponse struct {
	Message      string    `json:"message"`
	ErrorDetails string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// underlying error.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
