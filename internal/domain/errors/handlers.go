package errors

// ErrorResponse is the body of every failed function call
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorInfo is logged alongside a failed response
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "INVALID_CREDENTIALS"
	Message string `json:"message"`           // Message returned to the client
	Details string `json:"details,omitempty"` // Server-side details, never returned
}

// InfoOf extracts loggable information from an AppError
func InfoOf(appErr AppError) ErrorInfo {
	return ErrorInfo{
		Code:    appErr.ErrorCode(),
		Message: appErr.Message(),
		Details: appErr.Details(),
	}
}
