package services

import "errors"

// Sentinel errors resolved to HTTP statuses in one place (handlers.Fail).
var (
	ErrUserExists         = errors.New("User Already Exists")
	ErrInvalidCredentials = errors.New("Invalid Credentials")
	ErrReportNotFound     = errors.New("Report Not Found")
	ErrNotReportOwner     = errors.New("Only the report owner may do this")
	ErrImageUpload        = errors.New("Image Upload Failed")
	ErrStaleSubmission    = errors.New("Stale Request")
)

// ValidationError carries a field-specific message for a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }
