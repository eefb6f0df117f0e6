// Package services runs a summary: it loads the three ring builders,
// folds them into host records and writes the summary file.
package services

import (
	"errors"

	"github.com/cqroot/openstack-swift-exporter/internal/ringbuilder"
)

// Error codes of a failed run
const (
	CodeSourceUnavailable = "SOURCE_UNAVAILABLE"
	CodeSourceMalformed   = "SOURCE_MALFORMED"
	CodeSinkUnwritable    = "SINK_UNWRITABLE"
	CodeCanceled          = "CANCELED"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// wrapSourceError classifies an error returned while reading a ring
func wrapSourceError(ring string, path string, err error) *ServiceError {
	code := CodeSourceMalformed
	message := "ring builder is malformed"
	if errors.Is(err, ringbuilder.ErrSourceUnavailable) {
		code = CodeSourceUnavailable
		message = "ring builder is unavailable"
	}

	se := NewServiceErrorWithDetails(code, message, map[string]interface{}{"ring": ring, "path": path})
	se.Err = err
	return se
}

// ErrorCode returns the code of a ServiceError anywhere in err's chain, or ""
func ErrorCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
