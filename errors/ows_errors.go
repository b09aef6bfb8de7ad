package errors

import (
	"fmt"
	"net/http"
)

// OWS exception codes reported to clients.
const (
	CodeAccessForbidden       = "AccessForbidden"
	CodeInvalidParameterValue = "InvalidParameterValue"
	CodeNotFound              = "NotFound"
	CodeNoApplicableCode      = "NoApplicableCode"
)

// OWSError is a structured gateway error carried across the store/gate
// boundary and rendered to clients as an OWS-style exception report.
type OWSError struct {
	Code        string `json:"code"`
	Locator     string `json:"locator,omitempty"`
	Description string `json:"description,omitempty"`
	Status      int    `json:"-"`
}

func (e *OWSError) Error() string {
	if e.Locator != "" {
		return fmt.Sprintf("%s (locator=%s): %s", e.Code, e.Locator, e.Description)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// NewAccessForbidden reports a rejected request: missing, unknown or
// expired token, or an unauthorized backend. Never retried.
func NewAccessForbidden(description string) *OWSError {
	return &OWSError{
		Code:        CodeAccessForbidden,
		Description: description,
		Status:      http.StatusUnauthorized,
	}
}

// NewInvalidParameterValue reports a malformed or unsupported protocol
// parameter, naming the offending field in the locator.
func NewInvalidParameterValue(description, locator string) *OWSError {
	return &OWSError{
		Code:        CodeInvalidParameterValue,
		Locator:     locator,
		Description: description,
		Status:      http.StatusBadRequest,
	}
}

// NewNotFound reports a missing entity on the management surface.
func NewNotFound(description string) *OWSError {
	return &OWSError{
		Code:        CodeNotFound,
		Description: description,
		Status:      http.StatusNotFound,
	}
}

// NewNoApplicableCode reports an internal gateway failure.
func NewNoApplicableCode(description string) *OWSError {
	return &OWSError{
		Code:        CodeNoApplicableCode,
		Description: description,
		Status:      http.StatusInternalServerError,
	}
}
