package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies any API failure into a stable client-side taxonomy.
type Code string

const (
	CodeNetwork        Code = "network"
	CodeTimeout        Code = "timeout"
	CodeValidation     Code = "validation"
	CodeAuthentication Code = "authentication"
	CodeAuthorization  Code = "authorization"
	CodeNotFound       Code = "not_found"
	CodeConflict       Code = "conflict"
	CodeRateLimit      Code = "rate_limit"
	CodeServer         Code = "server"
	CodeUnknown        Code = "unknown"
)

// Error is the single failure shape the rest of the client sees.
// StatusCode is 0 when no HTTP response was received.
type Error struct {
	Message    string
	Code       Code
	StatusCode int
	Field      string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// As unwraps err into an *Error if it is one.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// IsCode reports whether err is an *Error with the given code.
func IsCode(err error, code Code) bool {
	apiErr, ok := As(err)

	return ok && apiErr.Code == code
}

// User-facing fallback messages, used when the backend supplies no text.
const (
	msgNetwork   = "Unable to connect to the server. Please check your internet connection."
	msgTimeout   = "The request timed out. Please try again."
	msgAuth      = "Your session has expired. Please log in again."
	msgForbidden = "You do not have permission to perform this action."
	msgNotFound  = "The requested resource was not found."
	msgRateLimit = "Too many requests. Please wait a moment and try again."
	msgServer    = "An unexpected server error occurred. Please try again later."
	msgUnknown   = "An unexpected error occurred."
)

var statusToCode = map[int]Code{
	http.StatusBadRequest:          CodeValidation,
	http.StatusUnauthorized:        CodeAuthentication,
	http.StatusForbidden:           CodeAuthorization,
	http.StatusNotFound:            CodeNotFound,
	http.StatusConflict:            CodeConflict,
	http.StatusUnprocessableEntity: CodeValidation,
	http.StatusTooManyRequests:     CodeRateLimit,
}

var statusToMessage = map[int]string{
	http.StatusUnauthorized:    msgAuth,
	http.StatusForbidden:       msgForbidden,
	http.StatusNotFound:        msgNotFound,
	http.StatusTooManyRequests: msgRateLimit,
}

// Network builds the no-response-received error.
func Network() *Error {
	return &Error{Message: msgNetwork, Code: CodeNetwork}
}

// Timeout builds the transport-timeout error.
func Timeout() *Error {
	return &Error{Message: msgTimeout, Code: CodeTimeout}
}

// FromStatus classifies an HTTP error response. backendMsg and field come
// from the backend error body and may be empty.
func FromStatus(status int, backendMsg, field string) *Error {
	code, ok := statusToCode[status]
	if !ok {
		if status >= 500 && status < 600 {
			code = CodeServer
		} else {
			code = CodeUnknown
		}
	}

	msg := backendMsg
	if msg == "" {
		msg = statusToMessage[status]
	}
	if msg == "" {
		if code == CodeServer {
			msg = msgServer
		} else {
			msg = msgUnknown
		}
	}

	return &Error{
		Message:    msg,
		Code:       code,
		StatusCode: status,
		Field:      field,
	}
}

// Unknown wraps a malformed-response failure so corrupted data is never
// partially surfaced.
func Unknown(status int) *Error {
	return &Error{Message: msgUnknown, Code: CodeUnknown, StatusCode: status}
}
