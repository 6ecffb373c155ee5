package apperror

import (
	"fmt"
	"net/http"
	"strings"
)

// Kind discriminates where a check failed.
type Kind string

const (
	// KindConfig: required settings missing or unusable, detected before any network call.
	KindConfig Kind = "config"
	// KindTransport: the remote call failed (network, TLS, auth).
	KindTransport Kind = "transport"
	// KindProtocol: the call succeeded but the reply indicates an unhealthy service.
	KindProtocol Kind = "protocol"
	// KindNotFound: the requested check does not exist.
	KindNotFound Kind = "not_found"
)

// AppError is a structured check error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped client error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, kind Kind, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Kind:       kind,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps a client error with an AppError.
func Wrap(code string, kind Kind, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Kind:       kind,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Configuration (CFG) ----

func ErrMissingConfig(vars ...string) *AppError {
	return New("CFG_001", KindConfig,
		fmt.Sprintf("missing environment variables: %s", strings.Join(vars, ", ")),
		http.StatusInternalServerError)
}

func ErrInvalidConfig(err error) *AppError {
	return Wrap("CFG_002", KindConfig, "invalid configuration", http.StatusInternalServerError, err)
}

// ---- Transport (NET) ----

func ErrConnection(err error) *AppError {
	return Wrap("NET_001", KindTransport, "connection failed", http.StatusServiceUnavailable, err)
}

// ErrServiceAPI reports an error response returned by the remote service API.
func ErrServiceAPI(apiCode string, err error) *AppError {
	return Wrap("NET_002", KindTransport,
		fmt.Sprintf("service rejected request (%s)", apiCode),
		http.StatusServiceUnavailable, err)
}

// ---- Protocol (PRT) ----

func ErrUnexpectedReply(message string) *AppError {
	return New("PRT_001", KindProtocol, message, http.StatusServiceUnavailable)
}

// ---- Lookup (CHK) ----

func ErrUnknownCheck(name string) *AppError {
	return New("CHK_001", KindNotFound, fmt.Sprintf("check %q not found", name), http.StatusNotFound)
}
