// Package contracts holds the wire types exchanged with the gallery API.
package contracts

import "fmt"

// Error kinds synthesized by the client when the backend does not answer
// with a conforming envelope.
const (
	ErrorKindParse   = "ParseError"
	ErrorKindHTTP    = "HttpError"
	ErrorKindNetwork = "NetworkError"
)

// Error kinds emitted by the backend.
const (
	ErrorKindValidation   = "ValidationError"
	ErrorKindUnauthorized = "Unauthorized"
	ErrorKindInvalidCreds = "InvalidCredentials"
	ErrorKindForbidden    = "Forbidden"
	ErrorKindNotFound     = "NotFound"
	ErrorKindConflict     = "Conflict"
	ErrorKindBadRequest   = "BadRequest"
	ErrorKindTooLarge     = "PayloadTooLarge"
	ErrorKindRateLimited  = "TooManyRequests"
	ErrorKindInternal     = "InternalServerError"
)

// APIError is the error half of an Envelope.
type APIError struct {
	Kind       string              `json:"error"`
	Message    string              `json:"message"`
	StatusCode int                 `json:"statusCode"`
	Details    map[string][]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (%d)", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Envelope wraps every API response. Data is meaningful only when Success
// is true, Error only when it is false.
type Envelope[T any] struct {
	Success bool      `json:"success"`
	Data    *T        `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// Ok builds a successful envelope.
func Ok[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: &data}
}

// Fail builds a failed envelope.
func Fail[T any](err *APIError) Envelope[T] {
	return Envelope[T]{Success: false, Error: err}
}

// Err returns the envelope error as a Go error, or nil on success.
func (e Envelope[T]) Err() error {
	if e.Success {
		return nil
	}
	if e.Error == nil {
		return &APIError{Kind: ErrorKindParse, Message: "envelope declared failure without an error"}
	}
	return e.Error
}

// StatusCode reports the error status code, 0 on success.
func (e Envelope[T]) StatusCode() int {
	if e.Success || e.Error == nil {
		return 0
	}
	return e.Error.StatusCode
}

// IsUnauthorized reports whether the envelope carries a 401 failure.
func (e Envelope[T]) IsUnauthorized() bool {
	return e.StatusCode() == 401
}

// MessageResponse is the payload of operations that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}
