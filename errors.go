package atproto

import (
	"fmt"
	"strings"
)

// RequiredFieldError reports a required field that was missing, null, or
// carried the wrong JSON type.
type RequiredFieldError struct {
	Path string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("required field %q missing or mistyped", e.Path)
}

// Is enables errors.Is matching on RequiredFieldError.
func (e *RequiredFieldError) Is(target error) bool {
	_, ok := target.(*RequiredFieldError)
	return ok
}

// FormatError reports a scalar that parsed as JSON but violated the field's
// value grammar, such as a malformed timestamp or an unknown enum literal.
type FormatError struct {
	Path  string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed value %q at %q", e.Value, e.Path)
}

func (e *FormatError) Is(target error) bool {
	_, ok := target.(*FormatError)
	return ok
}

// UnrecognizedVariantError reports a union payload that matched none of the
// declared candidates.
type UnrecognizedVariantError struct {
	Path       string
	Candidates []string
}

func (e *UnrecognizedVariantError) Error() string {
	return fmt.Sprintf("value at %q matched no variant of [%s]", e.Path, strings.Join(e.Candidates, ", "))
}

func (e *UnrecognizedVariantError) Is(target error) bool {
	_, ok := target.(*UnrecognizedVariantError)
	return ok
}

// URLConstructionError reports a base host or endpoint path that could not be
// assembled into a request URL. Fatal to the call, never retried.
type URLConstructionError struct {
	Host string
	Path string
	Err  error
}

func (e *URLConstructionError) Error() string {
	return fmt.Sprintf("cannot build request url from host %q path %q: %v", e.Host, e.Path, e.Err)
}

func (e *URLConstructionError) Unwrap() error { return e.Err }

// TransportError wraps a network-level failure surfaced by the transport
// collaborator. Propagated verbatim, never retried at this layer.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-2xx XRPC response body. The service reports failures as
// {"error": <code>, "message": <detail>}.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error"`
	Message    string `json:"message,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Code, e.StatusCode)
}
