package status

import "fmt"

// The fetch path has no retry logic. Every fault below is fatal to the
// caller, the types only exist so callers and tests can tell the tiers
// apart.

// TransportError is a network level fault: DNS, connect, TLS, or a
// broken connection mid-response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError is a non-2xx response from the status API.
type HTTPStatusError struct {
	StatusCode int
	Err        error
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d: %s", e.StatusCode, e.Err)
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Err
}

// DecodeError is a malformed JSON body in an otherwise successful
// response.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode status response: %s", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
