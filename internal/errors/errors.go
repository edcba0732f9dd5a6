package errors

import "errors"

// Sentinel errors shared by the service and API layers. Services wrap them
// with context using fmt.Errorf("%w: ..."), and the API layer maps them to
// HTTP responses with errors.Is.

var (
	// ErrUnauthorized means the request carried no usable access token.
	// Mapped to 401 Unauthorized.
	ErrUnauthorized = errors.New("unauthorized: access token is missing")

	// ErrValidation means the request body failed decoding or validation.
	// Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrModelNotAllowed means the requested model is not in the allow-list.
	// Mapped to 400 Bad Request.
	ErrModelNotAllowed = errors.New("model not allowed")

	// ErrUpstreamStatus means the upstream answered with a non-2xx status.
	ErrUpstreamStatus = errors.New("upstream returned an error status")

	// ErrUpstreamTransport means the upstream could not be reached or the
	// connection failed mid-response.
	ErrUpstreamTransport = errors.New("upstream transport failure")

	// ErrInternal is the catch-all for unexpected failures.
	// Mapped to 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)

// IsUpstream reports whether err originated from the upstream service.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstreamStatus) || errors.Is(err, ErrUpstreamTransport)
}
