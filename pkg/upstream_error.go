package pkg

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrUpstreamAuth = errors.New("payment provider authentication failed")
	ErrUpstreamBill = errors.New("payment provider bill creation failed")
)

// UpstreamError reports a payment provider response that cannot be used.
// Response holds the provider body (decoded JSON, or the raw text when it was not JSON).
type UpstreamError struct {
	Kind     error
	Message  string
	Response any
}

func NewUpstreamError(kind error, message string, response any) *UpstreamError {
	return &UpstreamError{Kind: kind, Message: message, Response: response}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Kind }

// AsUpstreamError extracts an UpstreamError from a wrapped chain.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}
