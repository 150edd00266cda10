package httpclient

import (
	"fmt"
	"net/url"

	"github.com/cockroachdb/errors"
)

var ErrUnexpectedStatus = errors.New("unexpected http status")

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// CheckStatus returns a StatusError for any non-2xx response.
func CheckStatus(resp *Response) error {
	if resp.IsSuccess() {
		return nil
	}
	return &StatusError{StatusCode: resp.StatusCode, Body: resp.Body}
}

// redactQuery drops the query string so ids and tokens in it stay out of error messages.
func redactQuery(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	return u.String()
}
