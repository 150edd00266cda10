package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
)

// Request is one outbound HTTP call.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response is the status, body and first value of each header.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// Client sends a request and returns the full response. Non-2xx statuses are
// returned as a Response, not an error; callers decide what a bad status means.
type Client interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

type DefaultClient struct {
	client *http.Client
}

// NewDefaultClient builds a client with the given timeout (zero means none).
// It never retries.
func NewDefaultClient(timeout time.Duration) *DefaultClient {
	return &DefaultClient{client: &http.Client{Timeout: timeout}}
}

func (c *DefaultClient) Send(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s request", req.Method)
	}
	if req.Body != nil {
		httpReq.ContentLength = int64(len(req.Body))
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, errors.Wrapf(err, "%s %s", req.Method, redactQuery(req.URL))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}

	headers := make(map[string]string, len(resp.Header))
	for k, v := range resp.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody, Headers: headers}, nil
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}
