package apiclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response is the outcome of one completed request, including any retries.
// It is a plain value owned by the caller; the client keeps no reference to
// it after returning.
type Response struct {
	StatusCode int
	Headers    http.Header
	BodyText   string
	Elapsed    time.Duration
	FinalURL   string
}

func newResponse(resp *resty.Response) Response {
	finalURL := resp.Request.URL
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		finalURL = raw.Request.URL.String()
	}
	return Response{
		StatusCode: resp.StatusCode(),
		Headers:    resp.Header(),
		BodyText:   string(resp.Body()),
		Elapsed:    resp.Time(),
		FinalURL:   finalURL,
	}
}

// TransportError is returned when every attempt failed at the connection
// level and no HTTP response was ever received. A response with an error
// status is not a TransportError; it is returned as an ordinary Response for
// the caller to assert against.
type TransportError struct {
	Method   string
	URL      string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: no response after %d attempts: %s", e.Method, e.URL, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
