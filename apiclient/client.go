package apiclient

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/apiharness/rest-contract-tests/framework"
)

const (
	DefaultTimeout       = 10 * time.Second
	DefaultMaxRetries    = 3
	DefaultBackoffFactor = 0.3
)

const readyPollInterval = 100 * time.Millisecond

// Config holds the construction parameters for a Client. BaseURL is
// required; zero values for the rest mean the defaults.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Retry overrides the default retry policy when non-nil.
	Retry *RetryPolicy
}

// Client makes HTTP requests against a fixed base URL with a bounded
// per-attempt timeout and automatic retry on transient failure. A Client
// owns a private connection pool for its lifetime and must be closed to
// release it. Instances are intended for use by one caller at a time; run
// concurrent tests with one Client each.
type Client struct {
	baseURL string
	policy  RetryPolicy
	logger  framework.Logger
	rest    *resty.Client

	// sleep is the delay function used between retries, replaceable in
	// tests so backoff timing can be observed without waiting.
	sleep func(time.Duration)
}

// New creates a Client. It normalizes the base URL by stripping any
// trailing slash, and performs no network I/O.
func New(cfg Config, logger framework.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if logger == nil {
		logger = framework.NullLogger()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	policy := DefaultRetryPolicy()
	if cfg.Retry != nil {
		policy = *cfg.Retry
	}

	rest := resty.New()
	rest.SetTimeout(timeout)

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		policy:  policy,
		logger:  logger,
		rest:    rest,
		sleep:   time.Sleep,
	}
	c.logger.Infof("API client initialized with base URL: %s", c.baseURL)
	return c, nil
}

// Get performs a GET request against the endpoint with optional query
// parameters and headers.
func (c *Client) Get(endpoint string, params map[string]string, headers map[string]string) (Response, error) {
	return c.do(http.MethodGet, endpoint, params, nil, headers)
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(endpoint string, body interface{}, headers map[string]string) (Response, error) {
	return c.do(http.MethodPost, endpoint, nil, body, headers)
}

// Put performs a PUT request with an optional JSON body.
func (c *Client) Put(endpoint string, body interface{}, headers map[string]string) (Response, error) {
	return c.do(http.MethodPut, endpoint, nil, body, headers)
}

// Delete performs a DELETE request against the endpoint.
func (c *Client) Delete(endpoint string, headers map[string]string) (Response, error) {
	return c.do(http.MethodDelete, endpoint, nil, nil, headers)
}

// buildURL joins the endpoint onto the base URL with exactly one separating
// slash, whatever combination of slashes the caller used.
func (c *Client) buildURL(endpoint string) string {
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

func (c *Client) do(method, endpoint string, params map[string]string, body interface{}, headers map[string]string) (Response, error) {
	url := c.buildURL(endpoint)

	// Request bodies are never logged; they may carry sensitive data.
	if method == http.MethodGet {
		c.logger.Debugf("Request: %s %s | Params: %v", method, url, params)
	} else {
		c.logger.Debugf("Request: %s %s", method, url)
	}

	var lastResp *Response
	var lastErr error
	attempts := c.policy.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.policy.BackoffFor(attempt)
			c.logger.Debugf("Retry %d of %d for %s %s after %v", attempt, c.policy.MaxRetries, method, url, delay)
			c.sleep(delay)
		}

		req := c.rest.R()
		if len(params) > 0 {
			req.SetQueryParams(params)
		}
		if len(headers) > 0 {
			req.SetHeaders(headers)
		}
		if body != nil {
			req.SetHeader("Content-Type", "application/json")
			req.SetBody(body)
		}

		restResp, err := req.Execute(method, url)
		if err != nil {
			lastErr = err
			c.logger.Warnf("Connection failure on %s %s: %s", method, url, err)
			continue
		}

		resp := newResponse(restResp)
		lastResp = &resp
		if !c.policy.ShouldRetryStatus(method, resp.StatusCode) {
			c.logResponse(resp)
			return resp, nil
		}
		c.logger.Warnf("Retryable status %d from %s %s", resp.StatusCode, method, url)
	}

	// Retries are exhausted. If any attempt produced a response, the last
	// one is returned for the caller to assert against; only a run with no
	// response at all is a transport error.
	if lastResp != nil {
		c.logResponse(*lastResp)
		return *lastResp, nil
	}
	return Response{}, &TransportError{Method: method, URL: url, Attempts: attempts, Err: lastErr}
}

func (c *Client) logResponse(resp Response) {
	c.logger.Debugf("Response: %d | URL: %s | Time: %.2fs",
		resp.StatusCode, resp.FinalURL, resp.Elapsed.Seconds())
}

// WaitReady polls the base URL until the service answers with any HTTP
// response, writing progress dots to output. It gives up after the timeout,
// returning the last connection error.
func (c *Client) WaitReady(timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to test service at %s", c.baseURL)
	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := c.rest.R().Execute(http.MethodGet, c.baseURL+"/")
		if err == nil {
			fmt.Fprintln(output)
			c.logger.Infof("Test service answered with status %d", resp.StatusCode())
			return nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		c.sleep(readyPollInterval)
	}
}

// Close releases the pooled connections. Requests made after Close are not
// guarded; the underlying transport will reject them.
func (c *Client) Close() {
	c.rest.GetClient().CloseIdleConnections()
	c.logger.Infof("API client closed")
}
