package apitests

import (
	_ "embed"

	"github.com/stretchr/testify/require"

	"github.com/apiharness/rest-contract-tests/apiclient"
	"github.com/apiharness/rest-contract-tests/framework"
	"github.com/apiharness/rest-contract-tests/validation"
)

//go:embed schemas/post_schema.json
var postSchemaJSON []byte

// PostSchema is the JSON Schema that post-shaped responses must conform to.
var PostSchema = validation.SchemaDocument(postSchemaJSON)

// T represents a test or subtest in the posts API suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, with per-test debug
// logging provided by the lower-level framework package. Every T instance
// owns an API client pointed at the service under test, and a validator for
// making assertions about responses.
//
// The assert and require packages accept a *T anywhere they take a
// *testing.T. Several interaction methods also carry built-in assertions,
// failing the test immediately on unexpected transport errors to cut down
// boilerplate in the tests themselves.
type T struct {
	context *framework.Context
	cfg     SuiteConfig
	client  *apiclient.Client
	checks  *validation.Validator
}

func newTestScope(context *framework.Context, cfg SuiteConfig) *T {
	t := &T{
		context: context,
		cfg:     cfg,
		checks:  validation.New(context.DebugLogger()),
	}
	client, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Retry:   cfg.Retry,
	}, context.DebugLogger())
	if err != nil {
		context.Errorf("could not create API client: %s", err)
		context.FailNow()
	}
	t.client = client
	return t
}

func (t *T) close() {
	if t.client != nil {
		t.client.Close()
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
//
// The specified function receives a new T instance with its own API client.
func (t *T) Run(name string, action func(*T)) {
	var t1 *T
	t.context.Run(name, func(c *framework.Context) {
		t1 = newTestScope(c, t.cfg)
		action(t1)
	})
	if t1 != nil {
		t1.close()
	}
}

// Debug logs some debug output for the test. The output will be passed to
// the test logger at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Get performs a GET request, failing the test immediately on a transport
// error.
func (t *T) Get(endpoint string, params map[string]string) apiclient.Response {
	resp, err := t.client.Get(endpoint, params, nil)
	require.NoError(t, err)
	return resp
}

// Post performs a POST request with a JSON body, failing the test
// immediately on a transport error.
func (t *T) Post(endpoint string, body interface{}) apiclient.Response {
	resp, err := t.client.Post(endpoint, body, nil)
	require.NoError(t, err)
	return resp
}

// Put performs a PUT request with a JSON body, failing the test immediately
// on a transport error.
func (t *T) Put(endpoint string, body interface{}) apiclient.Response {
	resp, err := t.client.Put(endpoint, body, nil)
	require.NoError(t, err)
	return resp
}

// Delete performs a DELETE request, failing the test immediately on a
// transport error.
func (t *T) Delete(endpoint string) apiclient.Response {
	resp, err := t.client.Delete(endpoint, nil)
	require.NoError(t, err)
	return resp
}

// RequireStatus fails the test immediately unless the response has the
// expected status code.
func (t *T) RequireStatus(resp apiclient.Response, expected int) {
	require.NoError(t, t.checks.AssertStatus(resp, expected))
}

// RequireJSONObject parses the response body and fails the test immediately
// unless it is a JSON object.
func (t *T) RequireJSONObject(resp apiclient.Response) map[string]interface{} {
	value, err := t.checks.ParseJSON(resp)
	require.NoError(t, err)
	obj, ok := value.(map[string]interface{})
	if !ok {
		t.Errorf("expected JSON object, but got %s", validation.KindOf(value))
		t.FailNow()
	}
	return obj
}

// RequireJSONArray parses the response body and fails the test immediately
// unless it is a JSON array.
func (t *T) RequireJSONArray(resp apiclient.Response) []interface{} {
	value, err := t.checks.ParseJSON(resp)
	require.NoError(t, err)
	arr, ok := value.([]interface{})
	if !ok {
		t.Errorf("expected JSON array, but got %s", validation.KindOf(value))
		t.FailNow()
	}
	return arr
}
