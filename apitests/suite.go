package apitests

import (
	"time"

	"github.com/apiharness/rest-contract-tests/apiclient"
	"github.com/apiharness/rest-contract-tests/framework"
)

// SuiteConfig carries the externally supplied parameters for a suite run.
type SuiteConfig struct {
	BaseURL string
	Timeout time.Duration

	// Retry overrides the client's default retry policy when non-nil.
	Retry *apiclient.RetryPolicy
}

// RunTestSuite runs all posts API contract tests and returns the results.
// Each subtest gets its own API client, closed when the subtest ends.
func RunTestSuite(
	cfg SuiteConfig,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, cfg)

		t.Run("posts", DoPostsTests)
		t.Run("post mutations", DoPostMutationTests)
		t.Run("error handling", DoErrorHandlingTests)
	})
}
