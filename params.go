package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/apiharness/rest-contract-tests/config"
	"github.com/apiharness/rest-contract-tests/framework"
)

type commandParams struct {
	baseURL        string
	timeoutSeconds int
	maxRetries     int
	backoffFactor  float64
	logLevel       string
	filters        framework.RegexFilters
	debug          bool
	debugAll       bool
}

// Read parses the command line, taking defaults from the loaded
// configuration so that flags override the environment.
func (c *commandParams) Read(args []string, cfg *config.Config) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.baseURL, "url", cfg.BaseURL, "base URL of the API under test")
	fs.IntVar(&c.timeoutSeconds, "timeout", int(cfg.TimeoutSeconds), "per-attempt request timeout in seconds")
	fs.IntVar(&c.maxRetries, "retries", cfg.MaxRetries, "maximum number of retries per request")
	fs.Float64Var(&c.backoffFactor, "backoff", cfg.BackoffFactor, "exponential backoff factor in seconds")
	fs.StringVar(&c.logLevel, "log-level", cfg.LogLevel, "harness log level (debug, info, warn, error)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.baseURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		fs.Usage()
		return false
	}
	if c.timeoutSeconds <= 0 {
		fmt.Fprintln(os.Stderr, "-timeout must be positive")
		return false
	}
	if c.maxRetries < 0 || c.backoffFactor < 0 {
		fmt.Fprintln(os.Stderr, "-retries and -backoff must be non-negative")
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a command line that reruns exactly the failed tests.
// Each pattern matches the failed test and every group above it, since the
// run filter is applied at every level of the test tree.
func rerunCommand(params commandParams, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(os.Args[0], "-url", params.baseURL)
	for _, f := range failures {
		b.add("-run", runPatternFor(f.TestID))
	}
	return b.String()
}

func runPatternFor(id framework.TestID) string {
	var alternatives []string
	for i := 1; i <= len(id.Path); i++ {
		alternatives = append(alternatives,
			"^"+regexp.QuoteMeta(strings.Join(id.Path[:i], "/"))+"$")
	}
	return strings.Join(alternatives, "|")
}
