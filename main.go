package main

import (
	"fmt"
	"os"
	"time"

	"github.com/apiharness/rest-contract-tests/apiclient"
	"github.com/apiharness/rest-contract-tests/apitests"
	"github.com/apiharness/rest-contract-tests/config"
	"github.com/apiharness/rest-contract-tests/framework"
	"github.com/apiharness/rest-contract-tests/logging"
)

const statusQueryTimeout = time.Second * 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}

	var params commandParams
	if !params.Read(os.Args, cfg) {
		os.Exit(1)
	}

	logger, flush := logging.New(params.logLevel, os.Stderr)
	defer func() { _ = flush() }()

	retry := apiclient.DefaultRetryPolicy()
	retry.MaxRetries = params.maxRetries
	retry.BackoffFactor = params.backoffFactor

	timeout := time.Duration(params.timeoutSeconds) * time.Second

	probe, err := apiclient.New(apiclient.Config{
		BaseURL: params.baseURL,
		Timeout: timeout,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test service error: %s\n", err)
		os.Exit(1)
	}
	if err := probe.WaitReady(statusQueryTimeout, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Test service error: %s\n", err)
		os.Exit(1)
	}
	probe.Close()

	fmt.Println()
	framework.PrintFilterDescription(params.filters)

	fmt.Println("Running test suite")

	testLogger := framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := apitests.RunTestSuite(apitests.SuiteConfig{
		BaseURL: params.baseURL,
		Timeout: timeout,
		Retry:   &retry,
	}, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Printf("To rerun only the failed tests:\n  %s\n", rerunCommand(params, results.Failures))
		os.Exit(1)
	}
}
