package apitests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiharness/rest-contract-tests/apiclient"
	"github.com/apiharness/rest-contract-tests/framework"
)

type fakePost struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// newFakePostsService imitates the JSONPlaceholder posts resource closely
// enough for the whole suite to pass against it: 100 posts over 10 users,
// echoing create/update, 404 for anything unknown.
func newFakePostsService() http.Handler {
	posts := make([]fakePost, 0, 100)
	for i := 1; i <= 100; i++ {
		posts = append(posts, fakePost{
			UserID: (i-1)/10 + 1,
			ID:     i,
			Title:  fmt.Sprintf("title %d", i),
			Body:   fmt.Sprintf("body %d", i),
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			out := posts
			if uid := r.URL.Query().Get("userId"); uid != "" {
				filtered := []fakePost{}
				for _, p := range posts {
					if strconv.Itoa(p.UserID) == uid {
						filtered = append(filtered, p)
					}
				}
				out = filtered
			}
			writeJSON(w, 200, out)
		case http.MethodPost:
			var body map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			body["id"] = 101
			writeJSON(w, 201, body)
		default:
			writeJSON(w, 404, map[string]interface{}{})
		}
	})
	mux.HandleFunc("/posts/", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/posts/"))
		if err != nil || id < 1 || id > len(posts) {
			writeJSON(w, 404, map[string]interface{}{})
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, 200, posts[id-1])
		case http.MethodPut:
			var body map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			writeJSON(w, 200, body)
		case http.MethodDelete:
			writeJSON(w, 200, map[string]interface{}{})
		default:
			writeJSON(w, 404, map[string]interface{}{})
		}
	})
	return mux
}

func TestSuitePassesAgainstConformingService(t *testing.T) {
	server := httptest.NewServer(newFakePostsService())
	defer server.Close()

	results := RunTestSuite(SuiteConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, nil, nil)

	for _, f := range results.Failures {
		t.Logf("failed: %s: %v", f.TestID, f.Errors)
	}
	require.True(t, results.OK())
	assert.Greater(t, len(results.Tests), 8)
}

func TestSuiteReportsFailuresAgainstBrokenService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 500, map[string]interface{}{"error": "broken"})
	}))
	defer server.Close()

	// Retries are disabled so the suite fails fast instead of backing off.
	results := RunTestSuite(SuiteConfig{
		BaseURL: server.URL,
		Timeout: time.Second,
		Retry:   &apiclient.RetryPolicy{},
	}, nil, nil)

	assert.False(t, results.OK())
	assert.NotEmpty(t, results.Failures)
}

func TestSuiteHonorsFilter(t *testing.T) {
	server := httptest.NewServer(newFakePostsService())
	defer server.Close()

	var filters framework.RegexFilters
	require.NoError(t, filters.MustNotMatch.Set(".*"))

	results := RunTestSuite(SuiteConfig{
		BaseURL: server.URL,
		Timeout: time.Second,
	}, filters.AsFilter, nil)

	// Only the root scope ran; every group was skipped.
	assert.True(t, results.OK())
	assert.Len(t, results.Tests, 1)
}
