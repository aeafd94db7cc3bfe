package apitests

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiharness/rest-contract-tests/validation"
)

// schemaSampleSize is how many elements of a posts listing are checked
// against the schema. Checking all 100 adds nothing but runtime.
const schemaSampleSize = 5

const minExpectedPosts = 100

func DoPostsTests(t *T) {
	t.Run("get all posts", func(t *T) {
		resp := t.Get("/posts", nil)
		t.RequireStatus(resp, 200)

		posts := t.RequireJSONArray(resp)
		require.NoError(t, t.checks.AssertNonEmptyArray(posts))

		for i, post := range posts {
			if i >= schemaSampleSize {
				break
			}
			assert.NoError(t, t.checks.ValidateSchema(post, PostSchema))
		}
		t.Debug("retrieved %d posts", len(posts))
	})

	t.Run("get single post", func(t *T) {
		resp := t.Get("/posts/1", nil)
		t.RequireStatus(resp, 200)

		post := t.RequireJSONObject(resp)
		assert.NoError(t, t.checks.AssertFieldEquals(post, "id", 1))
		assert.NoError(t, t.checks.ValidateSchema(post, PostSchema))
	})

	t.Run("filter by user", func(t *T) {
		for _, userID := range []int{1, 2} {
			t.Run(fmt.Sprintf("userId=%d", userID), func(t *T) {
				resp := t.Get("/posts", map[string]string{"userId": fmt.Sprintf("%d", userID)})
				t.RequireStatus(resp, 200)

				posts := t.RequireJSONArray(resp)
				require.NoError(t, t.checks.AssertNonEmptyArray(posts))

				for _, p := range posts {
					post, ok := p.(map[string]interface{})
					require.True(t, ok, "list element is not an object")
					assert.NoError(t, t.checks.AssertFieldEquals(post, "userId", userID))
					assert.NoError(t, t.checks.ValidateSchema(post, PostSchema))
				}
			})
		}
	})

	t.Run("response structure", func(t *T) {
		resp := t.Get("/posts", nil)
		t.RequireStatus(resp, 200)

		posts := t.RequireJSONArray(resp)
		require.NoError(t, t.checks.AssertNonEmptyArray(posts))
		assert.GreaterOrEqual(t, len(posts), minExpectedPosts,
			"expected at least %d posts", minExpectedPosts)

		first, ok := posts[0].(map[string]interface{})
		require.True(t, ok, "first list element is not an object")

		for _, field := range []string{"userId", "id", "title", "body"} {
			require.NoError(t, t.checks.AssertFieldExists(first, field))
		}
		assert.NoError(t, t.checks.AssertFieldType(first, "userId", validation.KindInteger))
		assert.NoError(t, t.checks.AssertFieldType(first, "id", validation.KindInteger))
		assert.NoError(t, t.checks.AssertFieldType(first, "title", validation.KindString))
		assert.NoError(t, t.checks.AssertFieldType(first, "body", validation.KindString))
	})
}
