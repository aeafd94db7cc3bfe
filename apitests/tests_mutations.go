package apitests

import (
	"github.com/stretchr/testify/assert"
)

func DoPostMutationTests(t *T) {
	t.Run("create post", func(t *T) {
		payload := map[string]interface{}{
			"title":  "Test Post",
			"body":   "This is a test post body",
			"userId": 1,
		}

		resp := t.Post("/posts", payload)
		t.RequireStatus(resp, 201)

		created := t.RequireJSONObject(resp)
		assert.NoError(t, t.checks.AssertFieldExists(created, "id"))
		assert.NoError(t, t.checks.AssertFieldEquals(created, "title", payload["title"]))
		assert.NoError(t, t.checks.AssertFieldEquals(created, "body", payload["body"]))
		assert.NoError(t, t.checks.AssertFieldEquals(created, "userId", payload["userId"]))
	})

	t.Run("update post", func(t *T) {
		payload := map[string]interface{}{
			"id":     1,
			"title":  "Updated Title",
			"body":   "Updated body content",
			"userId": 1,
		}

		resp := t.Put("/posts/1", payload)
		t.RequireStatus(resp, 200)

		updated := t.RequireJSONObject(resp)
		for _, field := range []string{"id", "title", "body", "userId"} {
			assert.NoError(t, t.checks.AssertFieldEquals(updated, field, payload[field]))
		}
	})

	t.Run("delete post", func(t *T) {
		resp := t.Delete("/posts/1")

		// JSONPlaceholder answers 200; other implementations may use 204.
		if resp.StatusCode != 200 && resp.StatusCode != 204 {
			t.Errorf("expected status 200 or 204, but got %d", resp.StatusCode)
		}
	})
}
