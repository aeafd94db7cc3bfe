package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiharness/rest-contract-tests/apiclient"
)

var postSchema = SchemaDocument(`{
	"type": "object",
	"required": ["userId", "id", "title", "body"],
	"properties": {
		"userId": {"type": "integer"},
		"id": {"type": "integer"},
		"title": {"type": "string"},
		"body": {"type": "string"}
	}
}`)

func textResponse(status int, body string) apiclient.Response {
	return apiclient.Response{StatusCode: status, BodyText: body}
}

func decodeJSON(t *testing.T, text string) interface{} {
	t.Helper()
	v := New(nil)
	value, err := v.ParseJSON(textResponse(200, text))
	require.NoError(t, err)
	return value
}

func TestAssertStatus(t *testing.T) {
	v := New(nil)

	assert.NoError(t, v.AssertStatus(textResponse(200, ""), 200))

	err := v.AssertStatus(textResponse(404, `{"error":"not found"}`), 200)
	require.Error(t, err)
	assert.True(t, IsFailure(err, AssertionFailed))
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), `{"error":"not found"}`)
}

func TestParseJSON(t *testing.T) {
	v := New(nil)

	t.Run("object keeps numbers as json.Number", func(t *testing.T) {
		value, err := v.ParseJSON(textResponse(200, `{"id":1}`))
		require.NoError(t, err)
		obj, ok := value.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, json.Number("1"), obj["id"])
	})

	t.Run("array", func(t *testing.T) {
		value, err := v.ParseJSON(textResponse(200, `[1,2]`))
		require.NoError(t, err)
		assert.IsType(t, []interface{}{}, value)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := v.ParseJSON(textResponse(200, `<html>oops</html>`))
		require.Error(t, err)
		assert.True(t, IsFailure(err, MalformedBody))
		assert.Contains(t, err.Error(), "<html>oops</html>")
	})

	t.Run("trailing garbage is malformed", func(t *testing.T) {
		_, err := v.ParseJSON(textResponse(200, `{"id":1} extra`))
		require.Error(t, err)
		assert.True(t, IsFailure(err, MalformedBody))
	})
}

func TestValidateSchema(t *testing.T) {
	v := New(nil)

	t.Run("conforming post accepted", func(t *testing.T) {
		post := decodeJSON(t, `{"userId":1,"id":1,"title":"t","body":"b"}`)
		assert.NoError(t, v.ValidateSchema(post, postSchema))
	})

	t.Run("missing required field rejected", func(t *testing.T) {
		post := decodeJSON(t, `{"userId":1,"title":"t","body":"b"}`)
		err := v.ValidateSchema(post, postSchema)
		require.Error(t, err)
		assert.True(t, IsFailure(err, SchemaViolation))
		assert.Contains(t, err.Error(), "id")
	})

	t.Run("wrong field type rejected", func(t *testing.T) {
		post := decodeJSON(t, `{"userId":1,"id":"1","title":"t","body":"b"}`)
		err := v.ValidateSchema(post, postSchema)
		require.Error(t, err)
		assert.True(t, IsFailure(err, SchemaViolation))
	})

	t.Run("unloadable schema is not a check failure", func(t *testing.T) {
		err := v.ValidateSchema(map[string]interface{}{}, SchemaDocument(`{not json`))
		require.Error(t, err)
		assert.False(t, IsFailure(err, SchemaViolation))
	})
}

func TestAssertFieldExists(t *testing.T) {
	v := New(nil)
	obj := map[string]interface{}{"id": json.Number("1")}

	assert.NoError(t, v.AssertFieldExists(obj, "id"))

	err := v.AssertFieldExists(obj, "missing")
	require.Error(t, err)
	assert.True(t, IsFailure(err, FieldMissing))
	assert.Contains(t, err.Error(), "missing")
}

func TestAssertFieldEquals(t *testing.T) {
	v := New(nil)
	obj := map[string]interface{}{
		"id":    json.Number("1"),
		"title": "Test Post",
	}

	t.Run("number compares across decode forms", func(t *testing.T) {
		assert.NoError(t, v.AssertFieldEquals(obj, "id", 1))
		assert.NoError(t, v.AssertFieldEquals(obj, "id", json.Number("1")))
	})

	t.Run("string equality", func(t *testing.T) {
		assert.NoError(t, v.AssertFieldEquals(obj, "title", "Test Post"))
	})

	t.Run("mismatch", func(t *testing.T) {
		err := v.AssertFieldEquals(obj, "id", 2)
		require.Error(t, err)
		assert.True(t, IsFailure(err, FieldMismatch))
	})

	t.Run("number does not equal its string form", func(t *testing.T) {
		err := v.AssertFieldEquals(obj, "id", "1")
		require.Error(t, err)
		assert.True(t, IsFailure(err, FieldMismatch))
	})

	t.Run("missing field", func(t *testing.T) {
		err := v.AssertFieldEquals(obj, "missing", 1)
		require.Error(t, err)
		assert.True(t, IsFailure(err, FieldMissing))
	})
}

func TestAssertFieldType(t *testing.T) {
	v := New(nil)
	obj := map[string]interface{}{
		"id":    json.Number("1"),
		"score": json.Number("1.5"),
		"title": "1",
	}

	assert.NoError(t, v.AssertFieldType(obj, "id", KindInteger))
	assert.NoError(t, v.AssertFieldType(obj, "score", KindFloat))
	assert.NoError(t, v.AssertFieldType(obj, "title", KindString))

	t.Run("numerically equal string is not an integer", func(t *testing.T) {
		err := v.AssertFieldType(obj, "title", KindInteger)
		require.Error(t, err)
		assert.True(t, IsFailure(err, TypeMismatch))
		assert.Contains(t, err.Error(), "integer")
		assert.Contains(t, err.Error(), "string")
	})

	t.Run("missing field", func(t *testing.T) {
		err := v.AssertFieldType(obj, "missing", KindInteger)
		require.Error(t, err)
		assert.True(t, IsFailure(err, FieldMissing))
	})
}

func TestAssertNonEmptyArray(t *testing.T) {
	v := New(nil)

	assert.NoError(t, v.AssertNonEmptyArray([]interface{}{1}))

	t.Run("not a list", func(t *testing.T) {
		err := v.AssertNonEmptyArray(map[string]interface{}{})
		require.Error(t, err)
		assert.True(t, IsFailure(err, NotAList))
	})

	t.Run("empty list", func(t *testing.T) {
		err := v.AssertNonEmptyArray([]interface{}{})
		require.Error(t, err)
		assert.True(t, IsFailure(err, EmptyList))
	})
}

func TestAssertArrayLength(t *testing.T) {
	v := New(nil)

	assert.NoError(t, v.AssertArrayLength([]interface{}{1, 2}, 2))
	assert.NoError(t, v.AssertArrayLength([]interface{}{}, 0))

	t.Run("length mismatch", func(t *testing.T) {
		err := v.AssertArrayLength([]interface{}{1, 2}, 3)
		require.Error(t, err)
		assert.True(t, IsFailure(err, LengthMismatch))
	})

	t.Run("not a list", func(t *testing.T) {
		err := v.AssertArrayLength("nope", 1)
		require.Error(t, err)
		assert.True(t, IsFailure(err, NotAList))
	})
}
