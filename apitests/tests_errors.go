package apitests

func DoErrorHandlingTests(t *T) {
	t.Run("invalid endpoint", func(t *T) {
		// A 404 is a normal response, not a transport error; the client
		// must hand it back for the test to assert on.
		resp := t.Get("/postz", nil)
		t.RequireStatus(resp, 404)
	})

	t.Run("missing post id", func(t *T) {
		resp := t.Get("/posts/99999", nil)
		t.RequireStatus(resp, 404)
	})
}
