package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-123"))
	w := httptest.NewRecorder()

	JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", []ErrorDetail{
		{Field: "rating", Message: "Rating must be at most 5"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "rating", resp.Error.Details[0].Field)
	assert.Equal(t, map[string]any{"request_id": "req-123"}, resp.Meta)
}

func TestJSONSuccess(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	w := httptest.NewRecorder()

	JSONSuccess(w, r, map[string]string{"message": "ok"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "ok", resp["data"].(map[string]any)["message"])
	// no request id in context, no meta
	assert.NotContains(t, resp, "meta")
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates an id when absent", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFrom(r)
		})

		r := httptest.NewRequest(http.MethodGet, "/books", nil)
		w := httptest.NewRecorder()
		RequestIDMiddleware(next).ServeHTTP(w, r)

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
	})

	t.Run("propagates the caller's id", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFrom(r)
		})

		r := httptest.NewRequest(http.MethodGet, "/books", nil)
		r.Header.Set("X-Request-Id", "caller-id")
		w := httptest.NewRecorder()
		RequestIDMiddleware(next).ServeHTTP(w, r)

		assert.Equal(t, "caller-id", seen)
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	w := httptest.NewRecorder()
	RecoveryMiddleware(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
