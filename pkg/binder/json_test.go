package binder_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqguard/pkg/binder"
)

func newRequest(body, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/v1/validate/user", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestRecord(t *testing.T) {
	t.Parallel()

	t.Run("decodes an object", func(t *testing.T) {
		r := newRequest(`{"name": "John", "age": 42, "price": 9.99, "addr": {"zip": "12345"}, "tags": ["a"]}`, "application/json")

		record, err := binder.Record(r)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"name":  "John",
			"age":   json.Number("42"),
			"price": json.Number("9.99"),
			"addr":  map[string]any{"zip": "12345"},
			"tags":  []any{"a"},
		}, record)
	})

	t.Run("media type parameters and suffixes", func(t *testing.T) {
		for _, ct := range []string{"application/json; charset=utf-8", "application/merge-patch+json", "Application/JSON"} {
			_, err := binder.Record(newRequest(`{}`, ct))
			assert.NoError(t, err, ct)
		}
	})

	tests := []struct {
		name        string
		body        string
		contentType string
		err         error
		status      int
	}{
		{"missing content type", `{}`, "", binder.ErrMissingContentType, http.StatusUnsupportedMediaType},
		{"wrong media type", `{}`, "text/plain", binder.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{"malformed content type", `{}`, "application/json; =", binder.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{"empty body", "  ", "application/json", binder.ErrEmptyBody, http.StatusBadRequest},
		{"invalid json", `{"name":`, "application/json", binder.ErrFailedToParseJSON, http.StatusBadRequest},
		{"trailing data", `{} {}`, "application/json", binder.ErrFailedToParseJSON, http.StatusBadRequest},
		{"array body", `[1, 2]`, "application/json", binder.ErrNotAnObject, http.StatusBadRequest},
		{"null body", `null`, "application/json", binder.ErrNotAnObject, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := binder.Record(newRequest(tt.body, tt.contentType))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.status, binder.StatusCode(err))
		})
	}

	t.Run("size limit", func(t *testing.T) {
		body := `{"name": "` + strings.Repeat("x", 64) + `"}`

		_, err := binder.Record(newRequest(body, "application/json"), binder.WithMaxSize(32))
		assert.ErrorIs(t, err, binder.ErrBodyTooLarge)
		assert.Equal(t, http.StatusRequestEntityTooLarge, binder.StatusCode(err))

		_, err = binder.Record(newRequest(body, "application/json"), binder.WithMaxSize(int64(len(body))))
		assert.NoError(t, err)
	})

	t.Run("cancelled request", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := newRequest(`{}`, "application/json").WithContext(ctx)
		_, err := binder.Record(r)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	record, err := binder.Decode([]byte(`{"phone": 1234567890}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("1234567890"), record["phone"])

	_, err = binder.Decode(nil)
	assert.ErrorIs(t, err, binder.ErrEmptyBody)
}

func TestStatusCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, http.StatusOK, binder.StatusCode(nil))
	assert.Equal(t, http.StatusBadRequest, binder.StatusCode(assert.AnError))
}
