package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookshelf/internal/book"
	"bookshelf/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, ready func(context.Context) error) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	repo := book.NewMemoryRepo()
	_, err := book.Seed(ctx, repo, zap.NewNop())
	require.NoError(t, err)

	cfg := &config.API{Addr: ":0", LogLevel: "info"}
	return newRouter(ctx, cfg, book.NewService(repo), ready, zap.NewNop())
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRouting(t *testing.T) {
	h := newTestRouter(t, func(context.Context) error { return nil })

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"list", http.MethodGet, "/books", "", http.StatusOK},
		{"get", http.MethodGet, "/books/1", "", http.StatusOK},
		{"get missing", http.MethodGet, "/books/999", "", http.StatusNotFound},
		{"add", http.MethodPost, "/book/add", `{"title":"New","published":"2024-01-01"}`, http.StatusCreated},
		{"update", http.MethodPut, "/books/update/2", `{"title":"Renamed"}`, http.StatusNoContent},
		{"delete", http.MethodDelete, "/books/delete/3", "", http.StatusNoContent},
		{"delete again", http.MethodDelete, "/books/delete/3", "", http.StatusNotFound},
		{"healthz", http.MethodGet, "/healthz", "", http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"unknown", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRouting_CreatedLocation(t *testing.T) {
	h := newTestRouter(t, func(context.Context) error { return nil })

	w := do(h, http.MethodPost, "/book/add", `{"title":"New","published":"2024-01-01"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/books/6", w.Header().Get("Location"))
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/books/6", "").Code)
}

func TestRouting_NotReady(t *testing.T) {
	h := newTestRouter(t, func(context.Context) error { return errors.New("down") })

	w := do(h, http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouting_BodyTooLarge(t *testing.T) {
	h := newTestRouter(t, func(context.Context) error { return nil })

	w := do(h, http.MethodPost, "/book/add", `{"title":"`+strings.Repeat("x", maxBodyBytes)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
