package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// BooksJSON is a small upstream listing. Book 3 is the most recent one and
// shares its date with book 4, which comes later in the list.
const BooksJSON = `[
	{"id": 1, "title": "The Pragmatic Programmer", "author": "Hunt & Thomas", "published": "1999-10-20T00:00:00"},
	{"id": 3, "title": "Designing Data-Intensive Applications", "author": "Martin Kleppmann", "published": "2017-03-16T00:00:00", "pages": 616},
	{"id": 2, "title": "The Go Programming Language", "author": "Donovan & Kernighan", "published": "2015-10-26T00:00:00"},
	{"id": 4, "title": "Site Reliability Engineering", "author": "Beyer et al.", "published": "2017-03-16T00:00:00"}
]`

// BookJSON is a single upstream book.
const BookJSON = `{"id": 2, "title": "The Go Programming Language", "author": "Donovan & Kernighan", "description": "The Go book.", "image": "https://example.com/gopl.jpg", "published": "2015-10-26T00:00:00", "isbn": "978-0134190440"}`

// Upstream is a fake books API that records the paths it was asked for.
type Upstream struct {
	*httptest.Server

	mu    sync.Mutex
	paths []string
}

// NewUpstream starts a fake books API served by h and closes it when the
// test ends.
func NewUpstream(t *testing.T, h http.HandlerFunc) *Upstream {
	t.Helper()
	u := &Upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.paths = append(u.paths, r.URL.Path)
		u.mu.Unlock()
		h(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

// Paths returns the request paths seen so far.
func (u *Upstream) Paths() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.paths...)
}

// Respond answers every request with status and body.
func Respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// UnreachableURL returns the URL of a server that has already been shut
// down, so connections to it are refused.
func UnreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}
