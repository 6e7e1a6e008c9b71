package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"bookshelf/internal/telemetry"
	"bookshelf/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordInfo(ctx context.Context, msg string, fields ...zap.Field) {
	m.Called(ctx, msg)
}

func (m *mockRecorder) RecordError(ctx context.Context, msg string, err error, fields ...zap.Field) {
	m.Called(ctx, msg, err)
}

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{BaseURL: baseURL}, telemetry.Nop(), zap.NewNop())
}

func TestClient_LatestBook(t *testing.T) {
	ctx := context.Background()

	t.Run("picks the greatest published date", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusOK,
			`[{"id":1,"published":"2020-01-01"},{"id":2,"published":"2023-05-05"}]`))

		book, err := newTestClient(up.URL).LatestBook(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, book.ID)
		assert.Equal(t, []string{"/books"}, up.Paths())
	})

	t.Run("first of equal maxima wins", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusOK, testutil.BooksJSON))

		book, err := newTestClient(up.URL).LatestBook(ctx)

		require.NoError(t, err)
		assert.Equal(t, 3, book.ID)
		assert.Equal(t, "Designing Data-Intensive Applications", book.Title)
		assert.Equal(t, float64(616), book.Extra["pages"])
	})

	t.Run("upstream 404 is not found", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusNotFound, ""))

		_, err := newTestClient(up.URL).LatestBook(ctx)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, OutcomeNotFound, OutcomeOf(err))
	})

	t.Run("upstream 500 is an upstream error", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusInternalServerError, "boom"))

		_, err := newTestClient(up.URL).LatestBook(ctx)

		var upErr *UpstreamError
		require.ErrorAs(t, err, &upErr)
		assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
		assert.Equal(t, OutcomeUpstreamError, OutcomeOf(err))
	})

	t.Run("network failure is an upstream error", func(t *testing.T) {
		_, err := newTestClient(testutil.UnreachableURL(t)).LatestBook(ctx)

		var upErr *UpstreamError
		require.ErrorAs(t, err, &upErr)
		assert.Zero(t, upErr.StatusCode)
		assert.Equal(t, OutcomeUpstreamError, OutcomeOf(err))
	})

	t.Run("non-200 success status is not found", func(t *testing.T) {
		up := testutil.NewUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		_, err := newTestClient(up.URL).LatestBook(ctx)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty listing is an upstream error", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusOK, `[]`))

		_, err := newTestClient(up.URL).LatestBook(ctx)

		var upErr *UpstreamError
		require.ErrorAs(t, err, &upErr)
		assert.Equal(t, http.StatusOK, upErr.StatusCode)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Equal(t, OutcomeUpstreamError, OutcomeOf(err))
	})

	for _, tt := range []struct {
		name string
		body string
	}{
		{"numeric years", `[{"id":1,"published":2020},{"id":2,"published":2023}]`},
		{"partial dates", `[{"id":1,"published":"2020"},{"id":2,"published":"2023-05"}]`},
		{"space separated timestamps", `[{"id":1,"published":"2020-01-01 10:00:00"},{"id":2,"published":"2020-01-01 11:00:00"}]`},
	} {
		t.Run("orders "+tt.name, func(t *testing.T) {
			up := testutil.NewUpstream(t, testutil.Respond(http.StatusOK, tt.body))

			got, err := newTestClient(up.URL).LatestBook(ctx)

			require.NoError(t, err)
			assert.Equal(t, 2, got.ID)
		})
	}

	t.Run("missing published date fails", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusOK,
			`[{"id":1,"published":"2020-01-01"},{"id":2,"title":"undated"}]`))

		_, err := newTestClient(up.URL).LatestBook(ctx)

		assert.ErrorIs(t, err, ErrMissingPublished)
		assert.Equal(t, OutcomeUpstreamError, OutcomeOf(err))
	})

	t.Run("malformed payload fails", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusOK, `{"not":"a list"}`))

		_, err := newTestClient(up.URL).LatestBook(ctx)

		assert.Equal(t, OutcomeUpstreamError, OutcomeOf(err))
	})

	t.Run("times out", func(t *testing.T) {
		release := make(chan struct{})
		up := testutil.NewUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
		defer close(release)

		c := NewClient(ClientConfig{BaseURL: up.URL, LatestTimeout: 50 * time.Millisecond}, nil, nil)
		_, err := c.LatestBook(ctx)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, OutcomeUpstreamError, OutcomeOf(err))
	})
}

func TestClient_LatestBook_RecordsTelemetry(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusOK, testutil.BooksJSON))
		rec := new(mockRecorder)
		rec.On("RecordInfo", ctx, "fetching books to find the latest one").Once()
		rec.On("RecordInfo", mock.Anything, "latest book selected").Once()

		c := NewClient(ClientConfig{BaseURL: up.URL}, rec, nil)
		_, err := c.LatestBook(ctx)

		require.NoError(t, err)
		rec.AssertExpectations(t)
	})

	t.Run("failure", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusBadGateway, ""))
		rec := new(mockRecorder)
		rec.On("RecordInfo", ctx, "fetching books to find the latest one").Once()
		rec.On("RecordError", mock.Anything, "latest book: error fetching from books API",
			mock.MatchedBy(func(err error) bool {
				var upErr *UpstreamError
				return errors.As(err, &upErr) && upErr.StatusCode == http.StatusBadGateway
			})).Once()

		c := NewClient(ClientConfig{BaseURL: up.URL}, rec, nil)
		_, err := c.LatestBook(ctx)

		require.Error(t, err)
		rec.AssertExpectations(t)
	})
}

func TestClient_BookDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusOK, testutil.BookJSON))

		book, err := newTestClient(up.URL + "/").BookDetails(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, []string{"/books/2"}, up.Paths())
		assert.Equal(t, 2, book.ID)
		assert.Equal(t, "The Go book.", book.Description)
		assert.Equal(t, "978-0134190440", book.Extra["isbn"])
		require.NotNil(t, book.Published)
		assert.Equal(t, 2015, book.Published.Time().Year())
	})

	t.Run("upstream 404 is not found", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusNotFound, ""))

		_, err := newTestClient(up.URL).BookDetails(ctx, 42)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("any other status is not found", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusServiceUnavailable, ""))

		_, err := newTestClient(up.URL).BookDetails(ctx, 42)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("malformed payload is an upstream error", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusOK, `{"id":"two"}`))

		_, err := newTestClient(up.URL).BookDetails(ctx, 2)

		var upErr *UpstreamError
		assert.ErrorAs(t, err, &upErr)
	})

	t.Run("network failure is an upstream error", func(t *testing.T) {
		_, err := newTestClient(testutil.UnreachableURL(t)).BookDetails(ctx, 2)

		assert.Equal(t, OutcomeUpstreamError, OutcomeOf(err))
	})
}

func TestClient_ListBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps upstream order", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusOK, testutil.BooksJSON))

		books, err := newTestClient(up.URL).ListBooks(ctx)

		require.NoError(t, err)
		ids := make([]int, len(books))
		for i, b := range books {
			ids[i] = b.ID
		}
		assert.Equal(t, []int{1, 3, 2, 4}, ids)
	})

	t.Run("upstream 500 degrades to an empty list", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusInternalServerError, ""))

		books, err := newTestClient(up.URL).ListBooks(ctx)

		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("null body is an empty list", func(t *testing.T) {
		up := testutil.NewUpstream(t, testutil.Respond(http.StatusOK, `null`))

		books, err := newTestClient(up.URL).ListBooks(ctx)

		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("network failure is an upstream error", func(t *testing.T) {
		_, err := newTestClient(testutil.UnreachableURL(t)).ListBooks(ctx)

		assert.Equal(t, OutcomeUpstreamError, OutcomeOf(err))
	})
}

func TestSelectLatest(t *testing.T) {
	date := func(s string) *Date {
		d := ParseDate(s)
		return &d
	}
	number := func(t *testing.T, s string) *Date {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(s), &d))
		require.True(t, d.Numeric())
		return &d
	}

	tests := []struct {
		name    string
		books   []Book
		wantID  int
		wantErr error
	}{
		{
			name:    "empty",
			wantErr: errNoBooks,
		},
		{
			name:   "single",
			books:  []Book{{ID: 7, Published: date("2001-01-01")}},
			wantID: 7,
		},
		{
			name: "mixed layouts",
			books: []Book{
				{ID: 1, Published: date("2020-06-01T12:00:00Z")},
				{ID: 2, Published: date("2020-06-01")},
				{ID: 3, Published: date("2020-06-01T12:00:01")},
			},
			wantID: 3,
		},
		{
			name: "stable on ties",
			books: []Book{
				{ID: 1, Published: date("2010-01-01")},
				{ID: 2, Published: date("2020-01-01")},
				{ID: 3, Published: date("2020-01-01")},
			},
			wantID: 2,
		},
		{
			name: "numbers compare numerically",
			books: []Book{
				{ID: 1, Published: number(t, "999")},
				{ID: 2, Published: number(t, "2023")},
				{ID: 3, Published: number(t, "2020")},
			},
			wantID: 2,
		},
		{
			name: "unparsed text compares as text",
			books: []Book{
				{ID: 1, Published: date("2020")},
				{ID: 2, Published: date("2023-05")},
				{ID: 3, Published: date("2021-12")},
			},
			wantID: 2,
		},
		{
			name: "one unparsed value switches to text",
			books: []Book{
				{ID: 1, Published: date("2010-01-01")},
				{ID: 2, Published: date("someday")},
			},
			wantID: 2,
		},
		{
			name: "text ties keep the first",
			books: []Book{
				{ID: 1, Published: date("spring 2020")},
				{ID: 2, Published: date("spring 2020")},
			},
			wantID: 1,
		},
		{
			name: "missing date",
			books: []Book{
				{ID: 1, Published: date("2010-01-01")},
				{ID: 2},
			},
			wantErr: ErrMissingPublished,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectLatest(tt.books)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}
