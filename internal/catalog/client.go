// Package catalog is the web tier's view of the upstream books API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookshelf/internal/telemetry"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultLatestTimeout bounds the homepage fetch. The other operations are
// bounded only by the caller's context.
const DefaultLatestTimeout = 5 * time.Second

// ClientConfig locates the books API and bounds the homepage fetch.
type ClientConfig struct {
	BaseURL       string
	LatestTimeout time.Duration
	UserAgent     string
}

// Client issues one GET per operation against the books API. It never
// retries and never caches, and is safe for concurrent use.
type Client struct {
	http    *resty.Client
	baseURL string
	timeout time.Duration
	rec     telemetry.Recorder
}

func NewClient(cfg ClientConfig, rec telemetry.Recorder, log *zap.Logger) *Client {
	if rec == nil {
		rec = telemetry.Nop()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.LatestTimeout == 0 {
		cfg.LatestTimeout = DefaultLatestTimeout
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	rc := resty.New().
		SetBaseURL(baseURL).
		SetLogger(log.Named("resty").Sugar()).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Client{
		http:    rc,
		baseURL: baseURL,
		timeout: cfg.LatestTimeout,
		rec:     rec,
	}
}

// LatestBook returns the book with the greatest published date.
//
// An upstream 404 or any other non-200 success status yields ErrNotFound.
// Transport failures, other error statuses, an empty listing and unusable
// payloads yield an *UpstreamError.
func (c *Client) LatestBook(ctx context.Context) (Book, error) {
	const op = "latest book"
	c.rec.RecordInfo(ctx, "fetching books to find the latest one")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.get(ctx, op, "/books")
	if err != nil {
		return Book{}, c.fail(ctx, op, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusNotFound:
		return Book{}, c.fail(ctx, op, ErrNotFound)
	case code < 200 || code > 299:
		return Book{}, c.fail(ctx, op, c.statusError(op, "/books", code))
	case code != http.StatusOK:
		return Book{}, c.fail(ctx, op, ErrNotFound)
	}

	var books []Book
	if err := json.Unmarshal(resp.Body(), &books); err != nil {
		return Book{}, c.fail(ctx, op, c.payloadError(op, "/books", err))
	}

	latest, err := SelectLatest(books)
	if err != nil {
		return Book{}, c.fail(ctx, op, c.payloadError(op, "/books", err))
	}

	observe(op, OutcomeOK)
	c.rec.RecordInfo(ctx, "latest book selected",
		zap.Int("book_id", latest.ID),
		zap.String("title", latest.Title),
		zap.Int("candidates", len(books)),
	)
	return latest, nil
}

// BookDetails returns a single book. Any status other than 200 is reported
// as ErrNotFound.
func (c *Client) BookDetails(ctx context.Context, id int) (Book, error) {
	const op = "book details"
	c.rec.RecordInfo(ctx, "getting book details", zap.Int("book_id", id))

	path := "/books/" + strconv.Itoa(id)
	resp, err := c.get(ctx, op, path)
	if err != nil {
		return Book{}, c.fail(ctx, op, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Book{}, c.fail(ctx, op, fmt.Errorf("book %d: upstream status %d: %w", id, resp.StatusCode(), ErrNotFound))
	}

	var book Book
	if err := json.Unmarshal(resp.Body(), &book); err != nil {
		return Book{}, c.fail(ctx, op, c.payloadError(op, path, err))
	}

	observe(op, OutcomeOK)
	return book, nil
}

// ListBooks returns every book in upstream order.
//
// A non-200 answer is not an error: the listing silently degrades to an
// empty slice. Transport failures and unusable payloads are still reported.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	const op = "list books"

	resp, err := c.get(ctx, op, "/books")
	if err != nil {
		return nil, c.fail(ctx, op, err)
	}
	if resp.StatusCode() != http.StatusOK {
		observe(op, OutcomeNotFound)
		c.rec.RecordInfo(ctx, "books listing unavailable, showing an empty catalog",
			zap.Int("status", resp.StatusCode()))
		return []Book{}, nil
	}

	var books []Book
	if err := json.Unmarshal(resp.Body(), &books); err != nil {
		return nil, c.fail(ctx, op, c.payloadError(op, "/books", err))
	}
	if books == nil {
		books = []Book{}
	}

	observe(op, OutcomeOK)
	return books, nil
}

// SelectLatest returns the book with the greatest published value. Among
// equal values the first one wins. Every book must have a published value.
func SelectLatest(books []Book) (Book, error) {
	if len(books) == 0 {
		return Book{}, errNoBooks
	}
	for _, b := range books {
		if b.Published == nil {
			return Book{}, fmt.Errorf("book %d: %w", b.ID, ErrMissingPublished)
		}
	}

	later := publishedOrder(books)
	latest := 0
	for i := 1; i < len(books); i++ {
		if later(books[i].Published, books[latest].Published) {
			latest = i
		}
	}
	return books[latest], nil
}

// publishedOrder compares points in time when every value parses as one,
// numbers when every value is a JSON number, and the upstream text otherwise.
func publishedOrder(books []Book) func(a, b *Date) bool {
	allTimes, allNumbers := true, true
	for _, b := range books {
		allTimes = allTimes && b.Published.Valid()
		allNumbers = allNumbers && b.Published.Numeric()
	}

	switch {
	case allTimes:
		return func(a, b *Date) bool { return a.After(*b) }
	case allNumbers:
		return func(a, b *Date) bool { return a.num > b.num }
	default:
		return func(a, b *Date) bool { return a.raw > b.raw }
	}
}

func (c *Client) get(ctx context.Context, op, path string) (*resty.Response, error) {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, &UpstreamError{Op: op, URL: c.baseURL + path, Err: err}
	}
	return resp, nil
}

func (c *Client) statusError(op, path string, code int) error {
	return &UpstreamError{Op: op, URL: c.baseURL + path, StatusCode: code}
}

func (c *Client) payloadError(op, path string, err error) error {
	return &UpstreamError{Op: op, URL: c.baseURL + path, StatusCode: http.StatusOK, Err: err}
}

func (c *Client) fail(ctx context.Context, op string, err error) error {
	outcome := OutcomeOf(err)
	observe(op, outcome)
	if outcome == OutcomeNotFound {
		c.rec.RecordInfo(ctx, op+": not found", zap.Error(err))
	} else {
		c.rec.RecordError(ctx, op+": error fetching from books API", err)
	}
	return err
}
