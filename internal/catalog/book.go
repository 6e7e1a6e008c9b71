package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Book is a book as served by the upstream books API.
//
// Fields the web tier does not know about are kept in Extra so templates can
// still show them.
type Book struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Author      string         `json:"author,omitempty"`
	Description string         `json:"description,omitempty"`
	Image       string         `json:"image,omitempty"`
	Published   *Date          `json:"published"`
	Extra       map[string]any `json:"-"`
}

var knownFields = []string{"id", "title", "author", "description", "image", "published"}

func (b *Book) UnmarshalJSON(data []byte) error {
	type plain Book
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for key := range all {
		for _, known := range knownFields {
			// encoding/json matches field names case-insensitively, so do we.
			if strings.EqualFold(key, known) {
				delete(all, key)
				break
			}
		}
	}
	if len(all) > 0 {
		p.Extra = all
	}

	*b = Book(p)
	return nil
}

// Date is an orderable publication date. The upstream text is kept as-is;
// Valid reports whether it could be read as a point in time and Numeric
// whether the upstream sent a JSON number.
type Date struct {
	t       time.Time
	raw     string
	valid   bool
	num     float64
	numeric bool
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate reads s using the layouts the books API is known to emit.
// The returned Date is never nil-valued; check Valid.
func ParseDate(s string) Date {
	d := Date{raw: s}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.t = t
			d.valid = true
			break
		}
	}
	return d
}

// NewDate wraps t, rendering it as RFC 3339.
func NewDate(t time.Time) Date {
	return Date{t: t, raw: t.Format(time.RFC3339), valid: true}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Not a string: keep the literal so the page can still show it.
		*d = Date{raw: string(data)}
		if n, err := strconv.ParseFloat(d.raw, 64); err == nil {
			d.num = n
			d.numeric = true
		}
		return nil
	}
	*d = ParseDate(s)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.raw)
}

func (d Date) Valid() bool { return d.valid }

func (d Date) Numeric() bool { return d.numeric }

func (d Date) Time() time.Time { return d.t }

func (d Date) String() string { return d.raw }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Format formats a valid date with layout and falls back to the upstream text.
func (d Date) Format(layout string) string {
	if !d.valid {
		return d.raw
	}
	return d.t.Format(layout)
}
