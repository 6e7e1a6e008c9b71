package book

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a book entity.
type Book struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Published   time.Time `json:"published"`
}

// NewBook is the request body of POST /book/add.
type NewBook struct {
	Title       string `json:"title" validate:"required,max=300"`
	Author      string `json:"author" validate:"max=200"`
	Description string `json:"description" validate:"max=4000"`
	Image       string `json:"image" validate:"omitempty,url"`
	Published   string `json:"published" validate:"required,published"`
}

// UpdateBook is the request body of PUT /books/update/{id}. Only the title
// and the image of a book can change.
type UpdateBook struct {
	Title string `json:"title" validate:"required,max=300"`
	Image string `json:"image" validate:"omitempty,url"`
}

var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParsePublished reads a publication date as either a date, a local
// date-time or an RFC 3339 timestamp.
func ParsePublished(s string) (time.Time, error) {
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid published date %q", s)
}

// Book converts the request body into a Book without an ID.
func (n NewBook) Book() (Book, error) {
	published, err := ParsePublished(n.Published)
	if err != nil {
		return Book{}, err
	}
	return Book{
		Title:       n.Title,
		Author:      n.Author,
		Description: n.Description,
		Image:       n.Image,
		Published:   published,
	}, nil
}
