package book

import (
	"context"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every book ordered by id. It never returns a nil slice.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get returns a book by its id.
func (s *Service) Get(ctx context.Context, id int) (Book, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a validated new book and returns it with its id.
func (s *Service) Create(ctx context.Context, in NewBook) (Book, error) {
	b, err := in.Book()
	if err != nil {
		return Book{}, err
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Update changes the title and image of a book.
func (s *Service) Update(ctx context.Context, id int, in UpdateBook) error {
	return s.repo.Update(ctx, id, in.Title, in.Image)
}

// Delete removes a book.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
