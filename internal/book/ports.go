package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int) (Book, error)
	Create(ctx context.Context, book *Book) error
	Update(ctx context.Context, id int, title, image string) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}
