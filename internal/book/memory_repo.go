package book

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo keeps books in process memory. It is the store used when no
// database is configured.
type MemoryRepo struct {
	mu     sync.RWMutex
	books  map[int]Book
	nextID int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{books: make(map[int]Book), nextID: 1}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) Create(ctx context.Context, book *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book.ID = r.nextID
	r.nextID++
	r.books[book.ID] = *book
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, id int, title, image string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return ErrNotFound
	}
	b.Title = title
	b.Image = image
	r.books[id] = b
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books), nil
}
