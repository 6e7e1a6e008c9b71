package book

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SeedBooks is the sample catalog written into an empty store.
var SeedBooks = []Book{
	{Title: "Cloud Native Go", Author: "Matthew A. Titmus", Image: "https://images.example.com/cloud-native-go.jpg", Published: date(2021, time.April, 20),
		Description: "Building reliable services in unreliable environments."},
	{Title: "The Go Programming Language", Author: "Alan A. A. Donovan, Brian W. Kernighan", Image: "https://images.example.com/gopl.jpg", Published: date(2015, time.October, 26),
		Description: "The authoritative resource to writing clear and idiomatic Go."},
	{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Image: "https://images.example.com/ddia.jpg", Published: date(2017, time.March, 16),
		Description: "The big ideas behind reliable, scalable and maintainable systems."},
	{Title: "Learning Go", Author: "Jon Bodner", Image: "https://images.example.com/learning-go.jpg", Published: date(2024, time.January, 10),
		Description: "An idiomatic approach to real-world Go programming."},
	{Title: "Site Reliability Engineering", Author: "Betsy Beyer et al.", Image: "https://images.example.com/sre.jpg", Published: date(2016, time.April, 16),
		Description: "How Google runs production systems."},
}

// Seed writes SeedBooks into repo when it holds no books yet. It returns the
// number of books written.
func Seed(ctx context.Context, repo Repository, log *zap.Logger) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	if n > 0 {
		log.Info("store already has books, skipping seed", zap.Int("books", n))
		return 0, nil
	}

	for _, b := range SeedBooks {
		b := b
		if err := repo.Create(ctx, &b); err != nil {
			return 0, fmt.Errorf("seed %q: %w", b.Title, err)
		}
	}
	log.Info("seeded books", zap.Int("books", len(SeedBooks)))
	return len(SeedBooks), nil
}
