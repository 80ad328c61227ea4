package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("book not found")
	ErrDuplicateIsbn    = errors.New("isbn already exists")
	ErrInvalidReference = errors.New("publisher or author does not exist")
)

// BookRepository is the persistence contract of the catalog.
type BookRepository interface {
	// FindAll returns one zero-based page of books ordered by ISBN.
	// A page past the end yields an empty slice.
	FindAll(ctx context.Context, page, size int) ([]BookEntity, error)
	// FindByIsbn reports false when no book has the given ISBN.
	FindByIsbn(ctx context.Context, isbn string) (BookEntity, bool, error)

	Create(ctx context.Context, book BookEntity) error
	Update(ctx context.Context, book BookEntity) error
	// Delete reports whether a book was removed.
	Delete(ctx context.Context, isbn string) (bool, error)
	UpdateCover(ctx context.Context, isbn, cover string) error

	PublisherExists(ctx context.Context, slug string) (bool, error)
	// MissingAuthors returns the slugs that match no author, in input order.
	MissingAuthors(ctx context.Context, slugs []string) ([]string, error)
}

func offset(page, size int) int {
	return page * size
}

// missingSlugs keeps the slugs for which exists is false, dropping duplicates.
func missingSlugs(slugs []string, exists func(string) bool) []string {
	var missing []string
	seen := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		if !exists(slug) {
			missing = append(missing, slug)
		}
	}
	return missing
}
