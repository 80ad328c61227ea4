package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRepository keeps the catalog in process memory.
// Publishers and authors are referenced by slug and resolved on read,
// the same way the Postgres schema joins them.
type MemoryRepository struct {
	mu         sync.RWMutex
	books      map[string]storedBook
	publishers map[string]PublisherEntity
	authors    map[string]AuthorEntity
}

type storedBook struct {
	book          BookEntity // Publisher and Authors are nil here
	publisherSlug string
	authorSlugs   []string
}

var _ BookRepository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		books:      make(map[string]storedBook),
		publishers: make(map[string]PublisherEntity),
		authors:    make(map[string]AuthorEntity),
	}
}

func (r *MemoryRepository) AddPublisher(p PublisherEntity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publishers[p.Slug] = p
}

func (r *MemoryRepository) AddAuthor(a AuthorEntity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authors[a.Slug] = a
}

func (r *MemoryRepository) FindAll(_ context.Context, page, size int) ([]BookEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	isbns := make([]string, 0, len(r.books))
	for isbn := range r.books {
		isbns = append(isbns, isbn)
	}
	sort.Strings(isbns)

	start := offset(page, size)
	if start >= len(isbns) {
		return []BookEntity{}, nil
	}
	end := start + size
	if end > len(isbns) {
		end = len(isbns)
	}

	books := make([]BookEntity, 0, end-start)
	for _, isbn := range isbns[start:end] {
		books = append(books, r.resolve(r.books[isbn]))
	}
	return books, nil
}

func (r *MemoryRepository) FindByIsbn(_ context.Context, isbn string) (BookEntity, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.books[isbn]
	if !ok {
		return BookEntity{}, false, nil
	}
	return r.resolve(stored), true, nil
}

func (r *MemoryRepository) Create(_ context.Context, book BookEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[book.Isbn]; ok {
		return ErrDuplicateIsbn
	}
	stored, err := r.store(book)
	if err != nil {
		return err
	}
	r.books[book.Isbn] = stored
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, book BookEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[book.Isbn]; !ok {
		return ErrNotFound
	}
	stored, err := r.store(book)
	if err != nil {
		return err
	}
	r.books[book.Isbn] = stored
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, isbn string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[isbn]; !ok {
		return false, nil
	}
	delete(r.books, isbn)
	return true, nil
}

func (r *MemoryRepository) UpdateCover(_ context.Context, isbn, cover string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.books[isbn]
	if !ok {
		return ErrNotFound
	}
	stored.book.Cover = cover
	r.books[isbn] = stored
	return nil
}

func (r *MemoryRepository) PublisherExists(_ context.Context, slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.publishers[slug]
	return ok, nil
}

func (r *MemoryRepository) MissingAuthors(_ context.Context, slugs []string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return missingSlugs(slugs, func(slug string) bool {
		_, ok := r.authors[slug]
		return ok
	}), nil
}

// store checks references and strips the book down to slugs. Caller holds the lock.
func (r *MemoryRepository) store(book BookEntity) (storedBook, error) {
	stored := storedBook{book: book.Clone()}
	stored.book.Publisher = nil
	stored.book.Authors = nil

	if book.Publisher != nil {
		if _, ok := r.publishers[book.Publisher.Slug]; !ok {
			return storedBook{}, fmt.Errorf("publisher %q: %w", book.Publisher.Slug, ErrInvalidReference)
		}
		stored.publisherSlug = book.Publisher.Slug
	}

	if book.Authors != nil {
		stored.authorSlugs = make([]string, 0, len(book.Authors))
		for _, a := range book.Authors {
			if _, ok := r.authors[a.Slug]; !ok {
				return storedBook{}, fmt.Errorf("author %q: %w", a.Slug, ErrInvalidReference)
			}
			stored.authorSlugs = append(stored.authorSlugs, a.Slug)
		}
	}
	return stored, nil
}

// resolve builds a fresh entity from a stored row. Caller holds the lock.
func (r *MemoryRepository) resolve(stored storedBook) BookEntity {
	book := stored.book
	if stored.publisherSlug != "" {
		p := r.publishers[stored.publisherSlug]
		book.Publisher = &p
	}
	if stored.authorSlugs != nil {
		book.Authors = make([]AuthorEntity, 0, len(stored.authorSlugs))
		for _, slug := range stored.authorSlugs {
			book.Authors = append(book.Authors, r.authors[slug])
		}
	}
	return book
}
