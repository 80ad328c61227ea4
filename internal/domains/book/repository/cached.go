package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookstore-catalog/pkg/cache"
)

const (
	bookKeyPrefix  = "book:isbn:"
	listKeyPattern = "book:list:*"
)

// cachedRepository decorates a BookRepository with read-through caching.
// Cache failures are logged and never fail the call.
type cachedRepository struct {
	next  BookRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedRepository(next BookRepository, c cache.Cache, ttl time.Duration) BookRepository {
	return &cachedRepository{next: next, cache: c, ttl: ttl}
}

func bookKey(isbn string) string {
	return bookKeyPrefix + isbn
}

func listKey(page, size int) string {
	return fmt.Sprintf("book:list:%d:%d", page, size)
}

func (r *cachedRepository) FindAll(ctx context.Context, page, size int) ([]BookEntity, error) {
	key := listKey(page, size)

	var books []BookEntity
	found, err := r.cache.Get(ctx, key, &books)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[BookCache] Get failed")
	} else if found {
		return books, nil
	}

	books, err = r.next.FindAll(ctx, page, size)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, books)
	return books, nil
}

func (r *cachedRepository) FindByIsbn(ctx context.Context, isbn string) (BookEntity, bool, error) {
	key := bookKey(isbn)

	var book BookEntity
	found, err := r.cache.Get(ctx, key, &book)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[BookCache] Get failed")
	} else if found {
		return book, true, nil
	}

	book, ok, err := r.next.FindByIsbn(ctx, isbn)
	if err != nil || !ok {
		return book, ok, err
	}
	r.set(ctx, key, book)
	return book, true, nil
}

func (r *cachedRepository) Create(ctx context.Context, book BookEntity) error {
	if err := r.next.Create(ctx, book); err != nil {
		return err
	}
	r.invalidate(ctx, book.Isbn)
	return nil
}

func (r *cachedRepository) Update(ctx context.Context, book BookEntity) error {
	if err := r.next.Update(ctx, book); err != nil {
		return err
	}
	r.invalidate(ctx, book.Isbn)
	return nil
}

func (r *cachedRepository) Delete(ctx context.Context, isbn string) (bool, error) {
	removed, err := r.next.Delete(ctx, isbn)
	if err != nil {
		return false, err
	}
	if removed {
		r.invalidate(ctx, isbn)
	}
	return removed, nil
}

func (r *cachedRepository) UpdateCover(ctx context.Context, isbn, cover string) error {
	if err := r.next.UpdateCover(ctx, isbn, cover); err != nil {
		return err
	}
	r.invalidate(ctx, isbn)
	return nil
}

func (r *cachedRepository) PublisherExists(ctx context.Context, slug string) (bool, error) {
	return r.next.PublisherExists(ctx, slug)
}

func (r *cachedRepository) MissingAuthors(ctx context.Context, slugs []string) ([]string, error) {
	return r.next.MissingAuthors(ctx, slugs)
}

func (r *cachedRepository) set(ctx context.Context, key string, value interface{}) {
	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[BookCache] Set failed")
	}
}

func (r *cachedRepository) invalidate(ctx context.Context, isbn string) {
	if err := r.cache.Delete(ctx, bookKey(isbn)); err != nil {
		log.Warn().Err(err).Str("isbn", isbn).Msg("[BookCache] Invalidate book failed")
	}
	if err := r.cache.DeletePattern(ctx, listKeyPattern); err != nil {
		log.Warn().Err(err).Msg("[BookCache] Invalidate list failed")
	}
}
