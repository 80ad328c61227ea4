package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"bookstore-catalog/internal/domains/book/model"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// BookService is the catalog use-case layer.
type BookService interface {
	GetAll(ctx context.Context, page, size int) ([]model.BookDto, error)
	// GetByIsbn fails with model.ErrBookNotFound when the book is absent.
	GetByIsbn(ctx context.Context, isbn string) (model.BookDto, error)
	// FindByIsbn reports false instead of failing when the book is absent.
	FindByIsbn(ctx context.Context, isbn string) (model.BookDto, bool, error)
	Create(ctx context.Context, book model.BookDto) (model.BookDto, error)
	Update(ctx context.Context, book model.BookDto) (model.BookDto, error)
	// Delete reports whether a book was removed.
	Delete(ctx context.Context, isbn string) (bool, error)
	Export(ctx context.Context, page, size int) (*excelize.File, error)
}

// CoverService stores cover images for existing books.
type CoverService interface {
	Upload(ctx context.Context, isbn, filename string, data []byte) (model.BookDto, error)
}
