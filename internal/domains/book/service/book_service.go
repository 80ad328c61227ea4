package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/book/mapper"
	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/book/repository"
	"bookstore-catalog/internal/infrastructure/queue"
)

type bookService struct {
	repo  repository.BookRepository
	tasks queue.TaskEnqueuer
}

// NewBookService - Constructor with DI
func NewBookService(repo repository.BookRepository, tasks queue.TaskEnqueuer) BookService {
	if tasks == nil {
		tasks = queue.NoopEnqueuer{}
	}
	return &bookService{
		repo:  repo,
		tasks: tasks,
	}
}

func (s *bookService) GetAll(ctx context.Context, page, size int) ([]model.BookDto, error) {
	if page < 0 || size < 1 {
		return nil, model.NewInvalidPagination(page, size)
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	// page*size becomes the repository offset and must not overflow
	if page > math.MaxInt/size {
		return nil, model.NewInvalidPagination(page, size)
	}

	entities, err := s.repo.FindAll(ctx, page, size)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	books := make([]model.BookDto, 0, len(entities))
	for _, e := range entities {
		books = append(books, mapper.EntityToDto(e))
	}
	return books, nil
}

func (s *bookService) GetByIsbn(ctx context.Context, isbn string) (model.BookDto, error) {
	book, found, err := s.FindByIsbn(ctx, isbn)
	if err != nil {
		return model.BookDto{}, err
	}
	if !found {
		return model.BookDto{}, model.NewBookNotFound(isbn)
	}
	return book, nil
}

func (s *bookService) FindByIsbn(ctx context.Context, isbn string) (model.BookDto, bool, error) {
	entity, found, err := s.repo.FindByIsbn(ctx, model.NormalizeIsbn(isbn))
	if err != nil {
		return model.BookDto{}, false, fmt.Errorf("failed to get book: %w", err)
	}
	if !found {
		return model.BookDto{}, false, nil
	}
	return mapper.EntityToDto(entity), true, nil
}

func (s *bookService) Create(ctx context.Context, book model.BookDto) (model.BookDto, error) {
	book.Isbn = model.NormalizeIsbn(book.Isbn)

	if err := validateBook(book); err != nil {
		return model.BookDto{}, err
	}

	_, exists, err := s.repo.FindByIsbn(ctx, book.Isbn)
	if err != nil {
		return model.BookDto{}, fmt.Errorf("failed to check isbn: %w", err)
	}
	if exists {
		return model.BookDto{}, model.NewBookAlreadyExists(book.Isbn)
	}

	if err := s.checkReferences(ctx, book); err != nil {
		return model.BookDto{}, err
	}

	if err := s.repo.Create(ctx, mapper.DtoToEntity(book)); err != nil {
		if errors.Is(err, repository.ErrDuplicateIsbn) {
			return model.BookDto{}, model.NewBookAlreadyExists(book.Isbn)
		}
		return model.BookDto{}, fmt.Errorf("failed to create book: %w", err)
	}

	log.Info().Str("isbn", book.Isbn).Msg("[BookService] Book created")
	return s.GetByIsbn(ctx, book.Isbn)
}

func (s *bookService) Update(ctx context.Context, book model.BookDto) (model.BookDto, error) {
	book.Isbn = model.NormalizeIsbn(book.Isbn)

	if err := validateBook(book); err != nil {
		return model.BookDto{}, err
	}

	current, exists, err := s.repo.FindByIsbn(ctx, book.Isbn)
	if err != nil {
		return model.BookDto{}, fmt.Errorf("failed to get book: %w", err)
	}
	if !exists {
		return model.BookDto{}, model.NewBookNotFound(book.Isbn)
	}

	if err := s.checkReferences(ctx, book); err != nil {
		return model.BookDto{}, err
	}

	// the cover is managed by the upload endpoint; an empty value keeps it
	if book.Cover == "" {
		book.Cover = current.Cover
	}

	if err := s.repo.Update(ctx, mapper.DtoToEntity(book)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.BookDto{}, model.NewBookNotFound(book.Isbn)
		}
		return model.BookDto{}, fmt.Errorf("failed to update book: %w", err)
	}

	log.Info().Str("isbn", book.Isbn).Msg("[BookService] Book updated")
	return s.GetByIsbn(ctx, book.Isbn)
}

func (s *bookService) Delete(ctx context.Context, isbn string) (bool, error) {
	isbn = model.NormalizeIsbn(isbn)

	removed, err := s.repo.Delete(ctx, isbn)
	if err != nil {
		return false, fmt.Errorf("failed to delete book: %w", err)
	}
	if !removed {
		return false, nil
	}

	if err := s.tasks.EnqueueDeleteCover(ctx, isbn); err != nil {
		log.Error().Err(err).Str("isbn", isbn).Msg("[BookService] Failed to enqueue cover cleanup")
	}

	log.Info().Str("isbn", isbn).Msg("[BookService] Book deleted")
	return true, nil
}

// checkReferences makes sure the publisher and every author exist.
func (s *bookService) checkReferences(ctx context.Context, book model.BookDto) error {
	if book.Publisher != nil {
		ok, err := s.repo.PublisherExists(ctx, book.Publisher.Slug)
		if err != nil {
			return fmt.Errorf("failed to check publisher: %w", err)
		}
		if !ok {
			return model.NewPublisherNotFound(book.Publisher.Slug)
		}
	}

	if slugs := book.AuthorSlugs(); len(slugs) > 0 {
		missing, err := s.repo.MissingAuthors(ctx, slugs)
		if err != nil {
			return fmt.Errorf("failed to check authors: %w", err)
		}
		if len(missing) > 0 {
			return model.NewAuthorNotFound(missing)
		}
	}
	return nil
}

func validateBook(book model.BookDto) error {
	err := book.Validate()
	if err == nil {
		return nil
	}
	if details := model.ValidationDetails(err); len(details) > 0 {
		return model.NewInvalidBook(details)
	}
	return fmt.Errorf("failed to validate book: %w", err)
}
