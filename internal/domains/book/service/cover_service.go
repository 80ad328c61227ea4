package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/book/mapper"
	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/book/repository"
	"bookstore-catalog/internal/infrastructure/queue"
	"bookstore-catalog/internal/infrastructure/storage"
)

type coverService struct {
	repo      repository.BookRepository
	storage   storage.ObjectStorage
	processor *storage.ImageProcessor
	tasks     queue.TaskEnqueuer
}

func NewCoverService(
	repo repository.BookRepository,
	objects storage.ObjectStorage,
	processor *storage.ImageProcessor,
	tasks queue.TaskEnqueuer,
) CoverService {
	if tasks == nil {
		tasks = queue.NoopEnqueuer{}
	}
	return &coverService{
		repo:      repo,
		storage:   objects,
		processor: processor,
		tasks:     tasks,
	}
}

func (s *coverService) Upload(ctx context.Context, isbn, filename string, data []byte) (model.BookDto, error) {
	isbn = model.NormalizeIsbn(isbn)

	if err := model.ValidateCoverFileName(filename); err != nil {
		return model.BookDto{}, model.NewInvalidCover(err.Error())
	}
	if filename == model.ThumbnailFileName {
		return model.BookDto{}, model.NewInvalidCover("file name is reserved")
	}
	if err := s.processor.ValidateImage(data); err != nil {
		return model.BookDto{}, model.NewInvalidCover(err.Error())
	}

	_, found, err := s.repo.FindByIsbn(ctx, isbn)
	if err != nil {
		return model.BookDto{}, fmt.Errorf("failed to get book: %w", err)
	}
	if !found {
		return model.BookDto{}, model.NewBookNotFound(isbn)
	}

	key := model.CoverKey(isbn, filename)
	url, err := s.storage.Upload(ctx, key, data, http.DetectContentType(data))
	if err != nil {
		return model.BookDto{}, fmt.Errorf("failed to store cover: %w", err)
	}

	if err := s.repo.UpdateCover(ctx, isbn, filename); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.BookDto{}, model.NewBookNotFound(isbn)
		}
		return model.BookDto{}, fmt.Errorf("failed to save cover: %w", err)
	}

	if err := s.tasks.EnqueueProcessCover(ctx, isbn, key); err != nil {
		log.Error().Err(err).Str("isbn", isbn).Msg("[CoverService] Failed to enqueue thumbnail job")
	}

	log.Info().Str("isbn", isbn).Str("url", url).Msg("[CoverService] Cover uploaded")

	entity, found, err := s.repo.FindByIsbn(ctx, isbn)
	if err != nil {
		return model.BookDto{}, fmt.Errorf("failed to get book: %w", err)
	}
	if !found {
		return model.BookDto{}, model.NewBookNotFound(isbn)
	}
	return mapper.EntityToDto(entity), nil
}
