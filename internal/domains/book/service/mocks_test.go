package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bookstore-catalog/internal/domains/book/repository"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) FindAll(ctx context.Context, page, size int) ([]repository.BookEntity, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BookEntity), args.Error(1)
}

func (m *mockRepository) FindByIsbn(ctx context.Context, isbn string) (repository.BookEntity, bool, error) {
	args := m.Called(ctx, isbn)
	return args.Get(0).(repository.BookEntity), args.Bool(1), args.Error(2)
}

func (m *mockRepository) Create(ctx context.Context, book repository.BookEntity) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *mockRepository) Update(ctx context.Context, book repository.BookEntity) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, isbn string) (bool, error) {
	args := m.Called(ctx, isbn)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) UpdateCover(ctx context.Context, isbn, cover string) error {
	args := m.Called(ctx, isbn, cover)
	return args.Error(0)
}

func (m *mockRepository) PublisherExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) MissingAuthors(ctx context.Context, slugs []string) ([]string, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueProcessCover(ctx context.Context, isbn, key string) error {
	args := m.Called(ctx, isbn, key)
	return args.Error(0)
}

func (m *mockEnqueuer) EnqueueDeleteCover(ctx context.Context, isbn string) error {
	args := m.Called(ctx, isbn)
	return args.Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockStorage) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	args := m.Called(ctx, prefix)
	return args.Int(0), args.Error(1)
}
