package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/infrastructure/storage"
)

func pngImage(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func TestCoverService_Upload(t *testing.T) {
	ctx := context.Background()
	data := pngImage(t)

	t.Run("stores cover and schedules thumbnail", func(t *testing.T) {
		_, repo, _ := newMemoryService(t)
		objects := new(mockStorage)
		tasks := new(mockEnqueuer)

		objects.On("Upload", ctx, "covers/123/front.png", data, "image/png").
			Return("http://minio/bookstore/covers/123/front.png", nil)
		tasks.On("EnqueueProcessCover", ctx, "123", "covers/123/front.png").Return(nil)

		svc := NewCoverService(repo, objects, storage.NewImageProcessor(), tasks)
		book, err := svc.Upload(ctx, "123", "front.png", data)
		require.NoError(t, err)
		assert.Equal(t, "front.png", book.Cover)

		stored, _, _ := repo.FindByIsbn(ctx, "123")
		assert.Equal(t, "front.png", stored.Cover)

		objects.AssertExpectations(t)
		tasks.AssertExpectations(t)
	})

	t.Run("unknown book", func(t *testing.T) {
		_, repo, _ := newMemoryService(t)
		objects := new(mockStorage)

		svc := NewCoverService(repo, objects, storage.NewImageProcessor(), nil)
		_, err := svc.Upload(ctx, "789", "front.png", data)
		assert.ErrorIs(t, err, model.ErrBookNotFound)
		objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejected files", func(t *testing.T) {
		_, repo, _ := newMemoryService(t)
		svc := NewCoverService(repo, new(mockStorage), storage.NewImageProcessor(), nil)

		tests := []struct {
			name     string
			filename string
			data     []byte
		}{
			{"audio extension", "sonido.mp3", data},
			{"reserved name", model.ThumbnailFileName, data},
			{"not an image", "front.png", []byte("ID3\x04 definitely audio")},
			{"empty name", "", data},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Upload(ctx, "123", tt.filename, tt.data)
				assert.ErrorIs(t, err, model.ErrInvalidCover)
			})
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		_, repo, _ := newMemoryService(t)
		objects := new(mockStorage)
		objects.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket gone"))

		svc := NewCoverService(repo, objects, storage.NewImageProcessor(), nil)
		_, err := svc.Upload(ctx, "123", "front.png", data)
		assert.ErrorContains(t, err, "bucket gone")

		stored, _, _ := repo.FindByIsbn(ctx, "123")
		assert.Equal(t, "cover1.jpg", stored.Cover)
	})
}
