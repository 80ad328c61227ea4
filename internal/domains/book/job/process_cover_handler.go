package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/infrastructure/storage"
	"bookstore-catalog/internal/shared"
)

// ProcessCoverHandler builds the thumbnail of an uploaded cover.
type ProcessCoverHandler struct {
	storage   storage.ObjectStorage
	processor *storage.ImageProcessor
}

func NewProcessCoverHandler(objects storage.ObjectStorage, processor *storage.ImageProcessor) *ProcessCoverHandler {
	return &ProcessCoverHandler{
		storage:   objects,
		processor: processor,
	}
}

// ProcessTask downloads the original, resizes it and uploads thumbnail.jpg
func (h *ProcessCoverHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := decodePayload(task)
	if err != nil {
		return err
	}
	if payload.Key == "" {
		return fmt.Errorf("cover key missing for isbn %s: %w", payload.Isbn, asynq.SkipRetry)
	}

	log.Info().
		Str("isbn", payload.Isbn).
		Str("key", payload.Key).
		Msg("Processing book cover")

	original, err := h.storage.Download(ctx, payload.Key)
	if err != nil {
		return fmt.Errorf("download cover: %w", err)
	}

	thumb, err := h.processor.Thumbnail(original, storage.ThumbnailSize)
	if err != nil {
		// a broken image will not decode on retry either
		return fmt.Errorf("thumbnail %s: %v: %w", payload.Key, err, asynq.SkipRetry)
	}

	thumbKey := model.CoverKey(payload.Isbn, model.ThumbnailFileName)
	if _, err := h.storage.Upload(ctx, thumbKey, thumb, "image/jpeg"); err != nil {
		return fmt.Errorf("upload thumbnail: %w", err)
	}

	log.Info().
		Str("isbn", payload.Isbn).
		Str("key", thumbKey).
		Int("bytes", len(thumb)).
		Msg("Book cover thumbnail stored")

	return nil
}

func decodePayload(task *asynq.Task) (shared.CoverPayload, error) {
	var payload shared.CoverPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Str("type", task.Type()).Msg("Failed to unmarshal cover payload")
		return payload, fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Isbn == "" {
		return payload, fmt.Errorf("isbn missing: %w", asynq.SkipRetry)
	}
	return payload, nil
}
