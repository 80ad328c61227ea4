package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/infrastructure/storage"
)

// DeleteCoverHandler removes every stored object of a deleted book.
type DeleteCoverHandler struct {
	storage storage.ObjectStorage
}

func NewDeleteCoverHandler(objects storage.ObjectStorage) *DeleteCoverHandler {
	return &DeleteCoverHandler{storage: objects}
}

func (h *DeleteCoverHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := decodePayload(task)
	if err != nil {
		return err
	}

	removed, err := h.storage.DeletePrefix(ctx, model.CoverPrefix(payload.Isbn))
	if err != nil {
		log.Error().
			Err(err).
			Str("isbn", payload.Isbn).
			Msg("Failed to delete book covers")
		return fmt.Errorf("delete covers: %w", err)
	}

	log.Info().
		Str("isbn", payload.Isbn).
		Int("removed", removed).
		Msg("Book covers deleted")

	return nil
}
