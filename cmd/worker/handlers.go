package main

import (
	"errors"

	"github.com/hibiken/asynq"

	bookJob "bookstore-catalog/internal/domains/book/job"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	processCover *bookJob.ProcessCoverHandler
	deleteCover  *bookJob.DeleteCoverHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) (*HandlerRegistry, error) {
	if c.Storage == nil {
		return nil, errors.New("cover jobs need object storage, set MINIO_ENDPOINT")
	}

	return &HandlerRegistry{
		processCover: bookJob.NewProcessCoverHandler(c.Storage, c.Images),
		deleteCover:  bookJob.NewDeleteCoverHandler(c.Storage),
	}, nil
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeProcessBookCover, h.processCover.ProcessTask)
	mux.HandleFunc(shared.TypeDeleteBookCover, h.deleteCover.ProcessTask)
}
