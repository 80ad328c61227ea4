package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/book/service"
	"bookstore-catalog/internal/infrastructure/storage"
	"bookstore-catalog/internal/shared/middleware"
	"bookstore-catalog/internal/shared/response"
)

// Handler - HTTP Handler for the book catalog
type Handler struct {
	books  service.BookService
	covers service.CoverService
}

// NewHandler - Constructor with DI
func NewHandler(books service.BookService, covers service.CoverService) *Handler {
	return &Handler{
		books:  books,
		covers: covers,
	}
}

// RegisterRoutes mounts the book endpoints on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/export", h.ExportBooks)
		books.GET("/:isbn", h.GetBook)
		books.HEAD("/:isbn", h.HeadBook)
		books.POST("", h.CreateBook)
		books.PUT("/:isbn", h.UpdateBook)
		books.DELETE("/:isbn", h.DeleteBook)

		// Cover uploads need object storage.
		if h.covers != nil {
			books.PUT("/:isbn/cover", h.UploadCover)
		}
	}
}

// ListBooks - GET /v1/books?page=0&size=20
func (h *Handler) ListBooks(c *gin.Context) {
	page, size, ok := parsePagination(c)
	if !ok {
		return
	}

	books, err := h.books.GetAll(c.Request.Context(), page, size)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if size > service.MaxPageSize {
		size = service.MaxPageSize
	}
	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Page:  page,
		Size:  size,
		Count: len(books),
	})
}

// ExportBooks - GET /v1/books/export?page=0&size=100
func (h *Handler) ExportBooks(c *gin.Context) {
	page, size, ok := parsePagination(c)
	if !ok {
		return
	}

	f, err := h.books.Export(c.Request.Context(), page, size)
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("books_page_%d.xlsx", page)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("[BookHandler] Failed to write export")
	}
}

// GetBook - GET /v1/books/:isbn
func (h *Handler) GetBook(c *gin.Context) {
	book, err := h.books.GetByIsbn(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// HeadBook - HEAD /v1/books/:isbn, existence check without a body
func (h *Handler) HeadBook(c *gin.Context) {
	_, found, err := h.books.FindByIsbn(c.Request.Context(), c.Param("isbn"))
	switch {
	case err != nil:
		log.Error().Err(err).Str("isbn", c.Param("isbn")).Msg("[BookHandler] Lookup failed")
		c.Status(http.StatusInternalServerError)
	case !found:
		c.Status(http.StatusNotFound)
	default:
		c.Status(http.StatusOK)
	}
}

// CreateBook - POST /v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.BookDto
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	book, err := h.books.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, book)
}

// UpdateBook - PUT /v1/books/:isbn
func (h *Handler) UpdateBook(c *gin.Context) {
	isbn := model.NormalizeIsbn(c.Param("isbn"))

	var req model.BookDto
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if req.Isbn == "" {
		req.Isbn = isbn
	}
	if model.NormalizeIsbn(req.Isbn) != isbn {
		response.BadRequest(c, "ISBN in body does not match the URL")
		return
	}

	book, err := h.books.Update(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// DeleteBook - DELETE /v1/books/:isbn
func (h *Handler) DeleteBook(c *gin.Context) {
	isbn := c.Param("isbn")

	removed, err := h.books.Delete(c.Request.Context(), isbn)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !removed {
		h.handleError(c, model.NewBookNotFound(model.NormalizeIsbn(isbn)))
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"isbn":    model.NormalizeIsbn(isbn),
		"deleted": true,
	})
}

// UploadCover - PUT /v1/books/:isbn/cover (multipart field "file")
func (h *Handler) UploadCover(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Multipart field 'file' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Cannot read uploaded file")
		return
	}
	defer file.Close()

	// read one byte past the limit so oversized files are detected
	data, err := io.ReadAll(io.LimitReader(file, storage.DefaultMaxImageSize+1))
	if err != nil {
		response.BadRequest(c, "Cannot read uploaded file")
		return
	}

	book, err := h.covers.Upload(c.Request.Context(), c.Param("isbn"), fileHeader.Filename, data)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

func parsePagination(c *gin.Context) (page, size int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		response.BadRequest(c, "page must be an integer")
		return 0, 0, false
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(service.DefaultPageSize)))
	if err != nil {
		response.BadRequest(c, "size must be an integer")
		return 0, 0, false
	}
	return page, size, true
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{model.ErrBookNotFound, http.StatusNotFound},
	{model.ErrInvalidBook, http.StatusBadRequest},
	{model.ErrInvalidPagination, http.StatusBadRequest},
	{model.ErrInvalidCover, http.StatusBadRequest},
	{model.ErrBookAlreadyExists, http.StatusConflict},
	{model.ErrPublisherNotFound, http.StatusUnprocessableEntity},
	{model.ErrAuthorNotFound, http.StatusUnprocessableEntity},
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status := StatusFor(err)

	be, ok := model.AsBusinessError(err)
	if !ok || status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg("[BookHandler] Request failed")
		response.InternalServerError(c, "Internal server error")
		return
	}

	if len(be.Details) > 0 {
		response.ErrorWithDetails(c, status, be.Code, be.Message, be.Details)
		return
	}
	response.ErrorResponse(c, status, be.Code, be.Message)
}
