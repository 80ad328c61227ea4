package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/book/repository"
	"bookstore-catalog/internal/domains/book/service"
	"bookstore-catalog/internal/shared/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockCoverService struct {
	mock.Mock
}

func (m *mockCoverService) Upload(ctx context.Context, isbn, filename string, data []byte) (model.BookDto, error) {
	args := m.Called(ctx, isbn, filename, data)
	return args.Get(0).(model.BookDto), args.Error(1)
}

func seedBook(isbn string) repository.BookEntity {
	return repository.BookEntity{
		Isbn:               isbn,
		TitleEs:            "TitleEs1",
		TitleEn:            "TitleEn1",
		BasePrice:          decimal.RequireFromString("10.00"),
		DiscountPercentage: 5,
		Cover:              "cover1.jpg",
		PublicationDate:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Publisher:          &repository.PublisherEntity{Name: "alpaca", Slug: "alpaca"},
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *mockCoverService) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	repo.AddPublisher(repository.PublisherEntity{Name: "alpaca", Slug: "alpaca"})
	repo.AddAuthor(repository.AuthorEntity{Name: "a", Surname: "s", Slug: "d"})
	for _, isbn := range []string{"123", "456"} {
		require.NoError(t, repo.Create(context.Background(), seedBook(isbn)))
	}

	covers := new(mockCoverService)
	h := NewHandler(service.NewBookService(repo, nil), covers)

	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r, covers
}

func doRequest(r *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *response.Error `json:"error"`
	Meta    *response.Meta  `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

const validBody = `{
	"isbn": "978-0-306-40615-7",
	"title_es": "Titulo",
	"title_en": "Title",
	"base_price": "12.00",
	"discount_percentage": 25,
	"cover": "front.png",
	"publication_date": "2019-05-01T00:00:00Z",
	"publisher": {"name": "alpaca", "slug": "alpaca"},
	"authors": [{"name": "a", "surname": "s", "slug": "d"}]
}`

func TestListBooks(t *testing.T) {
	r, _ := setupRouter(t)

	t.Run("first page", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/books?page=0&size=10", "")
		require.Equal(t, http.StatusOK, w.Code)

		env := decode(t, w)
		var books []model.BookDto
		require.NoError(t, json.Unmarshal(env.Data, &books))
		require.Len(t, books, 2)
		assert.Equal(t, "123", books[0].Isbn)
		assert.Equal(t, "456", books[1].Isbn)
		assert.Equal(t, &response.Meta{Page: 0, Size: 10, Count: 2}, env.Meta)
	})

	t.Run("bad query", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/books?page=abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative page", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/books?page=-1", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_PAGINATION", decode(t, w).Error.Code)
	})
}

func TestGetBook(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/books/123", "")
	require.Equal(t, http.StatusOK, w.Code)

	var book model.BookDto
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &book))
	assert.Equal(t, "TitleEs1", book.TitleEs)
	assert.True(t, decimal.RequireFromString("9.5").Equal(book.FinalPrice))

	w = doRequest(r, http.MethodGet, "/api/v1/books/789", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	assert.Equal(t, "BOOK_NOT_FOUND", env.Error.Code)
	assert.Equal(t, "Book with isbn 789 not found", env.Error.Message)
}

func TestHeadBook(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, http.MethodHead, "/api/v1/books/123", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = doRequest(r, http.MethodHead, "/api/v1/books/789", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBook(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := doRequest(r, http.MethodPost, "/api/v1/books", validBody)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var book model.BookDto
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &book))
		assert.Equal(t, "9780306406157", book.Isbn)
		assert.True(t, decimal.NewFromInt(9).Equal(book.FinalPrice))

		w = doRequest(r, http.MethodPost, "/api/v1/books", validBody)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("validation details", func(t *testing.T) {
		r, _ := setupRouter(t)
		body := strings.Replace(validBody, "978-0-306-40615-7", "albacete", 1)

		w := doRequest(r, http.MethodPost, "/api/v1/books", body)
		require.Equal(t, http.StatusBadRequest, w.Code)

		env := decode(t, w)
		assert.Equal(t, "BOOK_INVALID", env.Error.Code)
		assert.Contains(t, env.Error.Details, "isbn")
	})

	t.Run("unknown publisher", func(t *testing.T) {
		r, _ := setupRouter(t)
		body := strings.Replace(validBody, `"slug": "alpaca"`, `"slug": "nobody"`, 1)

		w := doRequest(r, http.MethodPost, "/api/v1/books", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := doRequest(r, http.MethodPost, "/api/v1/books", `{"isbn":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateBook(t *testing.T) {
	r, _ := setupRouter(t)
	require.Equal(t, http.StatusCreated, doRequest(r, http.MethodPost, "/api/v1/books", validBody).Code)

	t.Run("updated", func(t *testing.T) {
		body := strings.Replace(validBody, `"title_en": "Title"`, `"title_en": "Other"`, 1)
		w := doRequest(r, http.MethodPut, "/api/v1/books/9780306406157", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var book model.BookDto
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &book))
		assert.Equal(t, "Other", book.TitleEn)
	})

	t.Run("isbn mismatch", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/api/v1/books/0306406152", validBody)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("absent", func(t *testing.T) {
		body := strings.Replace(validBody, "978-0-306-40615-7", "0306406152", 1)
		w := doRequest(r, http.MethodPut, "/api/v1/books/0306406152", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteBook(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, http.MethodDelete, "/api/v1/books/123", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/books/123", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodDelete, "/api/v1/books/123", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportBooks(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/books/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "books_page_0.xlsx")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")
}

func TestUploadCover(t *testing.T) {
	r, covers := setupRouter(t)

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "front.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, mw.Close())

	covers.On("Upload", mock.Anything, "123", "front.png", []byte("png-bytes")).
		Return(model.BookDto{Isbn: "123", Cover: "front.png"}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/books/123/cover", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	covers.AssertExpectations(t)

	t.Run("missing file", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/api/v1/books/123/cover", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{model.NewBookNotFound("1"), http.StatusNotFound},
		{model.NewInvalidBook(nil), http.StatusBadRequest},
		{model.NewInvalidCover("x"), http.StatusBadRequest},
		{model.NewInvalidPagination(-1, 0), http.StatusBadRequest},
		{model.NewBookAlreadyExists("1"), http.StatusConflict},
		{model.NewPublisherNotFound("p"), http.StatusUnprocessableEntity},
		{model.NewAuthorNotFound([]string{"a"}), http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}
