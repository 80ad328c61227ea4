package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccessWithMeta(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithMeta(c, http.StatusOK, []string{"123", "456"}, &Meta{Page: 0, Size: 10, Count: 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"success":true,"data":["123","456"],"meta":{"page":0,"size":10,"count":2}}`,
		w.Body.String())
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name   string
		call   func(c *gin.Context)
		status int
		code   string
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "m") }, http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", func(c *gin.Context) { NotFound(c, "m") }, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", func(c *gin.Context) { Conflict(c, "m") }, http.StatusConflict, "CONFLICT"},
		{"rate limit", func(c *gin.Context) { TooManyRequests(c, "m") }, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{"internal", func(c *gin.Context) { InternalServerError(c, "m") }, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.call(c)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, "m", resp.Error.Message)
		})
	}
}

func TestErrorWithDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorWithDetails(c, http.StatusBadRequest, "BOOK_INVALID", "invalid book", map[string]string{"isbn": "must be a valid ISBN"})

	assert.JSONEq(t,
		`{"success":false,"error":{"code":"BOOK_INVALID","message":"invalid book","details":{"isbn":"must be a valid ISBN"}}}`,
		w.Body.String())
}
