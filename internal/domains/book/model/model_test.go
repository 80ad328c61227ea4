package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBook_FinalPrice(t *testing.T) {
	tests := []struct {
		price    string
		discount float64
		want     string
	}{
		{"10.00", 5, "9.5"},
		{"10.00", 0, "10"},
		{"10.00", 100, "0"},
		{"19.99", 15, "16.99"},
		{"0", 50, "0"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s-%v", tt.price, tt.discount), func(t *testing.T) {
			b := Book{BasePrice: decimal.RequireFromString(tt.price), DiscountPercentage: tt.discount}
			assert.True(t, decimal.RequireFromString(tt.want).Equal(b.FinalPrice()),
				"got %s", b.FinalPrice())
		})
	}
}

func TestNormalizeIsbn(t *testing.T) {
	assert.Equal(t, "9780306406157", NormalizeIsbn("978-0-306-40615-7"))
	assert.Equal(t, "0306406152", NormalizeIsbn(" 0 306 40615 2 "))
	assert.Equal(t, "123", NormalizeIsbn("123"))
}

func TestBusinessError(t *testing.T) {
	err := NewBookNotFound("789")
	assert.EqualError(t, err, "Book with isbn 789 not found")
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.NotErrorIs(t, err, ErrBookAlreadyExists)

	wrapped := fmt.Errorf("handler: %w", err)
	be, ok := AsBusinessError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "BOOK_NOT_FOUND", be.Code)

	_, ok = AsBusinessError(errors.New("plain"))
	assert.False(t, ok)

	tests := []struct {
		err      *BusinessError
		sentinel error
		code     string
	}{
		{NewBookAlreadyExists("1"), ErrBookAlreadyExists, "BOOK_ALREADY_EXISTS"},
		{NewInvalidBook(map[string]string{"isbn": "bad"}), ErrInvalidBook, "BOOK_INVALID"},
		{NewInvalidPagination(-1, 0), ErrInvalidPagination, "INVALID_PAGINATION"},
		{NewPublisherNotFound("x"), ErrPublisherNotFound, "PUBLISHER_NOT_FOUND"},
		{NewAuthorNotFound([]string{"x", "y"}), ErrAuthorNotFound, "AUTHOR_NOT_FOUND"},
		{NewInvalidCover("too big"), ErrInvalidCover, "COVER_INVALID"},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, tt.err, tt.sentinel)
		assert.Equal(t, tt.code, tt.err.Code)
	}
	assert.Equal(t, "Authors not found: x, y", NewAuthorNotFound([]string{"x", "y"}).Message)
}

func TestBookDto_AuthorSlugs(t *testing.T) {
	assert.Nil(t, BookDto{}.AuthorSlugs())
	d := BookDto{Authors: []AuthorDto{{Slug: "a"}, {Slug: "b"}}}
	assert.Equal(t, []string{"a", "b"}, d.AuthorSlugs())
}

func TestCoverKeys(t *testing.T) {
	assert.Equal(t, "covers/123/cover1.jpg", CoverKey("123", "cover1.jpg"))
	assert.Equal(t, "covers/123/", CoverPrefix("123"))
	assert.Equal(t, "covers/123/thumbnail.jpg", CoverKey("123", ThumbnailFileName))
}
