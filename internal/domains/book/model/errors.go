package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrBookAlreadyExists = errors.New("book already exists")
	ErrInvalidBook       = errors.New("invalid book")
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrPublisherNotFound = errors.New("publisher not found")
	ErrAuthorNotFound    = errors.New("author not found")
	ErrInvalidCover      = errors.New("invalid cover")
)

// BusinessError is a domain failure the caller can act on.
// errors.Is matches it against its sentinel.
type BusinessError struct {
	Code    string
	Message string
	Details map[string]string

	sentinel error
}

func (e *BusinessError) Error() string {
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.sentinel
}

func NewBookNotFound(isbn string) *BusinessError {
	return &BusinessError{
		Code:     "BOOK_NOT_FOUND",
		Message:  fmt.Sprintf("Book with isbn %s not found", isbn),
		sentinel: ErrBookNotFound,
	}
}

func NewBookAlreadyExists(isbn string) *BusinessError {
	return &BusinessError{
		Code:     "BOOK_ALREADY_EXISTS",
		Message:  fmt.Sprintf("Book with isbn %s already exists", isbn),
		sentinel: ErrBookAlreadyExists,
	}
}

func NewInvalidBook(details map[string]string) *BusinessError {
	return &BusinessError{
		Code:     "BOOK_INVALID",
		Message:  "Book data is invalid",
		Details:  details,
		sentinel: ErrInvalidBook,
	}
}

func NewInvalidPagination(page, size int) *BusinessError {
	return &BusinessError{
		Code:     "INVALID_PAGINATION",
		Message:  fmt.Sprintf("Invalid pagination page=%d size=%d: page must be >= 0 and size >= 1", page, size),
		sentinel: ErrInvalidPagination,
	}
}

func NewPublisherNotFound(slug string) *BusinessError {
	return &BusinessError{
		Code:     "PUBLISHER_NOT_FOUND",
		Message:  fmt.Sprintf("Publisher with slug %s not found", slug),
		sentinel: ErrPublisherNotFound,
	}
}

func NewAuthorNotFound(slugs []string) *BusinessError {
	return &BusinessError{
		Code:     "AUTHOR_NOT_FOUND",
		Message:  fmt.Sprintf("Authors not found: %s", strings.Join(slugs, ", ")),
		sentinel: ErrAuthorNotFound,
	}
}

func NewInvalidCover(reason string) *BusinessError {
	return &BusinessError{
		Code:     "COVER_INVALID",
		Message:  "Cover is invalid: " + reason,
		sentinel: ErrInvalidCover,
	}
}

// AsBusinessError unwraps err to a *BusinessError if it carries one.
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
