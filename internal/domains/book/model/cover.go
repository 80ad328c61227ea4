package model

import "fmt"

// ThumbnailFileName is the name of the generated thumbnail next to the cover.
const ThumbnailFileName = "thumbnail.jpg"

// CoverKey is the object storage key of a cover file.
func CoverKey(isbn, filename string) string {
	return fmt.Sprintf("covers/%s/%s", isbn, filename)
}

// CoverPrefix holds every object stored for a book.
func CoverPrefix(isbn string) string {
	return fmt.Sprintf("covers/%s/", isbn)
}
