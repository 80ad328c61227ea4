package shared

// Background task types handled by cmd/worker.
const (
	TypeProcessBookCover = "book:process_cover"
	TypeDeleteBookCover  = "book:delete_cover"
)

// Queue names.
const (
	QueueBook    = "book"
	QueueDefault = "default"
)

// CoverPayload is the body of both cover tasks.
type CoverPayload struct {
	Isbn string `json:"isbn"`
	Key  string `json:"key,omitempty"` // object key of the uploaded original
}
