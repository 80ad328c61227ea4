package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookEntity is a catalog row as persisted. Isbn is the primary key.
type BookEntity struct {
	Isbn               string
	TitleEs            string
	TitleEn            string
	SynopsisEs         string
	SynopsisEn         string
	BasePrice          decimal.Decimal
	DiscountPercentage float64
	Cover              string
	PublicationDate    time.Time
	Publisher          *PublisherEntity
	Authors            []AuthorEntity
}

type PublisherEntity struct {
	Name string
	Slug string
}

type AuthorEntity struct {
	Name        string
	Surname     string
	BiographyEs string
	BiographyEn string
	BirthYear   int
	DeathYear   int
	Slug        string
}

// AuthorSlugs returns the author slugs in order.
func (b BookEntity) AuthorSlugs() []string {
	if len(b.Authors) == 0 {
		return nil
	}
	slugs := make([]string, len(b.Authors))
	for i, a := range b.Authors {
		slugs[i] = a.Slug
	}
	return slugs
}

// Clone returns a copy that shares no pointers or slices with b.
func (b BookEntity) Clone() BookEntity {
	out := b
	if b.Publisher != nil {
		p := *b.Publisher
		out.Publisher = &p
	}
	if b.Authors != nil {
		out.Authors = make([]AuthorEntity, len(b.Authors))
		copy(out.Authors, b.Authors)
	}
	return out
}
