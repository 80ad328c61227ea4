package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookDto is the JSON shape exposed to API clients.
// FinalPrice is derived and ignored on input.
type BookDto struct {
	Isbn               string          `json:"isbn"`
	TitleEs            string          `json:"title_es"`
	TitleEn            string          `json:"title_en"`
	SynopsisEs         string          `json:"synopsis_es"`
	SynopsisEn         string          `json:"synopsis_en"`
	BasePrice          decimal.Decimal `json:"base_price"`
	DiscountPercentage float64         `json:"discount_percentage"`
	FinalPrice         decimal.Decimal `json:"final_price"`
	Cover              string          `json:"cover"`
	PublicationDate    time.Time       `json:"publication_date"`
	Publisher          *PublisherDto   `json:"publisher,omitempty"`
	Authors            []AuthorDto     `json:"authors,omitempty"`
}

type PublisherDto struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type AuthorDto struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	BiographyEs string `json:"biography_es"`
	BiographyEn string `json:"biography_en"`
	BirthYear   int    `json:"birth_year"`
	DeathYear   int    `json:"death_year"`
	Slug        string `json:"slug"`
}

// AuthorSlugs returns the author slugs in order.
func (d BookDto) AuthorSlugs() []string {
	if len(d.Authors) == 0 {
		return nil
	}
	slugs := make([]string, len(d.Authors))
	for i, a := range d.Authors {
		slugs[i] = a.Slug
	}
	return slugs
}
