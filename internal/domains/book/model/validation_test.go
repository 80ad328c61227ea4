package model

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDto() BookDto {
	return BookDto{
		Isbn:               "9780306406157",
		TitleEs:            "TitleEs1",
		TitleEn:            "TitleEn1",
		SynopsisEs:         "SynopsisEs1",
		SynopsisEn:         "SynopsisEn1",
		BasePrice:          decimal.RequireFromString("10.00"),
		DiscountPercentage: 5,
		Cover:              "cover1.jpg",
		PublicationDate:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Publisher:          &PublisherDto{Name: "alpaca", Slug: "alpaca"},
		Authors:            []AuthorDto{{Name: "a", Surname: "s", Slug: "d"}},
	}
}

func TestBookDto_Validate_Valid(t *testing.T) {
	assert.NoError(t, validDto().Validate())

	isbn10 := validDto()
	isbn10.Isbn = "0306406152"
	assert.NoError(t, isbn10.Validate())

	minimal := validDto()
	minimal.Publisher = nil
	minimal.Authors = nil
	minimal.Cover = ""
	minimal.SynopsisEs = ""
	minimal.BasePrice = decimal.Zero
	assert.NoError(t, minimal.Validate())
}

func TestBookDto_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *BookDto)
		field  string
	}{
		{"non numeric isbn", func(d *BookDto) { d.Isbn = "albacete" }, "isbn"},
		{"bad checksum", func(d *BookDto) { d.Isbn = "9780306406158" }, "isbn"},
		{"empty isbn", func(d *BookDto) { d.Isbn = "" }, "isbn"},
		{"audio cover", func(d *BookDto) { d.Cover = "sonido.mp3" }, "cover"},
		{"cover with path", func(d *BookDto) { d.Cover = "../etc/cover.jpg" }, "cover"},
		{"empty spanish title", func(d *BookDto) { d.TitleEs = "" }, "title_es"},
		{"empty english title", func(d *BookDto) { d.TitleEn = "" }, "title_en"},
		{"long title", func(d *BookDto) { d.TitleEn = strings.Repeat("x", MaxTitleLength+1) }, "title_en"},
		{"long synopsis", func(d *BookDto) { d.SynopsisEs = strings.Repeat("x", MaxSynopsisLength+1) }, "synopsis_es"},
		{"negative price", func(d *BookDto) { d.BasePrice = decimal.NewFromInt(-1) }, "base_price"},
		{"discount over 100", func(d *BookDto) { d.DiscountPercentage = 100.5 }, "discount_percentage"},
		{"negative discount", func(d *BookDto) { d.DiscountPercentage = -1 }, "discount_percentage"},
		{"missing date", func(d *BookDto) { d.PublicationDate = time.Time{} }, "publication_date"},
		{"future date", func(d *BookDto) { d.PublicationDate = time.Now().AddDate(1, 0, 0) }, "publication_date"},
		{"publisher without slug", func(d *BookDto) { d.Publisher = &PublisherDto{Name: "x"} }, "publisher.slug"},
		{"author without slug", func(d *BookDto) { d.Authors = append(d.Authors, AuthorDto{Name: "x"}) }, "authors.1.slug"},
		{"same author twice", func(d *BookDto) { d.Authors = append(d.Authors, AuthorDto{Name: "a", Slug: "d"}) }, "authors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := validDto()
			tt.mutate(&dto)

			err := dto.Validate()
			require.Error(t, err)

			details := ValidationDetails(err)
			assert.Contains(t, details, tt.field)
			assert.Len(t, details, 1)
		})
	}
}

func TestBookDto_Validate_CoverExtensionCaseInsensitive(t *testing.T) {
	dto := validDto()
	dto.Cover = "COVER.JPEG"
	assert.NoError(t, dto.Validate())
}

func TestValidateCoverFileName(t *testing.T) {
	assert.NoError(t, ValidateCoverFileName("front.webp"))
	assert.Error(t, ValidateCoverFileName(""))
	assert.Error(t, ValidateCoverFileName("sonido.mp3"))
	assert.Error(t, ValidateCoverFileName("noext"))
}

func TestValidationDetails_NonValidationError(t *testing.T) {
	assert.Empty(t, ValidationDetails(assert.AnError))
}
