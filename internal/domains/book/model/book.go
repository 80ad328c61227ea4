package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Book is the domain view of a catalog entry.
type Book struct {
	Isbn               string
	TitleEs            string
	TitleEn            string
	SynopsisEs         string
	SynopsisEn         string
	BasePrice          decimal.Decimal
	DiscountPercentage float64
	Cover              string
	PublicationDate    time.Time
	Publisher          *Publisher
	Authors            []Author
}

type Publisher struct {
	Name string
	Slug string
}

type Author struct {
	Name        string
	Surname     string
	BiographyEs string
	BiographyEn string
	BirthYear   int
	DeathYear   int
	Slug        string
}

var hundred = decimal.NewFromInt(100)

// FinalPrice applies the discount to the base price, rounded to cents.
func (b Book) FinalPrice() decimal.Decimal {
	discount := decimal.NewFromFloat(b.DiscountPercentage)
	factor := hundred.Sub(discount).Div(hundred)
	return b.BasePrice.Mul(factor).Round(2)
}

// NormalizeIsbn strips the hyphens and spaces ISBNs are often printed with.
func NormalizeIsbn(isbn string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(isbn))
}
