package model

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

const (
	MaxTitleLength    = 255
	MaxSynopsisLength = 5000
)

// AllowedCoverExtensions lists the accepted cover file types.
var AllowedCoverExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// Validate checks the business rules a book must satisfy before it is stored.
// Existence of publisher and authors is checked by the service.
func (d BookDto) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Isbn, validation.Required, is.ISBN),
		validation.Field(&d.TitleEs, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&d.TitleEn, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&d.SynopsisEs, validation.RuneLength(0, MaxSynopsisLength)),
		validation.Field(&d.SynopsisEn, validation.RuneLength(0, MaxSynopsisLength)),
		validation.Field(&d.BasePrice, validation.By(nonNegative)),
		validation.Field(&d.DiscountPercentage, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&d.Cover, validation.By(coverFileName)),
		validation.Field(&d.PublicationDate, validation.Required, validation.By(notInFuture)),
		validation.Field(&d.Publisher),
		validation.Field(&d.Authors, validation.By(uniqueAuthorSlugs)),
	)
}

func (p PublisherDto) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Slug, validation.Required),
	)
}

func (a AuthorDto) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Slug, validation.Required),
	)
}

// ValidateCoverFileName checks a cover name outside of a full book.
func ValidateCoverFileName(name string) error {
	if name == "" {
		return errors.New("cannot be blank")
	}
	return coverFileName(name)
}

// uniqueAuthorSlugs rejects a book listing the same author twice.
// Blank slugs are left to AuthorDto.Validate.
func uniqueAuthorSlugs(value interface{}) error {
	authors, _ := value.([]AuthorDto)
	seen := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		if a.Slug == "" {
			continue
		}
		if _, dup := seen[a.Slug]; dup {
			return fmt.Errorf("author %s is listed more than once", a.Slug)
		}
		seen[a.Slug] = struct{}{}
	}
	return nil
}

func nonNegative(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if d.IsNegative() {
		return errors.New("must be no less than 0")
	}
	return nil
}

func coverFileName(value interface{}) error {
	name, _ := value.(string)
	if name == "" {
		return nil
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.New("must be a file name, not a path")
	}
	ext := strings.ToLower(path.Ext(name))
	for _, allowed := range AllowedCoverExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(AllowedCoverExtensions, ", "))
}

func notInFuture(value interface{}) error {
	t, _ := value.(time.Time)
	if t.After(time.Now()) {
		return errors.New("must not be in the future")
	}
	return nil
}

// ValidationDetails flattens ozzo errors into field -> message pairs,
// using dotted paths for nested fields (e.g. "authors.0.slug").
func ValidationDetails(err error) map[string]string {
	details := map[string]string{}
	var errs validation.Errors
	if errors.As(err, &errs) {
		flatten("", errs, details)
	}
	return details
}

func flatten(prefix string, errs validation.Errors, out map[string]string) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		field := k
		if prefix != "" {
			field = prefix + "." + k
		}
		var nested validation.Errors
		if errors.As(errs[k], &nested) {
			flatten(field, nested, out)
			continue
		}
		out[field] = errs[k].Error()
	}
}
