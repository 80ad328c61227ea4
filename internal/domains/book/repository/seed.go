package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bookstore-catalog/internal/shared/utils"
)

// SeedDemoCatalog fills an empty memory repository with a small catalog
// so the API is usable with STORAGE_DRIVER=memory.
func SeedDemoCatalog(ctx context.Context, r *MemoryRepository) error {
	alpaca := PublisherEntity{Name: "Alpaca"}
	alpaca.Slug = utils.GenerateSlug(alpaca.Name)

	cervantes := AuthorEntity{
		Name:        "Miguel",
		Surname:     "de Cervantes",
		BiographyEs: "Novelista, poeta y dramaturgo español.",
		BiographyEn: "Spanish novelist, poet and playwright.",
		BirthYear:   1547,
		DeathYear:   1616,
	}
	cervantes.Slug = utils.GenerateSlug(cervantes.Name + " " + cervantes.Surname)

	r.AddPublisher(alpaca)
	r.AddAuthor(cervantes)

	books := []BookEntity{
		{
			Isbn:               "9788467033175",
			TitleEs:            "Don Quijote de la Mancha",
			TitleEn:            "Don Quixote",
			SynopsisEs:         "Las aventuras de un hidalgo manchego.",
			SynopsisEn:         "The adventures of a gentleman from La Mancha.",
			BasePrice:          decimal.RequireFromString("24.95"),
			DiscountPercentage: 10,
			Cover:              "quijote.jpg",
			PublicationDate:    time.Date(2015, 4, 23, 0, 0, 0, 0, time.UTC),
			Publisher:          &alpaca,
			Authors:            []AuthorEntity{cervantes},
		},
		{
			Isbn:            "9788437604947",
			TitleEs:         "Novelas ejemplares",
			TitleEn:         "Exemplary Novels",
			BasePrice:       decimal.RequireFromString("15.50"),
			Cover:           "novelas.png",
			PublicationDate: time.Date(2001, 10, 1, 0, 0, 0, 0, time.UTC),
			Publisher:       &alpaca,
			Authors:         []AuthorEntity{cervantes},
		},
	}
	for _, b := range books {
		if err := r.Create(ctx, b); err != nil {
			return err
		}
	}
	return nil
}
