// Package mapper converts books between the persistence, domain and
// transport representations. Every function returns a fresh value that
// shares no slices or pointers with its input.
package mapper

import (
	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/book/repository"
)

// EntityToDto is the read path: entity -> model -> DTO.
func EntityToDto(e repository.BookEntity) model.BookDto {
	return ModelToDto(EntityToModel(e))
}

// DtoToEntity is the write path: DTO -> model -> entity.
func DtoToEntity(d model.BookDto) repository.BookEntity {
	return ModelToEntity(DtoToModel(d))
}

func EntityToModel(e repository.BookEntity) model.Book {
	b := model.Book{
		Isbn:               e.Isbn,
		TitleEs:            e.TitleEs,
		TitleEn:            e.TitleEn,
		SynopsisEs:         e.SynopsisEs,
		SynopsisEn:         e.SynopsisEn,
		BasePrice:          e.BasePrice,
		DiscountPercentage: e.DiscountPercentage,
		Cover:              e.Cover,
		PublicationDate:    e.PublicationDate,
	}
	if e.Publisher != nil {
		b.Publisher = &model.Publisher{Name: e.Publisher.Name, Slug: e.Publisher.Slug}
	}
	if e.Authors != nil {
		b.Authors = make([]model.Author, len(e.Authors))
		for i, a := range e.Authors {
			b.Authors[i] = model.Author(a)
		}
	}
	return b
}

func ModelToDto(b model.Book) model.BookDto {
	d := model.BookDto{
		Isbn:               b.Isbn,
		TitleEs:            b.TitleEs,
		TitleEn:            b.TitleEn,
		SynopsisEs:         b.SynopsisEs,
		SynopsisEn:         b.SynopsisEn,
		BasePrice:          b.BasePrice,
		DiscountPercentage: b.DiscountPercentage,
		FinalPrice:         b.FinalPrice(),
		Cover:              b.Cover,
		PublicationDate:    b.PublicationDate,
	}
	if b.Publisher != nil {
		d.Publisher = &model.PublisherDto{Name: b.Publisher.Name, Slug: b.Publisher.Slug}
	}
	if b.Authors != nil {
		d.Authors = make([]model.AuthorDto, len(b.Authors))
		for i, a := range b.Authors {
			d.Authors[i] = AuthorToDto(a)
		}
	}
	return d
}

func DtoToModel(d model.BookDto) model.Book {
	b := model.Book{
		Isbn:               d.Isbn,
		TitleEs:            d.TitleEs,
		TitleEn:            d.TitleEn,
		SynopsisEs:         d.SynopsisEs,
		SynopsisEn:         d.SynopsisEn,
		BasePrice:          d.BasePrice,
		DiscountPercentage: d.DiscountPercentage,
		Cover:              d.Cover,
		PublicationDate:    d.PublicationDate,
	}
	if d.Publisher != nil {
		b.Publisher = &model.Publisher{Name: d.Publisher.Name, Slug: d.Publisher.Slug}
	}
	if d.Authors != nil {
		b.Authors = make([]model.Author, len(d.Authors))
		for i, a := range d.Authors {
			b.Authors[i] = model.Author(a)
		}
	}
	return b
}

func ModelToEntity(b model.Book) repository.BookEntity {
	e := repository.BookEntity{
		Isbn:               b.Isbn,
		TitleEs:            b.TitleEs,
		TitleEn:            b.TitleEn,
		SynopsisEs:         b.SynopsisEs,
		SynopsisEn:         b.SynopsisEn,
		BasePrice:          b.BasePrice,
		DiscountPercentage: b.DiscountPercentage,
		Cover:              b.Cover,
		PublicationDate:    b.PublicationDate,
	}
	if b.Publisher != nil {
		e.Publisher = &repository.PublisherEntity{Name: b.Publisher.Name, Slug: b.Publisher.Slug}
	}
	if b.Authors != nil {
		e.Authors = make([]repository.AuthorEntity, len(b.Authors))
		for i, a := range b.Authors {
			e.Authors[i] = repository.AuthorEntity(a)
		}
	}
	return e
}

func AuthorToDto(a model.Author) model.AuthorDto {
	return model.AuthorDto{
		Name:        a.Name,
		Surname:     a.Surname,
		BiographyEs: a.BiographyEs,
		BiographyEn: a.BiographyEn,
		BirthYear:   a.BirthYear,
		DeathYear:   a.DeathYear,
		Slug:        a.Slug,
	}
}
