package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/pkg/database"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	// books.isbn primary key; other unique violations (book_authors) are not ISBN conflicts
	booksPrimaryKey = "books_pkey"
)

// postgresRepository - Raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresRepository{pool: pool}
}

const selectBookColumns = `
	SELECT b.isbn, b.title_es, b.title_en, b.synopsis_es, b.synopsis_en,
	       b.base_price, b.discount_percentage, b.cover, b.publication_date,
	       p.slug, p.name
	FROM books b
	LEFT JOIN publishers p ON p.slug = b.publisher_slug`

func (r *postgresRepository) FindAll(ctx context.Context, page, size int) ([]BookEntity, error) {
	query := selectBookColumns + `
	ORDER BY b.isbn
	LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, size, offset(page, size))
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []BookEntity{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	if err := r.loadAuthors(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *postgresRepository) FindByIsbn(ctx context.Context, isbn string) (BookEntity, bool, error) {
	query := selectBookColumns + `
	WHERE b.isbn = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, isbn))
	if errors.Is(err, pgx.ErrNoRows) {
		return BookEntity{}, false, nil
	}
	if err != nil {
		return BookEntity{}, false, err
	}

	books := []BookEntity{book}
	if err := r.loadAuthors(ctx, books); err != nil {
		return BookEntity{}, false, err
	}
	return books[0], true, nil
}

// loadAuthors fills Authors for every book with a single query.
func (r *postgresRepository) loadAuthors(ctx context.Context, books []BookEntity) error {
	if len(books) == 0 {
		return nil
	}

	index := make(map[string]int, len(books))
	isbns := make([]string, len(books))
	for i, b := range books {
		index[b.Isbn] = i
		isbns[i] = b.Isbn
	}

	query := `
		SELECT ba.book_isbn, a.name, a.surname, a.biography_es, a.biography_en,
		       a.birth_year, a.death_year, a.slug
		FROM book_authors ba
		JOIN authors a ON a.slug = ba.author_slug
		WHERE ba.book_isbn = ANY($1)
		ORDER BY ba.book_isbn, ba.position`

	rows, err := r.pool.Query(ctx, query, pq.Array(isbns))
	if err != nil {
		return fmt.Errorf("failed to load authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var isbn string
		var a AuthorEntity
		if err := rows.Scan(&isbn, &a.Name, &a.Surname, &a.BiographyEs, &a.BiographyEn,
			&a.BirthYear, &a.DeathYear, &a.Slug); err != nil {
			return fmt.Errorf("failed to scan author: %w", err)
		}
		i := index[isbn]
		books[i].Authors = append(books[i].Authors, a)
	}
	return rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, book BookEntity) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO books (
				isbn, title_es, title_en, synopsis_es, synopsis_en,
				base_price, discount_percentage, cover, publication_date, publisher_slug
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

		if _, err := tx.Exec(ctx, query, bookArgs(book)...); err != nil {
			return err
		}
		return insertAuthors(ctx, tx, book.Isbn, book.AuthorSlugs())
	})
	if err != nil {
		return mapWriteError("insert", err)
	}

	log.Info().Str("isbn", book.Isbn).Msg("[BookRepo] Book created")
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, book BookEntity) error {
	updated, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		query := `
			UPDATE books
			SET title_es = $2, title_en = $3, synopsis_es = $4, synopsis_en = $5,
			    base_price = $6, discount_percentage = $7, cover = $8,
			    publication_date = $9, publisher_slug = $10
			WHERE isbn = $1`

		result, err := tx.Exec(ctx, query, bookArgs(book)...)
		if err != nil {
			return 0, err
		}
		if result.RowsAffected() == 0 {
			return 0, nil
		}

		if _, err := tx.Exec(ctx, `DELETE FROM book_authors WHERE book_isbn = $1`, book.Isbn); err != nil {
			return 0, err
		}
		if err := insertAuthors(ctx, tx, book.Isbn, book.AuthorSlugs()); err != nil {
			return 0, err
		}
		return result.RowsAffected(), nil
	})
	if err != nil {
		return mapWriteError("update", err)
	}
	if updated == 0 {
		return ErrNotFound
	}

	log.Info().Str("isbn", book.Isbn).Msg("[BookRepo] Book updated")
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, isbn string) (bool, error) {
	// book_authors rows go with ON DELETE CASCADE
	result, err := r.pool.Exec(ctx, `DELETE FROM books WHERE isbn = $1`, isbn)
	if err != nil {
		return false, fmt.Errorf("failed to delete book: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *postgresRepository) UpdateCover(ctx context.Context, isbn, cover string) error {
	result, err := r.pool.Exec(ctx, `UPDATE books SET cover = $2 WHERE isbn = $1`, isbn, cover)
	if err != nil {
		return fmt.Errorf("failed to update cover: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) PublisherExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM publishers WHERE slug = $1)", slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check publisher: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) MissingAuthors(ctx context.Context, slugs []string) ([]string, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, "SELECT slug FROM authors WHERE slug = ANY($1)", pq.Array(slugs))
	if err != nil {
		return nil, fmt.Errorf("failed to check authors: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to check authors: %w", err)
	}

	existing := make(map[string]struct{}, len(found))
	for _, slug := range found {
		existing[slug] = struct{}{}
	}
	return missingSlugs(slugs, func(slug string) bool {
		_, ok := existing[slug]
		return ok
	}), nil
}

func insertAuthors(ctx context.Context, tx pgx.Tx, isbn string, slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}
	query := `
		INSERT INTO book_authors (book_isbn, author_slug, position)
		SELECT $1, t.slug, t.ord
		FROM unnest($2::text[]) WITH ORDINALITY AS t(slug, ord)`

	_, err := tx.Exec(ctx, query, isbn, pq.Array(slugs))
	return err
}

func bookArgs(b BookEntity) []interface{} {
	var publisherSlug *string
	if b.Publisher != nil {
		publisherSlug = &b.Publisher.Slug
	}
	return []interface{}{
		b.Isbn, b.TitleEs, b.TitleEn, b.SynopsisEs, b.SynopsisEn,
		b.BasePrice, b.DiscountPercentage, b.Cover, b.PublicationDate, publisherSlug,
	}
}

func scanBook(row pgx.Row) (BookEntity, error) {
	var (
		b             BookEntity
		publisherSlug *string
		publisherName *string
	)
	err := row.Scan(
		&b.Isbn, &b.TitleEs, &b.TitleEn, &b.SynopsisEs, &b.SynopsisEn,
		&b.BasePrice, &b.DiscountPercentage, &b.Cover, &b.PublicationDate,
		&publisherSlug, &publisherName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BookEntity{}, err
		}
		return BookEntity{}, fmt.Errorf("failed to scan book: %w", err)
	}

	if publisherSlug != nil {
		b.Publisher = &PublisherEntity{Slug: *publisherSlug}
		if publisherName != nil {
			b.Publisher.Name = *publisherName
		}
	}
	return b, nil
}

// mapWriteError turns constraint violations into repository errors.
func mapWriteError(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if pgErr.ConstraintName == booksPrimaryKey {
				return ErrDuplicateIsbn
			}
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrInvalidReference)
		}
	}
	return fmt.Errorf("failed to %s book: %w", op, err)
}
