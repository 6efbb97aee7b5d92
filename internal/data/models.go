// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// queryTimeout bounds every statement. It is derived from
// context.Background rather than the request, so a client that disconnects
// does not abort a statement already sent to the store.
const queryTimeout = 3 * time.Second

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// BookStore is the set of operations the HTTP layer performs against the
// books table.
type BookStore interface {
	Insert(book *Book) error
	Get(id int64) (*Book, error)
	GetAll(filters BookFilters) ([]*Book, error)
	Update(book *Book) error
	Delete(id int64) error
	Stats() (*Stats, error)
	Genres() ([]string, error)
}

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sql directly.
type Models struct {
	Books BookStore
}

// NewModels constructs a Models value wired up to the given database connection pool.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *sql.DB) Models {
	return Models{
		Books: BookModel{DB: db},
	}
}

// BookFilters holds the optional list filters taken from the query string.
// An empty field means the filter is not applied.
type BookFilters struct {
	Search string // case-insensitive substring of title, author or description
	Genre  string // exact genre match
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s for a substring LIKE match, escaping the LIKE
// metacharacters so they match literally.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// BookModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting book records.
type BookModel struct {
	DB *sql.DB // Shared database connection pool
}

const bookColumns = `id, title, author, year, genre, pages, price, isbn, description, created_at, updated_at`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (*Book, error) {
	var book Book
	err := s.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Year,
		&book.Genre,
		&book.Pages,
		&book.Price,
		&book.ISBN,
		&book.Description,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Insert adds a new book record to the database.
// After a successful insert, the database-assigned id, created_at, and
// updated_at values are written back into the book struct.
func (m BookModel) Insert(book *Book) error {
	query := `
		INSERT INTO books (title, author, year, genre, pages, price, isbn, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	args := []any{
		book.Title,
		book.Author,
		book.Year,
		book.Genre,
		book.Pages,
		book.Price,
		book.ISBN,
		book.Description,
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return m.DB.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	book, err := scanBook(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// GetAll returns every book matching filters, newest first. Rows created in
// the same instant are ordered by id so the result is stable.
func (m BookModel) GetAll(filters BookFilters) ([]*Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE ($1::text = '' OR title ILIKE $2 OR author ILIKE $2 OR description ILIKE $2)
		AND ($3::text = '' OR genre = $3::text)
		ORDER BY created_at DESC, id DESC`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, filters.Search, likePattern(filters.Search), filters.Genre)
	if err != nil {
		return nil, err
	}
	// Always close the result set when we are done to free the database connection.
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// Update replaces every editable column of the row matching book.ID and
// refreshes updated_at. created_at is never written. The full row as stored
// is scanned back into book. Returns ErrRecordNotFound if no row matched.
func (m BookModel) Update(book *Book) error {
	if book.ID < 1 {
		return ErrRecordNotFound
	}

	query := `
		UPDATE books
		SET title = $1, author = $2, year = $3, genre = $4, pages = $5,
			price = $6, isbn = $7, description = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING ` + bookColumns

	args := []any{
		book.Title,
		book.Author,
		book.Year,
		book.Genre,
		book.Pages,
		book.Price,
		book.ISBN,
		book.Description,
		book.ID,
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	updated, err := scanBook(m.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	*book = *updated
	return nil
}

// Delete removes the book with the given id from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(id int64) error {
	// Guard against obviously bad IDs before touching the database.
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM books WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// Stats computes the catalog counters with four independent reads. They
// are not run in a transaction, so a concurrent write may land between them.
func (m BookModel) Stats() (*Stats, error) {
	var stats Stats

	queries := []struct {
		query string
		dest  any
	}{
		{`SELECT COUNT(*) FROM books`, &stats.TotalBooks},
		{`SELECT COUNT(DISTINCT LOWER(author)) FROM books`, &stats.UniqueAuthors},
		{`SELECT COUNT(DISTINCT genre) FROM books WHERE genre IS NOT NULL AND genre <> ''`, &stats.UniqueGenres},
		{`SELECT COALESCE(SUM(price), 0) FROM books WHERE price IS NOT NULL`, &stats.TotalValue},
	}

	for _, q := range queries {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		err := m.DB.QueryRowContext(ctx, q.query).Scan(q.dest)
		cancel()
		if err != nil {
			return nil, err
		}
	}

	return &stats, nil
}

// Genres returns the distinct non-empty genres in ascending order.
func (m BookModel) Genres() ([]string, error) {
	query := `
		SELECT DISTINCT genre
		FROM books
		WHERE genre IS NOT NULL AND genre <> ''
		ORDER BY genre ASC`

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}
