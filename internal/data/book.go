// Package data provides the data models and database interaction logic
// for the book catalog.
package data

import (
	"math"
	"time"

	"github.com/aoideee/bookcatalog/internal/validator"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table. Optional attributes are
// pointers so that an absent value (NULL) is distinct from a zero value.
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Year        *int      `json:"year"`
	Genre       *string   `json:"genre"`
	Pages       *int      `json:"pages"`
	Price       *float64  `json:"price"`
	ISBN        *string   `json:"isbn"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookInput holds the fields a client supplies when creating or replacing a
// book. POST and PUT share the same shape: every editable field is sent
// together and a missing optional field is stored as NULL.
type BookInput struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Year        *int     `json:"year"`
	Genre       *string  `json:"genre"`
	Pages       *int     `json:"pages"`
	Price       *float64 `json:"price"`
	ISBN        *string  `json:"isbn"`
	Description *string  `json:"description"`
}

// Stats holds the aggregate counters returned by GET /api/stats.
type Stats struct {
	TotalBooks    int64   `json:"totalBooks"`
	UniqueAuthors int64   `json:"uniqueAuthors"`
	UniqueGenres  int64   `json:"uniqueGenres"`
	TotalValue    float64 `json:"totalValue"`
}

// Column limits mirror the VARCHAR sizes of the books table.
const (
	maxTitleChars  = 500
	maxAuthorChars = 300
	maxGenreChars  = 100
	maxISBNChars   = 20

	// NUMERIC(10, 2) holds at most eight integer digits.
	maxPrice = 99999999.99
)

// ValidateBookInput records every problem with input on v. Only presence of
// title and author plus the column limits are enforced: string lengths,
// INTEGER range for year and pages, NUMERIC(10, 2) range for price.
func ValidateBookInput(v *validator.Validator, input BookInput) {
	v.Check(validator.NotBlank(input.Title), "title", "must be provided")
	v.Check(validator.NotBlank(input.Author), "author", "must be provided")

	v.Check(validator.MaxChars(input.Title, maxTitleChars), "title", "must not be more than 500 characters long")
	v.Check(validator.MaxChars(input.Author, maxAuthorChars), "author", "must not be more than 300 characters long")

	if input.Genre != nil {
		v.Check(validator.MaxChars(*input.Genre, maxGenreChars), "genre", "must not be more than 100 characters long")
	}
	if input.ISBN != nil {
		v.Check(validator.MaxChars(*input.ISBN, maxISBNChars), "isbn", "must not be more than 20 characters long")
	}

	if input.Year != nil {
		v.Check(validator.Between(*input.Year, math.MinInt32, math.MaxInt32), "year", "must be a 32-bit integer")
	}
	if input.Pages != nil {
		v.Check(validator.Between(*input.Pages, math.MinInt32, math.MaxInt32), "pages", "must be a 32-bit integer")
	}
	if input.Price != nil {
		v.Check(validator.Between(*input.Price, -maxPrice, maxPrice), "price", "must be between -99999999.99 and 99999999.99")
	}
}

// Apply copies every editable field from input onto b, replacing whatever
// was there before.
func (input BookInput) Apply(b *Book) {
	b.Title = input.Title
	b.Author = input.Author
	b.Year = input.Year
	b.Genre = input.Genre
	b.Pages = input.Pages
	b.Price = input.Price
	b.ISBN = input.ISBN
	b.Description = input.Description
}
