package data

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aoideee/bookcatalog/internal/validator"
)

func ptr[T any](v T) *T { return &v }

func TestValidateBookInput(t *testing.T) {
	tests := []struct {
		name   string
		input  BookInput
		errors map[string]string
	}{
		{
			name:   "minimal",
			input:  BookInput{Title: "Dune", Author: "Herbert"},
			errors: map[string]string{},
		},
		{
			name:   "missing title",
			input:  BookInput{Author: "X"},
			errors: map[string]string{"title": "must be provided"},
		},
		{
			name:   "blank author",
			input:  BookInput{Title: "Dune", Author: "   "},
			errors: map[string]string{"author": "must be provided"},
		},
		{
			name:  "oversized optional fields",
			input: BookInput{Title: "Dune", Author: "Herbert", Genre: ptr(strings.Repeat("g", 101)), ISBN: ptr(strings.Repeat("9", 21))},
			errors: map[string]string{
				"genre": "must not be more than 100 characters long",
				"isbn":  "must not be more than 20 characters long",
			},
		},
		{
			name: "numbers outside column ranges",
			input: BookInput{
				Title:  "Dune",
				Author: "Herbert",
				Year:   ptr(math.MaxInt32 + 1),
				Pages:  ptr(math.MinInt32 - 1),
				Price:  ptr(1e9),
			},
			errors: map[string]string{
				"year":  "must be a 32-bit integer",
				"pages": "must be a 32-bit integer",
				"price": "must be between -99999999.99 and 99999999.99",
			},
		},
		{
			name:   "numbers at column limits",
			input:  BookInput{Title: "Dune", Author: "Herbert", Year: ptr(math.MaxInt32), Pages: ptr(0), Price: ptr(99999999.99)},
			errors: map[string]string{},
		},
		{
			name:   "oversized title",
			input:  BookInput{Title: strings.Repeat("t", 501), Author: "Herbert"},
			errors: map[string]string{"title": "must not be more than 500 characters long"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateBookInput(v, tt.input)
			assert.Equal(t, tt.errors, v.Errors)
		})
	}
}

func TestApplyReplacesEveryEditableField(t *testing.T) {
	book := &Book{
		ID:          7,
		Title:       "Old",
		Author:      "Someone",
		Year:        ptr(1900),
		Genre:       ptr("Drama"),
		Pages:       ptr(100),
		Price:       ptr(9.99),
		ISBN:        ptr("123"),
		Description: ptr("old description"),
	}

	BookInput{Title: "Dune", Author: "Herbert", Year: ptr(1965)}.Apply(book)

	assert.Equal(t, int64(7), book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Herbert", book.Author)
	assert.Equal(t, ptr(1965), book.Year)
	assert.Nil(t, book.Genre)
	assert.Nil(t, book.Pages)
	assert.Nil(t, book.Price)
	assert.Nil(t, book.ISBN)
	assert.Nil(t, book.Description)
}

func TestLikePatternEscapesMetacharacters(t *testing.T) {
	assert.Equal(t, "%dune%", likePattern("dune"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\dir%`, likePattern(`c:\dir`))
}
