// cmd/api/handlers.go
// This file contains all HTTP request handlers for the catalog.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and database models.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/bookcatalog/internal/data"
	"github.com/aoideee/bookcatalog/internal/validator"
)

// listBooksHandler handles GET /api/books.
// Optional ?search= matches title, author or description case-insensitively;
// optional ?genre= must match exactly. Books come back newest first.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	filters := data.BookFilters{
		Search: app.readString(qs, "search", ""),
		Genre:  app.readString(qs, "genre", ""),
	}

	books, err := app.models.Books.GetAll(filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /api/books/:id.
// An id that is not a positive integer is reported as 404, same as an
// unknown one.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.bookNotFoundResponse(w, r)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookHandler handles POST /api/books.
// Title and author are validated before anything reaches the database; the
// created book is returned with its database-assigned ID and timestamps.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.BookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if data.ValidateBookInput(v, input); !v.Valid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	book := &data.Book{}
	input.Apply(book)

	// Insert() also writes the auto-generated ID and timestamps back into book.
	err = app.models.Books.Insert(book)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /api/books/:id.
// The body replaces every editable field; optional fields left out are
// cleared. Responds 404 if the book does not exist.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.bookNotFoundResponse(w, r)
		return
	}

	var input data.BookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if data.ValidateBookInput(v, input); !v.Valid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	book := &data.Book{ID: id}
	input.Apply(book)

	err = app.models.Books.Update(book)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /api/books/:id.
// Responds with a confirmation message, or 404 if no book with that ID exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.bookNotFoundResponse(w, r)
		return
	}

	err = app.models.Books.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "book deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// statsHandler handles GET /api/stats.
func (app *applicationDependencies) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.models.Books.Stats()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, stats, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listGenresHandler handles GET /api/genres.
func (app *applicationDependencies) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := app.models.Books.Genres()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, genres, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
