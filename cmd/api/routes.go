// cmd/api/routes.go
package main

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the recoverPanic and logRequest middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → logRequest → router
//
// Endpoints:
//
//	GET    /api/books        – list books (?search=, ?genre=)
//	POST   /api/books        – create a new book
//	GET    /api/books/:id    – retrieve a single book by ID
//	PUT    /api/books/:id    – replace an existing book
//	DELETE /api/books/:id    – delete a book by ID
//	GET    /api/stats        – catalog counters
//	GET    /api/genres       – distinct genres, sorted
//
// Anything outside /api is served from the static directory.
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = app.staticOrNotFound(http.FileServer(http.Dir(app.config.staticDir)))
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/api/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/api/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/api/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/api/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/api/books/:id", app.deleteBookHandler)

	router.HandlerFunc(http.MethodGet, "/api/stats", app.statsHandler)
	router.HandlerFunc(http.MethodGet, "/api/genres", app.listGenresHandler)

	return app.recoverPanic(app.logRequest(router))
}

// staticOrNotFound hands unmatched non-API GET and HEAD requests to the
// static file server and answers everything else with a JSON 404.
func (app *applicationDependencies) staticOrNotFound(files http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isAPI := r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/")
		if isAPI || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
			app.notFoundResponse(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
