package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/entities"
)

func TestBooksController_CreateForm(t *testing.T) {
	app := setupApp(t)
	app.author(t, "Ursula", "LeGuin")
	app.genre(t, "Fantasy")

	w := app.get(t, "/catalog/book/create")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "LeGuin, Ursula")
	assert.Contains(t, w.Body.String(), "Fantasy")
}

func TestBooksController_Create(t *testing.T) {
	app := setupApp(t)
	author := app.author(t, "Ursula", "LeGuin")
	fantasy := app.genre(t, "Fantasy")
	app.genre(t, "Poetry")

	w := app.post(t, "/catalog/book/create", url.Values{
		"title":   {"A Wizard of Earthsea"},
		"author":  {author.ID},
		"summary": {"Ged learns <magic> & more"},
		"isbn":    {"9780547773742"},
		"genre":   {fantasy.ID},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/catalog/book/"))

	w = app.get(t, location)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "A Wizard of Earthsea")
	assert.Contains(t, body, "Ged learns &lt;magic&gt; &amp; more")
	assert.NotContains(t, body, "<magic>")
	assert.Contains(t, body, fantasy.URL())
	assert.Contains(t, body, "There are no copies of this book in the library.")
}

func TestBooksController_CreateInvalid(t *testing.T) {
	app := setupApp(t)
	fantasy := app.genre(t, "Fantasy")
	poetry := app.genre(t, "Poetry")

	w := app.post(t, "/catalog/book/create", url.Values{
		"title":  {"Orphan"},
		"author": {"no-such-author"},
		"genre":  {fantasy.ID},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Summary must not be empty.")
	assert.Contains(t, body, "ISBN must not be empty.")
	assert.Contains(t, body, "Selected author does not exist.")
	assert.Contains(t, body, `value="`+fantasy.ID+`" checked`)
	assert.NotContains(t, body, `value="`+poetry.ID+`" checked`)

	books, err := app.catalog.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBooksController_Update(t *testing.T) {
	app := setupApp(t)
	author := app.author(t, "Ursula", "LeGuin")
	fantasy := app.genre(t, "Fantasy")
	poetry := app.genre(t, "Poetry")
	book := app.book(t, "Earthsea", author, fantasy)

	w := app.get(t, book.URL()+"/update")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="`+fantasy.ID+`" checked`)

	w = app.post(t, book.URL()+"/update", url.Values{
		"title":   {"Earthsea"},
		"author":  {author.ID},
		"summary": {"Revised"},
		"isbn":    {"9780547773742"},
		"genre":   {poetry.ID},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, book.URL(), w.Header().Get("Location"))

	detail, err := app.catalog.BookDetail(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Revised", detail.Book.Summary)
	require.Len(t, detail.Book.Genres, 1)
	assert.Equal(t, poetry.ID, detail.Book.Genres[0].ID)
}

func TestBooksController_Delete(t *testing.T) {
	app := setupApp(t)
	book := app.book(t, "Earthsea", app.author(t, "Ursula", "LeGuin"))
	instance := app.instance(t, book, entities.StatusAvailable)

	w := app.get(t, book.URL()+"/delete")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Delete the following copies")

	w = app.post(t, book.URL()+"/delete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	_, err := app.catalog.DeleteInstance(context.Background(), instance.ID)
	require.NoError(t, err)

	w = app.post(t, book.URL()+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/books", w.Header().Get("Location"))
}

func TestBooksController_NotFound(t *testing.T) {
	app := setupApp(t)

	assert.Equal(t, http.StatusNotFound, app.get(t, "/catalog/book/missing").Code)
	assert.Equal(t, http.StatusNotFound, app.get(t, "/catalog/book/missing/update").Code)
	assert.Equal(t, http.StatusNotFound, app.post(t, "/catalog/book/missing/delete", nil).Code)
}
