package http

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenresController_CreateReturnsExistingGenre(t *testing.T) {
	app := setupApp(t)
	existing := app.genre(t, "Fantasy")

	w := app.post(t, "/catalog/genre/create", url.Values{"name": {"FANTASY"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, existing.URL(), w.Header().Get("Location"))

	genres, err := app.catalog.ListGenres(context.Background())
	require.NoError(t, err)
	assert.Len(t, genres, 1)
}

func TestGenresController_CreateTooShort(t *testing.T) {
	app := setupApp(t)

	w := app.post(t, "/catalog/genre/create", url.Values{"name": {"Sf"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Genre name must be at least 3 characters long.")
	assert.Contains(t, w.Body.String(), `value="Sf"`)
}

func TestGenresController_UpdateToTakenName(t *testing.T) {
	app := setupApp(t)
	poetry := app.genre(t, "Poetry")
	fiction := app.genre(t, "Fiction")

	w := app.post(t, fiction.URL()+"/update", url.Values{"name": {"poetry"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, poetry.URL(), w.Header().Get("Location"))

	stored, err := app.catalog.GetGenre(context.Background(), fiction.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fiction", stored.Name)
}

func TestGenresController_Delete(t *testing.T) {
	app := setupApp(t)
	genre := app.genre(t, "Fantasy")
	book := app.book(t, "Earthsea", app.author(t, "Ursula", "LeGuin"), genre)

	w := app.post(t, genre.URL()+"/delete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Earthsea")

	_, err := app.catalog.DeleteBook(context.Background(), book.ID)
	require.NoError(t, err)

	w = app.post(t, genre.URL()+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/genres", w.Header().Get("Location"))

	w = app.get(t, genre.URL())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenresController_DetailListsBooks(t *testing.T) {
	app := setupApp(t)
	genre := app.genre(t, "Fantasy")
	app.book(t, "Earthsea", app.author(t, "Ursula", "LeGuin"), genre)

	w := app.get(t, genre.URL())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Genre: Fantasy")
	assert.Contains(t, w.Body.String(), "Earthsea")
}
