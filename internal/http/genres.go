package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/validation"
)

type GenresController struct {
	*Pages
	genres GenreService
}

func NewGenresController(pages *Pages, genres GenreService) *GenresController {
	return &GenresController{Pages: pages, genres: genres}
}

// GET /catalog/genres
func (gc *GenresController) List(c *gin.Context) {
	genres, err := gc.genres.ListGenres(c.Request.Context())
	if err != nil {
		gc.renderError(c, err, "Genres")
		return
	}
	gc.render(c, http.StatusOK, "genre_list", gin.H{
		"Title":  "Genre List",
		"Genres": genres,
	})
}

// GET /catalog/genre/:id
func (gc *GenresController) Detail(c *gin.Context) {
	detail, err := gc.genres.GenreDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		gc.renderError(c, err, "Genre")
		return
	}
	gc.render(c, http.StatusOK, "genre_detail", gin.H{
		"Title":   "Genre: " + detail.Genre.Name,
		"Detail":  detail,
		"History": gc.historyFor(catalog.KindGenre, detail.Genre.ID),
	})
}

// GET /catalog/genre/create
func (gc *GenresController) CreateForm(c *gin.Context) {
	gc.render(c, http.StatusOK, "genre_form", gin.H{"Title": "Create Genre"})
}

// Create redirects to the new genre, or to the existing one when the name
// is already taken.
// POST /catalog/genre/create
func (gc *GenresController) Create(c *gin.Context) {
	var form validation.GenreForm
	if !gc.bind(c, &form) {
		return
	}

	genre, err := gc.genres.CreateGenre(c.Request.Context(), form)
	if errs, ok := validationErrors(err); ok {
		gc.render(c, http.StatusUnprocessableEntity, "genre_form", gin.H{
			"Title":  "Create Genre",
			"Genre":  genre,
			"Errors": errs,
		})
		return
	}
	if err != nil {
		gc.renderError(c, err, "Genre")
		return
	}
	gc.redirect(c, genre.URL(), "")
}

// GET /catalog/genre/:id/update
func (gc *GenresController) UpdateForm(c *gin.Context) {
	genre, err := gc.genres.GetGenre(c.Request.Context(), c.Param("id"))
	if err != nil {
		gc.renderError(c, err, "Genre")
		return
	}
	gc.render(c, http.StatusOK, "genre_form", gin.H{
		"Title": "Update Genre",
		"Genre": genre,
	})
}

// Update renames the genre. When another genre already owns the new name
// the browser is sent to that genre instead.
// POST /catalog/genre/:id/update
func (gc *GenresController) Update(c *gin.Context) {
	var form validation.GenreForm
	if !gc.bind(c, &form) {
		return
	}

	genre, err := gc.genres.UpdateGenre(c.Request.Context(), c.Param("id"), form)
	if errs, ok := validationErrors(err); ok {
		gc.render(c, http.StatusUnprocessableEntity, "genre_form", gin.H{
			"Title":  "Update Genre",
			"Genre":  genre,
			"Errors": errs,
		})
		return
	}
	if err != nil {
		gc.renderError(c, err, "Genre")
		return
	}
	gc.redirect(c, genre.URL(), "")
}

// GET /catalog/genre/:id/delete
func (gc *GenresController) DeleteForm(c *gin.Context) {
	detail, err := gc.genres.GenreDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		gc.renderError(c, err, "Genre")
		return
	}
	gc.render(c, http.StatusOK, "genre_delete", gin.H{
		"Title":  "Delete Genre",
		"Detail": detail,
	})
}

// POST /catalog/genre/:id/delete
func (gc *GenresController) Delete(c *gin.Context) {
	detail, err := gc.genres.DeleteGenre(c.Request.Context(), c.Param("id"))
	if blocked, ok := blockedError(err); ok {
		gc.render(c, http.StatusConflict, "genre_delete", gin.H{
			"Title":   "Delete Genre",
			"Detail":  detail,
			"Blocked": blocked,
		})
		return
	}
	if err != nil {
		gc.renderError(c, err, "Genre")
		return
	}
	gc.redirect(c, "/catalog/genres", "Genre deleted.")
}
