package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/validation"
)

type AuthorsController struct {
	*Pages
	authors AuthorService
}

func NewAuthorsController(pages *Pages, authors AuthorService) *AuthorsController {
	return &AuthorsController{Pages: pages, authors: authors}
}

// List renders every author ordered by family name.
// GET /catalog/authors
func (ac *AuthorsController) List(c *gin.Context) {
	authors, err := ac.authors.ListAuthors(c.Request.Context())
	if err != nil {
		ac.renderError(c, err, "Authors")
		return
	}
	ac.render(c, http.StatusOK, "author_list", gin.H{
		"Title":   "Author List",
		"Authors": authors,
	})
}

// Detail renders an author with their books.
// GET /catalog/author/:id
func (ac *AuthorsController) Detail(c *gin.Context) {
	detail, err := ac.authors.AuthorDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		ac.renderError(c, err, "Author")
		return
	}
	ac.render(c, http.StatusOK, "author_detail", gin.H{
		"Title":   "Author: " + detail.Author.Name(),
		"Detail":  detail,
		"History": ac.historyFor(catalog.KindAuthor, detail.Author.ID),
	})
}

// CreateForm renders an empty author form.
// GET /catalog/author/create
func (ac *AuthorsController) CreateForm(c *gin.Context) {
	ac.render(c, http.StatusOK, "author_form", gin.H{"Title": "Create Author"})
}

// Create stores a new author and redirects to it.
// POST /catalog/author/create
func (ac *AuthorsController) Create(c *gin.Context) {
	var form validation.AuthorForm
	if !ac.bind(c, &form) {
		return
	}

	author, err := ac.authors.CreateAuthor(c.Request.Context(), form)
	if errs, ok := validationErrors(err); ok {
		ac.render(c, http.StatusUnprocessableEntity, "author_form", gin.H{
			"Title":  "Create Author",
			"Author": author,
			"Errors": errs,
		})
		return
	}
	if err != nil {
		ac.renderError(c, err, "Author")
		return
	}
	ac.redirect(c, author.URL(), "Author created.")
}

// UpdateForm renders the form filled with the stored author.
// GET /catalog/author/:id/update
func (ac *AuthorsController) UpdateForm(c *gin.Context) {
	author, err := ac.authors.GetAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		ac.renderError(c, err, "Author")
		return
	}
	ac.render(c, http.StatusOK, "author_form", gin.H{
		"Title":  "Update Author",
		"Author": author,
	})
}

// Update replaces the author and redirects to it.
// POST /catalog/author/:id/update
func (ac *AuthorsController) Update(c *gin.Context) {
	var form validation.AuthorForm
	if !ac.bind(c, &form) {
		return
	}

	author, err := ac.authors.UpdateAuthor(c.Request.Context(), c.Param("id"), form)
	if errs, ok := validationErrors(err); ok {
		ac.render(c, http.StatusUnprocessableEntity, "author_form", gin.H{
			"Title":  "Update Author",
			"Author": author,
			"Errors": errs,
		})
		return
	}
	if err != nil {
		ac.renderError(c, err, "Author")
		return
	}
	ac.redirect(c, author.URL(), "Author updated.")
}

// DeleteForm renders the confirmation page, listing books that block the delete.
// GET /catalog/author/:id/delete
func (ac *AuthorsController) DeleteForm(c *gin.Context) {
	detail, err := ac.authors.AuthorDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		ac.renderError(c, err, "Author")
		return
	}
	ac.render(c, http.StatusOK, "author_delete", gin.H{
		"Title":  "Delete Author",
		"Detail": detail,
	})
}

// Delete removes the author unless books still reference them.
// POST /catalog/author/:id/delete
func (ac *AuthorsController) Delete(c *gin.Context) {
	detail, err := ac.authors.DeleteAuthor(c.Request.Context(), c.Param("id"))
	if blocked, ok := blockedError(err); ok {
		ac.render(c, http.StatusConflict, "author_delete", gin.H{
			"Title":   "Delete Author",
			"Detail":  detail,
			"Blocked": blocked,
		})
		return
	}
	if err != nil {
		ac.renderError(c, err, "Author")
		return
	}
	ac.redirect(c, "/catalog/authors", "Author deleted.")
}
