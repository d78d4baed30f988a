package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/validation"
)

type BooksController struct {
	*Pages
	books BookService
}

func NewBooksController(pages *Pages, books BookService) *BooksController {
	return &BooksController{Pages: pages, books: books}
}

// GET /catalog/books
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.books.ListBooks(c.Request.Context())
	if err != nil {
		bc.renderError(c, err, "Books")
		return
	}
	bc.render(c, http.StatusOK, "book_list", gin.H{
		"Title": "Book List",
		"Books": books,
	})
}

// Detail renders a book with its author, genres and copies.
// GET /catalog/book/:id
func (bc *BooksController) Detail(c *gin.Context) {
	detail, err := bc.books.BookDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		bc.renderError(c, err, "Book")
		return
	}
	bc.render(c, http.StatusOK, "book_detail", gin.H{
		"Title":   detail.Book.Title,
		"Detail":  detail,
		"History": bc.historyFor(catalog.KindBook, detail.Book.ID),
	})
}

// GET /catalog/book/create
func (bc *BooksController) CreateForm(c *gin.Context) {
	editor, err := bc.books.NewBookEditor(c.Request.Context())
	if err != nil {
		bc.renderError(c, err, "Book")
		return
	}
	bc.render(c, http.StatusOK, "book_form", gin.H{
		"Title":  "Create Book",
		"Editor": editor,
	})
}

// POST /catalog/book/create
func (bc *BooksController) Create(c *gin.Context) {
	var form validation.BookForm
	if !bc.bind(c, &form) {
		return
	}

	editor, err := bc.books.CreateBook(c.Request.Context(), form)
	if errs, ok := validationErrors(err); ok {
		bc.render(c, http.StatusUnprocessableEntity, "book_form", gin.H{
			"Title":  "Create Book",
			"Editor": editor,
			"Errors": errs,
		})
		return
	}
	if err != nil {
		bc.renderError(c, err, "Book")
		return
	}
	bc.redirect(c, editor.Book.URL(), "Book created.")
}

// GET /catalog/book/:id/update
func (bc *BooksController) UpdateForm(c *gin.Context) {
	editor, err := bc.books.EditBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		bc.renderError(c, err, "Book")
		return
	}
	bc.render(c, http.StatusOK, "book_form", gin.H{
		"Title":  "Update Book",
		"Editor": editor,
	})
}

// POST /catalog/book/:id/update
func (bc *BooksController) Update(c *gin.Context) {
	var form validation.BookForm
	if !bc.bind(c, &form) {
		return
	}

	editor, err := bc.books.UpdateBook(c.Request.Context(), c.Param("id"), form)
	if errs, ok := validationErrors(err); ok {
		bc.render(c, http.StatusUnprocessableEntity, "book_form", gin.H{
			"Title":  "Update Book",
			"Editor": editor,
			"Errors": errs,
		})
		return
	}
	if err != nil {
		bc.renderError(c, err, "Book")
		return
	}
	bc.redirect(c, editor.Book.URL(), "Book updated.")
}

// GET /catalog/book/:id/delete
func (bc *BooksController) DeleteForm(c *gin.Context) {
	detail, err := bc.books.BookDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		bc.renderError(c, err, "Book")
		return
	}
	bc.render(c, http.StatusOK, "book_delete", gin.H{
		"Title":  "Delete Book",
		"Detail": detail,
	})
}

// POST /catalog/book/:id/delete
func (bc *BooksController) Delete(c *gin.Context) {
	detail, err := bc.books.DeleteBook(c.Request.Context(), c.Param("id"))
	if blocked, ok := blockedError(err); ok {
		bc.render(c, http.StatusConflict, "book_delete", gin.H{
			"Title":   "Delete Book",
			"Detail":  detail,
			"Blocked": blocked,
		})
		return
	}
	if err != nil {
		bc.renderError(c, err, "Book")
		return
	}
	bc.redirect(c, "/catalog/books", "Book deleted.")
}
