package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

// BookDetail is a book with its author, genres and copies.
type BookDetail struct {
	Book      entities.Book
	Instances []entities.BookInstance
}

// GenreOption is a genre checkbox on the book form.
type GenreOption struct {
	Genre   entities.Genre
	Checked bool
}

// BookEditor carries everything the book form needs: the book being edited
// (or the attempted one after a failed submit) and the author and genre
// choices.
type BookEditor struct {
	Book    *entities.Book
	Authors []entities.Author
	Genres  []GenreOption
}

func (c *Catalog) ListBooks(ctx context.Context) ([]entities.Book, error) {
	books, err := c.stores.Books.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (c *Catalog) BookDetail(ctx context.Context, id string) (*BookDetail, error) {
	var detail BookDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		book, err := c.stores.Books.GetByID(gctx, id)
		if err != nil {
			return loadErr(KindBook, id, err)
		}
		detail.Book = *book
		return nil
	})
	g.Go(func() error {
		instances, err := c.stores.Instances.ListByBook(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to list copies of book %s: %w", id, err)
		}
		detail.Instances = instances
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// NewBookEditor returns an empty book form with every author and genre.
func (c *Catalog) NewBookEditor(ctx context.Context) (*BookEditor, error) {
	return c.bookEditor(ctx, &entities.Book{Genres: []entities.Genre{}})
}

// EditBook returns the book form for an existing book with its genres checked.
func (c *Catalog) EditBook(ctx context.Context, id string) (*BookEditor, error) {
	var (
		book    *entities.Book
		authors []entities.Author
		genres  []entities.Genre
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		book, err = c.stores.Books.GetByID(gctx, id)
		if err != nil {
			return loadErr(KindBook, id, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		authors, err = c.stores.Authors.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		genres, err = c.stores.Genres.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &BookEditor{Book: book, Authors: authors, Genres: genreOptions(genres, book.GenreIDs())}, nil
}

func (c *Catalog) bookEditor(ctx context.Context, book *entities.Book) (*BookEditor, error) {
	editor := &BookEditor{Book: book}
	var genres []entities.Genre
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		editor.Authors, err = c.stores.Authors.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list authors: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		genres, err = c.stores.Genres.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list genres: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	editor.Genres = genreOptions(genres, book.GenreIDs())
	return editor, nil
}

func genreOptions(genres []entities.Genre, checked []string) []GenreOption {
	return lo.Map(genres, func(genre entities.Genre, _ int) GenreOption {
		return GenreOption{Genre: genre, Checked: lo.Contains(checked, genre.ID)}
	})
}

// validateBook runs the form rules and then checks that the referenced
// author and genres exist. On success book.Genres holds the stored genres.
func (c *Catalog) validateBook(ctx context.Context, form validation.BookForm) (*entities.Book, error) {
	book, err := c.validator.Book(form)
	var errs validation.Errors
	if err != nil && !errors.As(err, &errs) {
		return nil, err
	}

	var (
		authorExists = true
		found        []entities.Genre
	)
	g, gctx := errgroup.WithContext(ctx)
	if book.AuthorID != "" {
		g.Go(func() error {
			var err error
			authorExists, err = c.stores.Authors.Exists(gctx, book.AuthorID)
			return err
		})
	}
	g.Go(func() error {
		var err error
		found, err = c.stores.Genres.FindByIDs(gctx, book.GenreIDs())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve book references: %w", err)
	}

	if !authorExists {
		errs = append(errs, validation.FieldError{Field: "author", Message: "Selected author does not exist."})
	}
	if len(found) != len(book.Genres) {
		errs = append(errs, validation.FieldError{Field: "genre", Message: "Selected genre does not exist."})
	} else {
		book.Genres = found
	}

	if len(errs) > 0 {
		return book, errs
	}
	return book, nil
}

// CreateBook validates the form and stores a new book. When validation fails
// the editor carries the attempted book and the author and genre choices.
func (c *Catalog) CreateBook(ctx context.Context, form validation.BookForm) (*BookEditor, error) {
	book, err := c.validateBook(ctx, form)
	if err != nil {
		return c.rejectBook(ctx, book, err)
	}
	if err := c.stores.Books.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	c.logChange(entities.AuditEventCreate, KindBook, book.ID, book.Title)
	return &BookEditor{Book: book}, nil
}

// UpdateBook replaces the book at id, including its genre links.
func (c *Catalog) UpdateBook(ctx context.Context, id string, form validation.BookForm) (*BookEditor, error) {
	book, err := c.validateBook(ctx, form)
	if book != nil {
		book.ID = id
	}
	if err != nil {
		return c.rejectBook(ctx, book, err)
	}
	if err := c.stores.Books.Replace(ctx, book); err != nil {
		return nil, loadErr(KindBook, id, err)
	}
	c.logChange(entities.AuditEventUpdate, KindBook, id, book.Title)
	return &BookEditor{Book: book}, nil
}

func (c *Catalog) rejectBook(ctx context.Context, book *entities.Book, err error) (*BookEditor, error) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil, err
	}
	editor, editorErr := c.bookEditor(ctx, book)
	if editorErr != nil {
		return nil, editorErr
	}
	return editor, errs
}

// DeleteBook removes the book unless copies of it exist.
func (c *Catalog) DeleteBook(ctx context.Context, id string) (*BookDetail, error) {
	detail, err := c.BookDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(detail.Instances) > 0 {
		blocked := &BlockedError{Kind: KindBook, ID: id, Name: detail.Book.Title, Instances: detail.Instances}
		c.logBlocked(blocked)
		return detail, blocked
	}
	if err := c.stores.Books.Delete(ctx, id); err != nil {
		return nil, loadErr(KindBook, id, err)
	}
	c.logChange(entities.AuditEventDelete, KindBook, id, detail.Book.Title)
	return detail, nil
}
