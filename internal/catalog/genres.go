package catalog

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

// GenreDetail is a genre with the books tagged with it.
type GenreDetail struct {
	Genre entities.Genre
	Books []entities.Book
}

func (c *Catalog) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	genres, err := c.stores.Genres.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (c *Catalog) GetGenre(ctx context.Context, id string) (*entities.Genre, error) {
	genre, err := c.stores.Genres.GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(KindGenre, id, err)
	}
	return genre, nil
}

func (c *Catalog) GenreDetail(ctx context.Context, id string) (*GenreDetail, error) {
	var detail GenreDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		genre, err := c.stores.Genres.GetByID(gctx, id)
		if err != nil {
			return loadErr(KindGenre, id, err)
		}
		detail.Genre = *genre
		return nil
	})
	g.Go(func() error {
		books, err := c.stores.Books.ListByGenre(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to list books in genre %s: %w", id, err)
		}
		detail.Books = books
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// findGenreByName returns nil when no genre matches.
func (c *Catalog) findGenreByName(ctx context.Context, name string) (*entities.Genre, error) {
	genre, err := c.stores.Genres.FindByName(ctx, name)
	if errors.Is(err, entities.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up genre %q: %w", name, err)
	}
	return genre, nil
}

// CreateGenre stores a new genre, or returns the existing one when a genre
// with the same name (ignoring case and accents) is already stored.
func (c *Catalog) CreateGenre(ctx context.Context, form validation.GenreForm) (*entities.Genre, error) {
	genre, err := c.validator.Genre(form)
	if err != nil {
		return genre, err
	}

	existing, err := c.findGenreByName(ctx, genre.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if err := c.stores.Genres.Create(ctx, genre); err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}
	c.logChange(entities.AuditEventCreate, KindGenre, genre.ID, genre.Name)
	return genre, nil
}

// UpdateGenre renames the genre at id. When a different genre already owns
// the new name, that genre is returned and the one at id is left untouched.
func (c *Catalog) UpdateGenre(ctx context.Context, id string, form validation.GenreForm) (*entities.Genre, error) {
	genre, err := c.validator.Genre(form)
	genre.ID = id
	if err != nil {
		return genre, err
	}

	var existing *entities.Genre
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := c.stores.Genres.GetByID(gctx, id); err != nil {
			return loadErr(KindGenre, id, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		existing, err = c.findGenreByName(gctx, genre.Name)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if existing != nil && existing.ID != id {
		return existing, nil
	}

	if err := c.stores.Genres.Replace(ctx, genre); err != nil {
		return nil, loadErr(KindGenre, id, err)
	}
	c.logChange(entities.AuditEventUpdate, KindGenre, id, genre.Name)
	return genre, nil
}

// DeleteGenre removes the genre unless books are still tagged with it.
func (c *Catalog) DeleteGenre(ctx context.Context, id string) (*GenreDetail, error) {
	detail, err := c.GenreDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(detail.Books) > 0 {
		blocked := &BlockedError{Kind: KindGenre, ID: id, Name: detail.Genre.Name, Books: detail.Books}
		c.logBlocked(blocked)
		return detail, blocked
	}
	if err := c.stores.Genres.Delete(ctx, id); err != nil {
		return nil, loadErr(KindGenre, id, err)
	}
	c.logChange(entities.AuditEventDelete, KindGenre, id, detail.Genre.Name)
	return detail, nil
}
