package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

// AuthorDetail is an author with the books they wrote.
type AuthorDetail struct {
	Author entities.Author
	Books  []entities.Book
}

func (c *Catalog) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	authors, err := c.stores.Authors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

func (c *Catalog) GetAuthor(ctx context.Context, id string) (*entities.Author, error) {
	author, err := c.stores.Authors.GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(KindAuthor, id, err)
	}
	return author, nil
}

// AuthorDetail loads the author and their books concurrently.
func (c *Catalog) AuthorDetail(ctx context.Context, id string) (*AuthorDetail, error) {
	var detail AuthorDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		author, err := c.stores.Authors.GetByID(gctx, id)
		if err != nil {
			return loadErr(KindAuthor, id, err)
		}
		detail.Author = *author
		return nil
	})
	g.Go(func() error {
		books, err := c.stores.Books.ListByAuthor(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to list books by author %s: %w", id, err)
		}
		detail.Books = books
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateAuthor validates the form and stores a new author.
func (c *Catalog) CreateAuthor(ctx context.Context, form validation.AuthorForm) (*entities.Author, error) {
	author, err := c.validator.Author(form)
	if err != nil {
		return author, err
	}
	if err := c.stores.Authors.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	c.logChange(entities.AuditEventCreate, KindAuthor, author.ID, author.Name())
	return author, nil
}

// UpdateAuthor replaces every field of the author at id.
func (c *Catalog) UpdateAuthor(ctx context.Context, id string, form validation.AuthorForm) (*entities.Author, error) {
	author, err := c.validator.Author(form)
	author.ID = id
	if err != nil {
		return author, err
	}
	if err := c.stores.Authors.Replace(ctx, author); err != nil {
		return nil, loadErr(KindAuthor, id, err)
	}
	c.logChange(entities.AuditEventUpdate, KindAuthor, id, author.Name())
	return author, nil
}

// DeleteAuthor removes the author unless books still reference them, in which
// case the returned error is a *BlockedError listing those books. The loaded
// detail is returned in both cases.
func (c *Catalog) DeleteAuthor(ctx context.Context, id string) (*AuthorDetail, error) {
	detail, err := c.AuthorDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(detail.Books) > 0 {
		blocked := &BlockedError{Kind: KindAuthor, ID: id, Name: detail.Author.Name(), Books: detail.Books}
		c.logBlocked(blocked)
		return detail, blocked
	}
	if err := c.stores.Authors.Delete(ctx, id); err != nil {
		return nil, loadErr(KindAuthor, id, err)
	}
	c.logChange(entities.AuditEventDelete, KindAuthor, id, detail.Author.Name())
	return detail, nil
}
