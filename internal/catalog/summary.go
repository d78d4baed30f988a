package catalog

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Summary holds the record counts shown on the catalog home page.
type Summary struct {
	Books              int64
	Instances          int64
	AvailableInstances int64
	Authors            int64
	Genres             int64
}

func (c *Catalog) Summary(ctx context.Context) (*Summary, error) {
	var s Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Books, err = c.stores.Books.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.Instances, err = c.stores.Instances.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.AvailableInstances, err = c.stores.Instances.CountByStatus(gctx, entities.StatusAvailable)
		return err
	})
	g.Go(func() (err error) {
		s.Authors, err = c.stores.Authors.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.Genres, err = c.stores.Genres.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to count catalog records: %w", err)
	}
	return &s, nil
}

// Snapshot returns every book with its author, genres and copies, sorted by
// title. It feeds the markdown export.
func (c *Catalog) Snapshot(ctx context.Context) ([]BookDetail, error) {
	books, err := c.stores.Books.ListDetailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	ids := lo.Map(books, func(b entities.Book, _ int) string { return b.ID })
	copies, err := c.stores.Instances.ListByBooks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list book instances: %w", err)
	}
	return lo.Map(books, func(b entities.Book, _ int) BookDetail {
		return BookDetail{Book: b, Instances: copies[b.ID]}
	}), nil
}
