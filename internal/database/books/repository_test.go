package books

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

type fixture struct {
	repo    *Repository
	db      *gorm.DB
	author  entities.Author
	fantasy entities.Genre
	poetry  entities.Genre
}

func setupTestDB(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(database.Options{
		Path:     filepath.Join(t.TempDir(), "books.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		repo:    NewRepository(db.DB),
		db:      db.DB,
		author:  entities.Author{FirstName: "Patrick", FamilyName: "Rothfuss"},
		fantasy: entities.Genre{Name: "Fantasy", NameKey: "fantasy"},
		poetry:  entities.Genre{Name: "Poetry", NameKey: "poetry"},
	}
	require.NoError(t, db.DB.Create(&f.author).Error)
	require.NoError(t, db.DB.Create(&f.fantasy).Error)
	require.NoError(t, db.DB.Create(&f.poetry).Error)
	return f
}

func (f *fixture) createBook(t *testing.T, title string, genres ...entities.Genre) *entities.Book {
	t.Helper()
	book := &entities.Book{
		Title:    title,
		AuthorID: f.author.ID,
		Summary:  "Summary of " + title,
		ISBN:     "9781473211896",
		Genres:   genres,
	}
	require.NoError(t, f.repo.Create(context.Background(), book))
	return book
}

func TestRepository_CreateAndGet(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	book := f.createBook(t, "The Name of the Wind", f.poetry, f.fantasy)
	assert.NotEmpty(t, book.ID)

	got, err := f.repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Name of the Wind", got.Title)
	assert.Equal(t, "Rothfuss, Patrick", got.Author.Name())
	require.Len(t, got.Genres, 2)
	assert.Equal(t, "Fantasy", got.Genres[0].Name)
	assert.Equal(t, "Poetry", got.Genres[1].Name)

	var genreCount int64
	require.NoError(t, f.db.Model(&entities.Genre{}).Count(&genreCount).Error)
	assert.Equal(t, int64(2), genreCount, "creating a book must not duplicate genres")
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	f := setupTestDB(t)

	_, err := f.repo.GetByID(context.Background(), entities.NewID())
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_ListSortedByTitle(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	f.createBook(t, "The Wise Man's Fear")
	f.createBook(t, "The Name of the Wind")

	books, err := f.repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "The Name of the Wind", books[0].Title)
	assert.Equal(t, "Patrick", books[0].Author.FirstName)

	detailed, err := f.repo.ListDetailed(ctx)
	require.NoError(t, err)
	assert.Len(t, detailed, 2)
}

func TestRepository_DependentLookups(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	wind := f.createBook(t, "The Name of the Wind", f.fantasy)
	f.createBook(t, "The Slow Regard of Silent Things")

	byAuthor, err := f.repo.ListByAuthor(ctx, f.author.ID)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	byGenre, err := f.repo.ListByGenre(ctx, f.fantasy.ID)
	require.NoError(t, err)
	require.Len(t, byGenre, 1)
	assert.Equal(t, wind.ID, byGenre[0].ID)
	assert.Equal(t, "Rothfuss", byGenre[0].Author.FamilyName)

	empty, err := f.repo.ListByGenre(ctx, f.poetry.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRepository_Replace(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	book := f.createBook(t, "Draft", f.fantasy)

	replacement := &entities.Book{
		ID:       book.ID,
		Title:    "Final",
		AuthorID: f.author.ID,
		Summary:  "New summary",
		ISBN:     "123",
		Genres:   []entities.Genre{f.poetry},
	}
	require.NoError(t, f.repo.Replace(ctx, replacement))

	got, err := f.repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, "123", got.ISBN)
	require.Len(t, got.Genres, 1)
	assert.Equal(t, f.poetry.ID, got.Genres[0].ID)

	t.Run("empty genre list clears links", func(t *testing.T) {
		replacement.Genres = nil
		require.NoError(t, f.repo.Replace(ctx, replacement))

		got, err := f.repo.GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Genres)
	})

	t.Run("missing id", func(t *testing.T) {
		err := f.repo.Replace(ctx, &entities.Book{ID: entities.NewID(), Title: "X", AuthorID: f.author.ID})
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	book := f.createBook(t, "Gone", f.fantasy)
	require.NoError(t, f.repo.Delete(ctx, book.ID))

	var links int64
	require.NoError(t, f.db.Table("book_genres").Where("book_id = ?", book.ID).Count(&links).Error)
	assert.Zero(t, links)

	assert.ErrorIs(t, f.repo.Delete(ctx, book.ID), entities.ErrNotFound)

	count, err := f.repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
