// Package books provides database operations for books and their genre links.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(ctx, id)
//	written, err := repo.ListByAuthor(ctx, authorID)
package books

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func orderGenres(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

// List returns every book sorted by title with its author loaded.
func (r *Repository) List(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Preload("Author").Order("title ASC").Find(&books).Error
	return books, err
}

// ListDetailed returns every book with author and genres loaded.
func (r *Repository) ListDetailed(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Genres", orderGenres).
		Order("title ASC").Find(&books).Error
	return books, err
}

// GetByID retrieves a book with its author and genres.
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Genres", orderGenres).
		Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &book, nil
}

func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListByAuthor returns the books written by the author, title and summary only.
func (r *Repository) ListByAuthor(ctx context.Context, authorID string) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.WithContext(ctx).
		Select("id", "title", "summary", "author_id").
		Where("author_id = ?", authorID).
		Order("title ASC").Find(&books).Error
	return books, err
}

// ListByGenre returns the books tagged with the genre, author and genres loaded.
func (r *Repository) ListByGenre(ctx context.Context, genreID string) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.WithContext(ctx).
		Joins("JOIN book_genres ON book_genres.book_id = books.id").
		Where("book_genres.genre_id = ?", genreID).
		Preload("Author").
		Preload("Genres", orderGenres).
		Order("books.title ASC").Find(&books).Error
	return books, err
}

// Create stores the book and links it to the already stored genres in book.Genres.
func (r *Repository) Create(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Omit("Author", "Genres.*").Create(book).Error
}

// Replace overwrites the stored book and its genre links in one transaction.
func (r *Repository) Replace(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book.UpdatedAt = time.Now()
		result := tx.Model(&entities.Book{ID: book.ID}).
			Select("title", "author_id", "summary", "isbn", "updated_at").
			Updates(book)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entities.ErrNotFound
		}

		if err := tx.Exec("DELETE FROM book_genres WHERE book_id = ?", book.ID).Error; err != nil {
			return err
		}
		for _, genre := range book.Genres {
			err := tx.Exec("INSERT INTO book_genres (book_id, genre_id) VALUES (?, ?)", book.ID, genre.ID).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the book and its genre links.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&entities.Book{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entities.ErrNotFound
		}
		return tx.Exec("DELETE FROM book_genres WHERE book_id = ?", id).Error
	})
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error
	return count, err
}
