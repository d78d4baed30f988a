// Package genres provides database operations for genres.
//
// Every write stores the folded form of the genre name in name_key so that
// duplicate detection is a single indexed lookup (see utils.FoldName).
package genres

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/utils"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every genre sorted by name.
func (r *Repository) List(ctx context.Context) ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&genre).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &genre, nil
}

// FindByName returns the genre whose name matches name ignoring case and accents.
func (r *Repository) FindByName(ctx context.Context, name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.WithContext(ctx).Where("name_key = ?", utils.FoldName(name)).
		Order("created_at ASC").First(&genre).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &genre, nil
}

// FindByIDs returns the genres among ids that exist, sorted by name.
func (r *Repository) FindByIDs(ctx context.Context, ids []string) ([]entities.Genre, error) {
	genres := []entities.Genre{}
	if len(ids) == 0 {
		return genres, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *Repository) Create(ctx context.Context, genre *entities.Genre) error {
	genre.NameKey = utils.FoldName(genre.Name)
	return r.db.WithContext(ctx).Omit("Books").Create(genre).Error
}

// Replace overwrites the stored genre name.
func (r *Repository) Replace(ctx context.Context, genre *entities.Genre) error {
	genre.NameKey = utils.FoldName(genre.Name)
	result := r.db.WithContext(ctx).Model(&entities.Genre{ID: genre.ID}).
		Select("name", "name_key", "updated_at").
		Updates(genre)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// Delete removes the genre and any join rows that still reference it.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&entities.Genre{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entities.ErrNotFound
		}
		return tx.Exec("DELETE FROM book_genres WHERE genre_id = ?", id).Error
	})
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Genre{}).Count(&count).Error
	return count, err
}
