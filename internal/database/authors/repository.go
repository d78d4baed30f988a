// Package authors provides database operations for authors.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	author, err := repo.GetByID(ctx, id)
package authors

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every author sorted by family name.
func (r *Repository) List(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.WithContext(ctx).Order("family_name ASC, first_name ASC").Find(&authors).Error
	return authors, err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&author).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &author, nil
}

// Exists reports whether an author with the given id is stored.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(ctx context.Context, author *entities.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

// Replace overwrites every editable column of the stored author.
func (r *Repository) Replace(ctx context.Context, author *entities.Author) error {
	result := r.db.WithContext(ctx).Model(&entities.Author{ID: author.ID}).
		Select("first_name", "family_name", "date_of_birth", "date_of_death", "updated_at").
		Updates(author)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Author{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Count(&count).Error
	return count, err
}
