// Package instances provides database operations for book instances (physical copies).
package instances

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all book instance database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new instances repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every instance with its book loaded.
func (r *Repository) List(ctx context.Context) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").Order("created_at ASC").Find(&instances).Error
	return instances, err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").Where("id = ?", id).First(&instance).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &instance, nil
}

// ListByBook returns the copies of a book.
func (r *Repository) ListByBook(ctx context.Context, bookID string) ([]entities.BookInstance, error) {
	instances := []entities.BookInstance{}
	err := r.db.WithContext(ctx).Where("book_id = ?", bookID).Order("created_at ASC").Find(&instances).Error
	return instances, err
}

// ListByBooks returns the copies of all given books, keyed by book id.
func (r *Repository) ListByBooks(ctx context.Context, bookIDs []string) (map[string][]entities.BookInstance, error) {
	grouped := make(map[string][]entities.BookInstance, len(bookIDs))
	if len(bookIDs) == 0 {
		return grouped, nil
	}
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).Where("book_id IN ?", bookIDs).Order("created_at ASC").Find(&instances).Error
	if err != nil {
		return nil, err
	}
	for _, instance := range instances {
		grouped[instance.BookID] = append(grouped[instance.BookID], instance)
	}
	return grouped, nil
}

func (r *Repository) Create(ctx context.Context, instance *entities.BookInstance) error {
	return r.db.WithContext(ctx).Omit("Book").Create(instance).Error
}

// Replace overwrites every editable column of the stored instance.
func (r *Repository) Replace(ctx context.Context, instance *entities.BookInstance) error {
	result := r.db.WithContext(ctx).Model(&entities.BookInstance{ID: instance.ID}).
		Select("book_id", "imprint", "status", "due_back", "updated_at").
		Updates(instance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.BookInstance{})
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
	err := r.db.WithContext(ctx).Model(&entities.BookInstance{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountByStatus(ctx context.Context, status entities.InstanceStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BookInstance{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
