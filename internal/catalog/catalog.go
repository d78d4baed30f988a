// Package catalog implements the library operations on authors, books,
// genres and book instances.
//
// A Catalog is built once with explicit store handles and shared by every
// request. Operations validate input through the validation package and
// return:
//
//   - validation.Errors when the submitted form breaks a rule (nothing is stored)
//   - entities.ErrNotFound (wrapped) when the addressed record does not exist
//   - *BlockedError when a delete is refused because of dependent records
//
// Any other error comes from the store.
package catalog

import (
	"context"
	"time"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

type AuthorStore interface {
	List(ctx context.Context) ([]entities.Author, error)
	GetByID(ctx context.Context, id string) (*entities.Author, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, author *entities.Author) error
	Replace(ctx context.Context, author *entities.Author) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type GenreStore interface {
	List(ctx context.Context) ([]entities.Genre, error)
	GetByID(ctx context.Context, id string) (*entities.Genre, error)
	FindByName(ctx context.Context, name string) (*entities.Genre, error)
	FindByIDs(ctx context.Context, ids []string) ([]entities.Genre, error)
	Create(ctx context.Context, genre *entities.Genre) error
	Replace(ctx context.Context, genre *entities.Genre) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type BookStore interface {
	List(ctx context.Context) ([]entities.Book, error)
	ListDetailed(ctx context.Context) ([]entities.Book, error)
	GetByID(ctx context.Context, id string) (*entities.Book, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByAuthor(ctx context.Context, authorID string) ([]entities.Book, error)
	ListByGenre(ctx context.Context, genreID string) ([]entities.Book, error)
	Create(ctx context.Context, book *entities.Book) error
	Replace(ctx context.Context, book *entities.Book) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type InstanceStore interface {
	List(ctx context.Context) ([]entities.BookInstance, error)
	GetByID(ctx context.Context, id string) (*entities.BookInstance, error)
	ListByBook(ctx context.Context, bookID string) ([]entities.BookInstance, error)
	ListByBooks(ctx context.Context, bookIDs []string) (map[string][]entities.BookInstance, error)
	Create(ctx context.Context, instance *entities.BookInstance) error
	Replace(ctx context.Context, instance *entities.BookInstance) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entities.InstanceStatus) (int64, error)
}

// Auditor receives a record of every successful write and refused delete.
type Auditor interface {
	LogChange(eventType entities.AuditEventType, entityType, entityID, name string)
	LogBlocked(entityType, entityID, name, reason string)
}

// Stores groups the store handles the catalog works on.
type Stores struct {
	Authors   AuthorStore
	Genres    GenreStore
	Books     BookStore
	Instances InstanceStore
}

// Entity kinds, as used in audit records and blocked-delete errors.
const (
	KindAuthor   = "author"
	KindGenre    = "genre"
	KindBook     = "book"
	KindInstance = "bookinstance"
)

type Catalog struct {
	stores    Stores
	validator *validation.Validator
	auditor   Auditor
	now       func() time.Time
}

// New creates a catalog over the given stores. auditor may be nil.
func New(stores Stores, auditor Auditor) *Catalog {
	return &Catalog{
		stores:    stores,
		validator: validation.New(),
		auditor:   auditor,
		now:       time.Now,
	}
}

func (c *Catalog) logChange(eventType entities.AuditEventType, kind, id, name string) {
	if c.auditor != nil {
		c.auditor.LogChange(eventType, kind, id, name)
	}
}

func (c *Catalog) logBlocked(err *BlockedError) {
	if c.auditor != nil {
		c.auditor.LogBlocked(err.Kind, err.ID, err.Name, err.Reason())
	}
}
