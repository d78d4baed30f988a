package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

// Each controller depends on the slice of catalog operations it uses.

type AuthorService interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id string) (*entities.Author, error)
	AuthorDetail(ctx context.Context, id string) (*catalog.AuthorDetail, error)
	CreateAuthor(ctx context.Context, form validation.AuthorForm) (*entities.Author, error)
	UpdateAuthor(ctx context.Context, id string, form validation.AuthorForm) (*entities.Author, error)
	DeleteAuthor(ctx context.Context, id string) (*catalog.AuthorDetail, error)
}

type GenreService interface {
	ListGenres(ctx context.Context) ([]entities.Genre, error)
	GetGenre(ctx context.Context, id string) (*entities.Genre, error)
	GenreDetail(ctx context.Context, id string) (*catalog.GenreDetail, error)
	CreateGenre(ctx context.Context, form validation.GenreForm) (*entities.Genre, error)
	UpdateGenre(ctx context.Context, id string, form validation.GenreForm) (*entities.Genre, error)
	DeleteGenre(ctx context.Context, id string) (*catalog.GenreDetail, error)
}

type BookService interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	BookDetail(ctx context.Context, id string) (*catalog.BookDetail, error)
	NewBookEditor(ctx context.Context) (*catalog.BookEditor, error)
	EditBook(ctx context.Context, id string) (*catalog.BookEditor, error)
	CreateBook(ctx context.Context, form validation.BookForm) (*catalog.BookEditor, error)
	UpdateBook(ctx context.Context, id string, form validation.BookForm) (*catalog.BookEditor, error)
	DeleteBook(ctx context.Context, id string) (*catalog.BookDetail, error)
}

type InstanceService interface {
	ListInstances(ctx context.Context) ([]entities.BookInstance, error)
	InstanceDetail(ctx context.Context, id string) (*entities.BookInstance, error)
	NewInstanceEditor(ctx context.Context, bookID string) (*catalog.InstanceEditor, error)
	EditInstance(ctx context.Context, id string) (*catalog.InstanceEditor, error)
	CreateInstance(ctx context.Context, form validation.InstanceForm) (*catalog.InstanceEditor, error)
	UpdateInstance(ctx context.Context, id string, form validation.InstanceForm) (*catalog.InstanceEditor, error)
	DeleteInstance(ctx context.Context, id string) (*entities.BookInstance, error)
}

type HomeService interface {
	Summary(ctx context.Context) (*catalog.Summary, error)
}

type SnapshotSource interface {
	Snapshot(ctx context.Context) ([]catalog.BookDetail, error)
}

// ExportQueue schedules a background markdown export and returns its task id.
type ExportQueue interface {
	RunNow(ctx context.Context) (string, error)
	GetNextRunTime() *time.Time
}

// TaskQueue reports on queued tasks.
type TaskQueue interface {
	Status(ctx context.Context, id string) (backlite.TaskStatus, error)
	Ping(ctx context.Context) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type AuditReader interface {
	GetEvents(entityType string, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsForEntity(entityType, entityID string) ([]entities.AuditEvent, error)
}
