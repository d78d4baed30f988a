package catalog_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	"github.com/mrlokans/locallibrary/internal/database/instances"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

var (
	_ catalog.AuthorStore   = (*authors.Repository)(nil)
	_ catalog.GenreStore    = (*genres.Repository)(nil)
	_ catalog.BookStore     = (*books.Repository)(nil)
	_ catalog.InstanceStore = (*instances.Repository)(nil)
)

type recordedEvent struct {
	EventType entities.AuditEventType
	Kind      string
	ID        string
	Name      string
}

type recordingAuditor struct {
	mu      sync.Mutex
	changes []recordedEvent
	blocked []recordedEvent
}

func (a *recordingAuditor) LogChange(eventType entities.AuditEventType, kind, id, name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.changes = append(a.changes, recordedEvent{EventType: eventType, Kind: kind, ID: id, Name: name})
}

func (a *recordingAuditor) LogBlocked(kind, id, name, reason string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.blocked = append(a.blocked, recordedEvent{EventType: entities.AuditEventBlocked, Kind: kind, ID: id, Name: name})
}

type testEnv struct {
	cat     *catalog.Catalog
	stores  catalog.Stores
	auditor *recordingAuditor
}

func setupCatalog(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(database.Options{
		Path:     filepath.Join(t.TempDir(), "catalog.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stores := catalog.Stores{
		Authors:   authors.NewRepository(db.DB),
		Genres:    genres.NewRepository(db.DB),
		Books:     books.NewRepository(db.DB),
		Instances: instances.NewRepository(db.DB),
	}
	auditor := &recordingAuditor{}
	return &testEnv{cat: catalog.New(stores, auditor), stores: stores, auditor: auditor}
}

func (e *testEnv) author(t *testing.T, first, family string) *entities.Author {
	t.Helper()
	author, err := e.cat.CreateAuthor(context.Background(), validation.AuthorForm{FirstName: first, FamilyName: family})
	require.NoError(t, err)
	return author
}

func (e *testEnv) genre(t *testing.T, name string) *entities.Genre {
	t.Helper()
	genre, err := e.cat.CreateGenre(context.Background(), validation.GenreForm{Name: name})
	require.NoError(t, err)
	return genre
}

func (e *testEnv) book(t *testing.T, title string, author *entities.Author, tags ...*entities.Genre) *entities.Book {
	t.Helper()
	form := validation.BookForm{Title: title, Author: author.ID, Summary: "About " + title, ISBN: "9780000000000"}
	for _, g := range tags {
		form.Genre = append(form.Genre, g.ID)
	}
	editor, err := e.cat.CreateBook(context.Background(), form)
	require.NoError(t, err)
	return editor.Book
}

func (e *testEnv) instance(t *testing.T, book *entities.Book, status entities.InstanceStatus) *entities.BookInstance {
	t.Helper()
	editor, err := e.cat.CreateInstance(context.Background(), validation.InstanceForm{
		Book:    book.ID,
		Imprint: "Imprint of " + book.Title,
		Status:  string(status),
	})
	require.NoError(t, err)
	return editor.Instance
}
