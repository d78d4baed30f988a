package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/entities"
)

func TestCatalog_Summary(t *testing.T) {
	env := setupCatalog(t)
	ctx := context.Background()

	asimov := env.author(t, "Isaac", "Asimov")
	env.author(t, "Ben", "Bova")
	env.genre(t, "Science Fiction")
	book := env.book(t, "Foundation", asimov)
	env.instance(t, book, entities.StatusAvailable)
	env.instance(t, book, entities.StatusLoaned)

	summary, err := env.cat.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Books)
	assert.Equal(t, int64(2), summary.Instances)
	assert.Equal(t, int64(1), summary.AvailableInstances)
	assert.Equal(t, int64(2), summary.Authors)
	assert.Equal(t, int64(1), summary.Genres)
}

func TestCatalog_Snapshot(t *testing.T) {
	env := setupCatalog(t)
	ctx := context.Background()

	asimov := env.author(t, "Isaac", "Asimov")
	scifi := env.genre(t, "Science Fiction")
	foundation := env.book(t, "Foundation", asimov, scifi)
	env.book(t, "Nemesis", asimov)
	env.instance(t, foundation, entities.StatusAvailable)

	snapshot, err := env.cat.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 2)
	assert.Equal(t, "Foundation", snapshot[0].Book.Title)
	assert.Equal(t, "Asimov", snapshot[0].Book.Author.FamilyName)
	assert.Len(t, snapshot[0].Book.Genres, 1)
	assert.Len(t, snapshot[0].Instances, 1)
	assert.Empty(t, snapshot[1].Instances)
}

func TestCatalog_AuditsWrites(t *testing.T) {
	env := setupCatalog(t)

	author := env.author(t, "Isaac", "Asimov")
	env.genre(t, "Science Fiction")
	env.genre(t, "science fiction")

	require.Len(t, env.auditor.changes, 2, "merged genre create is not a write")
	assert.Equal(t, entities.AuditEventCreate, env.auditor.changes[0].EventType)
	assert.Equal(t, author.ID, env.auditor.changes[0].ID)
	assert.Equal(t, "Asimov, Isaac", env.auditor.changes[0].Name)
}
