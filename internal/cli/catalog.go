package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	auditrepo "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	"github.com/mrlokans/locallibrary/internal/database/instances"
)

// session bundles an opened database with the catalog built on top of it.
type session struct {
	db      *database.Database
	audit   *audit.Service
	catalog *catalog.Catalog
}

// openCatalog opens the database selected by driver and path/dsn and builds
// the catalog over it.
func openCatalog(driver, path, dsn string) (*session, error) {
	if driver == "" || driver == config.DriverSQLite {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for database: %w", err)
		}
		path = absPath
	}

	db, err := database.FromConfig(config.Database{Driver: driver, Path: path, DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	cat := catalog.New(catalog.Stores{
		Authors:   authors.NewRepository(db.DB),
		Genres:    genres.NewRepository(db.DB),
		Books:     books.NewRepository(db.DB),
		Instances: instances.NewRepository(db.DB),
	}, auditService)

	return &session{db: db, audit: auditService, catalog: cat}, nil
}

// Close flushes pending audit events and closes the database.
func (s *session) Close() error {
	s.audit.Wait()
	return s.db.Close()
}
