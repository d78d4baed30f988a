// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into one sub-package per entity kind:
//
//	database/
//	├── database.go      # Connection setup (sqlite or mysql), migrations
//	├── authors/         # Author CRUD
//	├── books/           # Book CRUD, genre join table, dependent lookups
//	├── genres/          # Genre CRUD and folded-name lookup
//	├── instances/       # BookInstance CRUD and status counts
//	└── audit/           # Audit event log
//
// # Using Sub-packages
//
//	db, err := database.FromConfig(config.Database{Driver: config.DriverSQLite, Path: "./library.db"})
//
//	authorsRepo := authors.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	author, err := authorsRepo.GetByID(ctx, id)
//	written, err := booksRepo.ListByAuthor(ctx, id)
//
// Lookups of a missing identifier return entities.ErrNotFound, both for
// reads and for replace/delete of a row that does not exist.
//
// # Interface Implementations
//
// Each repository satisfies the matching store interface of the catalog
// package (catalog.AuthorStore, catalog.BookStore, ...). The compile-time
// checks live in internal/catalog/stores_test.go so the database layer does
// not import the catalog.
package database
