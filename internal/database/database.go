package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Options selects the driver and connection target for Open.
type Options struct {
	Driver   string
	Path     string // SQLite file
	DSN      string // MySQL DSN
	LogLevel logger.LogLevel
}

type Database struct {
	DB     *gorm.DB
	Driver string
}

// FromConfig opens the database described by the application config.
func FromConfig(cfg config.Database) (*Database, error) {
	return Open(Options{
		Driver:   cfg.Driver,
		Path:     cfg.Path,
		DSN:      cfg.DSN,
		LogLevel: logger.Warn,
	})
}

func Open(opts Options) (*Database, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}

	var dialector gorm.Dialector
	var target string
	switch opts.Driver {
	case "", config.DriverSQLite:
		opts.Driver = config.DriverSQLite
		target = opts.Path
		dialector = sqlite.Open(sqliteDSN(opts.Path))
	case config.DriverMySQL:
		if opts.DSN == "" {
			return nil, fmt.Errorf("mysql driver requires DATABASE_DSN")
		}
		target = "mysql"
		dialector = mysql.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
		// Referential rules (dependent books, instances) are enforced by the catalog.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.Driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Printf("Database initialized successfully at %s", target)

	return &Database{DB: db, Driver: opts.Driver}, nil
}

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.BookInstance{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (d *Database) IsSQLite() bool {
	return d.Driver == config.DriverSQLite
}

// SQLDB exposes the underlying connection pool, used by the session store.
func (d *Database) SQLDB() (*sql.DB, error) {
	return d.DB.DB()
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000"
}

// TranslateError maps gorm's missing-record error to entities.ErrNotFound.
func TranslateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.ErrNotFound
	}
	return err
}
