package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./library.db"

	// DefaultExportDir is where markdown exports are written when EXPORT_DIR is unset
	DefaultExportDir = "./export"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)
