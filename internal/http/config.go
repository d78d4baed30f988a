package http

import (
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/demo"
	"github.com/mrlokans/locallibrary/internal/security"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Catalog operations; *catalog.Catalog satisfies all four.
	Authors   AuthorService
	Books     BookService
	Genres    GenreService
	Instances InstanceService
	Home      HomeService

	// Audit log reader (optional)
	Audit AuditReader

	// Export sources. Exports and Tasks are optional; without them POST
	// /catalog/export is refused.
	Snapshots SnapshotSource
	Exports   ExportQueue
	Tasks     TaskQueue

	Database *database.Database
	Version  string

	TemplatesPath string
	StaticPath    string

	// CSRF protection is skipped when CSRFSecret is empty.
	CSRFSecret     []byte
	SecureCookies  bool
	SessionManager *security.SessionManager
	DemoMiddleware *demo.Middleware
}
