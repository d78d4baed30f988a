package security

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/mrlokans/locallibrary/internal/config"
)

const (
	flashKey      = "flash"
	flashErrorKey = "flash_error"
)

// SessionManager wraps scs.SessionManager with flash message helpers.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager stores sessions in sqlDB when it is a SQLite handle and
// in memory otherwise (sqlDB nil).
func NewSessionManager(sqlDB *sql.DB, cfg config.Session) (*SessionManager, error) {
	sm := scs.New()

	if sqlDB != nil {
		_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
		if err != nil {
			return nil, err
		}
		sm.Store = sqlite3store.New(sqlDB)
	} else {
		sm.Store = memstore.New()
	}

	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	sm.Lifetime = lifetime

	sm.Cookie.Name = "library_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// Flash stores a one-shot notice shown on the next rendered page.
func (sm *SessionManager) Flash(r *http.Request, message string) {
	sm.Put(r.Context(), flashKey, message)
}

// FlashError stores a one-shot error notice.
func (sm *SessionManager) FlashError(r *http.Request, message string) {
	sm.Put(r.Context(), flashErrorKey, message)
}

// PopFlash returns and clears the pending notice and error.
func (sm *SessionManager) PopFlash(r *http.Request) (message, errMessage string) {
	return sm.PopString(r.Context(), flashKey), sm.PopString(r.Context(), flashErrorKey)
}
