package entrypoint

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	auditrepo "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	"github.com/mrlokans/locallibrary/internal/database/instances"
	"github.com/mrlokans/locallibrary/internal/demo"
	"github.com/mrlokans/locallibrary/internal/exporters"
	http_controllers "github.com/mrlokans/locallibrary/internal/http"
	"github.com/mrlokans/locallibrary/internal/scheduler"
	"github.com/mrlokans/locallibrary/internal/security"
	"github.com/mrlokans/locallibrary/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Local Library v%s", version)

	if cfg.Export.Enabled {
		if err := scheduler.ValidateSchedule(cfg.Export.Schedule); err != nil {
			log.Fatalf("Invalid EXPORT_SCHEDULE: %v", err)
		}
	}

	db, err := database.FromConfig(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()
	log.Printf("Database driver: %s", db.Driver)

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	defer auditService.Wait()

	cat := catalog.New(catalog.Stores{
		Authors:   authors.NewRepository(db.DB),
		Genres:    genres.NewRepository(db.DB),
		Books:     books.NewRepository(db.DB),
		Instances: instances.NewRepository(db.DB),
	}, auditService)

	routerCfg := http_controllers.RouterConfig{
		Authors:       cat,
		Books:         cat,
		Genres:        cat,
		Instances:     cat,
		Home:          cat,
		Audit:         auditService,
		Snapshots:     cat,
		Database:      db,
		Version:       version,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		SecureCookies: cfg.Session.SecureCookies,
	}

	// Background queue for exports and audit pruning
	var taskClient *tasks.Client
	var exportScheduler *scheduler.ExportScheduler
	taskCtx, taskCancel := context.WithCancel(context.Background())
	defer taskCancel()

	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromAppConfig(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewExportCatalogQueue(cat, exporters.NewMarkdownExporter(cfg.Export.Dir), auditService),
			tasks.NewCleanupAuditEventsQueue(auditService, cfg.Audit.RetentionDays),
		)
		taskClient.Start(taskCtx)

		exportScheduler = scheduler.NewExportScheduler(taskClient, scheduler.Options{
			ExportEnabled:      cfg.Export.Enabled,
			ExportSchedule:     cfg.Export.Schedule,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		})
		if err := exportScheduler.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		routerCfg.Exports = exportScheduler
		routerCfg.Tasks = taskClient
	} else {
		log.Printf("Task queue disabled; exports run only through the zip download and the export command")
	}

	// Sessions live in the catalog database on SQLite and in memory otherwise
	var sessionDB *sql.DB
	if db.IsSQLite() {
		sessionDB, err = db.SQLDB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}
	}
	routerCfg.SessionManager, err = security.NewSessionManager(sessionDB, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	routerCfg.CSRFSecret, err = csrfSecret(cfg.Session.Secret)
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}

	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - write operations will be blocked")
		routerCfg.DemoMiddleware = demo.NewMiddleware(true)
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if exportScheduler != nil {
			exportScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		taskCancel()
	}

	Serve(router, cfg, onShutdown)
}

// csrfSecret returns a 32 byte key. A 64 character hex secret is used as is,
// any other configured value is hashed, and an empty one is replaced by a
// random key.
func csrfSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil && len(secret) == 32 {
			return secret, nil
		}
		sum := sha256.Sum256([]byte(configured))
		return sum[:], nil
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	log.Printf("Generated session secret (set SESSION_SECRET to persist)")
	return secret, nil
}
