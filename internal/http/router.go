package http

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/security"
)

// TemplateFuncs are the helpers available to every page template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Stored text is escaped when it is validated.
		"safe": func(s string) template.HTML {
			return template.HTML(s)
		},
		"statusClass": func(status entities.InstanceStatus) string {
			switch status {
			case entities.StatusAvailable:
				return "text-success"
			case entities.StatusMaintenance:
				return "text-danger"
			default:
				return "text-warning"
			}
		},
		"timestamp": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"subtract": func(a, b int) int {
			return a - b
		},
	}
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(security.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(security.StrictTransportSecurityMiddleware())
	}

	// CSRF runs before the session middleware so the session context is
	// added on top of the request CSRF replaces.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}
	if cfg.DemoMiddleware != nil && cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.InjectContext())
		router.Use(cfg.DemoMiddleware.Handler())
	}

	tmpl := template.Must(template.New("").Funcs(TemplateFuncs()).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)
	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	pages := NewPages(cfg.SessionManager, cfg.Audit)

	checks := map[string]Pinger{}
	if cfg.Database != nil {
		checks["database"] = cfg.Database
	}
	if cfg.Tasks != nil {
		checks["tasks"] = cfg.Tasks
	}
	health := NewHealthController(checks, cfg.Exports, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/catalog")
	})

	catalog := router.Group("/catalog")

	if cfg.Home != nil {
		catalog.GET("", NewHomeController(pages, cfg.Home).Index)
	}

	if cfg.Authors != nil {
		authors := NewAuthorsController(pages, cfg.Authors)
		catalog.GET("/authors", authors.List)
		catalog.GET("/author/create", authors.CreateForm)
		catalog.POST("/author/create", authors.Create)
		catalog.GET("/author/:id", authors.Detail)
		catalog.GET("/author/:id/update", authors.UpdateForm)
		catalog.POST("/author/:id/update", authors.Update)
		catalog.GET("/author/:id/delete", authors.DeleteForm)
		catalog.POST("/author/:id/delete", authors.Delete)
	}

	if cfg.Books != nil {
		books := NewBooksController(pages, cfg.Books)
		catalog.GET("/books", books.List)
		catalog.GET("/book/create", books.CreateForm)
		catalog.POST("/book/create", books.Create)
		catalog.GET("/book/:id", books.Detail)
		catalog.GET("/book/:id/update", books.UpdateForm)
		catalog.POST("/book/:id/update", books.Update)
		catalog.GET("/book/:id/delete", books.DeleteForm)
		catalog.POST("/book/:id/delete", books.Delete)
	}

	if cfg.Genres != nil {
		genres := NewGenresController(pages, cfg.Genres)
		catalog.GET("/genres", genres.List)
		catalog.GET("/genre/create", genres.CreateForm)
		catalog.POST("/genre/create", genres.Create)
		catalog.GET("/genre/:id", genres.Detail)
		catalog.GET("/genre/:id/update", genres.UpdateForm)
		catalog.POST("/genre/:id/update", genres.Update)
		catalog.GET("/genre/:id/delete", genres.DeleteForm)
		catalog.POST("/genre/:id/delete", genres.Delete)
	}

	if cfg.Instances != nil {
		instances := NewInstancesController(pages, cfg.Instances)
		catalog.GET("/bookinstances", instances.List)
		catalog.GET("/bookinstance/create", instances.CreateForm)
		catalog.POST("/bookinstance/create", instances.Create)
		catalog.GET("/bookinstance/:id", instances.Detail)
		catalog.GET("/bookinstance/:id/update", instances.UpdateForm)
		catalog.POST("/bookinstance/:id/update", instances.Update)
		catalog.GET("/bookinstance/:id/delete", instances.DeleteForm)
		catalog.POST("/bookinstance/:id/delete", instances.Delete)
	}

	if cfg.Audit != nil {
		catalog.GET("/audit", NewAuditController(pages, cfg.Audit).AuditLogPage)
	}

	if cfg.Snapshots != nil {
		export := NewExportController(pages, cfg.Snapshots, cfg.Exports, cfg.Tasks)
		catalog.GET("/export.zip", export.DownloadZip)
		catalog.POST("/export", export.Enqueue)
		catalog.GET("/export/:id", export.TaskStatus)
	}

	router.NoRoute(func(c *gin.Context) {
		pages.render(c, http.StatusNotFound, "error", gin.H{
			"Title":   "Not found",
			"Message": "Page not found",
		})
	})

	return router
}
