package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
)

const auditPageSize = 25

type AuditController struct {
	*Pages
	audit AuditReader
}

func NewAuditController(pages *Pages, audit AuditReader) *AuditController {
	return &AuditController{Pages: pages, audit: audit}
}

// AuditLogPage renders the audit log, optionally filtered by record kind.
// GET /catalog/audit
func (ac *AuditController) AuditLogPage(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	kind := c.Query("kind")
	events, total, err := ac.audit.GetEvents(kind, auditPageSize, (page-1)*auditPageSize)
	if err != nil {
		ac.renderError(c, err, "Audit log")
		return
	}

	totalPages := (int(total) + auditPageSize - 1) / auditPageSize
	if totalPages < 1 {
		totalPages = 1
	}

	ac.render(c, http.StatusOK, "audit", gin.H{
		"Title":       "Audit Log",
		"Events":      events,
		"CurrentPage": page,
		"TotalPages":  totalPages,
		"TotalEvents": total,
		"Kind":        kind,
		"Kinds":       kindOptions(),
	})
}

type KindOption struct {
	Value string
	Label string
}

func kindOptions() []KindOption {
	return []KindOption{
		{Value: "", Label: "All records"},
		{Value: catalog.KindAuthor, Label: "Authors"},
		{Value: catalog.KindBook, Label: "Books"},
		{Value: catalog.KindGenre, Label: "Genres"},
		{Value: catalog.KindInstance, Label: "Book instances"},
	}
}
