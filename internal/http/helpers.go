package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/demo"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/security"
	"github.com/mrlokans/locallibrary/internal/validation"
)

// Pages renders the HTML templates with the data every page needs: the CSRF
// field, pending flash messages and the demo flag.
type Pages struct {
	sessions *security.SessionManager
	history  AuditReader
}

func NewPages(sessions *security.SessionManager, history AuditReader) *Pages {
	return &Pages{sessions: sessions, history: history}
}

func (p *Pages) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CSRFField"] = security.CSRFTokenField(security.GetCSRFToken(c))
	data["DemoMode"] = c.GetBool(demo.ContextKeyDemoMode)
	if p.sessions != nil {
		data["Flash"], data["FlashError"] = p.sessions.PopFlash(c.Request)
	}
	c.HTML(status, name, data)
}

// redirect sends the browser to location after a successful write and keeps
// message for the next page.
func (p *Pages) redirect(c *gin.Context, location, message string) {
	if p.sessions != nil && message != "" {
		p.sessions.Flash(c.Request, message)
	}
	c.Redirect(http.StatusSeeOther, location)
}

func (p *Pages) redirectWithError(c *gin.Context, location, message string) {
	if p.sessions != nil {
		p.sessions.FlashError(c.Request, message)
	}
	c.Redirect(http.StatusSeeOther, location)
}

// errMalformedForm marks a request body that could not be read as a form.
var errMalformedForm = errors.New("malformed form")

// bind reads the submitted form into dst. An unreadable body is answered with
// 400 and bind returns false.
func (p *Pages) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		p.renderError(c, fmt.Errorf("%w: %v", errMalformedForm, err), "Form")
		return false
	}
	return true
}

// renderError maps a catalog error to its status page. Validation failures
// and blocked deletes are rendered by the callers, which still hold the
// form or dependents to show.
func (p *Pages) renderError(c *gin.Context, err error, resource string) {
	var blocked *catalog.BlockedError
	var errs validation.Errors
	switch {
	case errors.Is(err, errMalformedForm):
		log.Printf("Bad request: %v", err)
		p.render(c, http.StatusBadRequest, "error", gin.H{
			"Title":   "Bad request",
			"Message": "The submitted form could not be read.",
		})
	case errors.Is(err, entities.ErrNotFound):
		p.render(c, http.StatusNotFound, "error", gin.H{
			"Title":   "Not found",
			"Message": resource + " not found",
		})
	case errors.As(err, &blocked):
		p.render(c, http.StatusConflict, "error", gin.H{
			"Title":   "Delete refused",
			"Message": blocked.Error(),
		})
	case errors.As(err, &errs):
		p.render(c, http.StatusUnprocessableEntity, "error", gin.H{
			"Title":   "Invalid request",
			"Message": errs.Error(),
		})
	default:
		log.Printf("Internal error (%s): %v", resource, err)
		p.render(c, http.StatusInternalServerError, "error", gin.H{
			"Title":   "Server error",
			"Message": "Something went wrong. Please try again.",
		})
	}
}

// historyFor returns the audit trail of one record, or nil when no audit
// reader is configured or it fails.
func (p *Pages) historyFor(kind, id string) []entities.AuditEvent {
	if p.history == nil {
		return nil
	}
	events, err := p.history.GetEventsForEntity(kind, id)
	if err != nil {
		log.Printf("Failed to load history for %s %s: %v", kind, id, err)
		return nil
	}
	return events
}

// validationErrors extracts the violation list from err.
func validationErrors(err error) (validation.Errors, bool) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// blockedError extracts a refused delete from err.
func blockedError(err error) (*catalog.BlockedError, bool) {
	var blocked *catalog.BlockedError
	if errors.As(err, &blocked) {
		return blocked, true
	}
	return nil, false
}
