package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HomeController struct {
	*Pages
	home HomeService
}

func NewHomeController(pages *Pages, home HomeService) *HomeController {
	return &HomeController{Pages: pages, home: home}
}

// Index renders the record counts of the catalog.
// GET /catalog
func (hc *HomeController) Index(c *gin.Context) {
	summary, err := hc.home.Summary(c.Request.Context())
	if err != nil {
		hc.renderError(c, err, "Summary")
		return
	}
	hc.render(c, http.StatusOK, "index", gin.H{
		"Title":   "Local Library Home",
		"Summary": summary,
	})
}
