package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/validation"
)

type InstancesController struct {
	*Pages
	instances InstanceService
}

func NewInstancesController(pages *Pages, instances InstanceService) *InstancesController {
	return &InstancesController{Pages: pages, instances: instances}
}

// GET /catalog/bookinstances
func (ic *InstancesController) List(c *gin.Context) {
	instances, err := ic.instances.ListInstances(c.Request.Context())
	if err != nil {
		ic.renderError(c, err, "Book instances")
		return
	}
	ic.render(c, http.StatusOK, "bookinstance_list", gin.H{
		"Title":     "Book Instance List",
		"Instances": instances,
	})
}

// GET /catalog/bookinstance/:id
func (ic *InstancesController) Detail(c *gin.Context) {
	instance, err := ic.instances.InstanceDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		ic.renderError(c, err, "Book instance")
		return
	}
	ic.render(c, http.StatusOK, "bookinstance_detail", gin.H{
		"Title":    "Copy: " + instance.Book.Title,
		"Instance": instance,
		"History":  ic.historyFor(catalog.KindInstance, instance.ID),
	})
}

// CreateForm renders an empty copy form; ?book=<id> preselects the book.
// GET /catalog/bookinstance/create
func (ic *InstancesController) CreateForm(c *gin.Context) {
	editor, err := ic.instances.NewInstanceEditor(c.Request.Context(), c.Query("book"))
	if err != nil {
		ic.renderError(c, err, "Book instance")
		return
	}
	ic.render(c, http.StatusOK, "bookinstance_form", gin.H{
		"Title":  "Create Book Instance",
		"Editor": editor,
	})
}

// POST /catalog/bookinstance/create
func (ic *InstancesController) Create(c *gin.Context) {
	var form validation.InstanceForm
	if !ic.bind(c, &form) {
		return
	}

	editor, err := ic.instances.CreateInstance(c.Request.Context(), form)
	if errs, ok := validationErrors(err); ok {
		ic.render(c, http.StatusUnprocessableEntity, "bookinstance_form", gin.H{
			"Title":  "Create Book Instance",
			"Editor": editor,
			"Errors": errs,
		})
		return
	}
	if err != nil {
		ic.renderError(c, err, "Book instance")
		return
	}
	ic.redirect(c, editor.Instance.URL(), "Book instance created.")
}

// GET /catalog/bookinstance/:id/update
func (ic *InstancesController) UpdateForm(c *gin.Context) {
	editor, err := ic.instances.EditInstance(c.Request.Context(), c.Param("id"))
	if err != nil {
		ic.renderError(c, err, "Book instance")
		return
	}
	ic.render(c, http.StatusOK, "bookinstance_form", gin.H{
		"Title":  "Update Book Instance",
		"Editor": editor,
	})
}

// POST /catalog/bookinstance/:id/update
func (ic *InstancesController) Update(c *gin.Context) {
	var form validation.InstanceForm
	if !ic.bind(c, &form) {
		return
	}

	editor, err := ic.instances.UpdateInstance(c.Request.Context(), c.Param("id"), form)
	if errs, ok := validationErrors(err); ok {
		ic.render(c, http.StatusUnprocessableEntity, "bookinstance_form", gin.H{
			"Title":  "Update Book Instance",
			"Editor": editor,
			"Errors": errs,
		})
		return
	}
	if err != nil {
		ic.renderError(c, err, "Book instance")
		return
	}
	ic.redirect(c, editor.Instance.URL(), "Book instance updated.")
}

// GET /catalog/bookinstance/:id/delete
func (ic *InstancesController) DeleteForm(c *gin.Context) {
	instance, err := ic.instances.InstanceDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		ic.renderError(c, err, "Book instance")
		return
	}
	ic.render(c, http.StatusOK, "bookinstance_delete", gin.H{
		"Title":    "Delete Book Instance",
		"Instance": instance,
	})
}

// Delete removes the copy only while it is Available.
// POST /catalog/bookinstance/:id/delete
func (ic *InstancesController) Delete(c *gin.Context) {
	instance, err := ic.instances.DeleteInstance(c.Request.Context(), c.Param("id"))
	if blocked, ok := blockedError(err); ok {
		ic.render(c, http.StatusConflict, "bookinstance_delete", gin.H{
			"Title":    "Delete Book Instance",
			"Instance": instance,
			"Blocked":  blocked,
		})
		return
	}
	if err != nil {
		ic.renderError(c, err, "Book instance")
		return
	}
	ic.redirect(c, "/catalog/bookinstances", "Book instance deleted.")
}
