package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/locallibrary/internal/exporters"
)

type ExportController struct {
	*Pages
	snapshots SnapshotSource
	queue     ExportQueue
	tasks     TaskQueue
}

func NewExportController(pages *Pages, snapshots SnapshotSource, queue ExportQueue, tasks TaskQueue) *ExportController {
	return &ExportController{Pages: pages, snapshots: snapshots, queue: queue, tasks: tasks}
}

// DownloadZip streams the catalog as a zip of markdown files.
// GET /catalog/export.zip
func (ec *ExportController) DownloadZip(c *gin.Context) {
	books, err := ec.snapshots.Snapshot(c.Request.Context())
	if err != nil {
		ec.renderError(c, err, "Catalog export")
		return
	}

	now := time.Now()
	filename := fmt.Sprintf("library-%s.zip", now.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Type", "application/zip")
	c.Status(http.StatusOK)

	if err := exporters.WriteZip(c.Writer, books, now); err != nil {
		log.Printf("Failed to write export zip: %v", err)
	}
}

// Enqueue schedules a markdown export to the export directory.
// POST /catalog/export
func (ec *ExportController) Enqueue(c *gin.Context) {
	if ec.queue == nil {
		ec.redirectWithError(c, "/catalog", "Background tasks are disabled.")
		return
	}

	taskID, err := ec.queue.RunNow(c.Request.Context())
	if err != nil {
		log.Printf("Failed to enqueue export: %v", err)
		ec.redirectWithError(c, "/catalog", "Could not start the export.")
		return
	}
	log.Printf("Export task %s queued", taskID)
	ec.redirect(c, "/catalog", fmt.Sprintf("Export queued (task %s).", taskID))
}

// TaskStatus reports the state of a queued export.
// GET /catalog/export/:id
func (ec *ExportController) TaskStatus(c *gin.Context) {
	if ec.tasks == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "background tasks are disabled"})
		return
	}

	taskID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := ec.tasks.Status(ctx, taskID)
	if err != nil {
		log.Printf("Failed to read task %s: %v", taskID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read task status"})
		return
	}

	code := http.StatusOK
	if status == backlite.TaskStatusNotFound {
		code = http.StatusNotFound
	}
	c.JSON(code, gin.H{
		"id":     taskID,
		"status": taskStatusName(status),
	})
}

func taskStatusName(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
