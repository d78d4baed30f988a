package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/exporters"
)

const exportCatalogQueue = "export_catalog"

// SnapshotSource loads every book with its author, genres and copies.
type SnapshotSource interface {
	Snapshot(ctx context.Context) ([]catalog.BookDetail, error)
}

// ExportLogger records the outcome of an export run.
type ExportLogger interface {
	LogExport(description string, booksCount int, err error)
}

// ExportCatalogTask writes the whole catalog as markdown files.
// Trigger names what started the run: "schedule", "manual" or "cli".
type ExportCatalogTask struct {
	Trigger string `json:"trigger"`
}

func (t ExportCatalogTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        exportCatalogQueue,
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration: 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExportCatalogProcessor snapshots the catalog and hands it to exporter.
// Each attempt is recorded through logger, failures included.
func ExportCatalogProcessor(source SnapshotSource, exporter exporters.BookExporter, logger ExportLogger) backlite.QueueProcessor[ExportCatalogTask] {
	return func(ctx context.Context, task ExportCatalogTask) error {
		result, err := RunExport(ctx, source, exporter)
		if logger != nil {
			logger.LogExport(exportDescription(task.Trigger, result), result.BooksProcessed, err)
		}
		if err != nil {
			return err
		}

		log.Printf("[TASK] Exported %d books (%d copies) to %s", result.BooksProcessed, result.CopiesProcessed, result.Dir)
		if result.BooksFailed > 0 {
			return fmt.Errorf("%d books failed to export", result.BooksFailed)
		}
		return nil
	}
}

// RunExport performs one export synchronously.
func RunExport(ctx context.Context, source SnapshotSource, exporter exporters.BookExporter) (exporters.ExportResult, error) {
	books, err := source.Snapshot(ctx)
	if err != nil {
		return exporters.ExportResult{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	return exporter.Export(books)
}

func exportDescription(trigger string, result exporters.ExportResult) string {
	if trigger == "" {
		trigger = "manual"
	}
	return fmt.Sprintf("Catalog export (%s): %d books, %d copies", trigger, result.BooksProcessed, result.CopiesProcessed)
}

func NewExportCatalogQueue(source SnapshotSource, exporter exporters.BookExporter, logger ExportLogger) backlite.Queue {
	return backlite.NewQueue(ExportCatalogProcessor(source, exporter, logger))
}
