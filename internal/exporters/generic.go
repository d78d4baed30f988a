package exporters

import "github.com/mrlokans/locallibrary/internal/catalog"

type BookExporter interface {
	Export(books []catalog.BookDetail) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed  int    `json:"books_processed"`
	CopiesProcessed int    `json:"copies_processed"`
	BooksFailed     int    `json:"books_failed"`
	Dir             string `json:"dir"`
}
