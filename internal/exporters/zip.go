package exporters

import (
	"archive/zip"
	"fmt"
	"io"
	"time"

	"github.com/mrlokans/locallibrary/internal/catalog"
)

// WriteZip writes the same files Export produces as a zip archive.
func WriteZip(w io.Writer, books []catalog.BookDetail, exportedAt time.Time) error {
	zipWriter := zip.NewWriter(w)
	names := FileNames(books)

	for i, detail := range books {
		writer, err := zipWriter.Create(fmt.Sprintf("%s/%s.md", booksFolder, names[i]))
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", names[i], err)
		}
		if _, err := io.WriteString(writer, GenerateMarkdown(detail, exportedAt)); err != nil {
			return err
		}
	}

	writer, err := zipWriter.Create(indexFileName)
	if err != nil {
		return fmt.Errorf("failed to add index to archive: %w", err)
	}
	if _, err := io.WriteString(writer, GenerateIndex(books, names)); err != nil {
		return err
	}

	return zipWriter.Close()
}
