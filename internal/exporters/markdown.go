package exporters

import (
	"fmt"
	"html"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/utils"
)

const (
	booksFolder   = "books"
	indexFileName = "index.md"
)

type MarkdownExporter struct {
	ExportDir     string
	IndexFileName string
	now           func() time.Time
}

func NewMarkdownExporter(exportDir string) *MarkdownExporter {
	return &MarkdownExporter{
		ExportDir:     exportDir,
		IndexFileName: indexFileName,
		now:           time.Now,
	}
}

func (exporter *MarkdownExporter) ensureDirs() (string, error) {
	booksDir := filepath.Join(exporter.ExportDir, booksFolder)
	if err := os.MkdirAll(booksDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return booksDir, nil
}

// Export writes one markdown file per book plus an index. A book that fails
// to write is counted and skipped.
func (exporter *MarkdownExporter) Export(books []catalog.BookDetail) (ExportResult, error) {
	result := ExportResult{Dir: exporter.ExportDir}

	booksDir, err := exporter.ensureDirs()
	if err != nil {
		return result, err
	}

	now := exporter.now()
	names := FileNames(books)
	for i, detail := range books {
		outputPath := filepath.Join(booksDir, names[i]+".md")
		if err := os.WriteFile(outputPath, []byte(GenerateMarkdown(detail, now)), 0644); err != nil {
			log.Printf("Failed to export book '%s': %v", detail.Book.Title, err)
			result.BooksFailed++
			continue
		}
		result.BooksProcessed++
		result.CopiesProcessed += len(detail.Instances)
	}

	indexPath := filepath.Join(exporter.ExportDir, exporter.IndexFileName)
	if err := os.WriteFile(indexPath, []byte(GenerateIndex(books, names)), 0644); err != nil {
		return result, fmt.Errorf("failed to write index: %w", err)
	}

	log.Printf("Export completed: %d books, %d copies, %d books failed",
		result.BooksProcessed, result.CopiesProcessed, result.BooksFailed)

	return result, nil
}

// FileNames returns a unique, filesystem-safe base name for every book.
// Books sharing a title get their id suffix appended.
func FileNames(books []catalog.BookDetail) []string {
	counts := lo.CountValuesBy(books, func(d catalog.BookDetail) string {
		return utils.SanitizeFilename(d.Book.Title)
	})
	return lo.Map(books, func(d catalog.BookDetail, _ int) string {
		name := utils.SanitizeFilename(d.Book.Title)
		if counts[name] > 1 {
			name = fmt.Sprintf("%s (%s)", name, shortID(d.Book.ID))
		}
		return name
	})
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// GenerateMarkdown renders a book, its author, genres and copies. Stored text
// is entity-escaped, so it is unescaped here.
func GenerateMarkdown(detail catalog.BookDetail, exportedAt time.Time) string {
	var builder strings.Builder
	book := detail.Book
	title := html.UnescapeString(book.Title)
	author := html.UnescapeString(book.Author.Name())
	genres := lo.Map(book.Genres, func(g entities.Genre, _ int) string {
		return html.UnescapeString(g.Name)
	})

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: library_book\n")
	fmt.Fprintf(&builder, "exported_at: %s\n", exportedAt.Format(entities.ISODateLayout))
	fmt.Fprintf(&builder, "id: %s\n", book.ID)
	fmt.Fprintf(&builder, "title: %s\n", quote(title))
	fmt.Fprintf(&builder, "author: %s\n", quote(author))
	fmt.Fprintf(&builder, "isbn: %s\n", quote(html.UnescapeString(book.ISBN)))
	fmt.Fprintf(&builder, "genres: [%s]\n", strings.Join(lo.Map(genres, func(g string, _ int) string { return quote(g) }), ", "))
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# %s\n\n", title)

	if author != "" {
		fmt.Fprintf(&builder, "**Author:** %s", author)
		if lifespan := book.Author.Lifespan(); lifespan != "" {
			fmt.Fprintf(&builder, " (%s)", lifespan)
		}
		fmt.Fprintf(&builder, "\n\n")
	}
	if len(genres) > 0 {
		fmt.Fprintf(&builder, "**Genres:** %s\n\n", strings.Join(genres, ", "))
	}

	fmt.Fprintf(&builder, "## Summary\n\n%s\n\n", html.UnescapeString(book.Summary))

	fmt.Fprintf(&builder, "## Copies\n\n")
	if len(detail.Instances) == 0 {
		fmt.Fprintf(&builder, "There are no copies of this book in the library.\n")
		return builder.String()
	}
	fmt.Fprintf(&builder, "| Imprint | Status | Due back |\n")
	fmt.Fprintf(&builder, "|---|---|---|\n")
	for _, instance := range detail.Instances {
		due := ""
		if instance.Status != entities.StatusAvailable {
			due = instance.DueBackFormatted()
		}
		fmt.Fprintf(&builder, "| %s | %s | %s |\n",
			strings.ReplaceAll(html.UnescapeString(instance.Imprint), "|", `\|`), instance.Status, due)
	}

	return builder.String()
}

// GenerateIndex renders a wiki-linked list of every exported book.
func GenerateIndex(books []catalog.BookDetail, names []string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "# Library catalog\n\n")
	if len(books) == 0 {
		fmt.Fprintf(&builder, "The catalog is empty.\n")
		return builder.String()
	}
	for i, detail := range books {
		fmt.Fprintf(&builder, "- [[%s/%s|%s]]", booksFolder, names[i], html.UnescapeString(detail.Book.Title))
		if author := detail.Book.Author.Name(); author != "" {
			fmt.Fprintf(&builder, " by %s", html.UnescapeString(author))
		}
		fmt.Fprintf(&builder, " (%d %s)\n", len(detail.Instances), lo.Ternary(len(detail.Instances) == 1, "copy", "copies"))
	}
	return builder.String()
}
