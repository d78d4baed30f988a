package exporters

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
)

var exportedAt = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

func sampleDetail() catalog.BookDetail {
	birth := time.Date(1920, time.January, 2, 0, 0, 0, 0, time.UTC)
	return catalog.BookDetail{
		Book: entities.Book{
			ID:      "0190a1b2-0000-7000-8000-00000000abcd",
			Title:   "Foundation &amp; Empire",
			Summary: "The Mule&#x27;s rise.",
			ISBN:    "0553293370",
			Author:  entities.Author{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: &birth},
			Genres:  []entities.Genre{{Name: "Science Fiction"}},
		},
		Instances: []entities.BookInstance{
			{Imprint: "Gnome Press | 1952", Status: entities.StatusLoaned, DueBack: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)},
			{Imprint: "Bantam", Status: entities.StatusAvailable, DueBack: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestGenerateMarkdown(t *testing.T) {
	t.Run("frontmatter and body", func(t *testing.T) {
		markdown := GenerateMarkdown(sampleDetail(), exportedAt)

		assert.Contains(t, markdown, "content_type: library_book")
		assert.Contains(t, markdown, "exported_at: 2024-06-15")
		assert.Contains(t, markdown, `title: "Foundation & Empire"`)
		assert.Contains(t, markdown, `author: "Asimov, Isaac"`)
		assert.Contains(t, markdown, `genres: ["Science Fiction"]`)
		assert.Contains(t, markdown, "# Foundation & Empire")
		assert.Contains(t, markdown, "**Author:** Asimov, Isaac (Jan 2, 1920–Alive)")
		assert.Contains(t, markdown, "The Mule's rise.")
	})

	t.Run("copies table shows due date only for unavailable copies", func(t *testing.T) {
		markdown := GenerateMarkdown(sampleDetail(), exportedAt)

		assert.Contains(t, markdown, `| Gnome Press \| 1952 | Loaned | Jul 1, 2024 |`)
		assert.Contains(t, markdown, "| Bantam | Available |  |")
	})

	t.Run("book without copies", func(t *testing.T) {
		detail := sampleDetail()
		detail.Instances = nil

		markdown := GenerateMarkdown(detail, exportedAt)
		assert.Contains(t, markdown, "There are no copies of this book in the library.")
	})

	t.Run("quotes in frontmatter are escaped", func(t *testing.T) {
		detail := sampleDetail()
		detail.Book.Title = `The &quot;Best&quot; Book`

		markdown := GenerateMarkdown(detail, exportedAt)
		assert.Contains(t, markdown, `title: "The \"Best\" Book"`)
	})
}

func TestFileNames(t *testing.T) {
	a := sampleDetail()
	b := sampleDetail()
	b.Book.ID = "0190a1b2-0000-7000-8000-00000000ffff"
	c := sampleDetail()
	c.Book.Title = "I, Robot"

	names := FileNames([]catalog.BookDetail{a, b, c})
	require.Len(t, names, 3)
	assert.Equal(t, "Foundation & Empire (0000abcd)", names[0])
	assert.Equal(t, "Foundation & Empire (0000ffff)", names[1])
	assert.Equal(t, "I, Robot", names[2])
}

func TestGenerateIndex(t *testing.T) {
	detail := sampleDetail()
	index := GenerateIndex([]catalog.BookDetail{detail}, []string{"Foundation & Empire"})

	assert.Contains(t, index, "# Library catalog")
	assert.Contains(t, index, "- [[books/Foundation & Empire|Foundation & Empire]] by Asimov, Isaac (2 copies)")

	assert.Contains(t, GenerateIndex(nil, nil), "The catalog is empty.")
}

func TestMarkdownExporter_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	exporter := NewMarkdownExporter(dir)
	exporter.now = func() time.Time { return exportedAt }

	result, err := exporter.Export([]catalog.BookDetail{sampleDetail()})
	require.NoError(t, err)
	assert.Equal(t, 1, result.BooksProcessed)
	assert.Equal(t, 2, result.CopiesProcessed)
	assert.Zero(t, result.BooksFailed)

	content, err := os.ReadFile(filepath.Join(dir, "books", "Foundation & Empire.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "exported_at: 2024-06-15")

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "Foundation & Empire")
}

func TestWriteZip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteZip(&buf, []catalog.BookDetail{sampleDetail()}, exportedAt))

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	files := map[string]string{}
	for _, f := range reader.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		files[f.Name] = string(data)
	}

	require.Contains(t, files, "books/Foundation & Empire.md")
	require.Contains(t, files, "index.md")
	assert.Contains(t, files["books/Foundation & Empire.md"], "## Copies")
}
