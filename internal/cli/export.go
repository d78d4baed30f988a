package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/exporters"
	"github.com/mrlokans/locallibrary/internal/tasks"
)

// ExportCommand writes the catalog as markdown without starting the server.
type ExportCommand struct {
	Driver       string
	DatabasePath string
	DSN          string
	OutputDir    string
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.Driver, "driver", config.DriverSQLite, "Database driver: sqlite or mysql")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the SQLite database file")
	fs.StringVar(&cmd.DSN, "dsn", "", "MySQL DSN (when -driver=mysql)")
	fs.StringVar(&cmd.OutputDir, "output", config.DefaultExportDir, "Output directory for markdown files")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export every book with its author, genres and copies as markdown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s export -db ./library.db -output ~/Obsidian/Library\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.OutputDir == "" {
		return fmt.Errorf("required flag -output not provided")
	}
	if cmd.Driver == config.DriverMySQL && cmd.DSN == "" {
		return fmt.Errorf("required flag -dsn not provided for mysql")
	}
	return nil
}

func (cmd *ExportCommand) Run() error {
	fmt.Println("Catalog Export")
	fmt.Println("==============")

	s, err := openCatalog(cmd.Driver, cmd.DatabasePath, cmd.DSN)
	if err != nil {
		return err
	}
	defer s.Close()

	absOutputDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for output: %w", err)
	}
	fmt.Printf("Exporting to markdown: %s\n", absOutputDir)

	result, err := tasks.RunExport(context.Background(), s.catalog, exporters.NewMarkdownExporter(absOutputDir))
	s.audit.LogExport(fmt.Sprintf("Catalog export (cli): %d books, %d copies", result.BooksProcessed, result.CopiesProcessed), result.BooksProcessed, err)
	if err != nil {
		return fmt.Errorf("failed to export to markdown: %w", err)
	}

	fmt.Printf("Exported %d books to markdown\n", result.BooksProcessed)
	if result.BooksFailed > 0 {
		fmt.Printf("%d books failed to export\n", result.BooksFailed)
	}

	fmt.Println("\nExport complete!")
	return nil
}
