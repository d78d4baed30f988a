package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

// SeedCommand fills an empty catalog with a small sample library.
type SeedCommand struct {
	Driver       string
	DatabasePath string
	DSN          string
	Force        bool
	Verbose      bool
}

type seedAuthor struct {
	first, family, born, died string
}

type seedBook struct {
	title, author, summary, isbn string
	genres                       []string
	copies                       []seedCopy
}

type seedCopy struct {
	imprint string
	status  entities.InstanceStatus
	dueBack string
}

var seedAuthors = []seedAuthor{
	{"Patrick", "Rothfuss", "1973-06-06", ""},
	{"Ben", "Bova", "1932-11-08", "2020-11-29"},
	{"Isaac", "Asimov", "1920-01-02", "1992-04-06"},
	{"Ursula", "LeGuin", "1929-10-21", "2018-01-22"},
	{"Charles", "Baudelaire", "1821-04-09", "1867-08-31"},
}

var seedGenres = []string{"Fantasy", "Science Fiction", "French Poetry"}

var seedBooks = []seedBook{
	{
		title:   "The Name of the Wind",
		author:  "Rothfuss",
		summary: "A young man grows up to be the most notorious wizard his world has ever seen.",
		isbn:    "9781473211896",
		genres:  []string{"Fantasy"},
		copies: []seedCopy{
			{"London Gollancz, 2014.", entities.StatusAvailable, ""},
			{"Gollancz, 2011.", entities.StatusLoaned, "2030-01-15"},
		},
	},
	{
		title:   "The Wise Man's Fear",
		author:  "Rothfuss",
		summary: "Picking up the tale of Kvothe Kingkiller once again.",
		isbn:    "9788401352836",
		genres:  []string{"Fantasy"},
		copies: []seedCopy{
			{"Gollancz, 2011.", entities.StatusMaintenance, ""},
		},
	},
	{
		title:   "Apes and Angels",
		author:  "Bova",
		summary: "Humankind's first interstellar expedition races a deadly wave of gamma radiation.",
		isbn:    "9780765379528",
		genres:  []string{"Science Fiction"},
		copies: []seedCopy{
			{"New York Tom Doherty Associates, 2016.", entities.StatusAvailable, ""},
			{"New York Tom Doherty Associates, 2016.", entities.StatusReserved, "2030-02-01"},
		},
	},
	{
		title:   "Foundation",
		author:  "Asimov",
		summary: "Hari Seldon plans a refuge of knowledge to shorten the coming dark age.",
		isbn:    "9780553293357",
		genres:  []string{"Science Fiction"},
		copies: []seedCopy{
			{"Bantam Spectra, 1991.", entities.StatusAvailable, ""},
		},
	},
	{
		title:   "A Wizard of Earthsea",
		author:  "LeGuin",
		summary: "Ged learns the true names of things on the island of Roke.",
		isbn:    "9780547773742",
		genres:  []string{"Fantasy"},
		copies: []seedCopy{
			{"Parnassus, 1968.", entities.StatusLoaned, "2030-03-10"},
		},
	},
	{
		title:   "Les Fleurs du mal",
		author:  "Baudelaire",
		summary: "A volume of poetry on decadence and eroticism.",
		isbn:    "9782253007104",
		genres:  []string{"French Poetry"},
	},
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.Driver, "driver", config.DriverSQLite, "Database driver: sqlite or mysql")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the SQLite database file")
	fs.StringVar(&cmd.DSN, "dsn", "", "MySQL DSN (when -driver=mysql)")
	fs.BoolVar(&cmd.Force, "force", false, "Seed even when the catalog already has records")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every created record")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Populate an empty catalog with sample authors, genres, books and copies.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Driver == config.DriverMySQL && cmd.DSN == "" {
		return fmt.Errorf("required flag -dsn not provided for mysql")
	}
	return nil
}

func (cmd *SeedCommand) Run() error {
	fmt.Println("Catalog Seed")
	fmt.Println("============")

	s, err := openCatalog(cmd.Driver, cmd.DatabasePath, cmd.DSN)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	result, err := Seed(ctx, s.catalog, cmd.Force, cmd.progress)
	if err != nil {
		return err
	}
	if result.Skipped {
		fmt.Println("Catalog already has books. Use -force to seed anyway.")
		return nil
	}

	fmt.Println("\n=== Seed Summary ===")
	fmt.Printf("Authors: %d\n", result.Authors)
	fmt.Printf("Genres: %d\n", result.Genres)
	fmt.Printf("Books: %d\n", result.Books)
	fmt.Printf("Copies: %d\n", result.Instances)
	return nil
}

func (cmd *SeedCommand) progress(line string) {
	if cmd.Verbose {
		fmt.Printf("  -> %s\n", line)
	}
}

// SeedResult counts the records created by Seed.
type SeedResult struct {
	Skipped   bool
	Authors   int
	Genres    int
	Books     int
	Instances int
}

// Seed creates the sample library through the catalog, so every record passes
// the same validation as a form submission. It does nothing when books already
// exist unless force is set.
func Seed(ctx context.Context, cat *catalog.Catalog, force bool, progress func(string)) (SeedResult, error) {
	var result SeedResult
	if progress == nil {
		progress = func(string) {}
	}

	summary, err := cat.Summary(ctx)
	if err != nil {
		return result, err
	}
	if summary.Books > 0 && !force {
		result.Skipped = true
		return result, nil
	}

	authorIDs := make(map[string]string, len(seedAuthors))
	for _, a := range seedAuthors {
		author, err := cat.CreateAuthor(ctx, validation.AuthorForm{
			FirstName:   a.first,
			FamilyName:  a.family,
			DateOfBirth: a.born,
			DateOfDeath: a.died,
		})
		if err != nil {
			return result, seedErr("author "+a.family, err)
		}
		authorIDs[a.family] = author.ID
		result.Authors++
		progress("author " + author.Name())
	}

	genreIDs := make(map[string]string, len(seedGenres))
	for _, name := range seedGenres {
		genre, err := cat.CreateGenre(ctx, validation.GenreForm{Name: name})
		if err != nil {
			return result, seedErr("genre "+name, err)
		}
		genreIDs[name] = genre.ID
		result.Genres++
		progress("genre " + genre.Name)
	}

	for _, b := range seedBooks {
		form := validation.BookForm{
			Title:   b.title,
			Author:  authorIDs[b.author],
			Summary: b.summary,
			ISBN:    b.isbn,
		}
		for _, g := range b.genres {
			form.Genre = append(form.Genre, genreIDs[g])
		}
		editor, err := cat.CreateBook(ctx, form)
		if err != nil {
			return result, seedErr("book "+b.title, err)
		}
		result.Books++
		progress("book " + b.title)

		for _, c := range b.copies {
			_, err := cat.CreateInstance(ctx, validation.InstanceForm{
				Book:    editor.Book.ID,
				Imprint: c.imprint,
				Status:  string(c.status),
				DueBack: c.dueBack,
			})
			if err != nil {
				return result, seedErr("copy of "+b.title, err)
			}
			result.Instances++
			progress(fmt.Sprintf("copy of %s (%s)", b.title, c.status))
		}
	}

	return result, nil
}

func seedErr(what string, err error) error {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return fmt.Errorf("invalid sample %s: %s", what, strings.Join(errs.Messages(), " "))
	}
	return fmt.Errorf("failed to create sample %s: %w", what, err)
}
