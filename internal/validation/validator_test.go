package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/entities"
)

func TestValidator_Author(t *testing.T) {
	v := New()

	t.Run("valid author", func(t *testing.T) {
		author, err := v.Author(AuthorForm{
			FirstName:   "  Isaac ",
			FamilyName:  "Asimov",
			DateOfBirth: "1920-01-02",
		})
		require.NoError(t, err)
		assert.Equal(t, "Isaac", author.FirstName)
		assert.Equal(t, "Asimov", author.FamilyName)
		require.NotNil(t, author.DateOfBirth)
		assert.Equal(t, "1920-01-02", author.BirthISO())
		assert.Nil(t, author.DateOfDeath)
	})

	t.Run("whitespace-only names are required", func(t *testing.T) {
		_, err := v.Author(AuthorForm{FirstName: "   ", FamilyName: "\t"})
		var errs Errors
		require.ErrorAs(t, err, &errs)
		assert.True(t, errs.Has("first_name"))
		assert.True(t, errs.Has("family_name"))
		assert.Equal(t, "First name cannot be empty.", errs.For("first_name"))
	})

	t.Run("non alphabetic names", func(t *testing.T) {
		author, err := v.Author(AuthorForm{FirstName: "R2D2", FamilyName: "<b>Smith</b>"})
		var errs Errors
		require.ErrorAs(t, err, &errs)
		assert.Len(t, errs, 2)
		assert.Equal(t, "First name should contain alphabetic characters only.", errs.For("first_name"))
		assert.Equal(t, "&lt;b&gt;Smith&lt;&#x2F;b&gt;", author.FamilyName)
	})

	t.Run("name longer than 100 characters", func(t *testing.T) {
		long := make([]byte, 101)
		for i := range long {
			long[i] = 'a'
		}
		_, err := v.Author(AuthorForm{FirstName: string(long), FamilyName: "Ok"})
		var errs Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "First name must be at most 100 characters.", errs.For("first_name"))
	})

	t.Run("falsy dates are absent", func(t *testing.T) {
		author, err := v.Author(AuthorForm{FirstName: "Ben", FamilyName: "Bova", DateOfBirth: "", DateOfDeath: "  "})
		require.NoError(t, err)
		assert.Nil(t, author.DateOfBirth)
		assert.Nil(t, author.DateOfDeath)
	})

	t.Run("unparseable dates accumulate with other errors", func(t *testing.T) {
		author, err := v.Author(AuthorForm{FirstName: "", FamilyName: "Bova", DateOfBirth: "yesterday", DateOfDeath: "2020-13-45"})
		var errs Errors
		require.ErrorAs(t, err, &errs)
		assert.Len(t, errs, 3)
		assert.Equal(t, "Invalid date of birth.", errs.For("date_of_birth"))
		assert.Equal(t, "Invalid date of death.", errs.For("date_of_death"))
		assert.Nil(t, author.DateOfBirth)
		assert.Equal(t, "Bova", author.FamilyName)
	})
}

func TestValidator_Genre(t *testing.T) {
	v := New()

	genre, err := v.Genre(GenreForm{Name: "  Science Fiction  "})
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", genre.Name)

	genre, err = v.Genre(GenreForm{Name: " ab "})
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Genre name must be at least 3 characters long.", errs.For("name"))
	assert.Equal(t, "ab", genre.Name)

	_, err = v.Genre(GenreForm{Name: "   "})
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("name"))

	genre, err = v.Genre(GenreForm{Name: "Rock & Roll"})
	require.NoError(t, err)
	assert.Equal(t, "Rock &amp; Roll", genre.Name)
}

func TestValidator_Book(t *testing.T) {
	v := New()

	t.Run("all required fields missing", func(t *testing.T) {
		book, err := v.Book(BookForm{Title: " ", Summary: "\n"})
		var errs Errors
		require.ErrorAs(t, err, &errs)
		for _, field := range []string{"title", "author", "summary", "isbn"} {
			assert.True(t, errs.Has(field), field)
		}
		assert.NotNil(t, book.Genres)
		assert.Empty(t, book.Genres)
	})

	t.Run("single genre becomes a one element list", func(t *testing.T) {
		book, err := v.Book(BookForm{Title: "Dune", Author: "a1", Summary: "Spice", ISBN: "1", Genre: []string{"g1"}})
		require.NoError(t, err)
		require.Len(t, book.Genres, 1)
		assert.Equal(t, "g1", book.Genres[0].ID)
		assert.Equal(t, "a1", book.AuthorID)
	})

	t.Run("genre entries are sanitized independently", func(t *testing.T) {
		book, err := v.Book(BookForm{Title: "Dune", Author: "a1", Summary: "Spice", ISBN: "1", Genre: []string{" g1 ", "", "g<2>", "g1"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"g1", "g&lt;2&gt;"}, book.GenreIDs())
	})
}

func TestValidator_Instance(t *testing.T) {
	v := New()

	t.Run("status may be empty", func(t *testing.T) {
		instance, err := v.Instance(InstanceForm{Book: "b1", Imprint: "Penguin"})
		require.NoError(t, err)
		assert.Equal(t, entities.InstanceStatus(""), instance.Status)
		assert.True(t, instance.DueBack.IsZero())
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := v.Instance(InstanceForm{Book: "b1", Imprint: "Penguin", Status: "Lost"})
		var errs Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "Status must be one of Maintenance, Available, Loaned or Reserved.", errs.For("status"))
	})

	t.Run("reduced precision and basic format dates", func(t *testing.T) {
		instance, err := v.Instance(InstanceForm{Book: "b1", Imprint: "Penguin", Status: "Loaned", DueBack: "20300115"})
		require.NoError(t, err)
		assert.Equal(t, "2030-01-15", instance.DueBack.Format("2006-01-02"))

		author, err := v.Author(AuthorForm{FirstName: "Jane", FamilyName: "Austen", DateOfBirth: "1775-12", DateOfDeath: "1817"})
		require.NoError(t, err)
		assert.Equal(t, "1775-12-01", author.DateOfBirth.Format("2006-01-02"))
		assert.Equal(t, "1817-01-01", author.DateOfDeath.Format("2006-01-02"))
	})

	t.Run("required fields and bad date", func(t *testing.T) {
		_, err := v.Instance(InstanceForm{Book: " ", Imprint: "", DueBack: "soon"})
		var errs Errors
		require.ErrorAs(t, err, &errs)
		assert.Len(t, errs, 3)
		assert.Equal(t, "Invalid due back date.", errs.For("due_back"))
	})

	t.Run("valid instance", func(t *testing.T) {
		instance, err := v.Instance(InstanceForm{Book: "b1", Imprint: "Gollancz, 2011", Status: "Loaned", DueBack: "2024-05-06"})
		require.NoError(t, err)
		assert.Equal(t, entities.StatusLoaned, instance.Status)
		assert.Equal(t, "2024-05-06", instance.DueBackISO())
	})
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;alert(&quot;x&quot;)&lt;&#x2F;script&gt;", Escape(`<script>alert("x")</script>`))
	assert.Equal(t, "O&#x27;Brien &amp; Sons", Escape("O'Brien & Sons"))
	assert.Equal(t, "a&#x5C;b&#96;", Escape("a\\b`"))
	assert.Equal(t, "plain", Escape("plain"))
}

func TestParseDate(t *testing.T) {
	plus2 := time.FixedZone("", 2*3600)

	accepted := []struct {
		value string
		want  time.Time
	}{
		{"2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-05", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"20240506", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		{"2024-127", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		{"2024-W19-1", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		{"2024W191", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		{"2024-W19", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		{"2024-02-29T10:30", time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC)},
		{"2024-02-29T10:30:00", time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC)},
		{"2024-05-06 10:30", time.Date(2024, 5, 6, 10, 30, 0, 0, time.UTC)},
		{"2024-05-06T10:30Z", time.Date(2024, 5, 6, 10, 30, 0, 0, time.UTC)},
		{"2024-05-06T10Z", time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)},
		{"20240506T103000", time.Date(2024, 5, 6, 10, 30, 0, 0, time.UTC)},
		{"2024-05-06T10:30:00.5Z", time.Date(2024, 5, 6, 10, 30, 0, 500000000, time.UTC)},
		{"2024-05-06T10:30:00,25", time.Date(2024, 5, 6, 10, 30, 0, 250000000, time.UTC)},
		{"2024-05-06T10:30:00+0200", time.Date(2024, 5, 6, 10, 30, 0, 0, plus2)},
		{"2024-05-06T10:30:00+02:00", time.Date(2024, 5, 6, 10, 30, 0, 0, plus2)},
		{"2024-05-06T10:30+02", time.Date(2024, 5, 6, 10, 30, 0, 0, plus2)},
		{"2024-05-06T24:00", time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range accepted {
		t.Run(tc.value, func(t *testing.T) {
			got, err := ParseDate(tc.value)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %v, want %v", got, tc.want)
		})
	}

	for _, value := range []string{
		"2023-02-29", "29/02/2024", "tomorrow", "2024-2-9", "202405", "2024-13",
		"2024-05-06T", "2024-05-06T25:00", "2024-05-06T10:60", "2024-05-06T24:30",
		"2024-W54", "2023-366", "2024-05-06X10:00", "2024T10:00", "2024-05-06T10:30:00+2",
	} {
		t.Run("rejects "+value, func(t *testing.T) {
			_, err := ParseDate(value)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeGenres(t *testing.T) {
	assert.Equal(t, []string{}, NormalizeGenres(nil))
	assert.Equal(t, []string{"a"}, NormalizeGenres([]string{"a"}))
	assert.Equal(t, []string{"a", "b"}, NormalizeGenres([]string{" a", "", "b", "a "}))
}

func TestErrors(t *testing.T) {
	errs := Errors{{Field: "name", Message: "too short"}, {Field: "title", Message: "missing"}}
	assert.Equal(t, "validation failed: name: too short; title: missing", errs.Error())
	assert.Equal(t, []string{"too short", "missing"}, errs.Messages())
	assert.Equal(t, "", errs.For("isbn"))
}
