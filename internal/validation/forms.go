package validation

import (
	"strings"

	"github.com/samber/lo"
)

// AuthorForm is the author create/update form.
type AuthorForm struct {
	FirstName   string `form:"first_name" validate:"required,max=100,alpha"`
	FamilyName  string `form:"family_name" validate:"required,max=100,alpha"`
	DateOfBirth string `form:"date_of_birth" validate:"omitempty,iso8601"`
	DateOfDeath string `form:"date_of_death" validate:"omitempty,iso8601"`
}

type GenreForm struct {
	Name string `form:"name" validate:"required,min=3"`
}

// BookForm is the book create/update form. Genre holds the checked genre ids.
type BookForm struct {
	Title   string   `form:"title" validate:"required"`
	Author  string   `form:"author" validate:"required"`
	Summary string   `form:"summary" validate:"required"`
	ISBN    string   `form:"isbn" validate:"required"`
	Genre   []string `form:"genre"`
}

type InstanceForm struct {
	Book    string `form:"book" validate:"required"`
	Imprint string `form:"imprint" validate:"required"`
	Status  string `form:"status" validate:"omitempty,instance_status"`
	DueBack string `form:"due_back" validate:"omitempty,iso8601"`
}

func (f *AuthorForm) trim() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.FamilyName = strings.TrimSpace(f.FamilyName)
	f.DateOfBirth = strings.TrimSpace(f.DateOfBirth)
	f.DateOfDeath = strings.TrimSpace(f.DateOfDeath)
}

func (f *GenreForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
}

func (f *BookForm) trim() {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	f.Summary = strings.TrimSpace(f.Summary)
	f.ISBN = strings.TrimSpace(f.ISBN)
	f.Genre = NormalizeGenres(f.Genre)
}

func (f *InstanceForm) trim() {
	f.Book = strings.TrimSpace(f.Book)
	f.Imprint = strings.TrimSpace(f.Imprint)
	f.Status = strings.TrimSpace(f.Status)
	f.DueBack = strings.TrimSpace(f.DueBack)
}

// NormalizeGenres turns the submitted genre values into a list of distinct,
// non-blank ids. The result is never nil.
func NormalizeGenres(values []string) []string {
	ids := lo.Uniq(lo.FilterMap(values, func(v string, _ int) (string, bool) {
		v = strings.TrimSpace(v)
		return v, v != ""
	}))
	if ids == nil {
		return []string{}
	}
	return ids
}
