// Package validation trims, validates and escapes submitted catalog forms.
//
// Each field is trimmed, checked against its required/length and character
// class rules, parsed as an ISO-8601 date where it is an optional date, and
// finally escaped. Every violation is collected into Errors; when any are
// present the returned entity must not be persisted.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/locallibrary/internal/entities"
)

var messages = map[string]string{
	"first_name.required":    "First name cannot be empty.",
	"first_name.max":         "First name must be at most 100 characters.",
	"first_name.alpha":       "First name should contain alphabetic characters only.",
	"family_name.required":   "Family name cannot be empty.",
	"family_name.max":        "Family name must be at most 100 characters.",
	"family_name.alpha":      "Family name should contain alphabetic characters only.",
	"date_of_birth.iso8601":  "Invalid date of birth.",
	"date_of_death.iso8601":  "Invalid date of death.",
	"name.required":          "Genre name must be at least 3 characters long.",
	"name.min":               "Genre name must be at least 3 characters long.",
	"title.required":         "Title must not be empty.",
	"author.required":        "Author must not be empty.",
	"summary.required":       "Summary must not be empty.",
	"isbn.required":          "ISBN must not be empty.",
	"book.required":          "Book must be specified.",
	"imprint.required":       "Imprint must be specified.",
	"status.instance_status": "Status must be one of Maintenance, Available, Loaned or Reserved.",
	"due_back.iso8601":       "Invalid due back date.",
}

// Validator checks catalog forms. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("instance_status", func(fl validator.FieldLevel) bool {
		return entities.InstanceStatus(fl.Field().String()).IsValid()
	})
	return &Validator{validate: v}
}

// Author validates the form and returns the sanitized author.
// On failure the error is Errors and the author carries the sanitized input.
func (v *Validator) Author(form AuthorForm) (*entities.Author, error) {
	form.trim()
	errs := v.check(&form)

	author := &entities.Author{
		FirstName:   Escape(form.FirstName),
		FamilyName:  Escape(form.FamilyName),
		DateOfBirth: optionalDate(form.DateOfBirth),
		DateOfDeath: optionalDate(form.DateOfDeath),
	}
	if len(errs) > 0 {
		return author, errs
	}
	return author, nil
}

func (v *Validator) Genre(form GenreForm) (*entities.Genre, error) {
	form.trim()
	errs := v.check(&form)

	genre := &entities.Genre{Name: Escape(form.Name)}
	if len(errs) > 0 {
		return genre, errs
	}
	return genre, nil
}

// Book validates the form. The returned book references its author and
// genres by id only; resolving them is up to the caller.
func (v *Validator) Book(form BookForm) (*entities.Book, error) {
	form.trim()
	errs := v.check(&form)

	book := &entities.Book{
		Title:    Escape(form.Title),
		AuthorID: Escape(form.Author),
		Summary:  Escape(form.Summary),
		ISBN:     Escape(form.ISBN),
		Genres:   make([]entities.Genre, 0, len(form.Genre)),
	}
	for _, id := range form.Genre {
		book.Genres = append(book.Genres, entities.Genre{ID: Escape(id)})
	}
	if len(errs) > 0 {
		return book, errs
	}
	return book, nil
}

// Instance validates the form. Status and due date are left empty when not
// submitted.
func (v *Validator) Instance(form InstanceForm) (*entities.BookInstance, error) {
	form.trim()
	errs := v.check(&form)

	instance := &entities.BookInstance{
		BookID:  Escape(form.Book),
		Imprint: Escape(form.Imprint),
		Status:  entities.InstanceStatus(Escape(form.Status)),
	}
	if due := optionalDate(form.DueBack); due != nil {
		instance.DueBack = *due
	}
	if len(errs) > 0 {
		return instance, errs
	}
	return instance, nil
}

func (v *Validator) check(form any) Errors {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Field: "", Message: err.Error()}}
	}

	errs := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return errs
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid.", strings.ReplaceAll(fe.Field(), "_", " "))
}

