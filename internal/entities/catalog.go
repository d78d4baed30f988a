package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediumDateLayout renders dates the way the catalog pages show them ("Jan 2, 2006").
const MediumDateLayout = "Jan 2, 2006"

// ISODateLayout is the YYYY-MM-DD layout used by date inputs.
const ISODateLayout = "2006-01-02"

type InstanceStatus string

const (
	StatusAvailable   InstanceStatus = "Available"
	StatusMaintenance InstanceStatus = "Maintenance"
	StatusLoaned      InstanceStatus = "Loaned"
	StatusReserved    InstanceStatus = "Reserved"
)

// InstanceStatuses lists every status in the order the forms offer them.
var InstanceStatuses = []InstanceStatus{
	StatusMaintenance,
	StatusAvailable,
	StatusLoaned,
	StatusReserved,
}

type Author struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	FamilyName  string     `gorm:"index;size:100;not null" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Genre struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	// NameKey is the accent and case folded name used for duplicate detection.
	NameKey   string    `gorm:"index;size:100" json:"-"`
	Books     []Book    `gorm:"many2many:book_genres;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Book struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"index;size:512;not null" json:"title"`
	AuthorID  string    `gorm:"index;size:36;not null" json:"author_id"`
	Author    Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Summary   string    `gorm:"type:text" json:"summary"`
	ISBN      string    `gorm:"size:32" json:"isbn"`
	Genres    []Genre   `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookInstance struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	BookID    string         `gorm:"index;size:36;not null" json:"book_id"`
	Book      Book           `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Imprint   string         `gorm:"size:512;not null" json:"imprint"`
	Status    InstanceStatus `gorm:"index;size:20;default:'Maintenance'" json:"status"`
	DueBack   time.Time      `json:"due_back"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}

func (BookInstance) TableName() string {
	return "book_instances"
}

// NewID returns a time-ordered UUIDv7 string.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	return nil
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = NewID()
	}
	return nil
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	return nil
}

func (i *BookInstance) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = NewID()
	}
	return nil
}

// Name returns "family_name, first_name", or "" when either part is missing.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return fmt.Sprintf("%s, %s", a.FamilyName, a.FirstName)
}

func (a Author) URL() string {
	return "/catalog/author/" + a.ID
}

func (a Author) BirthFormatted() string {
	return formatMedium(a.DateOfBirth)
}

func (a Author) DeathFormatted() string {
	return formatMedium(a.DateOfDeath)
}

func (a Author) BirthISO() string {
	return formatISO(a.DateOfBirth)
}

func (a Author) DeathISO() string {
	return formatISO(a.DateOfDeath)
}

// Lifespan renders "birth–death", "birth–Alive" or "" when the birth date is unknown.
func (a Author) Lifespan() string {
	birth := a.BirthFormatted()
	death := a.DeathFormatted()
	switch {
	case birth != "" && death != "":
		return birth + "–" + death
	case birth != "":
		return birth + "–Alive"
	default:
		return ""
	}
}

func (g Genre) URL() string {
	return "/catalog/genre/" + g.ID
}

func (b Book) URL() string {
	return "/catalog/book/" + b.ID
}

// GenreIDs returns the identifiers of the attached genres.
func (b Book) GenreIDs() []string {
	ids := make([]string, 0, len(b.Genres))
	for _, g := range b.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

func (i BookInstance) URL() string {
	return "/catalog/bookinstance/" + i.ID
}

func (i BookInstance) DueBackFormatted() string {
	return formatMedium(&i.DueBack)
}

func (i BookInstance) DueBackISO() string {
	return formatISO(&i.DueBack)
}

// IsValid reports whether s is one of the known instance statuses.
func (s InstanceStatus) IsValid() bool {
	for _, known := range InstanceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func formatMedium(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(MediumDateLayout)
}

func formatISO(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(ISODateLayout)
}
