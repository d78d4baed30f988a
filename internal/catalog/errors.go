package catalog

import (
	"errors"
	"fmt"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// ErrBlockedByDependents is the sentinel every *BlockedError unwraps to.
var ErrBlockedByDependents = errors.New("blocked by dependent records")

// BlockedError reports a delete that was refused. Books lists the books that
// still reference an author or genre, Instances the copies of a book, and
// Status the current status of a book instance that is not Available.
type BlockedError struct {
	Kind      string
	ID        string
	Name      string
	Books     []entities.Book
	Instances []entities.BookInstance
	Status    entities.InstanceStatus
}

func (e *BlockedError) Reason() string {
	switch {
	case len(e.Books) > 0:
		return fmt.Sprintf("%d dependent books", len(e.Books))
	case len(e.Instances) > 0:
		return fmt.Sprintf("%d dependent copies", len(e.Instances))
	case e.Status != "":
		return fmt.Sprintf("status is %s, not %s", e.Status, entities.StatusAvailable)
	default:
		return "dependent records exist"
	}
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("cannot delete %s %s: %s", e.Kind, e.ID, e.Reason())
}

func (e *BlockedError) Unwrap() error {
	return ErrBlockedByDependents
}

func loadErr(kind, id string, err error) error {
	if errors.Is(err, entities.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, entities.ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %s: %w", kind, id, err)
}
