package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

// InstanceEditor carries the book instance form: the copy being edited and
// the books it can belong to.
type InstanceEditor struct {
	Instance *entities.BookInstance
	Books    []entities.Book
	Statuses []entities.InstanceStatus
}

func (c *Catalog) ListInstances(ctx context.Context) ([]entities.BookInstance, error) {
	instances, err := c.stores.Instances.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list book instances: %w", err)
	}
	return instances, nil
}

func (c *Catalog) InstanceDetail(ctx context.Context, id string) (*entities.BookInstance, error) {
	instance, err := c.stores.Instances.GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(KindInstance, id, err)
	}
	return instance, nil
}

// NewInstanceEditor returns an empty copy form. bookID preselects a book.
func (c *Catalog) NewInstanceEditor(ctx context.Context, bookID string) (*InstanceEditor, error) {
	return c.instanceEditor(ctx, &entities.BookInstance{BookID: bookID, Status: entities.StatusMaintenance})
}

func (c *Catalog) EditInstance(ctx context.Context, id string) (*InstanceEditor, error) {
	instance, err := c.InstanceDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.instanceEditor(ctx, instance)
}

func (c *Catalog) instanceEditor(ctx context.Context, instance *entities.BookInstance) (*InstanceEditor, error) {
	books, err := c.stores.Books.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return &InstanceEditor{Instance: instance, Books: books, Statuses: entities.InstanceStatuses}, nil
}

// validateInstance runs the form rules, checks the referenced book and fills
// in the status and due date defaults.
func (c *Catalog) validateInstance(ctx context.Context, form validation.InstanceForm) (*entities.BookInstance, error) {
	instance, err := c.validator.Instance(form)
	var errs validation.Errors
	if err != nil && !errors.As(err, &errs) {
		return nil, err
	}

	if instance.BookID != "" {
		exists, err := c.stores.Books.Exists(ctx, instance.BookID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve book %s: %w", instance.BookID, err)
		}
		if !exists {
			errs = append(errs, validation.FieldError{Field: "book", Message: "Selected book does not exist."})
		}
	}

	if instance.Status == "" {
		instance.Status = entities.StatusMaintenance
	}
	if instance.DueBack.IsZero() {
		instance.DueBack = c.now()
	}

	if len(errs) > 0 {
		return instance, errs
	}
	return instance, nil
}

// CreateInstance stores a new copy. Status defaults to Maintenance and the
// due date to now.
func (c *Catalog) CreateInstance(ctx context.Context, form validation.InstanceForm) (*InstanceEditor, error) {
	instance, err := c.validateInstance(ctx, form)
	if err != nil {
		return c.rejectInstance(ctx, instance, err)
	}
	if err := c.stores.Instances.Create(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to create book instance: %w", err)
	}
	c.logChange(entities.AuditEventCreate, KindInstance, instance.ID, instance.Imprint)
	return &InstanceEditor{Instance: instance}, nil
}

// UpdateInstance replaces the copy at id.
func (c *Catalog) UpdateInstance(ctx context.Context, id string, form validation.InstanceForm) (*InstanceEditor, error) {
	instance, err := c.validateInstance(ctx, form)
	if instance != nil {
		instance.ID = id
	}
	if err != nil {
		return c.rejectInstance(ctx, instance, err)
	}
	if err := c.stores.Instances.Replace(ctx, instance); err != nil {
		return nil, loadErr(KindInstance, id, err)
	}
	c.logChange(entities.AuditEventUpdate, KindInstance, id, instance.Imprint)
	return &InstanceEditor{Instance: instance}, nil
}

func (c *Catalog) rejectInstance(ctx context.Context, instance *entities.BookInstance, err error) (*InstanceEditor, error) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil, err
	}
	editor, editorErr := c.instanceEditor(ctx, instance)
	if editorErr != nil {
		return nil, editorErr
	}
	return editor, errs
}

// DeleteInstance removes the copy only when its status is Available.
func (c *Catalog) DeleteInstance(ctx context.Context, id string) (*entities.BookInstance, error) {
	instance, err := c.InstanceDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if instance.Status != entities.StatusAvailable {
		blocked := &BlockedError{Kind: KindInstance, ID: id, Name: instance.Book.Title, Status: instance.Status}
		c.logBlocked(blocked)
		return instance, blocked
	}
	if err := c.stores.Instances.Delete(ctx, id); err != nil {
		return nil, loadErr(KindInstance, id, err)
	}
	c.logChange(entities.AuditEventDelete, KindInstance, id, instance.Book.Title)
	return instance, nil
}
