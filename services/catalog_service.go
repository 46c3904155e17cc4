package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rpupo63/video-portfolio-backend/errs"
	"github.com/rpupo63/video-portfolio-backend/models"
)

// CatalogStore is implemented by database.CatalogRepo.
type CatalogStore[T any] interface {
	Entity() string
	FindAll(ctx context.Context) ([]*T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Add(ctx context.Context, item *T) error
	AddMany(ctx context.Context, items []*T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogService handles the flat catalog entities. PT is the pointer type of
// T so the model's Prepare and Record methods can be called on *T.
type CatalogService[T any, PT interface {
	*T
	models.CatalogEntry
}] struct {
	store CatalogStore[T]
}

func NewCatalogService[T any, PT interface {
	*T
	models.CatalogEntry
}](store CatalogStore[T]) *CatalogService[T, PT] {
	return &CatalogService[T, PT]{store: store}
}

// Entity is the singular entity name, e.g. "skill".
func (s *CatalogService[T, PT]) Entity() string {
	return s.store.Entity()
}

func (s *CatalogService[T, PT]) List(ctx context.Context) ([]*T, error) {
	items, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("find", s.Entity()+"s", err)
	}
	if items == nil {
		items = []*T{}
	}
	return items, nil
}

func (s *CatalogService[T, PT]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", s.Entity(), err)
	}
	return item, nil
}

// Create stores item. Client supplied ids and timestamps are discarded.
func (s *CatalogService[T, PT]) Create(ctx context.Context, item *T) (*T, error) {
	if err := prepareEntry[T, PT](item, models.Record{}); err != nil {
		return nil, err
	}
	if err := s.store.Add(ctx, item); err != nil {
		return nil, errs.NewDatabaseError("create", s.Entity(), err)
	}
	return item, nil
}

// CreateMany stores all items or none. A validation failure names the
// offending item, e.g. items[2].name.
func (s *CatalogService[T, PT]) CreateMany(ctx context.Context, items []*T) ([]*T, error) {
	if len(items) == 0 {
		return nil, errs.NewMissingRequiredFieldError("items")
	}

	for i, item := range items {
		if item == nil {
			return nil, errs.NewMissingRequiredFieldError(fmt.Sprintf("items[%d]", i))
		}
		if err := prepareEntry[T, PT](item, models.Record{}); err != nil {
			return nil, indexedFieldError(i, err)
		}
	}

	if err := s.store.AddMany(ctx, items); err != nil {
		return nil, errs.NewDatabaseError("create", s.Entity()+"s", err)
	}
	return items, nil
}

// Update merges a JSON body over the stored entry. Fields absent from body
// keep their stored values.
func (s *CatalogService[T, PT]) Update(ctx context.Context, id uuid.UUID, body []byte) (*T, error) {
	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", s.Entity(), err)
	}

	record := PT(item).GetRecord()
	if err := json.Unmarshal(body, item); err != nil {
		return nil, errs.NewMalformedPayloadError(s.Entity(), err)
	}

	if err := prepareEntry[T, PT](item, record); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, item); err != nil {
		return nil, errs.NewDatabaseError("update", s.Entity(), err)
	}
	return item, nil
}

func (s *CatalogService[T, PT]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", s.Entity(), err)
	}
	return nil
}

func prepareEntry[T any, PT interface {
	*T
	models.CatalogEntry
}](item *T, record models.Record) error {
	entry := PT(item)
	entry.SetRecord(record)
	entry.Prepare()
	return models.Validate(item)
}

func indexedFieldError(index int, err error) error {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) && apiErr.Field != "" {
		apiErr.Field = fmt.Sprintf("items[%d].%s", index, apiErr.Field)
	}
	return err
}
