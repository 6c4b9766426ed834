package ports

import (
	"context"

	"github.com/profissa/marketplace-api/internal/core/domain"
)

// Filter restricts a list to records whose fields equal the given values.
// Richer query semantics are deliberately out of scope.
type Filter map[string]string

// RecordStore is the persistence boundary: a key-indexed document store
// exposing list/get/create/update/delete per named collection. It performs no
// authorization; the access control engine sits in front of it.
type RecordStore interface {
	List(ctx context.Context, collection string, filter Filter) ([]domain.Record, error)
	// Get returns domain.ErrNotFound when id is unknown.
	Get(ctx context.Context, collection, id string) (domain.Record, error)
	Create(ctx context.Context, collection string, rec domain.Record) (domain.Record, error)
	// Update replaces the stored record wholesale; patch merging is the
	// caller's job. Returns domain.ErrNotFound when id is unknown.
	Update(ctx context.Context, collection, id string, rec domain.Record) (domain.Record, error)
	Delete(ctx context.Context, collection, id string) error
}
