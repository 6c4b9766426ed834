package ports

import (
	"context"

	"github.com/profissa/marketplace-api/internal/core/domain"
)

// Actor is the identity a request acts as. The zero value is anonymous.
type Actor struct {
	ID   string
	Role string
}

// Anonymous reports whether the actor carries no authenticated identity.
func (a Actor) Anonymous() bool {
	return a.ID == ""
}

// RecordService is the access-control engine: every operation evaluates the
// collection's ownership rule for the acting identity before touching the
// store, and stamps timestamps on the write path.
type RecordService interface {
	List(ctx context.Context, actor Actor, collection string, filter Filter) ([]domain.Record, error)
	Get(ctx context.Context, actor Actor, collection, id string) (domain.Record, error)
	Create(ctx context.Context, actor Actor, collection string, rec domain.Record) (domain.Record, error)
	Update(ctx context.Context, actor Actor, collection, id string, patch domain.Record) (domain.Record, error)
	Delete(ctx context.Context, actor Actor, collection, id string) error
}
