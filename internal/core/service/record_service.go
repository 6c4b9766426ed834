package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/profissa/marketplace-api/internal/api/metrics"
	"github.com/profissa/marketplace-api/internal/core/domain"
	"github.com/profissa/marketplace-api/internal/core/ports"
)

// RecordService is the access control engine. It evaluates the collection's
// ownership rule for every operation, stamps timestamps on the write path,
// and forces owner fields on create so ownership cannot be forged.
type RecordService struct {
	store ports.RecordStore
	log   zerolog.Logger
}

func NewRecordService(store ports.RecordStore, log zerolog.Logger) *RecordService {
	return &RecordService{store: store, log: log}
}

// List returns the records the actor may read. Public-read collections list
// everything; owner-scoped collections list only records the actor owns or
// is related to.
func (s *RecordService) List(ctx context.Context, actor ports.Actor, collection string, filter ports.Filter) ([]domain.Record, error) {
	rule, err := domain.RuleFor(collection)
	if err != nil {
		return nil, err
	}

	if !rule.Public.Can(domain.PermRead) && actor.Anonymous() {
		return nil, s.deny(collection, "read", actor)
	}

	records, err := s.store.List(ctx, collection, filter)
	if err != nil {
		return nil, err
	}
	if rule.Public.Can(domain.PermRead) {
		return scrub(collection, records), nil
	}

	visible := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if evaluate(rule, actor, rec, domain.PermRead) == nil {
			visible = append(visible, rec)
		}
	}
	return scrub(collection, visible), nil
}

func (s *RecordService) Get(ctx context.Context, actor ports.Actor, collection, id string) (domain.Record, error) {
	rule, err := domain.RuleFor(collection)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if evaluate(rule, actor, rec, domain.PermRead) != nil {
		return nil, s.deny(collection, "read", actor)
	}
	return scrubOne(collection, rec), nil
}

// Create inserts a record. The caller must be authenticated and becomes the
// owner of the new record: the rule's create-owner field is overwritten with
// the actor's id regardless of the payload.
func (s *RecordService) Create(ctx context.Context, actor ports.Actor, collection string, rec domain.Record) (domain.Record, error) {
	rule, err := domain.RuleFor(collection)
	if err != nil {
		return nil, err
	}
	if actor.Anonymous() {
		return nil, s.deny(collection, "write", actor)
	}

	out := rec.Clone()
	out[rule.CreateField()] = actor.ID
	if out.ID() == "" {
		out["id"] = uuid.NewString()
	} else {
		// users force the caller's own id here, so a second POST /users
		// would otherwise shadow the registration record
		if _, err := s.store.Get(ctx, collection, out.ID()); err == nil {
			return nil, domain.ErrDuplicateRecord
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	now := domain.Now()
	out["createdAt"] = now
	out["updatedAt"] = now

	created, err := s.store.Create(ctx, collection, out)
	if err != nil {
		return nil, err
	}
	metrics.RecordWritesTotal.WithLabelValues(collection, "create").Inc()
	s.log.Info().Str("collection", collection).Str("id", created.ID()).Str("actor", actor.ID).Msg("record created")
	return scrubOne(collection, created), nil
}

// Update merges patch into the stored record after a write check. The id,
// createdAt, and owner fields are immutable through this path.
func (s *RecordService) Update(ctx context.Context, actor ports.Actor, collection, id string, patch domain.Record) (domain.Record, error) {
	rule, err := domain.RuleFor(collection)
	if err != nil {
		return nil, err
	}
	current, err := s.store.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if evaluate(rule, actor, current, domain.PermWrite) != nil {
		return nil, s.deny(collection, "write", actor)
	}

	merged := current.Clone()
	for k, v := range patch {
		if immutableField(rule, k) {
			continue
		}
		merged[k] = v
	}
	merged["updatedAt"] = domain.Now()

	updated, err := s.store.Update(ctx, collection, id, merged)
	if err != nil {
		return nil, err
	}
	metrics.RecordWritesTotal.WithLabelValues(collection, "update").Inc()
	return scrubOne(collection, updated), nil
}

func (s *RecordService) Delete(ctx context.Context, actor ports.Actor, collection, id string) error {
	rule, err := domain.RuleFor(collection)
	if err != nil {
		return err
	}
	rec, err := s.store.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	if evaluate(rule, actor, rec, domain.PermWrite) != nil {
		return s.deny(collection, "write", actor)
	}
	if err := s.store.Delete(ctx, collection, id); err != nil {
		return err
	}
	metrics.RecordWritesTotal.WithLabelValues(collection, "delete").Inc()
	s.log.Info().Str("collection", collection).Str("id", id).Str("actor", actor.ID).Msg("record deleted")
	return nil
}

// evaluate compares the requested bit against the digit matching the actor's
// relationship to the record: owner, related party, or everyone else.
func evaluate(rule domain.Rule, actor ports.Actor, rec domain.Record, bit domain.Perm) error {
	digit := rule.Public
	if !actor.Anonymous() {
		for _, owner := range rule.Owners(rec) {
			if owner == actor.ID {
				digit = rule.Owner
				break
			}
		}
		if digit == rule.Public && rule.RelatedField != "" && rec.String(rule.RelatedField) == actor.ID {
			digit = rule.Related
		}
	}

	if digit.Can(bit) {
		return nil
	}
	if actor.Anonymous() {
		return domain.ErrUnauthenticated
	}
	return domain.ErrForbidden
}

// deny records the denial and returns the error matching the actor's state.
func (s *RecordService) deny(collection, verb string, actor ports.Actor) error {
	if actor.Anonymous() {
		metrics.AccessDeniedTotal.WithLabelValues(collection, verb, "unauthenticated").Inc()
		return domain.ErrUnauthenticated
	}
	metrics.AccessDeniedTotal.WithLabelValues(collection, verb, "forbidden").Inc()
	s.log.Debug().Str("collection", collection).Str("verb", verb).Str("actor", actor.ID).Msg("access denied")
	return domain.ErrForbidden
}

// immutableField reports whether k may not be changed through the generic
// update path. Owner fields are frozen to prevent ownership transfer.
func immutableField(rule domain.Rule, k string) bool {
	if k == "id" || k == "createdAt" {
		return true
	}
	for _, f := range rule.OwnerFields {
		if f == k {
			return true
		}
	}
	return false
}

// scrubOne strips secrets that must never leave the server.
func scrubOne(collection string, rec domain.Record) domain.Record {
	if collection != domain.CollectionUsers {
		return rec
	}
	out := rec.Clone()
	delete(out, "passwordHash")
	return out
}

func scrub(collection string, records []domain.Record) []domain.Record {
	if collection != domain.CollectionUsers {
		return records
	}
	out := make([]domain.Record, len(records))
	for i, rec := range records {
		out[i] = scrubOne(collection, rec)
	}
	return out
}
