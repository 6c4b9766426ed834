package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/profissa/marketplace-api/internal/api/metrics"
	"github.com/profissa/marketplace-api/internal/core/domain"
	"github.com/profissa/marketplace-api/internal/core/ports"
)

// ContractService validates and applies lifecycle mutations on contracts.
// All writes go through the access control engine, so only the two owning
// parties (client and professional) reach the store.
type ContractService struct {
	records ports.RecordService
	log     zerolog.Logger
}

func NewContractService(records ports.RecordService, log zerolog.Logger) *ContractService {
	return &ContractService{records: records, log: log}
}

// ChangeStatus applies a status transition. Any member of the status
// enumeration is accepted from any current state; non-adjacent jumps are
// logged so the lifecycle can be tightened later without hunting callers.
func (s *ContractService) ChangeStatus(ctx context.Context, actor ports.Actor, id, status string) (*ports.TransitionResult, error) {
	next := domain.ContractStatus(status)
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidStatus, status)
	}

	current, err := s.records.Get(ctx, actor, domain.CollectionContracts, id)
	if err != nil {
		return nil, err
	}
	from := domain.ContractStatus(current.String("status"))
	if from.IsValid() && from != next && !from.CanTransitionTo(next) {
		s.log.Warn().
			Str("contract_id", id).
			Str("from", string(from)).
			Str("to", string(next)).
			Msg("non-adjacent status transition accepted")
	}

	patch := domain.Record{"status": status}
	switch next {
	case domain.StatusAceito:
		patch["acceptedAt"] = domain.Now()
	case domain.StatusConcluido:
		patch["completedAt"] = domain.Now()
	}

	updated, err := s.records.Update(ctx, actor, domain.CollectionContracts, id, patch)
	if err != nil {
		return nil, err
	}

	metrics.ContractTransitionsTotal.WithLabelValues(status).Inc()
	s.log.Info().Str("contract_id", id).Str("status", status).Str("actor", actor.ID).Msg("contract status changed")

	return &ports.TransitionResult{
		Status:    status,
		Timestamp: updated.String("updatedAt"),
	}, nil
}

// Rate records a rating and comment on a contract. The rating must be within
// [1, 5]; re-rating overwrites the previous value.
func (s *ContractService) Rate(ctx context.Context, actor ports.Actor, id string, rating int, comment string) (*ports.RatingResult, error) {
	if rating < domain.RatingMin || rating > domain.RatingMax {
		return nil, domain.ErrInvalidRating
	}

	patch := domain.Record{
		"rating":  rating,
		"comment": comment,
	}
	updated, err := s.records.Update(ctx, actor, domain.CollectionContracts, id, patch)
	if err != nil {
		return nil, err
	}

	metrics.RatingsSubmittedTotal.Inc()
	s.log.Info().Str("contract_id", id).Int("rating", rating).Str("actor", actor.ID).Msg("contract rated")

	return &ports.RatingResult{
		Rating:    rating,
		Comment:   comment,
		Timestamp: updated.String("updatedAt"),
	}, nil
}
