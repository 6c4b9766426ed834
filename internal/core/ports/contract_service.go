package ports

import "context"

// TransitionResult is returned after a successful status change.
type TransitionResult struct {
	Status    string
	Timestamp string
}

// RatingResult is returned after a successful rating submission.
type RatingResult struct {
	Rating    int
	Comment   string
	Timestamp string
}

// ContractService validates and applies lifecycle mutations on contracts.
// Both operations go through the access-control engine, so only the two
// owning parties may call them.
type ContractService interface {
	ChangeStatus(ctx context.Context, actor Actor, id, status string) (*TransitionResult, error)
	Rate(ctx context.Context, actor Actor, id string, rating int, comment string) (*RatingResult, error)
}
