package domain

// ContractStatus is the lifecycle state of a contract (service request).
// Values are kept in Portuguese because clients display them verbatim.
type ContractStatus string

const (
	StatusCriado      ContractStatus = "criado"
	StatusAceito      ContractStatus = "aceito"
	StatusEmAndamento ContractStatus = "em_andamento"
	StatusConcluido   ContractStatus = "concluido"
	StatusCancelado   ContractStatus = "cancelado"
)

// ValidStatuses enumerates every accepted status value, in lifecycle order.
var ValidStatuses = []ContractStatus{
	StatusCriado,
	StatusAceito,
	StatusEmAndamento,
	StatusConcluido,
	StatusCancelado,
}

// adjacentTransitions is the strict lifecycle graph. The API accepts any
// member of ValidStatuses regardless of current state; non-adjacent jumps
// are logged, not rejected.
var adjacentTransitions = map[ContractStatus][]ContractStatus{
	StatusCriado:      {StatusAceito, StatusCancelado},
	StatusAceito:      {StatusEmAndamento, StatusCancelado},
	StatusEmAndamento: {StatusConcluido, StatusCancelado},
}

// IsValid reports whether s is a member of the status enumeration.
func (s ContractStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether next is adjacent to s in the lifecycle graph.
func (s ContractStatus) CanTransitionTo(next ContractStatus) bool {
	for _, allowed := range adjacentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StatusValues returns ValidStatuses as plain strings, for error payloads.
func StatusValues() []string {
	out := make([]string, len(ValidStatuses))
	for i, s := range ValidStatuses {
		out[i] = string(s)
	}
	return out
}

// Rating bounds (inclusive).
const (
	RatingMin = 1
	RatingMax = 5
)
