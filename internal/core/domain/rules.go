package domain

import "fmt"

// Perm is a Unix-style permission digit: a bitmask of read and write.
type Perm int

const (
	PermNone  Perm = 0
	PermWrite Perm = 2
	PermRead  Perm = 4
	PermRW    Perm = PermRead | PermWrite
)

// Can reports whether the digit grants the requested bit.
func (p Perm) Can(bit Perm) bool {
	return p&bit != 0
}

// Rule declares who may do what on a collection: one digit for the record's
// owner(s), one for a related party, one for everyone else.
type Rule struct {
	Owner   Perm
	Related Perm
	Public  Perm

	// OwnerFields are the record fields holding owning user ids. Contracts
	// declare two (clientId, professionalId): both parties are full owners.
	OwnerFields []string
	// RelatedField, when non-empty, names a field whose user id gets the
	// Related digit.
	RelatedField string
	// CreateOwnerField is the field forced to the caller's id on create so
	// ownership can never be forged. Defaults to the first owner field.
	CreateOwnerField string
}

// Rules maps each collection to its ownership rule. users records are owned
// by the user they describe (the id field itself); everything else points at
// its owner through a foreign key.
var Rules = map[string]Rule{
	CollectionUsers:         {Owner: PermRW, OwnerFields: []string{"id"}},
	CollectionClients:       {Owner: PermRW, Public: PermRead, OwnerFields: []string{"userId"}},
	CollectionProfessionals: {Owner: PermRW, Public: PermRead, OwnerFields: []string{"userId"}},
	CollectionPortfolios:    {Owner: PermRW, Public: PermRead, OwnerFields: []string{"userId"}},
	CollectionServices:      {Owner: PermRW, Related: PermRead, OwnerFields: []string{"userId"}, RelatedField: "professionalId"},
	CollectionContracts:     {Owner: PermRW, OwnerFields: []string{"clientId", "professionalId"}},
	CollectionNotifications: {Owner: PermRW, OwnerFields: []string{"userId"}},
	CollectionFavorites:     {Owner: PermRW, OwnerFields: []string{"userId"}},
}

// RuleFor returns the rule for a collection.
func RuleFor(collection string) (Rule, error) {
	rule, ok := Rules[collection]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	return rule, nil
}

// Owners extracts the owning user ids from a record under this rule,
// skipping empty fields.
func (r Rule) Owners(rec Record) []string {
	owners := make([]string, 0, len(r.OwnerFields))
	for _, f := range r.OwnerFields {
		if id := rec.String(f); id != "" {
			owners = append(owners, id)
		}
	}
	return owners
}

// CreateField returns the field forced to the caller's id on create.
func (r Rule) CreateField() string {
	if r.CreateOwnerField != "" {
		return r.CreateOwnerField
	}
	return r.OwnerFields[0]
}

// ValidateRules checks the rule table against the known collection set:
// every collection has a rule, every rule belongs to a collection, and every
// rule names at least one owner field. Called once at startup.
func ValidateRules() error {
	for _, c := range Collections {
		rule, ok := Rules[c]
		if !ok {
			return fmt.Errorf("rules: collection %q has no ownership rule", c)
		}
		if len(rule.OwnerFields) == 0 {
			return fmt.Errorf("rules: collection %q declares no owner field", c)
		}
	}
	for c := range Rules {
		if !KnownCollection(c) {
			return fmt.Errorf("rules: rule declared for unknown collection %q", c)
		}
	}
	return nil
}
