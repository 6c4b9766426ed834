package domain

import "time"

// Record is a schemaless document held by the record store. Every record
// carries a string "id" field; ownership foreign keys and timestamps are
// plain fields on the map.
type Record map[string]any

// String returns the record's value for key when it is a string, else "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// ID returns the record's id field.
func (r Record) ID() string {
	return r.String("id")
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Timestamp formatting for createdAt/updatedAt fields.
const TimeLayout = time.RFC3339Nano

// Now returns the current instant formatted for record timestamps.
func Now() string {
	return time.Now().UTC().Format(TimeLayout)
}

// Collection names known to the access control engine.
const (
	CollectionUsers         = "users"
	CollectionClients       = "clients"
	CollectionProfessionals = "professionals"
	CollectionPortfolios    = "portfolios"
	CollectionContracts     = "contracts"
	CollectionServices      = "services"
	CollectionNotifications = "notifications"
	CollectionFavorites     = "favorites"
)

// Collections lists every collection the API serves, in route-table order.
var Collections = []string{
	CollectionUsers,
	CollectionClients,
	CollectionProfessionals,
	CollectionPortfolios,
	CollectionContracts,
	CollectionServices,
	CollectionNotifications,
	CollectionFavorites,
}

// KnownCollection reports whether name is a served collection.
func KnownCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}
