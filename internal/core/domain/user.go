package domain

const (
	RoleClient       = "client"
	RoleProfessional = "professional"
)

// User models an authenticated actor. It is the typed view of a record in
// the users collection; PasswordHash never leaves the server.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// ValidRole reports whether role is a member of the role enumeration.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleProfessional
}

// ToRecord converts the user to its record-store representation.
func (u *User) ToRecord() Record {
	rec := Record{
		"id":           u.ID,
		"email":        u.Email,
		"passwordHash": u.PasswordHash,
		"role":         u.Role,
		"createdAt":    u.CreatedAt,
		"updatedAt":    u.UpdatedAt,
	}
	if u.Phone != "" {
		rec["phone"] = u.Phone
	}
	return rec
}

// UserFromRecord builds the typed view of a users record.
func UserFromRecord(rec Record) *User {
	return &User{
		ID:           rec.ID(),
		Email:        rec.String("email"),
		Phone:        rec.String("phone"),
		PasswordHash: rec.String("passwordHash"),
		Role:         rec.String("role"),
		CreatedAt:    rec.String("createdAt"),
		UpdatedAt:    rec.String("updatedAt"),
	}
}
