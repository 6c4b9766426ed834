package ports

import (
	"context"

	"github.com/profissa/marketplace-api/internal/core/domain"
)

// RegisterInput carries a registration request.
type RegisterInput struct {
	Email    string
	Password string
	Phone    string
	Role     string
}

// AuthResult is returned by Register and Login: a freshly minted bearer
// token plus the user it is bound to.
type AuthResult struct {
	Token string
	User  *domain.User
}

// Identity is the outcome of token verification.
type Identity struct {
	UserID string
	Role   string
}

// AuthService issues and verifies bearer tokens bound to a user identity.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Verify returns domain.ErrUnauthenticated for missing, malformed,
	// expired, revoked, or badly signed tokens.
	Verify(ctx context.Context, token string) (*Identity, error)
	// Logout revokes the token until its natural expiry.
	Logout(ctx context.Context, token string) error
}
