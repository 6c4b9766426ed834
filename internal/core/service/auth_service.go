package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/profissa/marketplace-api/internal/api/metrics"
	"github.com/profissa/marketplace-api/internal/core/domain"
	"github.com/profissa/marketplace-api/internal/core/ports"
)

const minPasswordLen = 6

// dummyHash is compared against when the login email is unknown, so unknown
// identity and wrong password cost the same and return the same error.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("marketplace-dummy"), bcrypt.DefaultCost)

// TokenDenylist records revoked token ids until they would have expired
// anyway. A nil denylist disables revocation.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthService implements registration, login, and stateless token
// verification. Users persist as records in the users collection.
type AuthService struct {
	store     ports.RecordStore
	denylist  TokenDenylist
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(store ports.RecordStore, denylist TokenDenylist, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{store: store, denylist: denylist, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Email == "" || len(in.Password) < minPasswordLen {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "denied").Inc()
		return nil, domain.ErrInvalidCredentialFormat
	}
	role := in.Role
	if role == "" {
		role = domain.RoleClient
	}
	if !domain.ValidRole(role) {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "denied").Inc()
		return nil, domain.ErrInvalidCredentialFormat
	}

	existing, err := s.store.List(ctx, domain.CollectionUsers, ports.Filter{"email": in.Email})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, err
	}
	if len(existing) > 0 {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "denied").Inc()
		return nil, domain.ErrDuplicateIdentity
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, err
	}

	now := domain.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.store.Create(ctx, domain.CollectionUsers, user.ToRecord()); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Login authenticates by email and password. Unknown identity and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "denied").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	records, err := s.store.List(ctx, domain.CollectionUsers, ports.Filter{"email": email})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, err
	}

	var user *domain.User
	hash := dummyHash
	if len(records) > 0 {
		user = domain.UserFromRecord(records[0])
		hash = []byte(user.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil || user == nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "denied").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Verify parses and validates a bearer token and returns the identity it is
// bound to. Validity is fully determined by signature, expiry, and the
// denylist; no session state is consulted.
func (s *AuthService) Verify(ctx context.Context, token string) (*ports.Identity, error) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	if s.denylist != nil {
		if jti, _ := claims["jti"].(string); jti != "" {
			revoked, err := s.denylist.IsRevoked(ctx, jti)
			if err != nil {
				s.log.Warn().Err(err).Msg("denylist check failed, treating token as valid")
			} else if revoked {
				return nil, domain.ErrUnauthenticated
			}
		}
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrUnauthenticated
	}
	role, _ := claims["role"].(string)
	return &ports.Identity{UserID: sub, Role: role}, nil
}

// Logout revokes the token's id for the remainder of its lifetime. Without a
// denylist the call succeeds but is a no-op (tokens stay valid until expiry).
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseClaims(token)
	if err != nil {
		return domain.ErrUnauthenticated
	}
	if s.denylist == nil {
		return nil
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return domain.ErrUnauthenticated
	}
	ttl := s.tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, jti, ttl)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
		"jti":  uuid.NewString(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}
