package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/profissa/marketplace-api/internal/core/domain"
	"github.com/profissa/marketplace-api/internal/core/ports"
)

type stubAuthService struct {
	users map[string]string // email -> password
}

func newStubAuthService() *stubAuthService {
	return &stubAuthService{users: make(map[string]string)}
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if _, exists := s.users[in.Email]; exists {
		return nil, domain.ErrDuplicateIdentity
	}
	s.users[in.Email] = in.Password
	return &ports.AuthResult{
		Token: "tok-" + in.Email,
		User:  &domain.User{ID: "u-" + in.Email, Email: in.Email, Role: in.Role},
	}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*ports.AuthResult, error) {
	if stored, ok := s.users[email]; !ok || stored != password {
		return nil, domain.ErrInvalidCredentials
	}
	return &ports.AuthResult{Token: "tok-" + email, User: &domain.User{ID: "u-" + email, Email: email}}, nil
}

func (s *stubAuthService) Verify(context.Context, string) (*ports.Identity, error) {
	return nil, domain.ErrUnauthenticated
}

func (s *stubAuthService) Logout(context.Context, string) error {
	return nil
}

func authRequest(path, body string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestAuthHandler_Register(t *testing.T) {
	h := NewAuthHandler(newStubAuthService())
	rec, c := authRequest("/auth/register", `{"email":"a@example.com","password":"secret1","role":"client"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["token"] == nil || body["user"] == nil {
		t.Fatalf("expected token and user in response: %v", body)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	svc := newStubAuthService()
	h := NewAuthHandler(svc)

	_, c1 := authRequest("/auth/register", `{"email":"a@example.com","password":"secret1"}`)
	_ = h.Register(c1)

	rec, c2 := authRequest("/auth/register", `{"email":"a@example.com","password":"secret2"}`)
	if err := h.Register(c2); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	h := NewAuthHandler(newStubAuthService())
	rec, c := authRequest("/auth/register", `{"email":"a@example.com","password":"abc"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	h := NewAuthHandler(newStubAuthService())
	rec, c := authRequest("/auth/login", `{"email":"ghost@example.com","password":"nope"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
