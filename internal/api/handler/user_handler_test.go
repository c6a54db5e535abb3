package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/freshcodes/identity-gateway/internal/core/domain"
)

type stubVerifier struct {
	getFn        func(ctx context.Context, userID string) (*domain.User, error)
	createFn     func(ctx context.Context, p domain.NewUserParams) (*domain.User, error)
	updateRoleFn func(ctx context.Context, userID, newRole string) error
}

func (s *stubVerifier) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.getFn(ctx, userID)
}

func (s *stubVerifier) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubVerifier) Exists(ctx context.Context, userID string) (bool, error) {
	return false, nil
}

func (s *stubVerifier) CreateUser(ctx context.Context, p domain.NewUserParams) (*domain.User, error) {
	return s.createFn(ctx, p)
}

func (s *stubVerifier) GetOrCreateUser(ctx context.Context, p domain.NewUserParams) (*domain.User, error) {
	return s.createFn(ctx, p)
}

func (s *stubVerifier) VerifyRole(ctx context.Context, userID string, required []string) (bool, error) {
	return false, nil
}

func (s *stubVerifier) UpdateRole(ctx context.Context, userID, newRole string) error {
	return s.updateRoleFn(ctx, userID, newRole)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestUserHandler_Me(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", domain.NewUser(domain.NewUserParams{Email: "a@b.com"}, time.Now().UTC()))

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "a@b.com" || user["username"] != "a" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Me_NoResolvedIdentity(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Me(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTP error, got %v", err)
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubVerifier{
		createFn: func(ctx context.Context, p domain.NewUserParams) (*domain.User, error) {
			if p.Email != "a@b.com" || p.Role != domain.RoleModerator {
				t.Fatalf("unexpected params: %+v", p)
			}
			return domain.NewUser(p, time.Now().UTC()), nil
		},
	}
	handler := NewUserHandler(stub)

	body := strings.NewReader(`{"email":"a@b.com","role":"moderator"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != "moderator" || user["is_active"] != true {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestUserHandler_Create_InvalidEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubVerifier{
		createFn: func(ctx context.Context, p domain.NewUserParams) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTP error, got %v", err)
	}
}

func TestUserHandler_Create_InvalidRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubVerifier{
		createFn: func(ctx context.Context, p domain.NewUserParams) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"a@b.com","role":"root"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTP error, got %v", err)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubVerifier{
		getFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/users/ghost@b.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email")
	c.SetParamValues("ghost@b.com")

	if err := handler.Get(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}
}

func TestUserHandler_UpdateRole_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubVerifier{
		updateRoleFn: func(ctx context.Context, userID, newRole string) error {
			if userID != "a@b.com" || newRole != domain.RoleAdmin {
				t.Fatalf("unexpected args: %s %s", userID, newRole)
			}
			return nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/users/a@b.com/role", strings.NewReader(`{"role":"admin"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email")
	c.SetParamValues("a@b.com")

	if err := handler.UpdateRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateRole_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubVerifier{
		updateRoleFn: func(ctx context.Context, userID, newRole string) error {
			return domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/users/ghost@b.com/role", strings.NewReader(`{"role":"admin"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email")
	c.SetParamValues("ghost@b.com")

	if err := handler.UpdateRole(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}
}
