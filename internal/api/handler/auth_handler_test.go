package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cadastroweb/portal/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.User, error)
	userByIDFn func(ctx context.Context, id int64) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.userByIDFn(ctx, id)
}

type stubSessionManager struct {
	user       *domain.User
	startErr   error
	destroyErr error
	started    *domain.User
	destroyed  int
}

func (s *stubSessionManager) Start(_ echo.Context, user *domain.User) error {
	if s.startErr != nil {
		return s.startErr
	}
	s.started = user
	return nil
}

func (s *stubSessionManager) CurrentUser(echo.Context) (*domain.User, bool) {
	if s.user == nil {
		return nil, false
	}
	return s.user, true
}

func (s *stubSessionManager) Destroy(echo.Context) error {
	if s.destroyErr != nil {
		return s.destroyErr
	}
	s.destroyed++
	return nil
}

func newFormContext(t *testing.T, method, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Renderer = NewRenderer()
	e.Validator = NewValidator()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_RedirectsToLogin(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, name, email, password string) (*domain.User, error) {
			if name != "Alice" || email != "a@x.com" || password != "pw1" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return &domain.User{ID: 1, Name: name, Email: email}, nil
		},
	}
	h := NewAuthHandler(stub, &stubSessionManager{})

	c, rec := newFormContext(t, http.MethodPost, "/cadastro", url.Values{
		"name":     {"Alice"},
		"email":    {"a@x.com"},
		"password": {"pw1"},
	})

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestAuthHandler_Register_InvalidForm(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, &stubSessionManager{})

	c, rec := newFormContext(t, http.MethodPost, "/cadastro", url.Values{
		"name":     {"Alice"},
		"email":    {"not-an-email"},
		"password": {"pw1"},
	})

	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email") {
		t.Fatalf("expected email validation message, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(stub, &stubSessionManager{})

	c, rec := newFormContext(t, http.MethodPost, "/cadastro", url.Values{
		"name":     {"Alice"},
		"email":    {"a@x.com"},
		"password": {"pw1"},
	})

	_ = h.Register(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_StorageError(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, errors.New("insert user: disk I/O error")
		},
	}
	h := NewAuthHandler(stub, &stubSessionManager{})

	c, rec := newFormContext(t, http.MethodPost, "/cadastro", url.Values{
		"name":     {"Alice"},
		"email":    {"a@x.com"},
		"password": {"pw1"},
	})

	_ = h.Register(c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_StartsSessionAndRedirects(t *testing.T) {
	user := &domain.User{ID: 5, Name: "Alice", Email: "a@x.com"}
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*domain.User, error) {
			if email != "a@x.com" || password != "pw1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return user, nil
		},
	}
	sessions := &stubSessionManager{}
	h := NewAuthHandler(stub, sessions)

	c, rec := newFormContext(t, http.MethodPost, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"pw1"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
	if sessions.started == nil || sessions.started.ID != 5 {
		t.Fatalf("expected session to be started with user, got %+v", sessions.started)
	}
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub, &stubSessionManager{})

	c, rec := newFormContext(t, http.MethodPost, "/login", url.Values{
		"email":    {"ghost@x.com"},
		"password": {"pw"},
	})

	_ = h.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email not found") {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, &stubSessionManager{})

	c, rec := newFormContext(t, http.MethodPost, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"bad"},
	})

	_ = h.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "incorrect password") {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestAuthHandler_Login_InternalError(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, errors.New("find user: database locked")
		},
	}
	h := NewAuthHandler(stub, &stubSessionManager{})

	c, rec := newFormContext(t, http.MethodPost, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"pw"},
	})

	_ = h.Login(c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_SessionStartFailure(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.User, error) {
			return &domain.User{ID: 1}, nil
		},
	}
	h := NewAuthHandler(stub, &stubSessionManager{startErr: errors.New("save session: no space left")})

	c, rec := newFormContext(t, http.MethodPost, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"pw"},
	})

	_ = h.Login(c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_RedirectsToLogin(t *testing.T) {
	sessions := &stubSessionManager{}
	h := NewAuthHandler(&stubAuthService{}, sessions)

	c, rec := newFormContext(t, http.MethodGet, "/logout", nil)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if sessions.destroyed != 1 {
		t.Fatalf("expected session teardown, got %d", sessions.destroyed)
	}
}

func TestAuthHandler_Logout_TeardownFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubSessionManager{destroyErr: errors.New("session teardown failed")})

	c, rec := newFormContext(t, http.MethodGet, "/logout", nil)

	_ = h.Logout(c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "teardown") {
		t.Fatalf("expected teardown message, got %q", rec.Body.String())
	}
}
