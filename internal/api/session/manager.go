// Package session binds authenticated users to server-side session state
// keyed by an opaque cookie.
package session

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/cadastroweb/portal/internal/core/domain"
)

const (
	cookieName = "portal_session"
	userKey    = "user"

	// maxAge bounds server-side session lifetime to one day.
	maxAge = 24 * 60 * 60
)

// ErrTeardown reports a failed server-side session invalidation. The session
// may be left in an indeterminate state; callers must surface the failure
// rather than redirect as if logout succeeded.
var ErrTeardown = errors.New("session teardown failed")

// userSnapshot is the by-value copy of the user row kept in session state for
// the session's lifetime. It is a cache, not a source of truth, and never
// carries the password hash.
type userSnapshot struct {
	ID    int64
	Name  string
	Email string
}

func init() {
	// gorilla/sessions serializes values with gob.
	gob.Register(userSnapshot{})
}

// Manager is the session contract consumed by handlers and middleware.
type Manager interface {
	// Start associates the user with the request's session, replacing any
	// prior association.
	Start(c echo.Context, user *domain.User) error

	// CurrentUser returns the user bound to the request's session. A missing
	// or undecodable session is an unauthenticated request, not an error.
	CurrentUser(c echo.Context) (*domain.User, bool)

	// Destroy invalidates the whole session and instructs the client to drop
	// its cookie. Destroying an absent session succeeds.
	Destroy(c echo.Context) error
}

// NewStore builds the server-side session store. State lives under dir
// (the OS temp directory when empty), keyed by the opaque identifier carried
// in the cookie; the secret signs the cookie so identifiers cannot be forged.
func NewStore(secret, dir string) sessions.Store {
	store := sessions.NewFilesystemStore(dir, []byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Middleware exposes the store to request handlers. Must be registered on
// the Echo instance before any route using CookieManager.
func Middleware(store sessions.Store) echo.MiddlewareFunc {
	return echosession.Middleware(store)
}

// CookieManager implements Manager on top of the echo-contrib session
// middleware.
type CookieManager struct{}

func NewManager() *CookieManager {
	return &CookieManager{}
}

func (m *CookieManager) Start(c echo.Context, user *domain.User) error {
	sess, err := m.get(c)
	if err != nil {
		return err
	}

	sess.Values[userKey] = userSnapshot{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (m *CookieManager) CurrentUser(c echo.Context) (*domain.User, bool) {
	sess, err := echosession.Get(cookieName, c)
	if err != nil {
		return nil, false
	}

	snap, ok := sess.Values[userKey].(userSnapshot)
	if !ok {
		return nil, false
	}

	return &domain.User{ID: snap.ID, Name: snap.Name, Email: snap.Email}, true
}

func (m *CookieManager) Destroy(c echo.Context) error {
	sess, err := m.get(c)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTeardown, err)
	}

	for k := range sess.Values {
		delete(sess.Values, k)
	}
	// MaxAge < 0 removes the server-side state and expires the cookie.
	sess.Options.MaxAge = -1

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		// Already-gone server-side state means the session is destroyed;
		// logout must be idempotent.
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrTeardown, err)
	}
	return nil
}

// get returns the request's session. An undecodable cookie yields a fresh
// session rather than an error so stale clients can always re-authenticate.
func (m *CookieManager) get(c echo.Context) (*sessions.Session, error) {
	sess, err := echosession.Get(cookieName, c)
	if sess != nil {
		return sess, nil
	}
	return nil, err
}
