package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"neotech/internal/config"
	"neotech/internal/logging"
)

const (
	tokenContextKey   = "session_token"
	sessionContextKey = "session"
)

// Sessions loads the session named by the signed cookie into each request and persists it on
// demand. Requests without a valid cookie get a fresh, unsaved session.
type Sessions struct {
	tokens     *TokenService
	store      SessionStoreInterface
	cookieName string
	secure     bool
}

// NewSessions builds the session manager.
func NewSessions(cfg config.SessionConfig, store SessionStoreInterface) *Sessions {
	return &Sessions{
		tokens:     NewTokenService(cfg.Secret, cfg.TTL),
		store:      store,
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
	}
}

// Middleware validates the cookie with echo-jwt and attaches the session to the context.
// A missing, forged or expired cookie is not an error.
func (m *Sessions) Middleware() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey:    m.tokens.Secret(),
		SigningMethod: echojwt.AlgorithmHS256,
		TokenLookup:   "cookie:" + m.cookieName,
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &jwt.RegisteredClaims{}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})

	load := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			SetContext(c, m.load(c))
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(load(next))
	}
}

func (m *Sessions) load(c echo.Context) *Session {
	token, ok := c.Get(tokenContextKey).(*jwt.Token)
	if !ok {
		return &Session{}
	}
	id, err := sessionIDFromToken(token)
	if err != nil {
		return &Session{}
	}

	ctx := c.Request().Context()
	session, err := m.store.Load(ctx, id)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("session load failed")
		return &Session{}
	}
	if session == nil {
		// expired server-side; start over
		return &Session{}
	}
	return session
}

// SetContext attaches session to the request.
func SetContext(c echo.Context, session *Session) {
	c.Set(sessionContextKey, session)
}

// FromContext returns the request's session. It is never nil.
func FromContext(c echo.Context) *Session {
	if s, ok := c.Get(sessionContextKey).(*Session); ok && s != nil {
		return s
	}
	s := &Session{}
	c.Set(sessionContextKey, s)
	return s
}

// Save persists the session and (re)issues its cookie. Call it before writing the response.
func (m *Sessions) Save(c echo.Context, session *Session) error {
	if session.ID == "" {
		session.ID = NewSessionID()
	}
	if err := m.store.Save(c.Request().Context(), session, m.tokens.TTL()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	token, err := m.tokens.Issue(session.ID)
	if err != nil {
		return fmt.Errorf("issue session token: %w", err)
	}
	c.SetCookie(m.cookie(token, int(m.tokens.TTL()/time.Second)))
	c.Set(sessionContextKey, session)
	return nil
}

// SignIn attaches principal under a new session id, carrying the cart over, and saves it.
func (m *Sessions) SignIn(c echo.Context, principal *Principal) error {
	session := FromContext(c)
	if session.ID != "" {
		if err := m.store.Delete(c.Request().Context(), session.ID); err != nil {
			logging.Ctx(c.Request().Context()).Warn().Err(err).Msg("drop previous session failed")
		}
	}
	renewed := &Session{ID: NewSessionID(), User: principal, Cart: session.Cart}
	return m.Save(c, renewed)
}

// Destroy deletes the session record and expires the cookie.
func (m *Sessions) Destroy(c echo.Context) error {
	session := FromContext(c)
	if session.ID != "" {
		if err := m.store.Delete(c.Request().Context(), session.ID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	c.SetCookie(m.cookie("", -1))
	c.Set(sessionContextKey, &Session{})
	return nil
}

func (m *Sessions) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !FromContext(c).Authenticated() {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}
