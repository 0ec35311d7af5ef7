package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neotech/internal/cache"
	"neotech/internal/config"
)

const testCookie = "neotech_session"

func newTestSessions(store cache.Store) *Sessions {
	return NewSessions(config.SessionConfig{
		Secret:     "test-secret",
		TTL:        time.Hour,
		CookieName: testCookie,
	}, NewSessionStore(store))
}

// newTestEcho mounts GET /touch (adds product 1 to the cart and saves) and GET /peek.
func newTestEcho(m *Sessions) *echo.Echo {
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/touch", func(c echo.Context) error {
		s := FromContext(c)
		s.Cart.Add(1)
		if err := m.Save(c, s); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, s)
	})
	e.GET("/peek", func(c echo.Context) error {
		return c.JSON(http.StatusOK, FromContext(c))
	})
	e.GET("/private", func(c echo.Context) error {
		return c.String(http.StatusOK, "secret")
	}, RequireAuth())
	return e
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie set", testCookie)
	return nil
}

func do(e *echo.Echo, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenService_IssueAndParse(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)

	token, err := svc.Issue("sid-1")
	require.NoError(t, err)

	id, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", id)

	_, err = NewTokenService("other", time.Minute).Parse(token)
	assert.Error(t, err)

	expired, err := NewTokenService("secret", -time.Minute).Issue("sid-2")
	require.NoError(t, err)
	_, err = svc.Parse(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(cache.NewMemory())

	missing, err := store.Load(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	s := &Session{ID: "abc", User: &Principal{ID: 7, Email: "a@b.c", IsAdmin: true}}
	s.Cart.Add(3)
	s.Cart.Add(3)
	require.NoError(t, store.Save(ctx, s, time.Minute))

	got, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(7), got.User.ID)
	assert.True(t, got.User.IsAdmin)
	assert.Equal(t, 2, got.Cart.Quantity(3))

	require.NoError(t, store.Delete(ctx, "abc"))
	got, _ = store.Load(ctx, "abc")
	assert.Nil(t, got)
}

func TestSessionStore_OutageIsAnError(t *testing.T) {
	redis := cache.New("127.0.0.1:1", "", 0)
	t.Cleanup(func() { _ = redis.Close() })
	store := NewSessionStore(redis.Strict())
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	assert.Error(t, store.Save(ctx, &Session{ID: "abc"}, time.Minute))
	_, err := store.Load(ctx, "abc")
	assert.Error(t, err)

	// the cart write fails loudly and no cookie is issued for the unsaved session
	rec := do(newTestEcho(newTestSessions(redis.Strict())), "/touch", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, testCookie, c.Name)
	}
}

func TestSessions_CartSurvivesAcrossRequests(t *testing.T) {
	m := newTestSessions(cache.NewMemory())
	e := newTestEcho(m)

	rec := do(e, "/touch", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)

	rec = do(e, "/touch", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"1":2`)
}

func TestSessions_BadCookieStartsFresh(t *testing.T) {
	m := newTestSessions(cache.NewMemory())
	e := newTestEcho(m)

	forged := &http.Cookie{Name: testCookie, Value: "not-a-jwt"}
	rec := do(e, "/peek", forged)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":""}`, rec.Body.String())

	// valid signature but the record is gone server-side
	token, err := m.tokens.Issue("vanished")
	require.NoError(t, err)
	rec = do(e, "/peek", &http.Cookie{Name: testCookie, Value: token})
	assert.JSONEq(t, `{"id":""}`, rec.Body.String())
}

func TestSessions_SignInRenewsIDAndKeepsCart(t *testing.T) {
	mem := cache.NewMemory()
	m := newTestSessions(mem)
	e := newTestEcho(m)
	e.GET("/signin", func(c echo.Context) error {
		if err := m.SignIn(c, &Principal{ID: 1, Email: "a@b.c"}); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, FromContext(c))
	})
	e.GET("/signout", func(c echo.Context) error {
		if err := m.Destroy(c); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})

	anon := sessionCookie(t, do(e, "/touch", nil))
	anonID, err := m.tokens.Parse(anon.Value)
	require.NoError(t, err)

	rec := do(e, "/signin", anon)
	require.Equal(t, http.StatusOK, rec.Code)
	authed := sessionCookie(t, rec)
	authedID, err := m.tokens.Parse(authed.Value)
	require.NoError(t, err)
	assert.NotEqual(t, anonID, authedID)

	old, _ := m.store.Load(context.Background(), anonID)
	assert.Nil(t, old)

	rec = do(e, "/peek", authed)
	assert.Contains(t, rec.Body.String(), `"email":"a@b.c"`)
	assert.Contains(t, rec.Body.String(), `"1":1`)

	assert.Equal(t, http.StatusOK, do(e, "/private", authed).Code)

	rec = do(e, "/signout", authed)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, -1, sessionCookie(t, rec).MaxAge)
	assert.Equal(t, 0, mem.Len())
}

func TestRequireAuth_RedirectsAnonymous(t *testing.T) {
	e := newTestEcho(newTestSessions(cache.NewMemory()))

	rec := do(e, "/private", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}
