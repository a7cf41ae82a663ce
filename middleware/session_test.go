package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumecms/plume/session"
)

const testSecret = "test-secret"

func sessionEngine(store *session.Store, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithSession(store, testSecret, time.Hour))
	r.GET("/", handler)
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func TestWithSessionMintsCookieForAnonymous(t *testing.T) {
	store := session.NewStore(nil, time.Hour)
	r := sessionEngine(store, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, SessionID(ctx))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)

	sid, err := session.ParseToken(testSecret, cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, sid, w.Body.String())
}

func TestWithSessionLoadsExistingSession(t *testing.T) {
	store := session.NewStore(nil, time.Hour)
	require.NoError(t, store.Save(context.Background(), session.Session{
		ID: "known-sid", Username: "admin", LoggedIn: true,
	}))

	r := sessionEngine(store, func(ctx *gin.Context) {
		sess := CurrentSession(ctx)
		require.NotNil(t, sess)
		ctx.String(http.StatusOK, sess.Username)
	})

	tok, err := session.SignToken(testSecret, "known-sid", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "admin", w.Body.String())
	assert.Nil(t, sessionCookie(t, w))
}

func TestWithSessionRejectsForgedCookie(t *testing.T) {
	store := session.NewStore(nil, time.Hour)
	r := sessionEngine(store, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, SessionID(ctx))
	})

	forged, err := session.SignToken("other-secret", "evil-sid", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: forged})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "evil-sid", w.Body.String())
	assert.NotNil(t, sessionCookie(t, w))
}

func TestAdminRequiredRedirectsAnonymous(t *testing.T) {
	store := session.NewStore(nil, time.Hour)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithSession(store, testSecret, time.Hour))
	r.GET("/admin", AdminRequired(store), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "panel")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	sid, err := session.ParseToken(testSecret, cookie.Value)
	require.NoError(t, err)

	flash := store.TakeFlash(context.Background(), sid)
	require.NotNil(t, flash)
	assert.Equal(t, "Please log in first", flash.Message)
}

func TestAdminRequiredAllowsLoggedIn(t *testing.T) {
	store := session.NewStore(nil, time.Hour)
	require.NoError(t, store.Save(context.Background(), session.Session{
		ID: "admin-sid", Username: "admin", LoggedIn: true,
	}))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithSession(store, testSecret, time.Hour))
	r.GET("/admin", AdminRequired(store), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "panel")
	})

	tok, err := session.SignToken(testSecret, "admin-sid", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "panel", w.Body.String())
}
