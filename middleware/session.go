package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plumecms/plume/models"
	"github.com/plumecms/plume/session"
	"github.com/plumecms/plume/utils"
)

const (
	// CookieName is the session cookie installed on every visitor.
	CookieName = "plume_session"

	// ContextSessionIDKey stores the session id inside the gin context.
	ContextSessionIDKey = "session_id"
	// ContextSessionKey stores the loaded session record, when one exists.
	ContextSessionKey = "session"
)

// WithSession ensures every request carries a valid session cookie and
// loads the server-side record, if any, into the gin context.
func WithSession(store *session.Store, secret string, ttl time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var sid string
		if tok, err := ctx.Cookie(CookieName); err == nil && tok != "" {
			if id, err := session.ParseToken(secret, tok); err == nil {
				sid = id
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			SetSessionCookie(ctx, secret, sid, ttl)
		}
		ctx.Set(ContextSessionIDKey, sid)

		if sess, err := store.Get(ctx.Request.Context(), sid); err == nil && sess != nil {
			ctx.Set(ContextSessionKey, sess)
		} else if err != nil {
			utils.Sugar.Warnf("session load failed for %s: %v", sid, err)
		}

		ctx.Next()
	}
}

// AdminRequired gates the administration pages. Requests without a
// logged-in session are flashed and sent to the login page.
func AdminRequired(store *session.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sess := CurrentSession(ctx)
		if sess == nil || !sess.LoggedIn {
			flash := models.Flash{Message: "Please log in first", Level: models.FlashDanger}
			if err := store.SetFlash(ctx.Request.Context(), SessionID(ctx), flash); err != nil {
				utils.Sugar.Warnf("flash write failed: %v", err)
			}
			ctx.Redirect(http.StatusFound, "/login")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// SetSessionCookie signs and installs the session cookie for the given id.
func SetSessionCookie(ctx *gin.Context, secret, sessionID string, ttl time.Duration) {
	tok, err := session.SignToken(secret, sessionID, ttl)
	if err != nil {
		utils.Sugar.Errorf("sign session token: %v", err)
		return
	}
	ctx.SetCookie(CookieName, tok, int(ttl.Seconds()), "/", "", false, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(ctx *gin.Context) {
	ctx.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// SessionID returns the request's session id, set by WithSession.
func SessionID(ctx *gin.Context) string {
	if v, ok := ctx.Get(ContextSessionIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// CurrentSession returns the loaded session record, or nil for anonymous
// visitors.
func CurrentSession(ctx *gin.Context) *session.Session {
	if v, ok := ctx.Get(ContextSessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
