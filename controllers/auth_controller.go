package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plumecms/plume/middleware"
	"github.com/plumecms/plume/models"
	"github.com/plumecms/plume/repositories"
	"github.com/plumecms/plume/session"
	"github.com/plumecms/plume/utils"
)

// AuthController handles the administrator login and logout.
type AuthController struct {
	base
	users  *repositories.UserRepository
	secret string
	ttl    time.Duration
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB, store *session.Store, secret string, ttl time.Duration) *AuthController {
	return &AuthController{
		base:   base{store: store},
		users:  repositories.NewUserRepository(db),
		secret: secret,
		ttl:    ttl,
	}
}

// LoginForm renders the login page.
func (a *AuthController) LoginForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", a.view(ctx, "Log in"))
}

// Authenticate checks the submitted credentials against the users table.
// Every mismatch produces the same flash so the response never reveals
// whether the username exists.
func (a *AuthController) Authenticate(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.PostForm("username"))
	password := ctx.PostForm("password")

	user, err := a.users.GetByUsername(username)
	if err != nil && err != gorm.ErrRecordNotFound {
		utils.Sugar.Errorf("user lookup: %v", err)
	}
	if err != nil || !utils.CheckPassword(user.PasswordHash, password) {
		a.flash(ctx, "Invalid username or password", models.FlashDanger)
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	// Fresh session id on privilege change.
	sid := uuid.NewString()
	sess := session.Session{
		ID:        sid,
		Username:  user.Username,
		LoggedIn:  true,
		CreatedAt: time.Now(),
	}
	if err := a.store.Save(ctx.Request.Context(), sess); err != nil {
		utils.Sugar.Errorf("save session: %v", err)
		a.flash(ctx, "Login is temporarily unavailable", models.FlashDanger)
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	if old := middleware.SessionID(ctx); old != "" && old != sid {
		_ = a.store.Delete(ctx.Request.Context(), old)
	}
	middleware.SetSessionCookie(ctx, a.secret, sid, a.ttl)
	ctx.Redirect(http.StatusFound, "/admin")
}

// Logout discards the session and returns to the public index.
func (a *AuthController) Logout(ctx *gin.Context) {
	if sid := middleware.SessionID(ctx); sid != "" {
		if err := a.store.Delete(ctx.Request.Context(), sid); err != nil {
			utils.Sugar.Warnf("delete session: %v", err)
		}
	}
	middleware.ClearSessionCookie(ctx)
	ctx.Redirect(http.StatusFound, "/")
}
