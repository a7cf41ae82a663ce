package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plumecms/plume/middleware"
	"github.com/plumecms/plume/models"
	"github.com/plumecms/plume/session"
	"github.com/plumecms/plume/utils"
)

// base bundles the helpers every controller shares: building the common
// view data, setting flash messages and rendering the failure pages.
type base struct {
	store *session.Store
}

// view assembles the BaseView for the current request, consuming any
// pending flash message.
func (b base) view(ctx *gin.Context, title string) BaseView {
	v := BaseView{Title: title}
	if sess := middleware.CurrentSession(ctx); sess != nil {
		v.LoggedIn = sess.LoggedIn
	}
	if sid := middleware.SessionID(ctx); sid != "" {
		v.Flash = b.store.TakeFlash(ctx.Request.Context(), sid)
	}
	return v
}

// flash records a one-shot message for the next rendered page.
func (b base) flash(ctx *gin.Context, message, level string) {
	sid := middleware.SessionID(ctx)
	if sid == "" {
		return
	}
	if err := b.store.SetFlash(ctx.Request.Context(), sid, models.Flash{Message: message, Level: level}); err != nil {
		utils.Sugar.Warnf("flash write failed: %v", err)
	}
}

// notFound renders the 404 page.
func (b base) notFound(ctx *gin.Context) {
	ctx.HTML(http.StatusNotFound, "not_found.html", b.view(ctx, "Page not found"))
}

// serverError logs the failure and answers with a bare 500.
func (b base) serverError(ctx *gin.Context, action string, err error) {
	utils.Sugar.Errorf("%s: %v", action, err)
	ctx.String(http.StatusInternalServerError, "Server Error")
}

// parseID converts a path parameter into an entity id. Unparsable input
// yields 0, which no stored entity uses.
func parseID(raw string) uint {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
