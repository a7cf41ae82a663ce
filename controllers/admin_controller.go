package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/plumecms/plume/models"
	"github.com/plumecms/plume/repositories"
	"github.com/plumecms/plume/session"
	"github.com/plumecms/plume/utils"
)

// AdminController implements the administration dashboard: post authoring
// and comment moderation.
type AdminController struct {
	base
	posts    *repositories.PostRepository
	comments *repositories.CommentRepository
}

// NewAdminController creates an AdminController.
func NewAdminController(db *gorm.DB, store *session.Store) *AdminController {
	return &AdminController{
		base:     base{store: store},
		posts:    repositories.NewPostRepository(db),
		comments: repositories.NewCommentRepository(db),
	}
}

// Panel renders the moderation dashboard: flagged comments plus all posts.
func (a *AdminController) Panel(ctx *gin.Context) {
	flagged, err := a.comments.GetFlagged()
	if err != nil {
		a.serverError(ctx, "load flagged comments", err)
		return
	}
	posts, err := a.posts.GetPosts(0, 0)
	if err != nil {
		a.serverError(ctx, "load posts", err)
		return
	}

	ctx.HTML(http.StatusOK, "admin_panel.html", AdminPanelView{
		BaseView:        a.view(ctx, "Administration"),
		Posts:           newPostItems(posts),
		FlaggedComments: newCommentItems(flagged),
	})
}

// WritePost renders the post editor.
func (a *AdminController) WritePost(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "write_post.html", a.view(ctx, "Write a post"))
}

// AddPost persists a new post and returns to the dashboard. Posts are not
// field-validated the way comments are; the administrator may store an
// empty title.
func (a *AdminController) AddPost(ctx *gin.Context) {
	post := models.Post{
		Title:   strings.TrimSpace(ctx.PostForm("title")),
		Content: utils.Sanitize(ctx.PostForm("content")),
	}

	if err := a.posts.Add(&post); err != nil {
		utils.Sugar.Errorf("add post: %v", err)
		a.flash(ctx, "The post could not be saved", models.FlashDanger)
	} else {
		a.flash(ctx, "Post added", models.FlashSuccess)
	}
	ctx.Redirect(http.StatusFound, "/admin")
}

// EditPost renders the edit form for an existing post.
func (a *AdminController) EditPost(ctx *gin.Context) {
	post, err := a.posts.GetSingle(parseID(ctx.Param("id")))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			a.notFound(ctx)
			return
		}
		a.serverError(ctx, "load post", err)
		return
	}

	ctx.HTML(http.StatusOK, "update_post.html", EditPostView{
		BaseView: a.view(ctx, "Edit post"),
		Post:     *post,
	})
}

// UpdatePost overwrites a post's title and content.
func (a *AdminController) UpdatePost(ctx *gin.Context) {
	post := models.Post{
		ID:      parseID(ctx.Param("id")),
		Title:   strings.TrimSpace(ctx.PostForm("title")),
		Content: utils.Sanitize(ctx.PostForm("content")),
	}

	if err := a.posts.Update(&post); err != nil {
		utils.Sugar.Errorf("update post: %v", err)
		a.flash(ctx, "The post could not be updated", models.FlashDanger)
	} else {
		a.flash(ctx, "Post updated", models.FlashSuccess)
	}
	ctx.Redirect(http.StatusFound, "/admin")
}

// DeletePost removes a post. Deleting an unknown id is not an error.
func (a *AdminController) DeletePost(ctx *gin.Context) {
	if err := a.posts.Delete(parseID(ctx.Param("id"))); err != nil {
		utils.Sugar.Errorf("delete post: %v", err)
		a.flash(ctx, "The post could not be deleted", models.FlashDanger)
	} else {
		a.flash(ctx, "Post deleted", models.FlashSuccess)
	}
	ctx.Redirect(http.StatusFound, "/admin")
}

// FlagComment marks a comment for review.
func (a *AdminController) FlagComment(ctx *gin.Context) {
	if err := a.comments.Flag(parseID(ctx.Param("id"))); err != nil {
		utils.Sugar.Errorf("flag comment: %v", err)
		a.flash(ctx, "The comment could not be flagged", models.FlashDanger)
	} else {
		a.flash(ctx, "Comment flagged", models.FlashSuccess)
	}
	ctx.Redirect(http.StatusFound, "/admin")
}

// UnflagComment clears the moderation mark.
func (a *AdminController) UnflagComment(ctx *gin.Context) {
	if err := a.comments.Unflag(parseID(ctx.Param("id"))); err != nil {
		utils.Sugar.Errorf("unflag comment: %v", err)
		a.flash(ctx, "The comment could not be unflagged", models.FlashDanger)
	} else {
		a.flash(ctx, "Comment unflagged", models.FlashSuccess)
	}
	ctx.Redirect(http.StatusFound, "/admin")
}

// DeleteComment removes a comment. Deleting an unknown id is not an error.
func (a *AdminController) DeleteComment(ctx *gin.Context) {
	if err := a.comments.Delete(parseID(ctx.Param("id"))); err != nil {
		utils.Sugar.Errorf("delete comment: %v", err)
		a.flash(ctx, "The comment could not be deleted", models.FlashDanger)
	} else {
		a.flash(ctx, "Comment deleted", models.FlashSuccess)
	}
	ctx.Redirect(http.StatusFound, "/admin")
}
