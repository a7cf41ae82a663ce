package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/plumecms/plume/models"
	"github.com/plumecms/plume/repositories"
	"github.com/plumecms/plume/session"
	"github.com/plumecms/plume/utils"
)

const defaultPageSize = 5

// BlogController serves the public pages: the paginated index, single
// posts and the comment form.
type BlogController struct {
	base
	posts    *repositories.PostRepository
	comments *repositories.CommentRepository
	pageSize int
}

// NewBlogController creates a BlogController.
func NewBlogController(db *gorm.DB, store *session.Store, pageSize int) *BlogController {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return &BlogController{
		base:     base{store: store},
		posts:    repositories.NewPostRepository(db),
		comments: repositories.NewCommentRepository(db),
		pageSize: pageSize,
	}
}

// ListPosts renders the paginated public index. An empty slice renders the
// 404 page, which with page clamping only happens when no post exists.
func (b *BlogController) ListPosts(ctx *gin.Context) {
	page := 1
	if p, err := strconv.Atoi(ctx.Query("page")); err == nil {
		page = p
	}

	total, err := b.posts.Count()
	if err != nil {
		b.serverError(ctx, "count posts", err)
		return
	}

	pager := models.NewPaginator(page, b.pageSize, total)
	posts, err := b.posts.GetPosts(pager.PerPage(), pager.Offset())
	if err != nil {
		b.serverError(ctx, "list posts", err)
		return
	}
	if len(posts) == 0 {
		b.notFound(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "list_posts.html", ListPostsView{
		BaseView: b.view(ctx, "Blog"),
		Posts:    newPostItems(posts),
		Pager:    pager,
	})
}

// ShowPost renders one post together with its comments.
func (b *BlogController) ShowPost(ctx *gin.Context) {
	post, err := b.posts.GetSingle(parseID(ctx.Param("id")))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			b.notFound(ctx)
			return
		}
		b.serverError(ctx, "load post", err)
		return
	}

	comments, err := b.comments.GetComments(post.ID)
	if err != nil {
		b.serverError(ctx, "load comments", err)
		return
	}

	ctx.HTML(http.StatusOK, "post.html", PostView{
		BaseView: b.view(ctx, post.Title),
		Post:     newPostItem(*post),
		Comments: newCommentItems(comments),
	})
}

// AddComment stores a visitor comment. Invalid input is flashed instead of
// persisted; either way the visitor lands back on the post.
func (b *BlogController) AddComment(ctx *gin.Context) {
	id := ctx.Param("id")

	comment := models.Comment{
		PostID:  parseID(id),
		Author:  strings.TrimSpace(ctx.PostForm("author")),
		Content: strings.TrimSpace(ctx.PostForm("content")),
	}

	if err := comment.Validate(); err != nil {
		b.flash(ctx, "All fields must be filled in", models.FlashDanger)
	} else {
		comment.Content = utils.Sanitize(comment.Content)
		if err := b.comments.Add(&comment); err != nil {
			utils.Sugar.Errorf("add comment: %v", err)
			b.flash(ctx, "The comment could not be saved", models.FlashDanger)
		} else {
			b.flash(ctx, "Comment added", models.FlashSuccess)
		}
	}

	ctx.Redirect(http.StatusFound, "/post/"+id)
}

// NotFound renders the 404 page for unknown routes.
func (b *BlogController) NotFound(ctx *gin.Context) {
	b.notFound(ctx)
}
