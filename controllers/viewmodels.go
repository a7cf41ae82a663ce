package controllers

import (
	"html/template"
	"time"

	"github.com/plumecms/plume/models"
)

// View models passed to the HTML renderer. Templates only ever see named
// fields; nothing is injected ambiently.

// BaseView carries the data every page shares.
type BaseView struct {
	Title    string
	Flash    *models.Flash
	LoggedIn bool
}

// PostItem is the rendered shape of a post. Content is sanitized before
// persistence, so it is safe to mark as HTML here.
type PostItem struct {
	ID        uint
	Title     string
	Content   template.HTML
	CreatedAt time.Time
}

// CommentItem is the rendered shape of a comment.
type CommentItem struct {
	ID        uint
	PostID    uint
	Author    string
	Content   template.HTML
	Flagged   bool
	CreatedAt time.Time
}

// ListPostsView feeds the public index page.
type ListPostsView struct {
	BaseView
	Posts []PostItem
	Pager models.Paginator
}

// PostView feeds the single-post page with its comments.
type PostView struct {
	BaseView
	Post     PostItem
	Comments []CommentItem
}

// AdminPanelView feeds the moderation dashboard.
type AdminPanelView struct {
	BaseView
	Posts           []PostItem
	FlaggedComments []CommentItem
}

// EditPostView feeds the post edit form. It carries the raw entity so the
// textarea shows unrendered HTML.
type EditPostView struct {
	BaseView
	Post models.Post
}

func newPostItem(p models.Post) PostItem {
	return PostItem{
		ID:        p.ID,
		Title:     p.Title,
		Content:   template.HTML(p.Content),
		CreatedAt: p.CreatedAt,
	}
}

func newPostItems(posts []models.Post) []PostItem {
	items := make([]PostItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, newPostItem(p))
	}
	return items
}

func newCommentItems(comments []models.Comment) []CommentItem {
	items := make([]CommentItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, CommentItem{
			ID:        c.ID,
			PostID:    c.PostID,
			Author:    c.Author,
			Content:   template.HTML(c.Content),
			Flagged:   c.Flagged,
			CreatedAt: c.CreatedAt,
		})
	}
	return items
}
