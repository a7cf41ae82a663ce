package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plumecms/plume/models"
)

func TestCommentGetCommentsOldestFirst(t *testing.T) {
	db := testDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)

	post := seedPost(t, posts, "A post", time.Now())
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, comments.Add(&models.Comment{
		PostID: post.ID, Author: "second", Content: "later", CreatedAt: base.Add(time.Hour),
	}))
	require.NoError(t, comments.Add(&models.Comment{
		PostID: post.ID, Author: "first", Content: "earlier", CreatedAt: base,
	}))

	got, err := comments.GetComments(post.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Author)
	assert.Equal(t, "second", got[1].Author)
}

func TestCommentGetCommentsFiltersByPost(t *testing.T) {
	db := testDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)

	one := seedPost(t, posts, "one", time.Now())
	two := seedPost(t, posts, "two", time.Now())
	seedComment(t, comments, one.ID, "alice")
	seedComment(t, comments, two.ID, "bob")

	got, err := comments.GetComments(one.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Author)

	empty, err := comments.GetComments(999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCommentFlagUnflag(t *testing.T) {
	db := testDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)

	post := seedPost(t, posts, "moderated", time.Now())
	comment := seedComment(t, comments, post.ID, "troll")
	assert.False(t, comment.Flagged)

	require.NoError(t, comments.Flag(comment.ID))
	require.NoError(t, comments.Flag(comment.ID))

	got, err := comments.GetSingle(comment.ID)
	require.NoError(t, err)
	assert.True(t, got.Flagged)

	flagged, err := comments.GetFlagged()
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, comment.ID, flagged[0].ID)

	require.NoError(t, comments.Unflag(comment.ID))
	require.NoError(t, comments.Unflag(comment.ID))

	got, err = comments.GetSingle(comment.ID)
	require.NoError(t, err)
	assert.False(t, got.Flagged)

	flagged, err = comments.GetFlagged()
	require.NoError(t, err)
	assert.Empty(t, flagged)
}

func TestCommentFlagUnknownID(t *testing.T) {
	comments := NewCommentRepository(testDB(t))
	assert.NoError(t, comments.Flag(404))
	assert.NoError(t, comments.Unflag(404))
}

func TestCommentDeleteIsIdempotent(t *testing.T) {
	db := testDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)

	post := seedPost(t, posts, "cleanup", time.Now())
	comment := seedComment(t, comments, post.ID, "spam")

	require.NoError(t, comments.Delete(comment.ID))
	require.NoError(t, comments.Delete(comment.ID))

	_, err := comments.GetSingle(comment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	total, err := comments.Count()
	require.NoError(t, err)
	assert.Zero(t, total)
}
