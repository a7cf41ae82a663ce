package repositories

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plumecms/plume/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))
	return db
}

func seedPost(t *testing.T, r *PostRepository, title string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Title: title, Content: "<p>" + title + "</p>", CreatedAt: createdAt}
	require.NoError(t, r.Add(post))
	return post
}

func seedComment(t *testing.T, r *CommentRepository, postID uint, author string) *models.Comment {
	t.Helper()
	comment := &models.Comment{PostID: postID, Author: author, Content: "a comment"}
	require.NoError(t, r.Add(comment))
	return comment
}
