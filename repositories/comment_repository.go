package repositories

import (
	"gorm.io/gorm"

	"github.com/plumecms/plume/models"
)

// CommentRepository encapsulates persistence and moderation state for
// comments.
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a CommentRepository on top of the given connection.
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Add persists a new comment and fills in its assigned id.
func (r *CommentRepository) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetSingle returns the comment with the given id, or gorm.ErrRecordNotFound.
func (r *CommentRepository) GetSingle(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetComments returns all comments of a post in display order, oldest first.
func (r *CommentRepository) GetComments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetFlagged returns every comment awaiting moderation, newest first.
func (r *CommentRepository) GetFlagged() ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("flagged = ?", true).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Count returns the total number of comments.
func (r *CommentRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Comment{}).Count(&total).Error
	return total, err
}

// Flag marks a comment for review. Flagging an already flagged comment
// leaves it flagged.
func (r *CommentRepository) Flag(id uint) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).
		Update("flagged", true).Error
}

// Unflag clears the moderation mark. Unflagging an unflagged comment is a
// no-op.
func (r *CommentRepository) Unflag(id uint) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).
		Update("flagged", false).Error
}

// Delete removes the comment with the given id. Unknown ids are a no-op.
func (r *CommentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
