package repositories

import (
	"gorm.io/gorm"

	"github.com/plumecms/plume/models"
)

// PostRepository encapsulates persistence for blog posts.
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a PostRepository on top of the given connection.
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Add persists a new post and fills in its assigned id.
func (r *PostRepository) Add(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetSingle returns the post with the given id, or gorm.ErrRecordNotFound.
func (r *PostRepository) GetSingle(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts returns posts newest first, ties broken by insertion order.
// A non-positive limit returns all posts.
func (r *PostRepository) GetPosts(limit, offset int) ([]models.Post, error) {
	q := r.db.Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the total number of posts.
func (r *PostRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Post{}).Count(&total).Error
	return total, err
}

// Update overwrites the mutable fields of the stored post. Empty strings
// are written as-is; there is no partial update.
func (r *PostRepository) Update(post *models.Post) error {
	return r.db.Model(&models.Post{ID: post.ID}).
		Updates(map[string]interface{}{
			"title":   post.Title,
			"content": post.Content,
		}).Error
}

// Delete removes the post with the given id. Unknown ids are a no-op.
func (r *PostRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}
