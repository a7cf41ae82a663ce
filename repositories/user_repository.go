package repositories

import (
	"gorm.io/gorm"

	"github.com/plumecms/plume/models"
)

// UserRepository looks up administrator accounts. Password verification is
// always done by the caller through a bcrypt compare, never by query.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository on top of the given connection.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Add persists a new user.
func (r *UserRepository) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByUsername returns the user with the given username, or
// gorm.ErrRecordNotFound.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
