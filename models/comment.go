package models

import "time"

// Comment is a visitor reply to a post. Flagged comments are held for
// administrator review; they stay visible until deleted.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	Author    string    `gorm:"size:64;not null" json:"author" validate:"required"`
	Content   string    `gorm:"type:text;not null" json:"content" validate:"required"`
	Flagged   bool      `gorm:"index;default:false" json:"flagged"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate reports whether the comment carries all required fields.
func (c *Comment) Validate() error {
	return validate.Struct(c)
}
