package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a reader comment on a post. Comments from anonymous
// visitors are created inactive and held for moderation; only active comments
// are shown in the detail view.
type Comment struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	PostID uint  `gorm:"not null;index" json:"post_id"`
	Post   Post  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	UserID *uint `gorm:"index" json:"user_id,omitempty"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Body   string `gorm:"type:text;not null" json:"body"`
	// Active is set explicitly on every creation path; no column default so
	// that a held (false) comment survives the insert untouched.
	Active    bool           `gorm:"not null" json:"active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
