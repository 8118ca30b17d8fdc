package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Tag is a free-text label attached to posts. Tags are shared across posts and
// live independently of them.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;unique;not null" json:"name"`
	Slug      string    `gorm:"size:100;unique;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeSave derives the slug from the name when none was given.
func (t *Tag) BeforeSave(tx *gorm.DB) error {
	if t.Slug == "" {
		t.Slug = slug.Make(t.Name)
	}
	return nil
}
