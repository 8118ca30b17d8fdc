package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Post status values, stored as two-letter codes.
const (
	PostStatusDraft     = "DF"
	PostStatusPublished = "PB"
)

// Post represents a blog post. Only published posts appear in public views.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:250;not null" json:"title"`
	Slug     string `gorm:"size:250;not null;index:idx_posts_slug_publish" json:"slug"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Body     string `gorm:"type:text;not null" json:"body"`
	// Publish is the publication timestamp; it defaults to the creation time
	// and scopes slug uniqueness (one slug per publish date).
	Publish   time.Time      `gorm:"not null;index:idx_posts_slug_publish;index:idx_posts_publish,sort:desc" json:"publish"`
	Status    string         `gorm:"size:2;not null;default:DF" json:"status"`
	Image     string         `json:"image,omitempty"`
	Tags      []Tag          `gorm:"many2many:post_tags" json:"tags,omitempty"`
	LikedBy   []User         `gorm:"many2many:post_likes" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// SameTags is the shared-tag count computed by the similar-posts query.
	SameTags int `gorm:"->;-:migration" json:"-"`
	// LikesCount is not persisted; computed at query time.
	LikesCount int64 `gorm:"->;-:migration" json:"likes_count"`
}

// Published reports whether the post is visible in public views.
func (p *Post) Published() bool {
	return p.Status == PostStatusPublished
}

// BeforeCreate defaults the publish timestamp to the creation time.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.Publish.IsZero() {
		p.Publish = time.Now().UTC()
	}
	return nil
}

// BeforeSave derives the slug from the title when none was given. An explicit
// slug is preserved verbatim and never re-derived on later saves.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	return nil
}
