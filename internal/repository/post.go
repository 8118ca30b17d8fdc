// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. List and Get
// methods prefixed with Published operate on the published-only view; the
// unprefixed ones see every post regardless of status.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetPublishedByID(ctx context.Context, id uint) (*models.Post, error)
	// GetPublishedByDateSlug resolves a published post by its composite key:
	// publish year, month, day (UTC) and slug.
	GetPublishedByDateSlug(ctx context.Context, year, month, day int, slug string) (*models.Post, error)
	// ListPublished returns published posts newest-publish-first, optionally
	// narrowed to a tag (tagID 0 means no filter).
	ListPublished(ctx context.Context, tagID uint, limit, offset int) ([]*models.Post, error)
	CountPublished(ctx context.Context, tagID uint) (int64, error)
	// Similar returns published posts sharing at least one tag with post,
	// excluding post itself, ordered by shared-tag count descending then
	// publish descending.
	Similar(ctx context.Context, post *models.Post, limit int) ([]*models.Post, error)
	SlugExistsOnDate(ctx context.Context, slug string, day time.Time) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	LikeCount(ctx context.Context, postID uint) (int64, error)
	IsLikedBy(ctx context.Context, postID, userID uint) (bool, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.InvalidateSimilarPosts(ctx, post.ID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("posts.status = ?", models.PostStatusPublished)
}

func (r *postRepository) GetPublishedByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.published(ctx).
		Preload("Author").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// dayBounds returns the UTC start (inclusive) and end (exclusive) of a calendar day.
func dayBounds(year, month, day int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func (r *postRepository) GetPublishedByDateSlug(ctx context.Context, year, month, day int, slug string) (*models.Post, error) {
	start, end := dayBounds(year, month, day)

	var post models.Post
	err := r.published(ctx).
		Preload("Author").
		Preload("Tags").
		Where("posts.slug = ? AND posts.publish >= ? AND posts.publish < ?", slug, start, end).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) withTagFilter(q *gorm.DB, tagID uint) *gorm.DB {
	if tagID == 0 {
		return q
	}
	return q.
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID)
}

func (r *postRepository) ListPublished(ctx context.Context, tagID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	// When the tag join is present GORM enumerates model columns, which
	// would include the query-computed fields; restrict to the table's own.
	err := r.withTagFilter(r.published(ctx), tagID).
		Select("posts.*").
		Preload("Author").
		Preload("Tags").
		Order("posts.publish DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountPublished(ctx context.Context, tagID uint) (int64, error) {
	var count int64
	err := r.withTagFilter(r.published(ctx), tagID).Count(&count).Error
	return count, err
}

func (r *postRepository) Similar(ctx context.Context, post *models.Post, limit int) ([]*models.Post, error) {
	tagIDs := make([]uint, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	if len(tagIDs) == 0 {
		return nil, nil
	}

	var posts []*models.Post
	err := cache.Aside(ctx, cache.SimilarPostsKey(post.ID), &posts, cache.SimilarPostsTTL, func() error {
		return r.published(ctx).
			Select("posts.*, COUNT(post_tags.tag_id) AS same_tags").
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id IN ?", tagIDs).
			Where("posts.id <> ?", post.ID).
			Group("posts.id").
			Order("same_tags DESC, posts.publish DESC").
			Limit(limit).
			Find(&posts).Error
	})
	return posts, err
}

func (r *postRepository) SlugExistsOnDate(ctx context.Context, slug string, day time.Time) (bool, error) {
	day = day.UTC()
	start, end := dayBounds(day.Year(), int(day.Month()), day.Day())

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("slug = ? AND publish >= ? AND publish < ?", slug, start, end).
		Count(&count).Error
	return count > 0, err
}

// Like adds the user to the post's liking set. The join table's composite
// primary key makes the insert idempotent.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO post_likes (post_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING", postID, userID).
		Error
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM post_likes WHERE post_id = ? AND user_id = ?", postID, userID).
		Error
}

func (r *postRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("post_likes").
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) IsLikedBy(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("post_likes").
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}
