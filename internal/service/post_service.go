package service

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	// DetailCommentLimit caps the comments shown on a post detail page.
	DetailCommentLimit = 20
	// SimilarPostLimit caps the similar-posts recommendation list.
	SimilarPostLimit = 4

	maxTitleLen = 250
	maxBodyLen  = 50000
)

// PostService implements post detail, authoring, and the like toggle.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// PostDetail bundles everything the detail page shows.
type PostDetail struct {
	Post       *models.Post
	Comments   []*models.Comment
	Similar    []*models.Post
	LikesCount int64
	// LikedByCaller is false for anonymous callers.
	LikedByCaller bool
}

// CreatePostInput carries the submitted authoring form fields.
type CreatePostInput struct {
	Title  string
	Body   string
	Status string
	Image  string
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *PostService {
	return &PostService{postRepo: postRepo, commentRepo: commentRepo}
}

// Detail resolves one published post by its composite key and assembles its
// active comments, similar posts, and like state for callerID (0 = anonymous).
func (s *PostService) Detail(ctx context.Context, year, month, day int, slugParam string, callerID uint) (*PostDetail, error) {
	post, err := s.postRepo.GetPublishedByDateSlug(ctx, year, month, day, slugParam)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("post", slugParam)
	}
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListActiveByPost(ctx, post.ID, DetailCommentLimit)
	if err != nil {
		return nil, err
	}

	similar, err := s.postRepo.Similar(ctx, post, SimilarPostLimit)
	if err != nil {
		return nil, err
	}

	likes, err := s.postRepo.LikeCount(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	detail := &PostDetail{
		Post:       post,
		Comments:   comments,
		Similar:    similar,
		LikesCount: likes,
	}
	if callerID != 0 {
		liked, err := s.postRepo.IsLikedBy(ctx, post.ID, callerID)
		if err != nil {
			return nil, err
		}
		detail.LikedByCaller = liked
	}
	return detail, nil
}

// validateCreate checks the submitted fields against the post schema and
// returns per-field messages for form re-rendering.
func validateCreate(in CreatePostInput) map[string]string {
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "Title is required"
	} else if len(in.Title) > maxTitleLen {
		fields["title"] = "Title is too long (max 250 characters)"
	}
	if in.Body == "" {
		fields["body"] = "Body is required"
	} else if len(in.Body) > maxBodyLen {
		fields["body"] = "Body is too long"
	}
	if in.Status != models.PostStatusDraft && in.Status != models.PostStatusPublished {
		fields["status"] = "Status must be Draft or Published"
	}
	return fields
}

// Create persists a new post authored by authorID. The slug is derived from
// the title and must be unique for the publish date.
func (s *PostService) Create(ctx context.Context, authorID uint, in CreatePostInput) (*models.Post, error) {
	if authorID == 0 {
		return nil, models.NewUnauthorizedError("You must be logged in to create a post")
	}

	if fields := validateCreate(in); len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}

	post := &models.Post{
		Title:    in.Title,
		Slug:     slug.Make(in.Title),
		Body:     in.Body,
		Status:   in.Status,
		Image:    in.Image,
		AuthorID: authorID,
		Publish:  time.Now().UTC(),
	}

	exists, err := s.postRepo.SlugExistsOnDate(ctx, post.Slug, post.Publish)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewFieldValidationError(map[string]string{
			"title": "A post with this title already exists for today",
		})
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ToggleLike adds callerID to the post's liking set when action is "like" and
// removes it for any other action. Both directions are idempotent. The post is
// resolved against the published view only.
func (s *PostService) ToggleLike(ctx context.Context, callerID, postID uint, action string) error {
	if _, err := s.postRepo.GetPublishedByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("post", postID)
		}
		return err
	}

	if action == "like" {
		return s.postRepo.Like(ctx, callerID, postID)
	}
	return s.postRepo.Unlike(ctx, callerID, postID)
}
