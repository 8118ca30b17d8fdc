package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 10000

// CommentService handles comment submission on published posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// SubmitCommentInput carries a comment submission. UserID is nil for
// anonymous visitors.
type SubmitCommentInput struct {
	PostID uint
	UserID *uint
	Body   string
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Submit attaches a comment to a published post. Authenticated submissions are
// attributed and immediately visible; anonymous ones are held inactive for
// moderation.
func (s *CommentService) Submit(ctx context.Context, in SubmitCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetPublishedByID(ctx, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", in.PostID)
		}
		return nil, err
	}

	if in.Body == "" {
		return nil, models.NewFieldValidationError(map[string]string{"body": "Body is required"})
	}
	if len(in.Body) > maxCommentLen {
		return nil, models.NewFieldValidationError(map[string]string{"body": "Comment too long (max 10000 characters)"})
	}

	comment := &models.Comment{
		PostID: in.PostID,
		Body:   in.Body,
		UserID: in.UserID,
		Active: in.UserID != nil,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}
