// Package service implements the application's business operations on top of
// the repository layer.
package service

import (
	"context"
	"errors"
	"strconv"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// FeedPageSize is the number of posts per feed page.
const FeedPageSize = 5

// FeedPage is one page of the published-posts feed.
type FeedPage struct {
	Posts      []*models.Post
	Number     int
	TotalPages int
	Total      int64
}

// HasPrev reports whether a previous page exists.
func (p *FeedPage) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p *FeedPage) HasNext() bool { return p.Number < p.TotalPages }

// PrevNumber returns the previous page number.
func (p *FeedPage) PrevNumber() int { return p.Number - 1 }

// NextNumber returns the next page number.
func (p *FeedPage) NextNumber() int { return p.Number + 1 }

// FeedService lists published posts with pagination and optional tag filtering.
type FeedService struct {
	postRepo repository.PostRepository
	tagRepo  repository.TagRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(postRepo repository.PostRepository, tagRepo repository.TagRepository) *FeedService {
	return &FeedService{postRepo: postRepo, tagRepo: tagRepo}
}

// resolvePage applies the lenient page policy: a non-integer value falls back
// to the first page and an out-of-range number to the last page.
func resolvePage(raw string, totalPages int) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	if page < 1 || page > totalPages {
		return totalPages
	}
	return page
}

// List returns the requested page of published posts, narrowed to tagSlug when
// given. An unknown tag slug is a Not-Found error; a bad page value never is.
func (s *FeedService) List(ctx context.Context, tagSlug, pageParam string) (*FeedPage, *models.Tag, error) {
	var tag *models.Tag
	var tagID uint
	if tagSlug != "" {
		found, err := s.tagRepo.GetBySlug(ctx, tagSlug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.NewNotFoundError("tag", tagSlug)
		}
		if err != nil {
			return nil, nil, err
		}
		tag = found
		tagID = found.ID
	}

	total, err := s.postRepo.CountPublished(ctx, tagID)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int((total + FeedPageSize - 1) / FeedPageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	number := resolvePage(pageParam, totalPages)

	posts, err := s.postRepo.ListPublished(ctx, tagID, FeedPageSize, (number-1)*FeedPageSize)
	if err != nil {
		return nil, nil, err
	}

	return &FeedPage{
		Posts:      posts,
		Number:     number,
		TotalPages: totalPages,
		Total:      total,
	}, tag, nil
}
