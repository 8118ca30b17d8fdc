package service

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn                 func(context.Context, *models.Post) error
	updateFn                 func(context.Context, *models.Post) error
	getByIDFn                func(context.Context, uint) (*models.Post, error)
	getPublishedByIDFn       func(context.Context, uint) (*models.Post, error)
	getPublishedByDateSlugFn func(context.Context, int, int, int, string) (*models.Post, error)
	listPublishedFn          func(context.Context, uint, int, int) ([]*models.Post, error)
	countPublishedFn         func(context.Context, uint) (int64, error)
	similarFn                func(context.Context, *models.Post, int) ([]*models.Post, error)
	slugExistsOnDateFn       func(context.Context, string, time.Time) (bool, error)
	likeFn                   func(context.Context, uint, uint) error
	unlikeFn                 func(context.Context, uint, uint) error
	likeCountFn              func(context.Context, uint) (int64, error)
	isLikedByFn              func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetPublishedByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getPublishedByIDFn(ctx, id)
}
func (s *postRepoStub) GetPublishedByDateSlug(ctx context.Context, year, month, day int, slug string) (*models.Post, error) {
	return s.getPublishedByDateSlugFn(ctx, year, month, day, slug)
}
func (s *postRepoStub) ListPublished(ctx context.Context, tagID uint, limit, offset int) ([]*models.Post, error) {
	return s.listPublishedFn(ctx, tagID, limit, offset)
}
func (s *postRepoStub) CountPublished(ctx context.Context, tagID uint) (int64, error) {
	return s.countPublishedFn(ctx, tagID)
}
func (s *postRepoStub) Similar(ctx context.Context, post *models.Post, limit int) ([]*models.Post, error) {
	return s.similarFn(ctx, post, limit)
}
func (s *postRepoStub) SlugExistsOnDate(ctx context.Context, slug string, day time.Time) (bool, error) {
	return s.slugExistsOnDateFn(ctx, slug, day)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) LikeCount(ctx context.Context, postID uint) (int64, error) {
	return s.likeCountFn(ctx, postID)
}
func (s *postRepoStub) IsLikedBy(ctx context.Context, postID, userID uint) (bool, error) {
	return s.isLikedByFn(ctx, postID, userID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		updateFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{}, nil
		},
		getPublishedByIDFn: func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{}, nil
		},
		getPublishedByDateSlugFn: func(_ context.Context, _, _, _ int, _ string) (*models.Post, error) {
			return &models.Post{}, nil
		},
		listPublishedFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		countPublishedFn:   func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		similarFn:          func(_ context.Context, _ *models.Post, _ int) ([]*models.Post, error) { return nil, nil },
		slugExistsOnDateFn: func(_ context.Context, _ string, _ time.Time) (bool, error) { return false, nil },
		likeFn:             func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:           func(_ context.Context, _, _ uint) error { return nil },
		likeCountFn:        func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		isLikedByFn:        func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn           func(context.Context, *models.Comment) error
	getByIDFn          func(context.Context, uint) (*models.Comment, error)
	listActiveByPostFn func(context.Context, uint, int) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListActiveByPost(ctx context.Context, postID uint, limit int) ([]*models.Comment, error) {
	return s.listActiveByPostFn(ctx, postID, limit)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{}, nil
		},
		listActiveByPostFn: func(_ context.Context, _ uint, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	getBySlugFn     func(context.Context, string) (*models.Tag, error)
	firstOrCreateFn func(context.Context, string) (*models.Tag, error)
	listFn          func(context.Context) ([]*models.Tag, error)
}

func (s *tagRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *tagRepoStub) FirstOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	return s.firstOrCreateFn(ctx, name)
}
func (s *tagRepoStub) List(ctx context.Context) ([]*models.Tag, error) {
	return s.listFn(ctx)
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
	}
}

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	createFn      func(context.Context, *models.Profile) error
	updateFn      func(context.Context, *models.Profile) error
	getByUserIDFn func(context.Context, uint) (*models.Profile, error)
}

func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	assert.ErrorAs(t, err, &appErr)
	if appErr != nil {
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	}
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	assert.ErrorAs(t, err, &appErr)
	if appErr != nil {
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	}
}
