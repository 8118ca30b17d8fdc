package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserCreatedHandler is invoked after a user account is persisted for the
// first time. Updates to existing users never fire it.
type UserCreatedHandler func(ctx context.Context, user *models.User)

// UserService handles account creation and credential checks. It is the
// identity-creation path: subscribers to the user-created event (profile
// provisioning) hang off it.
type UserService struct {
	userRepo  repository.UserRepository
	onCreated []UserCreatedHandler
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// OnUserCreated registers a handler for the user-created event.
func (s *UserService) OnUserCreated(h UserCreatedHandler) {
	s.onCreated = append(s.onCreated, h)
}

// SignupInput carries the signup form fields.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// Signup validates the input, creates the account, and fires the user-created
// event exactly once for the new user.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	fields := map[string]string{}
	if err := validation.ValidateUsername(in.Username); err != nil {
		fields["username"] = err.Error()
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		fields["email"] = err.Error()
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		fields["password"] = err.Error()
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewFieldValidationError(map[string]string{"email": "An account with this email already exists"})
	}
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewFieldValidationError(map[string]string{"username": "This username is taken"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	for _, h := range s.onCreated {
		h(ctx, user)
	}
	return user, nil
}

// UpdateAccount saves changes to an existing user. It never fires the
// user-created event.
func (s *UserService) UpdateAccount(ctx context.Context, user *models.User) error {
	return s.userRepo.Update(ctx, user)
}

// Authenticate checks the email/password pair and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}
