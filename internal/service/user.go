package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"solidgo/internal/auth"
	"solidgo/internal/model"
	"solidgo/internal/repository"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("invalid input")
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput carries credentials for authentication. Login accepts a username.
type LoginInput struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserListResult is the service-level DTO for paginated users.
type UserListResult struct {
	Items []model.User `json:"data"`
	Total int          `json:"total"`
}

// UserService defines the use cases for managing accounts. It owns exactly
// the user lifecycle: validation and storage rules live here, persistence
// lives in the repository, and credential mechanics live in the auth package.
type UserService interface {
	// Register validates input, hashes the password, and stores a new user.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)

	// Get returns a single user by ID.
	Get(ctx context.Context, id string) (*model.User, error)

	// List returns users using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*UserListResult, error)

	// Delete removes a user by ID.
	Delete(ctx context.Context, id string) error

	// Authenticate verifies credentials and returns a signed token pair.
	Authenticate(ctx context.Context, in LoginInput) (*auth.TokenPair, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}

// userService is a concrete implementation of UserService.
type userService struct {
	repo     repository.UserRepository
	hasher   auth.Hasher
	tokens   *auth.TokenIssuer
	validate *validator.Validate
}

// NewUserService constructs a new UserService.
func NewUserService(repo repository.UserRepository, hasher auth.Hasher, tokens *auth.TokenIssuer) UserService {
	return &userService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	stored, err := s.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return stored, nil
}

// Get returns a user by ID.
func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// List returns paginated users without exposing repository types.
func (s *userService) List(ctx context.Context, limit, offset int) (*UserListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &UserListResult{Items: res.Items, Total: res.Total}, nil
}

// Delete removes a user after confirming it exists.
func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Authenticate never reveals whether the username or the password was wrong.
func (s *userService) Authenticate(ctx context.Context, in LoginInput) (*auth.TokenPair, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	u, err := s.repo.FindByUsername(ctx, in.Login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	return s.tokens.Issue(u.ID)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	return s.tokens.Refresh(refreshToken)
}
