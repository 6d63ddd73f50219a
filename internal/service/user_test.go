package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"solidgo/internal/auth"
	"solidgo/internal/config"
	"solidgo/internal/model"
	"solidgo/internal/repository"
	repoMocks "solidgo/internal/repository/mocks"
)

func newTestService(t *testing.T, repo repository.UserRepository) UserService {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(config.AuthConfig{
		JWTSecret:          "test-secret",
		AccessTokenTTLMin:  15,
		RefreshTokenTTLMin: 60,
	})
	require.NoError(t, err)
	// bcrypt.MinCost keeps tests fast
	return NewUserService(repo, auth.NewHasher(4), issuer)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         RegisterInput
		setupMocks func(mRepo *repoMocks.MockUserRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			in:   RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "longenough"},
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.ID != "" &&
						u.Username == "alice" &&
						u.Email == "alice@example.com" && // stored lowercase
						u.PasswordHash != "" &&
						u.PasswordHash != "longenough" // never stored in clear
				})).Return(&model.User{ID: "gen-id", Username: "alice"}, nil)
			},
		},
		{
			name:    "password too short",
			in:      RegisterInput{Username: "alice", Email: "alice@example.com", Password: "short"},
			wantErr: ErrValidation,
		},
		{
			name:    "invalid email",
			in:      RegisterInput{Username: "alice", Email: "not-an-email", Password: "longenough"},
			wantErr: ErrValidation,
		},
		{
			name:    "username not alphanumeric",
			in:      RegisterInput{Username: "al ice!", Email: "alice@example.com", Password: "longenough"},
			wantErr: ErrValidation,
		},
		{
			name: "duplicate user",
			in:   RegisterInput{Username: "alice", Email: "alice@example.com", Password: "longenough"},
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
			},
			wantErr: ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockUserRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(mRepo)
			}
			svc := newTestService(t, mRepo)

			u, err := svc.Register(ctx, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, u)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByID", ctx, "id-1").
			Return(&model.User{ID: "id-1", Username: "alice"}, nil)
		svc := newTestService(t, mRepo)

		u, err := svc.Get(ctx, "id-1")

		assert.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := newTestService(t, new(repoMocks.MockUserRepository))

		_, err := svc.Get(ctx, "")

		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
		svc := newTestService(t, mRepo)

		_, err := svc.Get(ctx, "missing")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes pagination", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.User]{Items: []model.User{}, Total: 0}, nil)
		svc := newTestService(t, mRepo)

		res, err := svc.List(ctx, 0, -5)

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		mRepo.AssertExpectations(t)
	})

	t.Run("passes through results", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("List", ctx, repository.PageQuery{Limit: 2, Offset: 4}).
			Return(&repository.PageResult[model.User]{
				Items: []model.User{{ID: "a"}, {ID: "b"}},
				Total: 42,
			}, nil)
		svc := newTestService(t, mRepo)

		res, err := svc.List(ctx, 2, 4)

		assert.NoError(t, err)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, 42, res.Total)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db down"))
		svc := newTestService(t, mRepo)

		_, err := svc.List(ctx, 10, 0)

		assert.Error(t, err)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing user", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByID", ctx, "id-1").Return(&model.User{ID: "id-1"}, nil)
		mRepo.On("Delete", ctx, "id-1").Return(nil)
		svc := newTestService(t, mRepo)

		assert.NoError(t, svc.Delete(ctx, "id-1"))
		mRepo.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
		svc := newTestService(t, mRepo)

		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := newTestService(t, new(repoMocks.MockUserRepository))
		assert.ErrorIs(t, svc.Delete(ctx, ""), ErrIDRequired)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()

	hasher := auth.NewHasher(4)
	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	stored := &model.User{
		ID:           "id-1",
		Username:     "alice",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	t.Run("success", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByUsername", ctx, "alice").Return(stored, nil)
		svc := newTestService(t, mRepo)

		pair, err := svc.Authenticate(ctx, LoginInput{Login: "alice", Password: "correct-password"})

		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByUsername", ctx, "ghost").Return(nil, sql.ErrNoRows)
		svc := newTestService(t, mRepo)

		_, err := svc.Authenticate(ctx, LoginInput{Login: "ghost", Password: "whatever"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByUsername", ctx, "alice").Return(stored, nil)
		svc := newTestService(t, mRepo)

		_, err := svc.Authenticate(ctx, LoginInput{Login: "alice", Password: "wrong"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := newTestService(t, new(repoMocks.MockUserRepository))

		_, err := svc.Authenticate(ctx, LoginInput{})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUserService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("valid refresh token", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByUsername", ctx, "alice").Return(&model.User{
			ID:           "id-1",
			Username:     "alice",
			PasswordHash: mustHash(t, "correct-password"),
		}, nil)
		svc := newTestService(t, mRepo)

		pair, err := svc.Authenticate(ctx, LoginInput{Login: "alice", Password: "correct-password"})
		require.NoError(t, err)

		fresh, err := svc.Refresh(ctx, pair.RefreshToken)
		assert.NoError(t, err)
		assert.NotEmpty(t, fresh.AccessToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := newTestService(t, new(repoMocks.MockUserRepository))

		_, err := svc.Refresh(ctx, "garbage")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.NewHasher(4).Hash(password)
	require.NoError(t, err)
	return h
}
