package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/auth"
	"github.com/shopadmin/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "shop-test",
	})
}

func newUser(t *testing.T, id int64, staff, active bool) *identity.User {
	t.Helper()
	u, err := identity.NewUser("admin", "admin@example.com", "correct-horse")
	require.NoError(t, err)
	u.ID = id
	u.IsStaff = staff
	u.IsActive = active
	return u
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	jwtService := newJWT()

	t.Run("staff user gets a token", func(t *testing.T) {
		repo := new(MockUserRepository)
		user := newUser(t, 7, true, true)
		repo.On("FindByUsername", ctx, "admin").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		svc := NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
		resp, err := svc.Login(ctx, LoginRequest{Username: "admin", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int64(7), resp.User.ID)
		assert.NotNil(t, user.LastLoginAt)

		claims, err := jwtService.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.True(t, claims.IsStaff)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "admin").Return(newUser(t, 7, true, true), nil)

		svc := NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
		_, err := svc.Login(ctx, LoginRequest{Username: "admin", Password: "wrong-password"})
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown user looks like a wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		svc := NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
		_, err := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "whatever1"})
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("non staff is forbidden", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "admin").Return(newUser(t, 7, false, true), nil)

		svc := NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
		_, err := svc.Login(ctx, LoginRequest{Username: "admin", Password: "correct-horse"})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "FORBIDDEN", de.Code)
	})

	t.Run("inactive staff is forbidden", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "admin").Return(newUser(t, 7, true, false), nil)

		svc := NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
		_, err := svc.Login(ctx, LoginRequest{Username: "admin", Password: "correct-horse"})
		assert.ErrorIs(t, err, ErrStaffRequired)
	})

	t.Run("repository failure is not masked", func(t *testing.T) {
		repo := new(MockUserRepository)
		boom := errors.New("connection reset")
		repo.On("FindByUsername", ctx, "admin").Return(nil, boom)

		svc := NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
		_, err := svc.Login(ctx, LoginRequest{Username: "admin", Password: "correct-horse"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	jwtService := newJWT()
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(new(MockUserRepository), jwtService, blacklist, zap.NewNop())

	token, err := jwtService.GenerateToken(auth.GenerateTokenInput{UserID: 7, Username: "admin", IsStaff: true})
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))
	revoked, err := blacklist.IsBlacklisted(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate username", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("ExistsByUsername", ctx, "admin").Return(true, nil)

		svc := NewUserService(repo, auth.NewInMemoryTokenBlacklist(), time.Hour, zap.NewNop())
		_, err := svc.Create(ctx, CreateUserRequest{Username: "admin", Password: "correct-horse"})
		assert.ErrorIs(t, err, identity.ErrUsernameTaken)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("defaults to active", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("ExistsByUsername", ctx, "editor").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).
			Run(func(args mock.Arguments) { args.Get(1).(*identity.User).ID = 3 }).
			Return(nil)

		svc := NewUserService(repo, auth.NewInMemoryTokenBlacklist(), time.Hour, zap.NewNop())
		resp, err := svc.Create(ctx, CreateUserRequest{Username: "editor", Password: "correct-horse", IsStaff: true})
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.ID)
		assert.True(t, resp.IsActive)
		assert.True(t, resp.IsStaff)
	})
}

func TestUserService_UpdateRevokesTokens(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		req    func() UpdateUserRequest
		revoke bool
	}{
		{"password change", func() UpdateUserRequest { p := "new-password"; return UpdateUserRequest{Password: &p} }, true},
		{"staff withdrawn", func() UpdateUserRequest { f := false; return UpdateUserRequest{IsStaff: &f} }, true},
		{"deactivated", func() UpdateUserRequest { f := false; return UpdateUserRequest{IsActive: &f} }, true},
		{"email only", func() UpdateUserRequest { e := "new@example.com"; return UpdateUserRequest{Email: &e} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			user := newUser(t, 7, true, true)
			repo.On("FindByID", ctx, int64(7)).Return(user, nil)
			repo.On("Save", ctx, user).Return(nil)
			blacklist := auth.NewInMemoryTokenBlacklist()

			svc := NewUserService(repo, blacklist, time.Hour, zap.NewNop())
			_, err := svc.Update(ctx, 7, tt.req())
			require.NoError(t, err)

			invalidated, err := blacklist.IsUserTokenInvalidated(ctx, 7, time.Now().Add(-time.Minute))
			require.NoError(t, err)
			assert.Equal(t, tt.revoke, invalidated)
		})
	}
}

func TestUserService_RenameChecksUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindByID", ctx, int64(7)).Return(newUser(t, 7, true, true), nil)
	repo.On("ExistsByUsername", ctx, "taken").Return(true, nil)

	name := "taken"
	_, err := NewUserService(repo, auth.NewInMemoryTokenBlacklist(), time.Hour, zap.NewNop()).
		Update(ctx, 7, UpdateUserRequest{Username: &name})
	assert.ErrorIs(t, err, identity.ErrUsernameTaken)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
