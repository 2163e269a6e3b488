package identity

import (
	"context"
	"time"

	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService manages users from the admin
type UserService struct {
	repo      identity.UserRepository
	blacklist auth.TokenBlacklist
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewUserService creates a new UserService. tokenTTL is the access token
// lifetime, used to bound per-user token revocation.
func NewUserService(repo identity.UserRepository, blacklist auth.TokenBlacklist, tokenTTL time.Duration, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, blacklist: blacklist, tokenTTL: tokenTTL, logger: logger}
}

// Create creates a user
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	user, err := identity.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	user.IsStaff = req.IsStaff
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	exists, err := s.repo.ExistsByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, identity.ErrUsernameTaken
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("User created", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	response := ToUserResponse(user)
	return &response, nil
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves a page of users
func (s *UserService) List(ctx context.Context, filter shared.Filter) ([]UserResponse, int64, error) {
	users, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out, total, nil
}

// Update updates the fields present in the request. Changing the password or
// withdrawing admin access revokes the user's outstanding tokens.
func (s *UserService) Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	hadAccess := user.CanAccessAdmin()
	revoke := false

	if req.Username != nil && *req.Username != user.Username {
		if err := user.SetUsername(*req.Username); err != nil {
			return nil, err
		}
		exists, err := s.repo.ExistsByUsername(ctx, user.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, identity.ErrUsernameTaken
		}
	}
	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
		revoke = true
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if hadAccess && !user.CanAccessAdmin() {
		revoke = true
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	if revoke {
		s.revokeTokens(ctx, user.ID)
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Delete deletes a user and revokes their tokens
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.revokeTokens(ctx, id)
	return nil
}

func (s *UserService) revokeTokens(ctx context.Context, userID int64) {
	if err := s.blacklist.InvalidateUserTokens(ctx, userID, s.tokenTTL); err != nil {
		s.logger.Error("Failed to revoke user tokens", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	s.logger.Info("User tokens revoked", zap.Int64("user_id", userID))
}
