package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/shopadmin/backend/internal/application/identity"
	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/infrastructure/auth"
	"github.com/shopadmin/backend/internal/interfaces/http/dto"
	"github.com/shopadmin/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, req identityapp.LoginRequest) (*identityapp.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.LoginResponse), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *mockAuthService) Me(ctx context.Context, userID int64) (*identityapp.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.UserResponse), args.Error(1)
}

func setupAuthRouter(claims *auth.Claims) (*gin.Engine, *mockAuthService) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	authenticated := func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.JWTClaimsKey, claims)
			setJWTContext(c, claims.UserID)
		}
		c.Next()
	}

	router := gin.New()
	router.POST("/auth/login", h.Login)
	router.POST("/auth/logout", authenticated, h.Logout)
	router.GET("/auth/me", authenticated, h.Me)
	return router, svc
}

func TestAuthHandler_Login(t *testing.T) {
	router, svc := setupAuthRouter(nil)
	expires := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc.On("Login", mock.Anything, identityapp.LoginRequest{Username: "admin", Password: "secret"}).
		Return(&identityapp.LoginResponse{
			AccessToken: "token",
			TokenType:   "Bearer",
			ExpiresAt:   expires,
			User:        identityapp.UserResponse{ID: 1, Username: "admin", IsStaff: true, IsActive: true},
		}, nil)
	svc.On("Login", mock.Anything, identityapp.LoginRequest{Username: "admin", Password: "wrong"}).
		Return(nil, identity.ErrInvalidCredentials)
	svc.On("Login", mock.Anything, identityapp.LoginRequest{Username: "buyer", Password: "secret"}).
		Return(nil, identityapp.ErrStaffRequired)

	t.Run("success", func(t *testing.T) {
		w := serve(router, http.MethodPost, "/auth/login", `{"username":"admin","password":"secret"}`)
		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w).Data.(map[string]any)
		assert.Equal(t, "token", data["access_token"])
		assert.Equal(t, "admin", data["user"].(map[string]any)["username"])
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"wrong password", `{"username":"admin","password":"wrong"}`, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"not staff", `{"username":"buyer","password":"secret"}`, http.StatusForbidden, dto.ErrCodeForbidden},
		{"missing password", `{"username":"admin"}`, http.StatusBadRequest, dto.ErrCodeValidation},
		{"malformed body", `{"username":`, http.StatusBadRequest, dto.ErrCodeInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodPost, "/auth/login", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w).Error.Code)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	claims := &auth.Claims{UserID: 1, Username: "admin", IsStaff: true}

	router, svc := setupAuthRouter(claims)
	svc.On("Logout", mock.Anything, claims).Return(nil)
	w := serve(router, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)

	router, svc = setupAuthRouter(nil)
	w = serve(router, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestAuthHandler_Me(t *testing.T) {
	router, svc := setupAuthRouter(&auth.Claims{UserID: 7, Username: "admin", IsStaff: true})
	svc.On("Me", mock.Anything, int64(7)).Return(&identityapp.UserResponse{ID: 7, Username: "admin"}, nil)

	w := serve(router, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(7), decode(t, w).Data.(map[string]any)["id"])

	router, _ = setupAuthRouter(nil)
	w = serve(router, http.MethodGet, "/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
