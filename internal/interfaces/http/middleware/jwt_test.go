package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/backend/internal/infrastructure/auth"
	"github.com/shopadmin/backend/internal/infrastructure/config"
	"github.com/shopadmin/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-at-least-32-chars",
		AccessTokenExpiration: time.Hour,
		Issuer:                "shop-admin-test",
	})
}

func newJWTRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/api/v1/admin/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetJWTUserID(c),
			"username": GetJWTUsername(c),
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func issue(t *testing.T, svc *auth.JWTService, staff bool) (*auth.Token, *auth.Claims) {
	t.Helper()
	token, err := svc.GenerateToken(auth.GenerateTokenInput{UserID: 7, Username: "admin", IsStaff: staff})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	return token, claims
}

func doAuth(router *gin.Engine, header string) (*httptest.ResponseRecorder, dto.Response) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/", nil)
	if header != "" {
		req.Header.Set(AuthHeaderKey, header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService()
	router := newJWTRouter(DefaultJWTConfig(svc))
	staffToken, _ := issue(t, svc, true)
	customerToken, _ := issue(t, svc, false)

	t.Run("valid staff token", func(t *testing.T) {
		w, _ := doAuth(router, BearerPrefix+staffToken.AccessToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":7,"username":"admin"}`, w.Body.String())
	})

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantErr  string
	}{
		{"missing header", "", http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"not staff", BearerPrefix + customerToken.AccessToken, http.StatusForbidden, dto.ErrCodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doAuth(router, tt.header)
			assert.Equal(t, tt.wantCode, w.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.RequestID)
		})
	}

	t.Run("skip path", func(t *testing.T) {
		cfg := DefaultJWTConfig(svc)
		cfg.SkipPaths = []string{"/health"}
		w := httptest.NewRecorder()
		router := gin.New()
		router.Use(JWTAuthMiddlewareWithConfig(cfg))
		router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-at-least-32-chars",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "shop-admin-test",
	})
	token, err := expired.GenerateToken(auth.GenerateTokenInput{UserID: 7, Username: "admin", IsStaff: true})
	require.NoError(t, err)

	w, resp := doAuth(newJWTRouter(DefaultJWTConfig(newTestJWTService())), BearerPrefix+token.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenExpired, resp.Error.Code)
}

func TestJWTAuthMiddleware_Blacklist(t *testing.T) {
	ctx := context.Background()
	svc := newTestJWTService()

	t.Run("logged out token", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		cfg := DefaultJWTConfig(svc)
		cfg.TokenBlacklist = blacklist
		router := newJWTRouter(cfg)

		token, claims := issue(t, svc, true)
		w, _ := doAuth(router, BearerPrefix+token.AccessToken)
		require.Equal(t, http.StatusOK, w.Code)

		require.NoError(t, blacklist.AddToBlacklist(ctx, claims.ID, time.Hour))
		w, resp := doAuth(router, BearerPrefix+token.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenRevoked, resp.Error.Code)
	})

	t.Run("user tokens invalidated", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		cfg := DefaultJWTConfig(svc)
		cfg.TokenBlacklist = blacklist
		router := newJWTRouter(cfg)

		token, claims := issue(t, svc, true)
		require.NoError(t, blacklist.InvalidateUserTokens(ctx, claims.UserID, time.Hour))

		w, resp := doAuth(router, BearerPrefix+token.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenRevoked, resp.Error.Code)
	})
}

func TestGetJWTHelpers_Empty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetJWTClaims(c))
	assert.Zero(t, GetJWTUserID(c))
	assert.Empty(t, GetJWTUsername(c))
}
