package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shopadmin/backend/internal/interfaces/http/handler"
)

// ShopHandlers are the handlers mounted by ShopRoutes
type ShopHandlers struct {
	Admin *handler.AdminHandler
	Blog  *handler.BlogHandler
	Auth  *handler.AuthHandler
}

// ShopMiddleware guards the shop routes. Any of them may be nil.
type ShopMiddleware struct {
	// Staff admits valid tokens of active staff only
	Staff gin.HandlerFunc
	// Authenticated admits any valid token, so a token can always be logged out
	Authenticated gin.HandlerFunc
	// LoginRateLimit throttles credential guessing
	LoginRateLimit gin.HandlerFunc
}

// ShopRoutes builds the admin, blog and auth route groups
func ShopRoutes(h ShopHandlers, mw ShopMiddleware) []RouteRegistrar {
	auth := NewDomainGroup("auth", "/auth")
	auth.Group("login", "").Use(mw.LoginRateLimit).
		POST("/login", h.Auth.Login)
	auth.Group("session", "").Use(mw.Authenticated).
		POST("/logout", h.Auth.Logout)
	auth.Group("profile", "").Use(mw.Staff).
		GET("/me", h.Auth.Me)

	blog := NewDomainGroup("blog", "/blog").
		GET("/posts", h.Blog.List).
		GET("/posts/:year/:month/:day/:slug", h.Blog.Detail)

	admin := NewDomainGroup("admin", "/admin").Use(mw.Staff).
		GET("/", h.Admin.Index).
		GET("/:model/", h.Admin.Changelist).
		POST("/:model/", h.Admin.Create).
		GET("/:model/:id", h.Admin.Detail).
		PUT("/:model/:id", h.Admin.Update).
		DELETE("/:model/:id", h.Admin.Delete).
		PUT("/:model/:id/items", h.Admin.SaveOrderItems)

	return []RouteRegistrar{auth, blog, admin}
}
