package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/backend/internal/application/admin"
	"github.com/shopadmin/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)

	r.Register(NewDomainGroup("a", "/a"), NewDomainGroup("b", "/b"))
	assert.Len(t, r.registrars, 2)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("test", "/test").GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	NewRouter(engine).Register(group).Setup()

	w := do(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup_Methods(t *testing.T) {
	reply := func(body string) gin.HandlerFunc {
		return func(c *gin.Context) { c.String(http.StatusOK, body) }
	}
	g := NewDomainGroup("posts", "/posts").
		GET("/", reply("list")).
		POST("/", reply("create")).
		PUT("/:id", reply("update")).
		PATCH("/:id", reply("patch")).
		DELETE("/:id", reply("delete"))
	assert.Equal(t, "posts", g.Name())
	assert.Equal(t, "/posts", g.Prefix())

	engine := gin.New()
	g.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/v1/posts/", "list"},
		{http.MethodPost, "/api/v1/posts/", "create"},
		{http.MethodPut, "/api/v1/posts/1", "update"},
		{http.MethodPatch, "/api/v1/posts/1", "patch"},
		{http.MethodDelete, "/api/v1/posts/1", "delete"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := do(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestDomainGroup_MiddlewareOrder(t *testing.T) {
	var trace []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			trace = append(trace, name)
			c.Next()
		}
	}

	parent := NewDomainGroup("parent", "/parent").Use(mark("parent"), nil)
	parent.Group("child", "/child").Use(mark("child")).GET("/x", func(c *gin.Context) {
		trace = append(trace, "handler")
		c.Status(http.StatusOK)
	})

	engine := gin.New()
	parent.RegisterRoutes(engine.Group(""))

	w := do(engine, http.MethodGet, "/parent/child/x")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"parent", "child", "handler"}, trace)
}

func TestShopRoutes(t *testing.T) {
	var guarded []string
	guard := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			guarded = append(guarded, name)
			c.AbortWithStatus(http.StatusTeapot)
		}
	}

	engine := gin.New()
	routes := ShopRoutes(ShopHandlers{
		Admin: handler.NewAdminHandler(admin.NewSite(), nil),
		Blog:  handler.NewBlogHandler(nil),
		Auth:  handler.NewAuthHandler(nil),
	}, ShopMiddleware{
		Staff:          guard("staff"),
		Authenticated:  guard("authenticated"),
		LoginRateLimit: guard("login"),
	})
	NewRouter(engine).Register(routes...).Setup()

	tests := []struct {
		method string
		path   string
		guard  string
	}{
		{http.MethodPost, "/api/v1/auth/login", "login"},
		{http.MethodPost, "/api/v1/auth/logout", "authenticated"},
		{http.MethodGet, "/api/v1/auth/me", "staff"},
		{http.MethodGet, "/api/v1/admin/", "staff"},
		{http.MethodGet, "/api/v1/admin/order/", "staff"},
		{http.MethodPost, "/api/v1/admin/order/", "staff"},
		{http.MethodGet, "/api/v1/admin/order/1", "staff"},
		{http.MethodPut, "/api/v1/admin/order/1", "staff"},
		{http.MethodDelete, "/api/v1/admin/order/1", "staff"},
		{http.MethodPut, "/api/v1/admin/order/1/items", "staff"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			guarded = nil
			w := do(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusTeapot, w.Code)
			assert.Equal(t, []string{tt.guard}, guarded)
		})
	}

	t.Run("blog is public", func(t *testing.T) {
		guarded = nil
		w := do(engine, http.MethodGet, "/api/v1/blog/posts/year/3/15/x")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, guarded)
	})
}
