package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopadmin/backend/internal/application/admin"
	blogapp "github.com/shopadmin/backend/internal/application/blog"
	catalogapp "github.com/shopadmin/backend/internal/application/catalog"
	engagementapp "github.com/shopadmin/backend/internal/application/engagement"
	identityapp "github.com/shopadmin/backend/internal/application/identity"
	orderapp "github.com/shopadmin/backend/internal/application/order"
	"github.com/shopadmin/backend/internal/infrastructure/auth"
	"github.com/shopadmin/backend/internal/infrastructure/cache"
	"github.com/shopadmin/backend/internal/infrastructure/config"
	"github.com/shopadmin/backend/internal/infrastructure/event"
	"github.com/shopadmin/backend/internal/infrastructure/logger"
	"github.com/shopadmin/backend/internal/infrastructure/persistence"
	"github.com/shopadmin/backend/internal/infrastructure/telemetry"
	"github.com/shopadmin/backend/internal/interfaces/http/handler"
	"github.com/shopadmin/backend/internal/interfaces/http/middleware"
	"github.com/shopadmin/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/shopadmin/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Shop Admin API
//	@version		1.0
//	@description	Staff admin over the shop catalog, orders and engagement, plus the public blog.

//	@contact.name	API Support
//	@contact.url	https://github.com/shopadmin/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	tel, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}()
	log = tel.BridgeLogger(log, logger.ParseLevel(cfg.Log.Level))

	log.Info("Starting shop admin",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, tel.DBTracing(cfg.Database.DBName, cfg.Database.SlowThreshold), log); err != nil {
		log.Warn("Database tracing not installed", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Redis is optional; both stores fall back to process memory
	var redisClient redis.UniversalClient
	var tokenBlacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if client := cache.Connect(ctx, cfg.Redis, log); client != nil {
		defer func() {
			_ = client.Close()
		}()
		redisClient = client
		tokenBlacklist = auth.NewRedisTokenBlacklist(client)
	}
	postCache := cache.NewStore[[]blogapp.PostResponse](redisClient, "blog:")

	shopMetrics, err := telemetry.NewShopMetrics(tel.ShopMeter())
	if err != nil {
		log.Warn("Shop metrics disabled", zap.Error(err))
	}

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryMethodRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	favoriteRepo := persistence.NewGormFavoriteRepository(db.DB)
	promotionRepo := persistence.NewGormPromotionRepository(db.DB)
	postRepo := persistence.NewGormPostRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Post changes drop the cached public post list
	eventBus := event.NewInMemoryEventBus(log)
	cacheHandler := blogapp.NewPublishedPostsCacheHandler(postCache, log)
	eventBus.Subscribe(cacheHandler, cacheHandler.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		_ = eventBus.Stop(context.Background())
	}()

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	postService := blogapp.NewPostService(postRepo, postCache, eventBus, shopMetrics, cfg.Blog.CacheTTL, log)
	orderService := orderapp.NewOrderService(orderRepo, productRepo, userRepo, deliveryRepo, shopMetrics, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, tokenBlacklist, log)

	site, err := admin.NewShopSite(admin.Services{
		Categories:      catalogapp.NewCategoryService(categoryRepo),
		Products:        catalogapp.NewProductService(productRepo, categoryRepo),
		Orders:          orderService,
		Payments:        orderapp.NewPaymentService(paymentRepo, orderRepo),
		DeliveryMethods: orderapp.NewDeliveryMethodService(deliveryRepo),
		Reviews:         engagementapp.NewReviewService(reviewRepo),
		Favorites:       engagementapp.NewFavoriteService(favoriteRepo),
		Promotions:      engagementapp.NewPromotionService(promotionRepo),
		Posts:           postService,
		Users:           identityapp.NewUserService(userRepo, tokenBlacklist, cfg.JWT.AccessTokenExpiration, log),
	})
	if err != nil {
		log.Fatal("Failed to build admin site", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to set up request validation", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: ids and panics first, tracing before the access log so
	// log lines carry trace ids, limits last
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tel.Tracer.IsEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(logger.GinMiddleware(log))
	if tel.Meter.IsEnabled() {
		engine.Use(middleware.HTTPMetrics(tel.ShopMeter(), log))
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSFromLists(
		cfg.HTTP.CORSAllowOrigins, cfg.HTTP.CORSAllowMethods, cfg.HTTP.CORSAllowHeaders)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	var limiters []*middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		limiters = append(limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	loginLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	limiters = append(limiters, loginLimiter)
	defer func() {
		for _, l := range limiters {
			l.Stop()
		}
	}()

	staffAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		RequireStaff:   true,
		Logger:         log,
	})
	anyAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		Logger:         log,
	})

	healthChecks := map[string]handler.HealthCheck{"database": db.Ping}
	if redisClient != nil {
		healthChecks["redis"] = func(ctx context.Context) error { return cache.Ping(ctx, redisClient) }
	}
	health := handler.NewHealthHandler(healthChecks).
		WithDetail("database_pool", func() (any, error) { return db.Stats() })
	engine.GET("/health", health.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, staffAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	routes := router.ShopRoutes(router.ShopHandlers{
		Admin: handler.NewAdminHandler(site, orderService),
		Blog:  handler.NewBlogHandler(postService),
		Auth:  handler.NewAuthHandler(authService),
	}, router.ShopMiddleware{
		Staff:          staffAuth,
		Authenticated:  anyAuth,
		LoginRateLimit: middleware.RateLimit(loginLimiter),
	})
	router.NewRouter(engine, router.WithAPIVersion("v1")).Register(routes...).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("Shutting down server...", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
