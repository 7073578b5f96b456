package handler

import (
	"merch-shop/internal/adapter/http/middleware"
	redisStore "merch-shop/internal/adapter/storage/redis"
	"merch-shop/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	CoinSvc        ports.CoinService
	InfoSvc        ports.InfoService
	CatalogSvc     ports.CatalogService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	api := r.Group("/api")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	api.POST("/register", rl("auth_register"), authHandler.Register)
	api.POST("/auth", rl("auth_login"), authHandler.Auth)

	shopHandler := NewShopHandler(deps.CatalogSvc)
	api.GET("/merchandise", rl("merchandise"), shopHandler.Merchandise)

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	coinHandler := NewCoinHandler(deps.CoinSvc)
	infoHandler := NewInfoHandler(deps.InfoSvc)

	authed := api.Group("", jwtAuth)
	{
		authed.GET("/info", rl("info"), infoHandler.GetInfo)
		authed.POST("/sendCoin", rl("send_coin"), coinHandler.SendCoin)
		authed.GET("/buy/:item", rl("buy"), coinHandler.Buy)
	}

	return r
}
