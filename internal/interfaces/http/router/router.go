package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/infrastructure/auth"
	"github.com/retailorders/backend/internal/infrastructure/config"
	"github.com/retailorders/backend/internal/infrastructure/logger"
	"github.com/retailorders/backend/internal/interfaces/http/handler"
	"github.com/retailorders/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System  *handler.SystemHandler
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Contact *handler.ContactHandler
	Catalog *handler.CatalogHandler
	Partner *handler.PartnerHandler
	Basket  *handler.BasketHandler
	Order   *handler.OrderHandler
}

// Dependencies carries everything New needs to assemble the engine
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	JWT       *auth.JWTService
	Blacklist auth.TokenBlacklist
	Handlers  Handlers
}

// New assembles the gin engine: global middleware, then the public,
// authenticated and partner route groups under /api/v1.
func New(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.Secure())
	engine.Use(corsMiddleware(deps.Config))
	if deps.Config.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(deps.Config.HTTP.MaxBodySize))
	}
	if deps.Config.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(
			deps.Config.HTTP.RateLimitRequests,
			deps.Config.HTTP.RateLimitWindow,
		)
		engine.Use(middleware.RateLimit(limiter))
	}

	jwtConfig := middleware.DefaultJWTConfig(deps.JWT)
	jwtConfig.TokenBlacklist = deps.Blacklist
	jwtConfig.Logger = deps.Logger
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	registerRoutes(engine, deps)
	return engine
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return middleware.CORSWithConfig(corsConfig)
}

func registerRoutes(engine *gin.Engine, deps Dependencies) {
	h := deps.Handlers
	api := engine.Group("/api/v1")

	api.GET("/health", h.System.Health)

	// Login and registration get their own stricter limiter keyed by client
	// IP, separate from the global one
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	authGroup := api.Group("/auth", middleware.AuthRateLimit(authLimiter))
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/register/confirm", h.Auth.ConfirmEmail)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.RefreshToken)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.POST("/password/reset", h.Auth.RequestPasswordReset)
		authGroup.POST("/password/reset/confirm", h.Auth.ConfirmPasswordReset)
	}

	api.GET("/categories", h.Catalog.ListCategories)
	api.GET("/shops", h.Catalog.ListShops)
	api.GET("/products", h.Catalog.ListProducts)

	user := api.Group("/user")
	{
		user.GET("/details", h.User.GetDetails)
		user.PUT("/details", h.User.UpdateDetails)
		user.GET("/contacts", h.Contact.List)
		user.POST("/contacts", h.Contact.Create)
		user.PUT("/contacts/:id", h.Contact.Update)
		user.DELETE("/contacts/:id", h.Contact.Delete)
	}

	api.GET("/basket", h.Basket.Get)
	api.POST("/basket", h.Basket.Add)
	api.PUT("/basket", h.Basket.Update)
	api.DELETE("/basket", h.Basket.Remove)

	api.GET("/orders", h.Order.List)
	api.POST("/orders", h.Order.Place)
	api.GET("/orders/:id", h.Order.GetByID)

	partner := api.Group("/partner", middleware.RequireRole("shop"))
	{
		partner.POST("/update", h.Partner.Update)
		partner.GET("/state", h.Partner.GetState)
		partner.POST("/state", h.Partner.SetState)
		partner.GET("/orders", h.Partner.Orders)
	}
}
