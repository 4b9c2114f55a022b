package router

import (
	"time"

	"impulso/config"
	"impulso/internal/cache"
	"impulso/internal/handler"
	"impulso/internal/middleware"
	"impulso/internal/repository"
	"impulso/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	verticalRepo := repository.NewVerticalRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	boostSvc := service.NewBoostService(db)
	featuredCache := cache.NewFeaturedCache(rdb, cfg.Boost.FeaturedCacheTTL)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	slotHandler := handler.NewSlotHandler(cfg, slotRepo, listingRepo, verticalRepo, boostSvc)
	boostHandler := handler.NewBoostHandler(cfg, boostSvc, listingRepo, slotRepo, paymentRepo)
	featuredHandler := handler.NewFeaturedHandler(boostSvc, featuredCache)
	webhookHandler := handler.NewPaymentWebhookHandler(cfg, paymentRepo, boostSvc)
	adminHandler := handler.NewAdminHandler(cfg, boostSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		// Public read path
		api.GET("/featured", featuredHandler.Get)
		api.GET("/slots", slotHandler.List)

		// Owner surface
		api.GET("/slots/options", authMw, slotHandler.Options)
		api.POST("/boosts", authMw, boostHandler.Create)
		api.POST("/boosts/purchase", authMw, boostHandler.Purchase)
		api.PUT("/listings/:id/boost-slots", authMw, boostHandler.UpdateSlots)

		// Upstream callers. The expiry endpoint lives under /admin but is
		// guarded by the cron secret, not a JWT: the caller is a scheduler.
		api.POST("/webhooks/payments", webhookHandler.Handle)
		api.POST("/admin/boosts/expire", adminHandler.Expire)

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.POST("/boosts/:id/approve", adminHandler.Approve)
			admin.POST("/boosts/:id/cancel", adminHandler.Cancel)
		}
	}

	return r
}
