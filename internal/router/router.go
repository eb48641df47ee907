// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mhakbari/orderstack/internal/config"
	"github.com/mhakbari/orderstack/internal/handler"
	"github.com/mhakbari/orderstack/internal/middleware"
	"github.com/mhakbari/orderstack/internal/model"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Cfg     config.Config
	Redis   *redis.Client // nil disables rate limiting and caching
	Auth    *handler.AuthHandler
	Users   *handler.UserHandler
	Orders  *handler.OrderHandler
	Admin   *handler.AdminHandler
	Mail    *handler.MailHandler
	RateCfg config.RateLimitConfig
	CacheC  config.CacheConfig
}

// Register mounts all routes.
func Register(e *echo.Echo, d Deps) {
	e.GET("/health", handler.Health)

	api := e.Group("/api")

	requireAuth := middleware.JWTAuth(d.Cfg.AccessSecret)
	requireAdmin := middleware.RequireRole(model.RoleAdmin)
	limit := middleware.NewTokenBucket(d.RateCfg, d.Redis)
	cache := middleware.NewRedisCache(d.CacheC, d.Redis)

	// Credential endpoints are rate limited per client; everything else
	// rides on the default capacity.
	auth := api.Group("/auth", limit)
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh-token", d.Auth.Refresh)
	auth.POST("/forgot-password", d.Auth.ForgotPassword)
	auth.POST("/reset-password", d.Auth.ResetPassword)
	auth.POST("/change-password", d.Auth.ChangePassword, requireAuth)

	admin := api.Group("/admin", requireAuth, requireAdmin)
	admin.PATCH("/users/:userId/block", d.Admin.Block)
	admin.PATCH("/users/:userId/unblock", d.Admin.Unblock)

	users := api.Group("/users", requireAuth, requireAdmin)
	users.GET("", d.Users.List)
	users.GET("/:userId", d.Users.Get)
	users.PUT("/:userId", d.Users.Update)
	users.DELETE("/:userId", d.Users.Delete)

	orders := api.Group("/orders")
	orders.POST("", d.Orders.Create)
	orders.GET("", d.Orders.List, cache)
	orders.GET("/:orderId", d.Orders.Get, cache)
	orders.PUT("/:orderId", d.Orders.Update)
	orders.DELETE("/:orderId", d.Orders.Delete)

	mailg := api.Group("/mail", requireAuth, requireAdmin)
	mailg.GET("/providers", d.Mail.Providers)
	mailg.POST("/test-connection", d.Mail.TestConnection)
	mailg.POST("/send-test", d.Mail.SendTest)
}
