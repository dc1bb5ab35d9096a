package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/gohotels/internal/config"
	"github.com/xyz-asif/gohotels/internal/middleware"
	"github.com/xyz-asif/gohotels/internal/pkg/ratelimit"
	"github.com/xyz-asif/gohotels/internal/pkg/token"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the auth and user routes and initializes dependencies
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, issuer *token.Issuer, limiter *ratelimit.RateLimiter) {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service, issuer, cfg.IsProduction())

	Mount(router, handler, issuer, limiter)
}

// Mount attaches handler to router. Split out so tests can supply their own store.
func Mount(router *gin.RouterGroup, handler *Handler, issuer *token.Issuer, limiter *ratelimit.RateLimiter) {
	authMiddleware := middleware.Auth(issuer)
	limit := ratelimit.Middleware(limiter)

	auth := router.Group("/auth")
	{
		auth.POST("/login", limit, handler.Login)
		auth.GET("/validate-token", authMiddleware, handler.ValidateToken)
		auth.POST("/logout", handler.Logout)
	}

	users := router.Group("/users")
	{
		users.POST("/register", limit, handler.Register)
		users.GET("/me", authMiddleware, handler.Me)
	}
}
