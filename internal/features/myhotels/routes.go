package myhotels

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/gohotels/internal/features/hotels"
	"github.com/xyz-asif/gohotels/internal/middleware"
	"github.com/xyz-asif/gohotels/internal/pkg/token"
)

// RegisterRoutes mounts the owner hotel routes; all of them require a session.
func RegisterRoutes(router *gin.RouterGroup, store hotels.Store, uploader ImageUploader, issuer *token.Issuer) {
	handler := NewHandler(NewService(store, uploader))

	my := router.Group("/my-hotels")
	my.Use(middleware.Auth(issuer))
	{
		my.POST("", handler.Create)
		my.GET("", handler.List)
		my.GET("/:id", handler.Get)
		my.PUT("/:id", handler.Update)
	}
}
