package hotels

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the public hotel routes. Booking routes under
// /hotels/:id/bookings are added by the bookings feature on the returned group.
func RegisterRoutes(router *gin.RouterGroup, store Store) *gin.RouterGroup {
	handler := NewHandler(store)

	hotels := router.Group("/hotels")
	{
		hotels.GET("", handler.List)
		hotels.GET("/search", handler.Search)
		hotels.GET("/:id", handler.GetByID)
	}

	return hotels
}
