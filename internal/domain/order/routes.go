package order

import "github.com/gin-gonic/gin"

// RegisterRoutes registers order routes
func RegisterRoutes(r gin.IRouter, handler *Handler) {
	orders := r.Group("/orders")
	{
		orders.POST("", handler.Create)
		orders.GET("", handler.List)
		orders.GET("/:id", handler.Get)
		orders.PATCH("/:id", handler.Update)
		orders.DELETE("/:id", handler.Delete)
	}
}
