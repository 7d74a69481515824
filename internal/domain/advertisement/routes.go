package advertisement

import "github.com/gin-gonic/gin"

// RegisterRoutes registers advertisement routes
func RegisterRoutes(r gin.IRouter, handler *Handler) {
	ads := r.Group("/advertisements")
	{
		ads.POST("", handler.Create)
		ads.GET("/active", handler.ListActive)
		ads.GET("/:id", handler.Get)
		ads.PUT("/:id", handler.Update)
		ads.DELETE("/:id", handler.Delete)
		ads.GET("/:id/landing", handler.Landing)
		ads.POST("/:id/click", handler.Click)
	}
}
