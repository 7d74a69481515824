package promotion

import "github.com/gin-gonic/gin"

// RegisterRoutes registers promotion routes under /promotions and under the
// singular /promotion prefix older clients still call.
func RegisterRoutes(r gin.IRouter, handler *Handler) {
	for _, prefix := range []string{"/promotions", "/promotion"} {
		promotions := r.Group(prefix)
		{
			promotions.POST("", handler.Create)
			promotions.GET("", handler.List)
			promotions.GET("/active", handler.ListActive)
			promotions.GET("/:id", handler.Get)
			promotions.PATCH("/:id", handler.Update)
			promotions.DELETE("/:id", handler.Delete)
		}
	}
}
