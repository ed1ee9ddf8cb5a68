package gallery

import (
	"github.com/gin-gonic/gin"
)

func SetupGalleryRoutes(router *gin.RouterGroup, controller *Controller, optionalAuth gin.HandlerFunc) {
	router.GET("/search", optionalAuth, controller.Search) // GET /api/search?q=&type=all|events|images|users
	router.GET("/gallery/stats", controller.GetStats)      // GET /api/gallery/stats - Totals, cached when redis is on
}
