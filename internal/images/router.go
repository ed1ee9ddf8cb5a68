package images

import (
	"github.com/gin-gonic/gin"
)

func SetupImageRoutes(router *gin.RouterGroup, controller Controller, requireAuth, optionalAuth gin.HandlerFunc) {
	publicImages := router.Group("/images")
	publicImages.Use(optionalAuth)
	{
		publicImages.GET("", controller.GetAllImages) // GET /api/images - Browse visible images
		publicImages.GET("/:id", controller.GetImage) // GET /api/images/:id - Detail with latest comments
	}

	userImages := router.Group("/images")
	userImages.Use(requireAuth)
	{
		userImages.POST("", controller.UploadImage)              // POST /api/images - Multipart upload
		userImages.PATCH("/:id", controller.UpdateImage)         // PATCH /api/images/:id - Owner only
		userImages.DELETE("/:id", controller.DeleteImage)        // DELETE /api/images/:id - Owner or event creator
		userImages.POST("/:id/like", controller.LikeImage)       // POST /api/images/:id/like
		userImages.DELETE("/:id/unlike", controller.UnlikeImage) // DELETE /api/images/:id/unlike
	}

	router.GET("/events/:id/images", optionalAuth, controller.GetEventImages) // GET /api/events/:id/images - Event gallery
}
