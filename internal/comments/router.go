package comments

import (
	"github.com/gin-gonic/gin"
)

func SetupCommentRoutes(router *gin.RouterGroup, controller *Controller, requireAuth, optionalAuth gin.HandlerFunc) {
	comments := router.Group("/comments")
	{
		comments.GET("", optionalAuth, controller.GetAllComments)      // GET /api/comments - Filter by image or author
		comments.POST("", requireAuth, controller.CreateComment)       // POST /api/comments
		comments.PATCH("/:id", requireAuth, controller.UpdateComment)  // PATCH /api/comments/:id - Author only
		comments.DELETE("/:id", requireAuth, controller.DeleteComment) // DELETE /api/comments/:id - Author or event creator
	}

	router.GET("/images/:id/comments", optionalAuth, controller.GetImageComments) // GET /api/images/:id/comments - Paginated thread
}
