package users

import (
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes mounts the profile endpoints. requireAuth guards writes.
func SetupUserRoutes(router *gin.RouterGroup, controller *Controller, requireAuth gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.GET("/:id", controller.GetUser)                   // GET /api/users/:id - Public profile
		users.PATCH("/:id", requireAuth, controller.UpdateUser) // PATCH /api/users/:id - Own profile only
	}
}
