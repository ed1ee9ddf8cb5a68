package auth

import (
	"eventgallery/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	service    Service
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller, service Service) *Router {
	return &Router{
		controller: controller,
		service:    service,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", authRouter.controller.Register)
		auth.POST("/login", authRouter.controller.Login)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(middleware.SessionAuth(authRouter.service))
		{
			protected.POST("/logout", authRouter.controller.Logout)
			protected.GET("/me", authRouter.controller.GetMe)
		}
	}
}
