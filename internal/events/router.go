package events

import (
	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller, requireAuth, optionalAuth gin.HandlerFunc) {
	// Browsing - private events show up for their members only
	publicEvents := router.Group("/events")
	publicEvents.Use(optionalAuth)
	{
		publicEvents.GET("", controller.GetAllEvents)                     // GET /api/events - Browse events
		publicEvents.GET("/:id", controller.GetEvent)                     // GET /api/events/:id - Event detail
		publicEvents.GET("/:id/participants", controller.GetParticipants) // GET /api/events/:id/participants - Members
		publicEvents.POST("/validate-invite", controller.ValidateInvite)  // POST /api/events/validate-invite - Check a code
	}

	// Membership and management - authenticated users
	userEvents := router.Group("/events")
	userEvents.Use(requireAuth)
	{
		userEvents.POST("", controller.CreateEvent)             // POST /api/events - Create (JSON or multipart)
		userEvents.PATCH("/:id", controller.UpdateEvent)        // PATCH /api/events/:id - Creator only
		userEvents.DELETE("/:id", controller.DeleteEvent)       // DELETE /api/events/:id - Creator only
		userEvents.POST("/:id/join", controller.JoinEvent)      // POST /api/events/:id/join - Join a public event
		userEvents.POST("/join-by-code", controller.JoinByCode) // POST /api/events/join-by-code - Join with an invite code
		userEvents.DELETE("/:id/leave", controller.LeaveEvent)  // DELETE /api/events/:id/leave - Leave
	}
}
