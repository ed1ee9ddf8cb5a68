// api/routes/router.go
package routes

import (
	"net/http"

	"eventgallery/internal/auth"
	"eventgallery/internal/comments"
	"eventgallery/internal/contracts"
	"eventgallery/internal/events"
	"eventgallery/internal/gallery"
	"eventgallery/internal/images"
	"eventgallery/internal/shared/config"
	"eventgallery/internal/shared/database"
	"eventgallery/internal/shared/middleware"
	"eventgallery/internal/shared/storage"
	"eventgallery/internal/shared/utils/response"
	"eventgallery/internal/users"
	"eventgallery/pkg/cache"
	"eventgallery/pkg/logger"

	"github.com/gin-gonic/gin"
)

const ServiceName = "eventgallery-backend"

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	store  storage.Store
	cache  cache.Service
	log    *logger.Logger

	// Built in SetupRoutes, shared across feature groups
	authService  auth.Service
	userService  users.Service
	eventService events.Service
	imageService images.Service
}

// NewRouter creates a new router instance. The response cache is enabled
// whenever db carries a Redis client.
func NewRouter(cfg *config.Config, db *database.DB, store storage.Store, log *logger.Logger) *Router {
	if log == nil {
		log = logger.GetDefault()
	}
	r := &Router{
		config: cfg,
		db:     db,
		store:  store,
		log:    log,
	}
	if db.Redis != nil {
		r.cache = cache.NewService(db.Redis, log)
	}
	return r
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		api.GET("/health", func(c *gin.Context) {
			response.RespondJSON(c, http.StatusOK, contracts.HealthResponse{Status: "ok", Service: ServiceName})
		})

		// Order matters: later groups depend on services built by earlier ones
		r.setupAuthRoutes(api)
		r.setupUserRoutes(api)
		r.setupEventRoutes(api)
		r.setupImageRoutes(api)
		r.setupCommentRoutes(api)
	}
}

// setupHealthRoutes exposes the probe used by orchestrators
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			r.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
			response.RespondError(c, http.StatusServiceUnavailable, contracts.ErrorKindInternal, err.Error(), nil)
			return
		}
		response.RespondJSON(c, http.StatusOK, contracts.HealthResponse{Status: "ok", Service: ServiceName})
	})
}

func (r *Router) requireAuth() gin.HandlerFunc {
	return middleware.SessionAuth(r.authService)
}

func (r *Router) optionalAuth() gin.HandlerFunc {
	return middleware.OptionalAuth(r.authService)
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	userRepo := users.NewRepository(r.db.SQL)
	authRepo := auth.NewRepository(r.db.SQL)
	r.authService = auth.NewService(authRepo, userRepo, r.cache, r.config.Session, r.log)
	authController := auth.NewController(r.authService, r.log)

	auth.NewRouter(authController, r.authService).SetupRoutes(rg)
}

func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	r.userService = users.NewService(users.NewRepository(r.db.SQL), r.cache, r.log)
	users.SetupUserRoutes(rg, users.NewController(r.userService, r.log), r.requireAuth())
}

func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.SQL)
	r.eventService = events.NewService(eventRepo, r.store, r.cache, r.log)
	eventController := events.NewController(r.eventService, r.log)

	events.SetupEventRoutes(rg, eventController, r.requireAuth(), r.optionalAuth())
}

func (r *Router) setupImageRoutes(rg *gin.RouterGroup) {
	imageRepo := images.NewRepository(r.db.SQL)
	r.imageService = images.NewService(imageRepo, r.eventService, r.store, r.cache, r.log)
	imageController := images.NewController(r.imageService, r.log)

	images.SetupImageRoutes(rg, imageController, r.requireAuth(), r.optionalAuth())
}

// setupCommentRoutes also mounts search and stats, which need every
// feature service.
func (r *Router) setupCommentRoutes(rg *gin.RouterGroup) {
	commentRepo := comments.NewRepository(r.db.SQL)
	commentService := comments.NewService(commentRepo, r.imageService, r.cache, r.log)
	comments.SetupCommentRoutes(rg, comments.NewController(commentService, r.log), r.requireAuth(), r.optionalAuth())

	galleryService := gallery.NewService(r.eventService, r.imageService, r.userService, commentService, r.cache, r.config.Redis.CacheTTL, r.log)
	gallery.SetupGalleryRoutes(rg, gallery.NewController(galleryService, r.log), r.optionalAuth())
}
