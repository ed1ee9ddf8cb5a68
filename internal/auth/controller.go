package auth

import (
	"errors"
	"net/http"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/shared/middleware"
	"eventgallery/internal/shared/utils/request"
	"eventgallery/internal/shared/utils/response"
	"eventgallery/internal/users"
	"eventgallery/internal/validators"
	"eventgallery/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	log     *logger.Logger
}

func NewController(service Service, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Controller{
		service: service,
		log:     log,
	}
}

func (c *Controller) Register(ctx *gin.Context) {
	var req contracts.CreateUserRequest
	if !request.BindJSON(ctx, &req) {
		return
	}

	if result := validators.CreateUserRequest(req); !result.Valid {
		response.RespondValidation(ctx, result.Errors)
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrEmailTaken:
			response.RespondConflict(ctx, constants.MsgEmailAlreadyExists)
		case ErrUsernameTaken:
			response.RespondConflict(ctx, constants.MsgUsernameAlreadyExists)
		default:
			c.log.LogHTTPError(ctx, err, http.StatusInternalServerError)
			response.RespondInternal(ctx)
		}
		return
	}

	response.RespondJSON(ctx, http.StatusCreated, resp)
}

func (c *Controller) Login(ctx *gin.Context) {
	var req contracts.LoginRequest
	if !request.BindJSON(ctx, &req) {
		return
	}

	if result := validators.LoginRequest(req); !result.Valid {
		response.RespondValidation(ctx, result.Errors)
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			c.log.LogAuthFailure(ctx.Request.Context(), err.Error(), ctx.ClientIP())
			response.AbortWithError(ctx, http.StatusUnauthorized, contracts.ErrorKindInvalidCreds, constants.MsgInvalidCredentials)
		default:
			c.log.LogHTTPError(ctx, err, http.StatusInternalServerError)
			response.RespondInternal(ctx)
		}
		return
	}

	response.RespondJSON(ctx, http.StatusOK, resp)
}

func (c *Controller) Logout(ctx *gin.Context) {
	if err := c.service.Logout(ctx.Request.Context(), middleware.CurrentSessionID(ctx)); err != nil {
		c.log.LogHTTPError(ctx, err, http.StatusInternalServerError)
		response.RespondInternal(ctx)
		return
	}

	response.RespondJSON(ctx, http.StatusOK, contracts.MessageResponse{Message: constants.MsgLogoutSuccess})
}

func (c *Controller) GetMe(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	user, err := c.service.CurrentUser(ctx.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			response.RespondUnauthorized(ctx, constants.MsgSessionExpired)
		default:
			c.log.LogHTTPError(ctx, err, http.StatusInternalServerError)
			response.RespondInternal(ctx)
		}
		return
	}

	response.RespondJSON(ctx, http.StatusOK, user)
}
