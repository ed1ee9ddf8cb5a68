package users

import (
	"errors"
	"net/http"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/shared/middleware"
	"eventgallery/internal/shared/utils/request"
	"eventgallery/internal/shared/utils/response"
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
	return &Controller{service: service, log: log}
}

func (ctrl *Controller) GetUser(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgUserNotFound)
	if !ok {
		return
	}

	profile, err := ctrl.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.RespondNotFound(c, constants.MsgUserNotFound)
		default:
			ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
			response.RespondInternal(c)
		}
		return
	}

	response.RespondJSON(c, http.StatusOK, profile)
}

func (ctrl *Controller) UpdateUser(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgUserNotFound)
	if !ok {
		return
	}

	var req contracts.UpdateUserRequest
	if !request.BindJSON(c, &req) {
		return
	}
	if result := validators.UpdateUserRequest(req); !result.Valid {
		response.RespondValidation(c, result.Errors)
		return
	}

	actorID, _ := middleware.CurrentUserID(c)
	user, err := ctrl.service.UpdateProfile(c.Request.Context(), actorID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotOwner):
			response.RespondForbidden(c, constants.MsgForbidden)
		case errors.Is(err, ErrUserNotFound):
			response.RespondNotFound(c, constants.MsgUserNotFound)
		default:
			ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
			response.RespondInternal(c)
		}
		return
	}

	response.RespondJSON(c, http.StatusOK, user)
}
