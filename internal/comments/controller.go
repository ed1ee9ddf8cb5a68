package comments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventgallery/internal/contracts"
	"eventgallery/internal/images"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/shared/middleware"
	"eventgallery/internal/shared/utils/request"
	"eventgallery/internal/shared/utils/response"
	"eventgallery/internal/validators"
	"eventgallery/pkg/logger"
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

func (ctrl *Controller) CreateComment(c *gin.Context) {
	var req contracts.CreateCommentRequest
	if !request.BindJSON(c, &req) {
		return
	}
	if result := validators.CreateCommentRequest(req); !result.Valid {
		response.RespondValidation(c, result.Errors)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	result, err := ctrl.service.CreateComment(c.Request.Context(), userID, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusCreated, result)
}

func (ctrl *Controller) UpdateComment(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgCommentNotFound)
	if !ok {
		return
	}
	var req contracts.UpdateCommentRequest
	if !request.BindJSON(c, &req) {
		return
	}
	if result := validators.UpdateCommentRequest(req); !result.Valid {
		response.RespondValidation(c, result.Errors)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	comment, err := ctrl.service.UpdateComment(c.Request.Context(), userID, id, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, comment)
}

func (ctrl *Controller) DeleteComment(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgCommentNotFound)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	if err := ctrl.service.DeleteComment(c.Request.Context(), userID, id); err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, contracts.MessageResponse{Message: constants.MsgCommentDeleted})
}

func (ctrl *Controller) GetImageComments(c *gin.Context) {
	imageID, ok := request.ParseID(c, "id", constants.MsgImageNotFound)
	if !ok {
		return
	}
	var params contracts.PaginationParams
	if !request.BindQuery(c, &params) {
		return
	}
	page, ok := request.ResolvePage(c, params, []string{"createdAt"}, "createdAt")
	if !ok {
		return
	}

	result, err := ctrl.service.ImageComments(c.Request.Context(), middleware.OptionalUserID(c), imageID, ListQuery{
		Page:  page.Page,
		Limit: page.Limit,
		Desc:  params.SortOrder == contracts.SortDesc,
	})
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, result)
}

func (ctrl *Controller) GetAllComments(c *gin.Context) {
	var filters contracts.CommentFilters
	if !request.BindQuery(c, &filters) {
		return
	}
	page, ok := request.ResolvePage(c, filters.PaginationParams, []string{"createdAt"}, "createdAt")
	if !ok {
		return
	}

	query := ListQuery{
		ViewerID: middleware.OptionalUserID(c),
		Page:     page.Page,
		Limit:    page.Limit,
		Desc:     page.Desc,
	}
	details := map[string][]string{}
	if filters.ImageID != "" {
		if id, err := uuid.Parse(filters.ImageID); err == nil {
			query.ImageID = &id
		} else {
			details["imageId"] = validators.UUID(filters.ImageID)
		}
	}
	if filters.UserID != "" {
		if id, err := uuid.Parse(filters.UserID); err == nil {
			query.UserID = &id
		} else {
			details["userId"] = validators.UUID(filters.UserID)
		}
	}
	if len(details) > 0 {
		response.RespondValidation(c, details)
		return
	}

	result, err := ctrl.service.ListComments(c.Request.Context(), query)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, result)
}

func (ctrl *Controller) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCommentNotFound):
		response.RespondNotFound(c, constants.MsgCommentNotFound)
	case errors.Is(err, images.ErrImageNotFound):
		response.RespondNotFound(c, constants.MsgImageNotFound)
	case errors.Is(err, ErrNotCommentOwner):
		response.RespondForbidden(c, constants.MsgNotCommentOwner)
	default:
		ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondInternal(c)
	}
}
