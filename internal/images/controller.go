package images

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventgallery/internal/contracts"
	"eventgallery/internal/events"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/shared/middleware"
	"eventgallery/internal/shared/utils/request"
	"eventgallery/internal/shared/utils/response"
	"eventgallery/internal/validators"
	"eventgallery/pkg/logger"
)

type Controller interface {
	GetAllImages(c *gin.Context)
	GetEventImages(c *gin.Context)
	UploadImage(c *gin.Context)
	GetImage(c *gin.Context)
	UpdateImage(c *gin.Context)
	DeleteImage(c *gin.Context)
	LikeImage(c *gin.Context)
	UnlikeImage(c *gin.Context)
}

type controller struct {
	service Service
	log     *logger.Logger
}

func NewController(service Service, log *logger.Logger) Controller {
	if log == nil {
		log = logger.GetDefault()
	}
	return &controller{service: service, log: log}
}

func (ctrl *controller) GetAllImages(c *gin.Context) {
	query, ok := ctrl.bindList(c)
	if !ok {
		return
	}
	result, err := ctrl.service.ListImages(c.Request.Context(), query)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, result)
}

func (ctrl *controller) GetEventImages(c *gin.Context) {
	eventID, ok := request.ParseID(c, "id", constants.MsgEventNotFound)
	if !ok {
		return
	}
	query, ok := ctrl.bindList(c)
	if !ok {
		return
	}
	result, err := ctrl.service.ListEventImages(c.Request.Context(), query.ViewerID, eventID, query)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, result)
}

func (ctrl *controller) UploadImage(c *gin.Context) {
	if !request.IsMultipart(c) {
		response.RespondBadRequest(c, constants.MsgFileRequired)
		return
	}
	file, err := request.FormFile(c, "image")
	if err != nil {
		response.RespondBadRequest(c, constants.MsgUploadFailed)
		return
	}
	req := contracts.UploadImageRequest{
		EventID:     c.PostForm("eventId"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Image:       file,
	}
	if result := validators.UploadImageRequest(req); !result.Valid {
		response.RespondValidation(c, result.Errors)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	result, err := ctrl.service.Upload(c.Request.Context(), userID, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusCreated, result)
}

func (ctrl *controller) GetImage(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgImageNotFound)
	if !ok {
		return
	}
	detail, err := ctrl.service.GetImage(c.Request.Context(), middleware.OptionalUserID(c), id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, detail)
}

func (ctrl *controller) UpdateImage(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgImageNotFound)
	if !ok {
		return
	}
	var req contracts.UpdateImageRequest
	if !request.BindJSON(c, &req) {
		return
	}
	if result := validators.UpdateImageRequest(req); !result.Valid {
		response.RespondValidation(c, result.Errors)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	img, err := ctrl.service.UpdateImage(c.Request.Context(), userID, id, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, img)
}

func (ctrl *controller) DeleteImage(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgImageNotFound)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	if err := ctrl.service.DeleteImage(c.Request.Context(), userID, id); err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, contracts.MessageResponse{Message: constants.MsgImageDeleted})
}

func (ctrl *controller) LikeImage(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgImageNotFound)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	result, err := ctrl.service.Like(c.Request.Context(), userID, id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, result)
}

func (ctrl *controller) UnlikeImage(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgImageNotFound)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	result, err := ctrl.service.Unlike(c.Request.Context(), userID, id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, result)
}

func (ctrl *controller) bindList(c *gin.Context) (ListQuery, bool) {
	var filters contracts.ImageFilters
	if !request.BindQuery(c, &filters) {
		return ListQuery{}, false
	}
	page, ok := request.ResolvePage(c, filters.PaginationParams, constants.ImageSortFields, "uploadedAt")
	if !ok {
		return ListQuery{}, false
	}

	details := map[string][]string{}
	eventID := optionalID(filters.EventID, "eventId", details)
	userID := optionalID(filters.UserID, "userId", details)
	startDate, err := events.ParseDateBound(filters.StartDate, false)
	if err != nil {
		details["startDate"] = validators.EventDate(filters.StartDate)
	}
	endDate, err := events.ParseDateBound(filters.EndDate, true)
	if err != nil {
		details["endDate"] = validators.EventDate(filters.EndDate)
	}
	if len(details) > 0 {
		response.RespondValidation(c, details)
		return ListQuery{}, false
	}

	return ListQuery{
		ViewerID:  middleware.OptionalUserID(c),
		EventID:   eventID,
		UserID:    userID,
		Search:    validators.SanitizeString(filters.Search),
		StartDate: startDate,
		EndDate:   endDate,
		Page:      page.Page,
		Limit:     page.Limit,
		SortBy:    page.SortBy,
		Desc:      page.Desc,
	}, true
}

func (ctrl *controller) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrImageNotFound):
		response.RespondNotFound(c, constants.MsgImageNotFound)
	case errors.Is(err, events.ErrEventNotFound):
		response.RespondNotFound(c, constants.MsgEventNotFound)
	case errors.Is(err, ErrNotImageOwner):
		response.RespondForbidden(c, constants.MsgNotImageOwner)
	case errors.Is(err, ErrNotParticipant):
		response.RespondForbidden(c, constants.MsgNotParticipant)
	default:
		ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondInternal(c)
	}
}

func optionalID(raw, field string, details map[string][]string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		details[field] = validators.UUID(raw)
		return nil
	}
	return &id
}
