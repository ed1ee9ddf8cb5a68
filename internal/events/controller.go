package events

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/shared/middleware"
	"eventgallery/internal/shared/utils/request"
	"eventgallery/internal/shared/utils/response"
	"eventgallery/internal/validators"
	"eventgallery/pkg/logger"
)

type Controller interface {
	GetAllEvents(c *gin.Context)
	CreateEvent(c *gin.Context)
	GetEvent(c *gin.Context)
	UpdateEvent(c *gin.Context)
	DeleteEvent(c *gin.Context)
	JoinEvent(c *gin.Context)
	JoinByCode(c *gin.Context)
	ValidateInvite(c *gin.Context)
	LeaveEvent(c *gin.Context)
	GetParticipants(c *gin.Context)
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

func (ctrl *controller) GetAllEvents(c *gin.Context) {
	var filters contracts.EventFilters
	if !request.BindQuery(c, &filters) {
		return
	}
	page, ok := request.ResolvePage(c, filters.PaginationParams, constants.EventSortFields, "date")
	if !ok {
		return
	}

	details := map[string][]string{}
	if filters.Category != "" {
		if msgs := validators.EventCategory(string(filters.Category)); len(msgs) > 0 {
			details["category"] = msgs
		}
	}
	startDate, err := ParseDateBound(filters.StartDate, false)
	if err != nil {
		details["startDate"] = validators.EventDate(filters.StartDate)
	}
	endDate, err := ParseDateBound(filters.EndDate, true)
	if err != nil {
		details["endDate"] = validators.EventDate(filters.EndDate)
	}
	var createdBy *uuid.UUID
	if filters.CreatedByID != "" {
		id, err := uuid.Parse(filters.CreatedByID)
		if err != nil {
			details["createdById"] = validators.UUID(filters.CreatedByID)
		} else {
			createdBy = &id
		}
	}
	if len(details) > 0 {
		response.RespondValidation(c, details)
		return
	}

	query := ListQuery{
		Category:    string(filters.Category),
		IsPrivate:   filters.IsPrivate,
		Search:      validators.SanitizeString(filters.Search),
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedByID: createdBy,
		ViewerID:    middleware.OptionalUserID(c),
		Page:        page.Page,
		Limit:       page.Limit,
		SortBy:      page.SortBy,
		Desc:        page.Desc,
	}

	result, err := ctrl.service.ListEvents(c.Request.Context(), query)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, result)
}

func (ctrl *controller) CreateEvent(c *gin.Context) {
	req, ok := ctrl.bindCreate(c)
	if !ok {
		return
	}
	if result := validators.CreateEventRequest(req); !result.Valid {
		response.RespondValidation(c, result.Errors)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	event, err := ctrl.service.CreateEvent(c.Request.Context(), userID, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusCreated, event)
}

func (ctrl *controller) GetEvent(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgEventNotFound)
	if !ok {
		return
	}

	event, err := ctrl.service.GetEvent(c.Request.Context(), middleware.OptionalUserID(c), id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, event)
}

func (ctrl *controller) UpdateEvent(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgEventNotFound)
	if !ok {
		return
	}
	req, ok := ctrl.bindUpdate(c)
	if !ok {
		return
	}
	if result := validators.UpdateEventRequest(req); !result.Valid {
		response.RespondValidation(c, result.Errors)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	event, err := ctrl.service.UpdateEvent(c.Request.Context(), userID, id, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, event)
}

func (ctrl *controller) DeleteEvent(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgEventNotFound)
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if err := ctrl.service.DeleteEvent(c.Request.Context(), userID, id); err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, contracts.MessageResponse{Message: constants.MsgEventDeleted})
}

func (ctrl *controller) JoinEvent(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgEventNotFound)
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	result, err := ctrl.service.JoinEvent(c.Request.Context(), userID, id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, result)
}

func (ctrl *controller) JoinByCode(c *gin.Context) {
	var req contracts.JoinEventRequest
	if !request.BindJSON(c, &req) {
		return
	}
	if result := validators.JoinByCodeRequest(req); !result.Valid {
		response.RespondValidation(c, result.Errors)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	result, err := ctrl.service.JoinByCode(c.Request.Context(), userID, req.InviteCode)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, result)
}

func (ctrl *controller) ValidateInvite(c *gin.Context) {
	var req contracts.ValidateInviteCodeRequest
	if !request.BindJSON(c, &req) {
		return
	}
	if msgs := validators.InviteCode(req.InviteCode); len(msgs) > 0 {
		response.RespondValidation(c, map[string][]string{"inviteCode": msgs})
		return
	}

	result, err := ctrl.service.ValidateInviteCode(c.Request.Context(), middleware.OptionalUserID(c), req.InviteCode)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, result)
}

func (ctrl *controller) LeaveEvent(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgEventNotFound)
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if err := ctrl.service.LeaveEvent(c.Request.Context(), userID, id); err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, contracts.MessageResponse{Message: constants.MsgEventLeft})
}

func (ctrl *controller) GetParticipants(c *gin.Context) {
	id, ok := request.ParseID(c, "id", constants.MsgEventNotFound)
	if !ok {
		return
	}

	participants, err := ctrl.service.Participants(c.Request.Context(), middleware.OptionalUserID(c), id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, participants)
}

// fail maps service errors onto envelopes.
func (ctrl *controller) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		response.RespondNotFound(c, constants.MsgEventNotFound)
	case errors.Is(err, ErrNotCreator):
		response.RespondForbidden(c, constants.MsgNotEventCreator)
	case errors.Is(err, ErrPrivateEvent):
		response.RespondForbidden(c, constants.MsgPrivateEvent)
	case errors.Is(err, ErrEventFull):
		response.RespondConflict(c, constants.MsgEventFull)
	case errors.Is(err, ErrAlreadyJoined):
		response.RespondConflict(c, constants.MsgAlreadyJoined)
	case errors.Is(err, ErrNotParticipant):
		response.RespondBadRequest(c, constants.MsgNotParticipant)
	case errors.Is(err, ErrCreatorCannotLeave):
		response.RespondBadRequest(c, constants.MsgCreatorCannotLeave)
	case errors.Is(err, ErrInvalidInviteCode):
		response.RespondNotFound(c, constants.MsgInvalidInviteCode)
	default:
		ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondInternal(c)
	}
}

// bindCreate accepts either a JSON body or a multipart form carrying a
// coverImage file.
func (ctrl *controller) bindCreate(c *gin.Context) (contracts.CreateEventRequest, bool) {
	var req contracts.CreateEventRequest
	if !request.IsMultipart(c) {
		return req, request.BindJSON(c, &req)
	}

	req.Name = c.PostForm("name")
	req.Description = c.PostForm("description")
	req.Date = c.PostForm("date")
	req.Time = c.PostForm("time")
	req.Location = c.PostForm("location")
	req.Category = contracts.EventCategory(c.PostForm("category"))

	var err error
	if req.IsPrivate, err = request.FormBool(c, "isPrivate"); err != nil {
		response.RespondValidation(c, map[string][]string{"isPrivate": {constants.MsgBadRequest}})
		return req, false
	}
	if req.MaxParticipants, err = request.FormInt(c, "maxParticipants"); err != nil {
		response.RespondValidation(c, map[string][]string{"maxParticipants": {validators.MsgMaxParticipantsInteger}})
		return req, false
	}
	if req.CoverImage, err = request.FormFile(c, "coverImage"); err != nil {
		response.RespondBadRequest(c, constants.MsgUploadFailed)
		return req, false
	}
	return req, true
}

func (ctrl *controller) bindUpdate(c *gin.Context) (contracts.UpdateEventRequest, bool) {
	var req contracts.UpdateEventRequest
	if !request.IsMultipart(c) {
		return req, request.BindJSON(c, &req)
	}

	req.Name = request.FormString(c, "name")
	req.Description = request.FormString(c, "description")
	req.Date = request.FormString(c, "date")
	req.Time = request.FormString(c, "time")
	req.Location = request.FormString(c, "location")
	if category := request.FormString(c, "category"); category != nil {
		value := contracts.EventCategory(*category)
		req.Category = &value
	}

	var err error
	if req.IsPrivate, err = request.FormBool(c, "isPrivate"); err != nil {
		response.RespondValidation(c, map[string][]string{"isPrivate": {constants.MsgBadRequest}})
		return req, false
	}
	if req.MaxParticipants, err = request.FormInt(c, "maxParticipants"); err != nil {
		response.RespondValidation(c, map[string][]string{"maxParticipants": {validators.MsgMaxParticipantsInteger}})
		return req, false
	}
	if req.CoverImage, err = request.FormFile(c, "coverImage"); err != nil {
		response.RespondBadRequest(c, constants.MsgUploadFailed)
		return req, false
	}
	return req, true
}
