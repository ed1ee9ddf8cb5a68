package gallery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/shared/middleware"
	"eventgallery/internal/shared/utils/request"
	"eventgallery/internal/shared/utils/response"
	"eventgallery/internal/validators"
	"eventgallery/pkg/logger"
)

type searchQuery struct {
	Q     string               `form:"q"`
	Type  contracts.SearchType `form:"type"`
	Limit int                  `form:"limit"`
}

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

func (ctrl *Controller) Search(c *gin.Context) {
	var query searchQuery
	if !request.BindQuery(c, &query) {
		return
	}
	term := validators.SanitizeString(query.Q)
	if term == "" {
		response.RespondValidation(c, map[string][]string{"q": {constants.MsgSearchQueryRequired}})
		return
	}
	if query.Limit < 0 || query.Limit > constants.MaxLimit {
		response.RespondValidation(c, validators.Pagination(nil, &query.Limit).Errors)
		return
	}

	results, err := ctrl.service.Search(c.Request.Context(), middleware.OptionalUserID(c), term, query.Type, query.Limit)
	if err != nil {
		if errors.Is(err, ErrInvalidSearchType) {
			response.RespondValidation(c, map[string][]string{"type": {constants.MsgInvalidSearchType}})
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondInternal(c)
		return
	}
	response.RespondJSON(c, http.StatusOK, results)
}

func (ctrl *Controller) GetStats(c *gin.Context) {
	stats, err := ctrl.service.Stats(c.Request.Context())
	if err != nil {
		ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondInternal(c)
		return
	}
	response.RespondJSON(c, http.StatusOK, stats)
}
