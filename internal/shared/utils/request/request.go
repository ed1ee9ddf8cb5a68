// Package request holds the parsing steps shared by the gin controllers.
package request

import (
	"slices"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/shared/utils/response"
	"eventgallery/internal/validators"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Page is a validated page request.
type Page struct {
	Page   int
	Limit  int
	SortBy string
	Desc   bool
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParseID reads a uuid path parameter. A malformed id answers 404 and
// returns false.
func ParseID(c *gin.Context, name, notFoundMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondNotFound(c, notFoundMsg)
		return uuid.Nil, false
	}
	return id, true
}

// ResolvePage validates raw pagination and fills defaults. Unknown sort
// keys fall back to defaultSort. On failure a validation envelope has been
// written and ok is false.
func ResolvePage(c *gin.Context, raw contracts.PaginationParams, sortFields []string, defaultSort string) (Page, bool) {
	var page, limit *int
	if raw.Page != 0 {
		page = &raw.Page
	}
	if raw.Limit != 0 {
		limit = &raw.Limit
	}
	if result := validators.Pagination(page, limit); !result.Valid {
		response.RespondValidation(c, result.Errors)
		return Page{}, false
	}

	p := Page{
		Page:   constants.DefaultPage,
		Limit:  constants.DefaultLimit,
		SortBy: defaultSort,
		Desc:   raw.SortOrder != contracts.SortAsc,
	}
	if page != nil {
		p.Page = *page
	}
	if limit != nil {
		p.Limit = *limit
	}
	if slices.Contains(sortFields, raw.SortBy) {
		p.SortBy = raw.SortBy
	}
	return p, true
}

// BindQuery binds query parameters into dst, answering 400 on malformed
// values.
func BindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.RespondBadRequest(c, constants.MsgBadRequest)
		return false
	}
	return true
}

// BindJSON decodes the JSON body into dst, answering 400 on malformed
// input.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondBadRequest(c, constants.MsgBadRequest)
		return false
	}
	return true
}
