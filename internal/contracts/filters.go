package contracts

import (
	"net/url"
	"strconv"
)

// EventFilters narrows GET /events. Zero values are omitted from the query.
type EventFilters struct {
	PaginationParams
	Category    EventCategory `form:"category"`
	IsPrivate   *bool         `form:"isPrivate"`
	Search      string        `form:"search"`
	StartDate   string        `form:"startDate"`
	EndDate     string        `form:"endDate"`
	CreatedByID string        `form:"createdById"`
}

func (f EventFilters) Values() url.Values {
	v := url.Values{}
	f.PaginationParams.encode(v)
	setIf(v, "category", string(f.Category))
	if f.IsPrivate != nil {
		v.Set("isPrivate", strconv.FormatBool(*f.IsPrivate))
	}
	setIf(v, "search", f.Search)
	setIf(v, "startDate", f.StartDate)
	setIf(v, "endDate", f.EndDate)
	setIf(v, "createdById", f.CreatedByID)
	return v
}

type ImageFilters struct {
	PaginationParams
	EventID   string `form:"eventId"`
	UserID    string `form:"userId"`
	Search    string `form:"search"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

func (f ImageFilters) Values() url.Values {
	v := url.Values{}
	f.PaginationParams.encode(v)
	setIf(v, "eventId", f.EventID)
	setIf(v, "userId", f.UserID)
	setIf(v, "search", f.Search)
	setIf(v, "startDate", f.StartDate)
	setIf(v, "endDate", f.EndDate)
	return v
}

type CommentFilters struct {
	PaginationParams
	ImageID string `form:"imageId"`
	UserID  string `form:"userId"`
}

func (f CommentFilters) Values() url.Values {
	v := url.Values{}
	f.PaginationParams.encode(v)
	setIf(v, "imageId", f.ImageID)
	setIf(v, "userId", f.UserID)
	return v
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
