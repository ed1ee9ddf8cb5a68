package contracts

type SearchType string

const (
	SearchAll    SearchType = "all"
	SearchEvents SearchType = "events"
	SearchImages SearchType = "images"
	SearchUsers  SearchType = "users"
)

// Includes reports whether results of kind other are requested.
func (t SearchType) Includes(other SearchType) bool {
	return t == "" || t == SearchAll || t == other
}

type SearchResults struct {
	Events []EventWithStats `json:"events"`
	Images []ImageWithStats `json:"images"`
	Users  []UserPublic     `json:"users"`
	Total  int              `json:"total"`
}

type GalleryStats struct {
	TotalEvents   int64 `json:"totalEvents"`
	TotalImages   int64 `json:"totalImages"`
	TotalUsers    int64 `json:"totalUsers"`
	TotalLikes    int64 `json:"totalLikes"`
	TotalComments int64 `json:"totalComments"`
}

// HealthResponse is served by the backend health probe.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
