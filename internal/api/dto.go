package api

import "github.com/starford/careergraph/internal/models"

// PathResult is one path and its followers.
type PathResult = models.PathResult

// CurrentTitleResponse is returned by GET /current_title/{title_name}.
type CurrentTitleResponse struct {
	TitleName    string   `json:"title_name"`
	CurrentTitle []string `json:"current_title"`
}

// TitlesHeldResponse is returned by GET /titles/{person_id}.
type TitlesHeldResponse struct {
	PersonID int      `json:"person_id"`
	Titles   []string `json:"titles"`
}

// TitleListResponse is returned by GET /titles.
type TitleListResponse struct {
	Titles []string `json:"titles"`
}

// ReadyResponse is returned by GET /health/ready.
type ReadyResponse struct {
	Status   string       `json:"status"`
	Checksum string       `json:"checksum"`
	Stats    models.Stats `json:"stats"`
}
