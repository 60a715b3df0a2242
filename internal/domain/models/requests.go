package models

// Requests for the read-only HTTP endpoints.

type RegionRequest struct {
	Name string `param:"name" validate:"required,oneof=report countdown"`
}

type SignalsRequest struct {
	MinScore float64 `query:"min_score" json:"min_score" default:"0" validate:"gte=0,lte=100"`
	Action   string  `query:"action" json:"action"`
	Limit    int     `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
}

// StateResponse is the body of GET /api/snapshot.
type StateResponse struct {
	Snapshot  *Snapshot `json:"snapshot"`
	Remaining int       `json:"refresh_in_seconds"`
}
