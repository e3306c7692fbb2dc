package recommendations

import (
	"time"

	"tripspark/internal/pkg/catalog"
	"tripspark/internal/pkg/itinerary"
	"tripspark/internal/pkg/userservice"
)

// Params are the request-scoped inputs to one recommendation run
type Params struct {
	Destination string   `json:"destination,omitempty"`
	Vibes       []string `json:"vibes,omitempty"`
	Budget      string   `json:"budget,omitempty"`
	Days        int      `json:"days,omitempty"`
}

// ScoredPOI is a candidate annotated with its composite score and the tags
// that earned it
type ScoredPOI struct {
	POI              catalog.POI `json:"poi" bson:"poi"`
	Score            float64     `json:"score" bson:"score"`
	MatchedInterests []string    `json:"matchedInterests" bson:"matchedInterests"`
	MatchedVibes     []string    `json:"matchedVibes" bson:"matchedVibes"`
}

// Recommendation is the combined response of one pipeline run. It echoes the
// request, carries the ranked POIs and the raw inputs they were scored from.
type Recommendation struct {
	ID          string               `json:"recommendationId" bson:"_id"`
	UserID      string               `json:"userId" bson:"userId"`
	Destination string               `json:"destination,omitempty" bson:"destination,omitempty"`
	Vibes       []string             `json:"vibes,omitempty" bson:"vibes,omitempty"`
	Budget      string               `json:"budget,omitempty" bson:"budget,omitempty"`
	GeneratedAt time.Time            `json:"generatedAt" bson:"generatedAt"`
	Results     []ScoredPOI          `json:"results" bson:"results"`
	Profile     *userservice.Profile `json:"profile,omitempty" bson:"profile,omitempty"`
	Candidates  []catalog.POI        `json:"candidates,omitempty" bson:"candidates,omitempty"`
	Itinerary   itinerary.Plan       `json:"itinerary,omitempty" bson:"itinerary,omitempty"`
}

// recommendQuery is the query-string shape shared by the sync and async endpoints
type recommendQuery struct {
	Destination string `form:"destination"`
	Vibes       string `form:"vibes"`
	Budget      string `form:"budget"`
	Days        int    `form:"days,default=1" binding:"omitempty,min=1,max=14"`
}

func (q *recommendQuery) toParams() Params {
	return Params{
		Destination: q.Destination,
		Vibes:       splitTags(q.Vibes),
		Budget:      q.Budget,
		Days:        q.Days,
	}
}

// AsyncAccepted is the submission reply for the asynchronous endpoint
type AsyncAccepted struct {
	JobID  string `json:"jobId"`
	Status string `json:"status" example:"accepted"`
}
