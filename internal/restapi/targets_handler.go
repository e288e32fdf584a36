package restapi

import (
	"net/http"

	"munroaccess.org/internal/models"
	"munroaccess.org/internal/ranking"
)

// targetSummary is one trailhead with its routes and munro metadata.
type targetSummary struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	LngLat      models.LngLat         `json:"lngLat"`
	Routes      []ranking.RouteDetail `json:"routes"`
}

func (api *RestAPI) summarize(target models.Target, snapshot *ranking.Snapshot) targetSummary {
	return targetSummary{
		ID:          target.ID,
		Name:        target.Name,
		Description: target.Description,
		LngLat:      target.LngLat,
		Routes:      snapshot.Routes[target.ID],
	}
}

// targetsHandler lists every trailhead with resolved route metadata.
func (api *RestAPI) targetsHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := api.Ranking.Default()
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	summaries := make([]targetSummary, 0, len(api.Dataset.TargetList))
	for _, target := range api.Dataset.TargetList {
		summaries = append(summaries, api.summarize(target, snapshot))
	}
	api.sendResponse(w, r, models.NewListResponse(summaries))
}
