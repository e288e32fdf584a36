package restapi

import (
	"net/http"

	"munroaccess.org/internal/models"
	"munroaccess.org/internal/utils"
)

// defaultSearchRadiusMeters bounds a nearby-target search when the client
// does not pass one.
const defaultSearchRadiusMeters = 50_000

// targetsForLocationHandler lists trailheads near a point, nearest first.
func (api *RestAPI) targetsForLocationHandler(w http.ResponseWriter, r *http.Request) {
	lat, err := utils.FloatParam(r, "lat")
	if err != nil {
		api.badRequestResponse(w, r, "invalid or missing lat")
		return
	}
	lon, err := utils.FloatParam(r, "lon")
	if err != nil {
		api.badRequestResponse(w, r, "invalid or missing lon")
		return
	}
	radius, err := utils.FloatParamOrDefault(r, "radius", defaultSearchRadiusMeters)
	if err != nil || radius <= 0 {
		api.badRequestResponse(w, r, "invalid radius")
		return
	}

	snapshot, err := api.Ranking.Default()
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	nearby := api.Dataset.TargetsNear(lat, lon, radius)
	summaries := make([]targetSummary, 0, len(nearby))
	for _, target := range nearby {
		summaries = append(summaries, api.summarize(target, snapshot))
	}
	api.sendResponse(w, r, models.NewListResponse(summaries))
}
