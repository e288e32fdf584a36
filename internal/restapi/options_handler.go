package restapi

import (
	"net/http"

	"munroaccess.org/internal/models"
	"munroaccess.org/internal/ranking"
	"munroaccess.org/internal/utils"
)

// preferencesFromQuery overlays query-parameter overrides onto the default
// preference set. Any override forces a fresh scoring pass; requests with
// none are served from the cached snapshot.
func preferencesFromQuery(r *http.Request) (models.RankingPreferences, error) {
	prefs := models.DefaultPreferences()
	var err error

	floats := []struct {
		name  string
		field *float64
	}{
		{"earliestDeparture", &prefs.EarliestDeparture},
		{"walkingSpeed", &prefs.WalkingSpeed},
		{"returnBuffer", &prefs.ReturnBuffer},
		{"preferredLatestEnd", &prefs.PreferredLatestEnd},
		{"hardLatestEnd", &prefs.HardLatestEnd},
		{"overnightPenalty", &prefs.OvernightPenalty},
		{"weightDepartureTime", &prefs.Weights.DepartureTime},
		{"weightHikeDuration", &prefs.Weights.HikeDuration},
		{"weightReturnOptions", &prefs.Weights.ReturnOptions},
		{"weightTotalDuration", &prefs.Weights.TotalDuration},
		{"weightFinishTime", &prefs.Weights.FinishTime},
	}
	for _, f := range floats {
		if *f.field, err = utils.FloatParamOrDefault(r, f.name, *f.field); err != nil {
			return prefs, err
		}
	}

	prefs.AllowCycling, err = utils.BoolParamOrDefault(r, "allowCycling", prefs.AllowCycling)
	return prefs, err
}

// optionsEntry is the ranked-options payload for one trailhead.
type optionsEntry struct {
	Target      targetSummary             `json:"target"`
	Preferences models.RankingPreferences `json:"preferences"`
	Options     []models.RankedOption     `json:"options"`
	Headline    []models.RankedOption     `json:"headline"`
}

// optionsHandler serves ranked travel options for one trailhead, best
// first. Preference overrides in the query string trigger a scoring pass
// over the whole dataset so percentiles stay globally comparable.
func (api *RestAPI) optionsHandler(w http.ResponseWriter, r *http.Request) {
	target, ok := api.Dataset.Targets[r.PathValue("id")]
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	prefs, err := preferencesFromQuery(r)
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	snapshot, err := api.Ranking.WithPreferences(prefs)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entry := optionsEntry{
		Target:      api.summarize(target, snapshot),
		Preferences: snapshot.Prefs,
		Options:     orEmptyOptions(snapshot.Options[target.ID]),
		Headline:    orEmptyOptions(snapshot.Headlines[target.ID]),
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}

// rejectionsHandler lists why candidate pairs for one trailhead were
// excluded, for debug tooling.
func (api *RestAPI) rejectionsHandler(w http.ResponseWriter, r *http.Request) {
	target, ok := api.Dataset.Targets[r.PathValue("id")]
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	prefs, err := preferencesFromQuery(r)
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	snapshot, err := api.Ranking.WithPreferences(prefs)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	rejections := snapshot.Rejections[target.ID]
	if rejections == nil {
		rejections = []ranking.RejectionRecord{}
	}
	api.sendResponse(w, r, models.NewListResponse(rejections))
}

func orEmptyOptions(options []models.RankedOption) []models.RankedOption {
	if options == nil {
		return []models.RankedOption{}
	}
	return options
}
