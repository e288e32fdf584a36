package restapi

import (
	"encoding/json"
	"net/http"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"targets": len(api.Dataset.TargetList),
		"starts":  len(api.Dataset.Starts),
		"results": len(api.Dataset.Results),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}
