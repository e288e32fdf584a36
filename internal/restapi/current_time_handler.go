package restapi

import (
	"net/http"
	"time"

	"munroaccess.org/internal/models"
)

// Declare a handler which writes a JSON response with information about the
// current time.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	entry := map[string]interface{}{
		"time":         now.UnixMilli(),
		"readableTime": now.Format(time.RFC3339),
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
