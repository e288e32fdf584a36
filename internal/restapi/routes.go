package restapi

import (
	"net/http"
)

// rateLimitAndValidateAPIKey combines API key validation, rate limiting
// and compression around a handler.
func rateLimitAndValidateAPIKey(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	compressedHandler := CompressionMiddleware(finalHandler)

	var rateLimitedHandler http.Handler
	if api.rateLimiter != nil {
		rateLimitedHandler = api.rateLimiter.Handler()(compressedHandler)
	} else {
		// Fallback for tests that don't use the NewRestAPI constructor.
		rateLimitedHandler = compressedHandler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		rateLimitedHandler.ServeHTTP(w, r)
	})
}

// cached wraps a handler with client-side caching headers. The analyzed
// dataset changes only when a new batch is published, so short TTLs are
// safe for the static endpoints.
func cached(durationSeconds int, handler http.Handler) http.Handler {
	return CacheControlMiddleware(durationSeconds, handler)
}

// SetRoutes registers all API endpoints.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	// Health check endpoint - no authentication required
	mux.HandleFunc("GET /healthz", api.healthHandler)

	mux.Handle("GET /api/trailhead/current-time.json",
		rateLimitAndValidateAPIKey(api, api.currentTimeHandler))
	mux.Handle("GET /api/trailhead/targets.json",
		cached(300, rateLimitAndValidateAPIKey(api, api.targetsHandler)))
	mux.Handle("GET /api/trailhead/targets-for-location.json",
		cached(300, rateLimitAndValidateAPIKey(api, api.targetsForLocationHandler)))
	mux.Handle("GET /api/trailhead/options/{id}",
		rateLimitAndValidateAPIKey(api, api.optionsHandler))
	mux.Handle("GET /api/trailhead/rejections/{id}",
		rateLimitAndValidateAPIKey(api, api.rejectionsHandler))

	if api.Metrics != nil {
		mux.Handle("GET /metrics", api.Metrics.Handler())
	}
}

// SetupAPIRoutes creates the API router with the global middleware chain
// applied: request IDs, security headers, request logging.
func (api *RestAPI) SetupAPIRoutes() http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	var handler http.Handler = mux
	handler = api.RequestLoggingMiddleware(handler)
	handler = securityHeaders(handler)
	handler = RequestIDMiddleware(handler)
	return handler
}
