package restapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequestLoggingMiddleware logs one structured line per request and counts
// it by status class.
func (api *RestAPI) RequestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		began := time.Now()

		next.ServeHTTP(recorder, r)

		requestID, _ := r.Context().Value(RequestIDKey).(string)
		api.Logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", recorder.status),
			slog.Duration("elapsed", time.Since(began)),
			slog.String("request_id", requestID),
		)
		if api.Metrics != nil {
			api.Metrics.HTTPRequests.WithLabelValues(strconv.Itoa(recorder.status)).Inc()
		}
	})
}
