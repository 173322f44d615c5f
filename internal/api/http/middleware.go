package http

import (
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/observability"
)

// requestLog logs every request once it is served and records it on obs
// under the matched route pattern.
func requestLog(log logger.Logger, obs *observability.Observability) func(nethttp.Handler) nethttp.Handler {
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = nethttp.StatusOK
			}
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			elapsed := time.Since(start)
			obs.RecordRequest(r.Context(), route, r.Method, status, elapsed)

			fields := map[string]interface{}{
				"method":     r.Method,
				"route":      route,
				"status":     status,
				"durationMs": elapsed.Milliseconds(),
				"requestId":  middleware.GetReqID(r.Context()),
			}
			if status >= nethttp.StatusInternalServerError {
				log.Warn("request failed", fields)
				return
			}
			log.Debug("request served", fields)
		})
	}
}
