package http

import (
	nethttp "net/http"
	"time"

	"scholarship-workers/internal/common/database"
)

const readyTimeout = 2 * time.Second

func healthHandler(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// readyHandler reports 503 while any dependency fails its ping.
func readyHandler(deps map[string]database.Pinger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		failures := database.CheckAll(r.Context(), readyTimeout, deps)
		if len(failures) > 0 {
			writeJSON(w, nethttp.StatusServiceUnavailable, map[string]interface{}{
				"status":   "degraded",
				"failures": failures,
			})
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]interface{}{
			"status":       "ready",
			"dependencies": database.Names(deps),
		})
	}
}
