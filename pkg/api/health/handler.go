package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"finhealth/pkg/core/store"
)

// Handle serves GET /api/health: liveness plus a database ping.
func Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	status := map[string]string{"status": "ok", "database": "ok"}
	code := http.StatusOK

	pool := store.GetPool()
	if pool == nil {
		status["database"] = "not configured"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			code = http.StatusServiceUnavailable
		}
	}

	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
