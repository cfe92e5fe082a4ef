package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
)

type CheckEntry struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type healthResponse struct {
	Status string                `json:"status"`
	Checks map[string]CheckEntry `json:"checks"`
}

func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "pong"})
}

func healthCheckHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]CheckEntry{}
		status := "ok"
		httpStatus := http.StatusOK

		if err := db.PingContext(ctx); err != nil {
			checks["database"] = CheckEntry{Status: "down", Detail: err.Error()}
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["database"] = CheckEntry{Status: "ok"}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpStatus)
		json.NewEncoder(w).Encode(healthResponse{Status: status, Checks: checks})
	}
}
