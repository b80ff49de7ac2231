package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

// HealthHandler backs the connectivity monitor. It answers 200 whenever the
// process is reachable; the database field reports the live ping so the
// console can show a degraded backend without treating it as offline.
type HealthHandler struct {
	DB        *sql.DB
	StartTime time.Time
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{DB: db, StartTime: time.Now()}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	database := "connected"

	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()

	if h.DB == nil || h.DB.PingContext(ctx) != nil {
		status = "degraded"
		database = "disconnected"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   status,
		Database: database,
		Uptime:   time.Since(h.StartTime).Round(time.Second).String(),
	})
}
