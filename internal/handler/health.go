package handler

import (
	"net/http"

	"github.com/gatherhub/api/internal/database"
)

// HealthHandler reports process and store health
type HealthHandler struct {
	db database.Database
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db database.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse is the health check body
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// Check handles GET /health. The process can be up while the store is not;
// both states are reported.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Store: "ok"}
	status := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Store = "unavailable"
		status = http.StatusServiceUnavailable
	}

	WriteJSON(w, status, resp)
}
