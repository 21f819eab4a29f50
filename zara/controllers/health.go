package controllers

import (
	"encoding/json"
	"net/http"

	"zara/zara/utils/types"
)

type HealthController struct {
	apiConfigured bool
}

func NewHealthController(apiConfigured bool) *HealthController {
	return &HealthController{apiConfigured: apiConfigured}
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(types.HealthResponse{
		Status:        "healthy",
		APIConfigured: h.apiConfigured,
		Message:       "Zara AI Backend is running!",
	})
}
