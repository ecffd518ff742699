package controllers

import (
	"encoding/json"
	"net/http"
)

// HealthInfo names the backends the server was started with.
type HealthInfo struct {
	Storage  string `json:"storage"`
	History  bool   `json:"history"`
	Analyzer string `json:"analyzer"`
	Images   string `json:"images"`
}

type HealthController struct {
	info HealthInfo
}

func NewHealthController(info HealthInfo) *HealthController {
	return &HealthController{info: info}
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(struct {
		Status string `json:"status"`
		HealthInfo
	}{"ok", h.info})
}
