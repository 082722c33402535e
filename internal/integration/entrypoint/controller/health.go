// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	storeHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Store     string `json:"store"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. The checker
// is nil when the application runs on the in-memory stores.
func NewHealthController(storeHealthChecker func() bool) *HealthController {
	return &HealthController{
		storeHealthChecker: storeHealthChecker,
	}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	storeStatus := "in-memory"
	if h.storeHealthChecker != nil {
		storeStatus = "disconnected"
		if h.storeHealthChecker() {
			storeStatus = "connected"
		}
	}

	response := HealthResponse{
		Status:    "ok",
		Store:     storeStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
