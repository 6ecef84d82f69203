package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
)

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	store  repository.Store
	driver string
}

func NewHealthHandler(store repository.Store, driver string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver}
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Storage   string    `json:"storage"`
	Driver    string    `json:"driver"`
	Timestamp time.Time `json:"timestamp"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res := HealthResponse{
		Status:    "healthy",
		Storage:   "healthy",
		Driver:    h.driver,
		Timestamp: time.Now(),
	}
	statusCode := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		res.Status = "unhealthy"
		res.Storage = "unhealthy: " + err.Error()
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, res)
}
