package handlers

import (
	"context"
	"net/http"

	"pei_compras/internal/infrastructure/health"

	"github.com/gin-gonic/gin"
)

type healthChecker interface {
	Check(ctx context.Context) health.Response
}

type HealthHandler struct {
	checker healthChecker
}

func NewHealthHandler(checker healthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health reports dependency status. Only an unhealthy service answers 503.
//
// @Summary      Service health
// @Tags         health
// @Produce      json
// @Success      200  {object}  health.Response
// @Failure      503  {object}  health.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := h.checker.Check(c.Request.Context())
	status := http.StatusOK
	if resp.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
