package http

import (
	"net/http"

	"golang-sentiment-tracker/internal/dto"
	"golang-sentiment-tracker/pkg/ratelimit"

	"github.com/labstack/echo/v4"
)

// RateLimitHandler exposes the cooldown state of the external services.
type RateLimitHandler struct {
	registry *ratelimit.Registry
}

// NewRateLimitHandler creates a new RateLimitHandler.
func NewRateLimitHandler(registry *ratelimit.Registry) *RateLimitHandler {
	return &RateLimitHandler{registry: registry}
}

// RegisterRoutes registers the rate-limit routes to the Echo group.
func (h *RateLimitHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetRateLimits)
}

// GetRateLimits godoc
// @Summary Get external service rate-limit status
// @Description Get the cooldown state of every external provider
// @Tags ratelimits
// @Produce json
// @Success 200 {object} dto.RateLimitsResponse
// @Router /ratelimits [get]
func (h *RateLimitHandler) GetRateLimits(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.RateLimitsResponse{
		Services: h.registry.AllStatus(),
	})
}
