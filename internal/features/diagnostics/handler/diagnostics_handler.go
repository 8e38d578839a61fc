package handler

import (
	"errors"
	"net/http"

	"cybake-bridge/internal/core/logger"
	"cybake-bridge/internal/core/server"
	"cybake-bridge/internal/features/diagnostics/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DiagnosticsHandler exposes the connectivity probes.
type DiagnosticsHandler struct {
	service *service.DiagnosticsService
}

// NewDiagnosticsHandler creates a new DiagnosticsHandler.
func NewDiagnosticsHandler(s *service.DiagnosticsService) *DiagnosticsHandler {
	return &DiagnosticsHandler{service: s}
}

// ShopifyToken handles GET /api/diagnostics/shopify-token.
// @Summary Probe Shopify client credentials
// @Description Runs the client-credentials grant with the configured app credentials and returns the raw status and body.
// @Tags Diagnostics
// @Produce json
// @Param X-Webhook-Secret header string false "Shared webhook secret"
// @Success 200 {object} domain.ProbeResult
// @Failure 400 {object} server.ErrorResponse
// @Failure 401 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /api/diagnostics/shopify-token [get]
func (h *DiagnosticsHandler) ShopifyToken(c *fiber.Ctx) error {
	rayID := server.RayID(c)

	result, err := h.service.ShopifyToken(c.UserContext())
	if err != nil {
		if errors.Is(err, service.ErrCredentialsNotConfigured) {
			return c.Status(http.StatusBadRequest).JSON(server.ErrorResponse{
				Error:   "Shopify client credentials not configured",
				Message: "Set SHOPIFY_CLIENT_ID and SHOPIFY_CLIENT_SECRET",
				RayID:   rayID,
			})
		}

		logger.Get().Error("Credential probe failed", zap.String("ray_id", rayID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(server.ErrorResponse{
			Error: err.Error(),
			RayID: rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(result)
}

// ShopifyAPI handles GET /api/diagnostics/shopify-api.
// @Summary Probe the Shopify Admin API
// @Description Reports a masked token and checks it against several Admin API versions and the REST orders endpoint.
// @Tags Diagnostics
// @Produce json
// @Param X-Webhook-Secret header string false "Shared webhook secret"
// @Success 200 {object} domain.ShopifyReport
// @Failure 401 {object} server.ErrorResponse
// @Router /api/diagnostics/shopify-api [get]
func (h *DiagnosticsHandler) ShopifyAPI(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.service.ShopifyAPI(c.UserContext()))
}

// CybakeEndpoints handles GET /api/diagnostics/cybake-endpoints.
// @Summary Probe Cybake endpoints
// @Description GETs a fixed list of Cybake paths with the API headers and reports each status and truncated body.
// @Tags Diagnostics
// @Produce json
// @Param X-Webhook-Secret header string false "Shared webhook secret"
// @Success 200 {object} domain.CybakeReport
// @Failure 401 {object} server.ErrorResponse
// @Router /api/diagnostics/cybake-endpoints [get]
func (h *DiagnosticsHandler) CybakeEndpoints(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.service.CybakeEndpoints(c.UserContext()))
}
