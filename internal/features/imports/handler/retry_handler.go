package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cybake-bridge/internal/core/logger"
	"cybake-bridge/internal/core/server"
	"cybake-bridge/internal/features/imports/ports"
	"cybake-bridge/internal/features/imports/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RetryHandler handles operator retries from the dashboard.
type RetryHandler struct {
	service ports.RetryUseCase
}

// NewRetryHandler creates a new RetryHandler.
func NewRetryHandler(s ports.RetryUseCase) *RetryHandler {
	return &RetryHandler{service: s}
}

// RetryRequest is the body of a retry call.
type RetryRequest struct {
	LogID string `json:"log_id"`
}

// RetryResponse reports the outcome of a retry.
type RetryResponse struct {
	Success        bool   `json:"success"`
	Order          string `json:"order"`
	CybakeImportID string `json:"cybake_import_id,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Retry handles POST /api/retry.
// @Summary Retry a failed import
// @Description Resubmits the payload stored on a failed log row. Success rows and rows without a stored payload are refused.
// @Tags Import
// @Accept json
// @Produce json
// @Param request body RetryRequest true "Log row to retry"
// @Success 200 {object} RetryResponse
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Failure 502 {object} RetryResponse
// @Router /api/retry [post]
func (h *RetryHandler) Retry(c *fiber.Ctx) error {
	rayID := server.RayID(c)

	var req RetryRequest
	// Decoded from the raw body: callers do not always send a JSON Content-Type.
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(server.ErrorResponse{Error: "Invalid JSON", RayID: rayID})
	}

	logID := strings.TrimSpace(req.LogID)
	if logID == "" {
		return c.Status(http.StatusBadRequest).JSON(server.ErrorResponse{Error: "Missing log_id", RayID: rayID})
	}

	result, err := h.service.Retry(c.UserContext(), logID)
	if err != nil {
		status := http.StatusInternalServerError
		resp := server.ErrorResponse{Error: "Internal error", RayID: rayID}

		switch {
		case errors.Is(err, service.ErrLogNotFound):
			status = http.StatusNotFound
			resp.Error = "Log entry not found"
		case errors.Is(err, service.ErrAlreadyImported):
			status = http.StatusBadRequest
			resp.Error = "Order already imported successfully"
		case errors.Is(err, service.ErrNoStoredPayload):
			status = http.StatusBadRequest
			resp.Error = "No stored payload and rebuild not yet supported. Please re-trigger from Shopify."
		default:
			logger.Get().Error("Retry failed",
				zap.String("log_id", logID),
				zap.String("ray_id", rayID),
				zap.Error(err),
			)
			resp.Message = err.Error()
		}

		return c.Status(status).JSON(resp)
	}

	if !result.Success {
		return c.Status(http.StatusBadGateway).JSON(RetryResponse{
			Order: result.OrderNumber,
			Error: result.Error,
		})
	}

	return c.Status(http.StatusOK).JSON(RetryResponse{
		Success:        true,
		Order:          result.OrderNumber,
		CybakeImportID: result.CybakeImportID,
	})
}
