package handler

import (
	"errors"
	"net/http"

	"cybake-bridge/internal/core/logger"
	"cybake-bridge/internal/core/server"
	"cybake-bridge/internal/features/imports/domain"
	"cybake-bridge/internal/features/imports/ports"
	"cybake-bridge/internal/features/imports/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LogHandler serves import history to the dashboard.
type LogHandler struct {
	service ports.LogQuery
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(s ports.LogQuery) *LogHandler {
	return &LogHandler{service: s}
}

// List handles GET /api/logs.
// @Summary List import logs
// @Description Paginated import history, newest first, with table-wide status counts.
// @Tags Logs
// @Produce json
// @Param status query string false "all, success or failed" default(all)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 200)" default(50)
// @Param search query string false "Substring of order number or customer name"
// @Success 200 {object} domain.LogPage
// @Failure 400 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /api/logs [get]
func (h *LogHandler) List(c *fiber.Ctx) error {
	rayID := server.RayID(c)

	var filter domain.LogFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(http.StatusBadRequest).JSON(server.ErrorResponse{
			Error:   "Invalid query parameters",
			Message: err.Error(),
			RayID:   rayID,
		})
	}

	page, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuery) {
			return c.Status(http.StatusBadRequest).JSON(server.ErrorResponse{
				Error:   "Invalid query parameters",
				Message: err.Error(),
				RayID:   rayID,
			})
		}

		logger.Get().Error("Failed to list import logs", zap.String("ray_id", rayID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(server.ErrorResponse{
			Error: err.Error(),
			RayID: rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(page)
}
