package handler

import (
	"errors"
	"net/http"

	"cybake-bridge/internal/core/logger"
	"cybake-bridge/internal/core/server"
	"cybake-bridge/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the OrderService instance.
	service *service.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s *service.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// Preview handles GET /api/orders/:id.
// @Summary Preview an order import
// @Description Fetches the order and returns the Cybake payload and validation result that an import would produce. Nothing is submitted, logged or tagged.
// @Tags Orders
// @Produce json
// @Param X-Webhook-Secret header string false "Shared webhook secret"
// @Param id path string true "Order ID (numeric or global id)"
// @Success 200 {object} service.Preview
// @Failure 400 {object} server.ErrorResponse
// @Failure 401 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /api/orders/{id} [get]
func (h *OrderHandler) Preview(c *fiber.Ctx) error {
	orderID := c.Params("id")
	rayID := server.RayID(c)

	preview, err := h.service.Preview(c.UserContext(), orderID)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Internal Server Error"
		detail := ""

		switch {
		case errors.Is(err, service.ErrMissingOrderID):
			status = http.StatusBadRequest
			msg = "Order ID is required"
		case errors.Is(err, service.ErrOrderNotFound):
			status = http.StatusNotFound
			msg = "Order not found"
		default:
			logger.Get().Error("Failed to preview order",
				zap.String("order_id", orderID),
				zap.String("ray_id", rayID),
				zap.Error(err),
			)
			detail = err.Error()
		}

		return c.Status(status).JSON(server.ErrorResponse{
			Error:   msg,
			Message: detail,
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(preview)
}
