package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cybake-bridge/internal/core/logger"
	"cybake-bridge/internal/core/server"
	"cybake-bridge/internal/features/imports/domain"
	"cybake-bridge/internal/features/imports/ports"
	"cybake-bridge/internal/features/imports/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImportHandler handles the order-created webhook.
type ImportHandler struct {
	service ports.ImportUseCase
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(s ports.ImportUseCase) *ImportHandler {
	return &ImportHandler{service: s}
}

// ImportRequest is the webhook body. Either order_id or id identifies the order, as a
// number, a numeric string or a global id.
type ImportRequest struct {
	OrderID   OrderRef `json:"order_id"`
	ID        OrderRef `json:"id"`
	OrderName string   `json:"order_name"`
}

// ImportResponse is returned for every import outcome.
type ImportResponse struct {
	Success        bool     `json:"success"`
	Order          string   `json:"order,omitempty"`
	CybakeImportID string   `json:"cybake_import_id,omitempty"`
	Message        string   `json:"message,omitempty"`
	Error          string   `json:"error,omitempty"`
	Details        []string `json:"details,omitempty"`
	RayID          string   `json:"ray_id,omitempty"`
}

// OrderRef accepts a JSON string or number.
type OrderRef string

// UnmarshalJSON implements json.Unmarshaler.
func (r *OrderRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = OrderRef(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("order id must be a string or number")
	}
	*r = OrderRef(n.String())
	return nil
}

// Import handles POST /api/import.
// @Summary Import an order into Cybake
// @Description Fetches the order from Shopify, transforms and validates it, submits it to Cybake, logs the attempt and tags the order. Downstream failures return 422 so the caller does not auto-retry.
// @Tags Import
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string false "Shared webhook secret"
// @Param request body ImportRequest true "Order reference"
// @Success 200 {object} ImportResponse
// @Failure 400 {object} ImportResponse
// @Failure 401 {object} server.ErrorResponse
// @Failure 404 {object} ImportResponse
// @Failure 409 {object} ImportResponse
// @Failure 422 {object} ImportResponse
// @Router /api/import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	rayID := server.RayID(c)

	var req ImportRequest
	// Decoded from the raw body: callers do not always send a JSON Content-Type.
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ImportResponse{Error: "Invalid JSON", RayID: rayID})
	}

	orderID := string(req.OrderID)
	if orderID == "" {
		orderID = string(req.ID)
	}
	if orderID == "" {
		return c.Status(http.StatusBadRequest).JSON(ImportResponse{Error: "Missing order_id", RayID: rayID})
	}

	result, err := h.service.Import(c.UserContext(), domain.ImportRequest{
		OrderID:   orderID,
		OrderName: req.OrderName,
	})
	if err != nil {
		return h.importError(c, orderID, rayID, err)
	}

	switch result.Outcome {
	case domain.OutcomeDuplicate:
		return c.Status(http.StatusOK).JSON(ImportResponse{
			Success:        true,
			Order:          result.OrderNumber,
			CybakeImportID: result.CybakeImportID,
			Message:        "Order already imported",
		})
	case domain.OutcomeInvalid:
		return c.Status(http.StatusBadRequest).JSON(ImportResponse{
			Order:   result.OrderNumber,
			Error:   "Validation failed",
			Details: result.ValidationErrors,
		})
	case domain.OutcomeRejected:
		return c.Status(http.StatusUnprocessableEntity).JSON(ImportResponse{
			Order: result.OrderNumber,
			Error: result.Error,
		})
	default:
		return c.Status(http.StatusOK).JSON(ImportResponse{
			Success:        true,
			Order:          result.OrderNumber,
			CybakeImportID: result.CybakeImportID,
		})
	}
}

func (h *ImportHandler) importError(c *fiber.Ctx, orderID, rayID string, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingOrderID):
		return c.Status(http.StatusBadRequest).JSON(ImportResponse{Error: "Missing order_id", RayID: rayID})
	case errors.Is(err, service.ErrOrderNotFound):
		return c.Status(http.StatusNotFound).JSON(ImportResponse{Error: "Order not found", RayID: rayID})
	case errors.Is(err, service.ErrImportInProgress):
		return c.Status(http.StatusConflict).JSON(ImportResponse{Error: "Import already in progress", RayID: rayID})
	}

	logger.Get().Error("Import failed",
		zap.String("order_id", orderID),
		zap.String("ray_id", rayID),
		zap.Error(err),
	)
	return c.Status(http.StatusUnprocessableEntity).JSON(ImportResponse{
		Error:   "Internal server error",
		Message: err.Error(),
		RayID:   rayID,
	})
}
