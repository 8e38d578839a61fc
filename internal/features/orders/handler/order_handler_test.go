package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"cybake-bridge/internal/core/server"
	"cybake-bridge/internal/features/orders/domain"
	"cybake-bridge/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOrderProvider is a mock implementation of OrderProvider for testing.
type mockOrderProvider struct {
	order *domain.Order
	err   error
}

func (m *mockOrderProvider) GetOrder(ctx context.Context, gid string) (*domain.Order, error) {
	return m.order, m.err
}

func (m *mockOrderProvider) AddTags(ctx context.Context, gid string, tags ...string) error {
	return nil
}

func (m *mockOrderProvider) RemoveTags(ctx context.Context, gid string, tags ...string) error {
	return nil
}

func setupApp(provider *mockOrderProvider) *fiber.App {
	h := NewOrderHandler(service.NewOrderService(provider))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Get("/api/orders/:id", h.Preview)
	return app
}

// TestOrderHandler_Preview_Success verifies a preview is returned for an existing order.
func TestOrderHandler_Preview_Success(t *testing.T) {
	app := setupApp(&mockOrderProvider{order: &domain.Order{ID: "gid://shopify/Order/1001", Name: "#1042"}})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/orders/1001", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body, "payload")
	assert.Contains(t, body, "summary")
	assert.Contains(t, body, "validation_errors")
}

// TestOrderHandler_Preview_NotFound verifies 404 handling.
func TestOrderHandler_Preview_NotFound(t *testing.T) {
	app := setupApp(&mockOrderProvider{err: domain.ErrOrderNotFound})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/orders/1001", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body server.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Order not found", body.Error)
	assert.Equal(t, "test-ray-id", body.RayID)
}

// TestOrderHandler_Preview_UpstreamError verifies 500 handling.
func TestOrderHandler_Preview_UpstreamError(t *testing.T) {
	app := setupApp(&mockOrderProvider{err: errors.New("shopify down")})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/orders/1001", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body server.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Message, "shopify down")
}
