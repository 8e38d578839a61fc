package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"cybake-bridge/internal/core/server"
	"cybake-bridge/internal/features/imports/domain"
	"cybake-bridge/internal/features/imports/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func postRetry(t *testing.T, uc *MockRetryUseCase, body string) (int, []byte) {
	t.Helper()
	app := fiber.New()
	app.Post("/api/retry", NewRetryHandler(uc).Retry)

	req := httptest.NewRequest("POST", "/api/retry", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestRetryHandler_Success(t *testing.T) {
	uc := new(MockRetryUseCase)
	uc.On("Retry", mock.Anything, "log-1").
		Return(&domain.RetryResult{Success: true, OrderNumber: "#1042", CybakeImportID: "IMP-2"}, nil)

	status, body := postRetry(t, uc, `{"log_id":"log-1"}`)

	assert.Equal(t, fiber.StatusOK, status)
	var out RetryResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Success)
	assert.Equal(t, "#1042", out.Order)
	assert.Equal(t, "IMP-2", out.CybakeImportID)
}

func TestRetryHandler_AcceptsBodyWithoutContentType(t *testing.T) {
	uc := new(MockRetryUseCase)
	uc.On("Retry", mock.Anything, "log-1").
		Return(&domain.RetryResult{Success: true, OrderNumber: "#1042"}, nil)

	app := fiber.New()
	app.Post("/api/retry", NewRetryHandler(uc).Retry)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/retry", strings.NewReader(`{"log_id":"log-1"}`)))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	uc.AssertExpectations(t)
}

func TestRetryHandler_DownstreamFailure(t *testing.T) {
	uc := new(MockRetryUseCase)
	uc.On("Retry", mock.Anything, "log-1").
		Return(&domain.RetryResult{Success: false, OrderNumber: "#1042", Error: "Cybake returned 500"}, nil)

	status, body := postRetry(t, uc, `{"log_id":"log-1"}`)

	assert.Equal(t, fiber.StatusBadGateway, status)
	var out RetryResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.False(t, out.Success)
	assert.Equal(t, "Cybake returned 500", out.Error)
}

func TestRetryHandler_BadRequests(t *testing.T) {
	uc := new(MockRetryUseCase)

	status, _ := postRetry(t, uc, `nope`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := postRetry(t, uc, `{"log_id":"  "}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	var out server.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Missing log_id", out.Error)

	uc.AssertNotCalled(t, "Retry", mock.Anything, mock.Anything)
}

func TestRetryHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", service.ErrLogNotFound, fiber.StatusNotFound},
		{"already imported", service.ErrAlreadyImported, fiber.StatusBadRequest},
		{"no payload", service.ErrNoStoredPayload, fiber.StatusBadRequest},
		{"store failure", errors.New("db down"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockRetryUseCase)
			uc.On("Retry", mock.Anything, "log-1").Return(nil, tt.err)

			status, _ := postRetry(t, uc, `{"log_id":"log-1"}`)
			assert.Equal(t, tt.status, status)
		})
	}
}
