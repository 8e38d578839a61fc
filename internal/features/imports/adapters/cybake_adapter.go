package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cybake-bridge/internal/core/config"
	"cybake-bridge/internal/core/httpclient"
	"cybake-bridge/internal/core/logger"
	"cybake-bridge/internal/features/imports/domain"

	"go.uber.org/zap"
)

const (
	// homeOrderPath is the Cybake home-order import endpoint.
	homeOrderPath = "/api/home"
	// maxRawBody bounds a non-JSON response kept as {"raw": ...}.
	maxRawBody = 2000
	// maxErrorBody bounds the response text quoted in an error message.
	maxErrorBody = 1000
)

// CybakeAdapter implements the Submitter interface against the Cybake REST API.
type CybakeAdapter struct {
	client *http.Client
	config config.CybakeConfig
}

// NewCybakeAdapter creates a new instance of CybakeAdapter.
func NewCybakeAdapter(cfg config.CybakeConfig, timeout time.Duration) *CybakeAdapter {
	return &CybakeAdapter{
		client: httpclient.NewClient("cybake", timeout),
		config: cfg,
	}
}

// Submit posts a home-order payload. Every response, including network failures, is reported in
// the result so the caller can log it.
func (a *CybakeAdapter) Submit(ctx context.Context, payload []byte) (*domain.SubmissionResult, error) {
	url := strings.TrimRight(a.config.URL, "/") + homeOrderPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.config.APIKey)
	req.Header.Set("x-api-version", a.config.APIVersion)

	log := logger.Get().With(zap.String("url", url), zap.String("api_key", logger.Preview(a.config.APIKey)))

	resp, err := a.client.Do(req)
	if err != nil {
		msg := fmt.Sprintf("Network error calling %s: %v", url, err)
		log.Error("Cybake network error", zap.Error(err))
		return &domain.SubmissionResult{HTTPStatus: 0, Error: msg}, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		msg := fmt.Sprintf("Network error calling %s: %v", url, err)
		log.Error("Failed to read Cybake response", zap.Int("status_code", resp.StatusCode), zap.Error(err))
		return &domain.SubmissionResult{HTTPStatus: resp.StatusCode, Error: msg}, nil
	}
	text := string(raw)

	result := &domain.SubmissionResult{
		Success:      resp.StatusCode >= 200 && resp.StatusCode < 300,
		HTTPStatus:   resp.StatusCode,
		Body:         responseBody(raw),
		RawBody:      text,
		ImportItemID: importItemID(raw),
	}

	if !result.Success {
		result.Error = fmt.Sprintf("Cybake returned %d %s: %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), domain.Truncate(text, maxErrorBody))
		log.Error("Cybake rejected order", zap.Int("status_code", resp.StatusCode), zap.String("body", domain.Truncate(text, maxErrorBody)))
		return result, nil
	}

	log.Info("Cybake accepted order", zap.Int("status_code", resp.StatusCode), zap.String("import_item_id", result.ImportItemID))
	return result, nil
}

// responseBody keeps JSON as-is and wraps anything else as {"raw": "<text>"}.
func responseBody(raw []byte) json.RawMessage {
	if json.Valid(raw) && len(bytes.TrimSpace(raw)) > 0 {
		return json.RawMessage(raw)
	}
	wrapped, err := json.Marshal(map[string]string{"raw": domain.Truncate(string(raw), maxRawBody)})
	if err != nil {
		return nil
	}
	return wrapped
}

// importItemID reads ImportItemId from a JSON object body. Numbers are kept in their literal form.
func importItemID(raw []byte) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}

	value, ok := body["ImportItemId"]
	if !ok || string(value) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}
	return string(value)
}
