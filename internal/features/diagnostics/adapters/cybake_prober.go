package adapter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cybake-bridge/internal/core/config"
	"cybake-bridge/internal/core/httpclient"
	"cybake-bridge/internal/features/diagnostics/domain"
)

// CybakeProber implements ports.CybakeProber.
type CybakeProber struct {
	config config.CybakeConfig
	client *http.Client
}

// NewCybakeProber creates a CybakeProber.
func NewCybakeProber(cfg config.CybakeConfig, timeout time.Duration) *CybakeProber {
	return &CybakeProber{
		config: cfg,
		client: httpclient.NewClient("cybake-probe", timeout),
	}
}

// Get implements ports.CybakeProber.
func (p *CybakeProber) Get(ctx context.Context, path string) domain.ProbeResult {
	url := strings.TrimRight(p.config.URL, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ProbeResult{Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.config.APIKey)
	req.Header.Set("x-api-version", p.config.APIVersion)

	return execute(p.client, req, domain.MaxProbeBody)
}
