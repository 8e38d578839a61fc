package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cybake-bridge/internal/core/config"
	"cybake-bridge/internal/core/httpclient"
	"cybake-bridge/internal/core/logger"
	"cybake-bridge/internal/features/diagnostics/domain"
)

// ShopifyProber implements ports.ShopifyProber over plain HTTP.
type ShopifyProber struct {
	config config.ShopifyConfig
	client *http.Client
}

// NewShopifyProber creates a ShopifyProber.
func NewShopifyProber(cfg config.ShopifyConfig, timeout time.Duration) *ShopifyProber {
	return &ShopifyProber{
		config: cfg,
		client: httpclient.NewClient("shopify-probe", timeout),
	}
}

// Identity implements ports.ShopifyProber.
func (p *ShopifyProber) Identity() domain.ShopifyIdentity {
	store := p.config.Store
	if store == "" {
		store = "MISSING"
	}
	return domain.ShopifyIdentity{
		Store:        store,
		TokenLength:  len(p.config.AccessToken),
		TokenPreview: logger.Preview(p.config.AccessToken),
	}
}

// ExchangeCredentials implements ports.ShopifyProber. The response body is returned in full.
func (p *ShopifyProber) ExchangeCredentials(ctx context.Context) (domain.ProbeResult, error) {
	if p.config.ClientID == "" || p.config.ClientSecret == "" {
		return domain.ProbeResult{}, domain.ErrCredentialsNotConfigured
	}

	body, err := json.Marshal(map[string]string{
		"client_id":     p.config.ClientID,
		"client_secret": p.config.ClientSecret,
		"grant_type":    "client_credentials",
	})
	if err != nil {
		return domain.ProbeResult{}, fmt.Errorf("marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.AdminURL()+"/admin/oauth/access_token", bytes.NewReader(body))
	if err != nil {
		return domain.ProbeResult{}, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return execute(p.client, req, 0), nil
}

// QueryShop implements ports.ShopifyProber.
func (p *ShopifyProber) QueryShop(ctx context.Context, version string) domain.ProbeResult {
	body := []byte(`{"query":"{ shop { name } }"}`)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.GraphQLURL(version), bytes.NewReader(body))
	if err != nil {
		return domain.ProbeResult{Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", p.config.AccessToken)

	return execute(p.client, req, domain.MaxProbeBody)
}

// ListOrders implements ports.ShopifyProber.
func (p *ShopifyProber) ListOrders(ctx context.Context, version string) domain.ProbeResult {
	url := fmt.Sprintf("%s/admin/api/%s/orders.json?limit=1", p.config.AdminURL(), version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ProbeResult{Error: err.Error()}
	}
	req.Header.Set("X-Shopify-Access-Token", p.config.AccessToken)

	return execute(p.client, req, domain.MaxProbeBody)
}

// execute runs req and captures status and body. A limit of 0 keeps the whole body.
func execute(client *http.Client, req *http.Request, limit int) domain.ProbeResult {
	resp, err := client.Do(req)
	if err != nil {
		return domain.ProbeResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ProbeResult{Status: resp.StatusCode, Error: fmt.Sprintf("read body: %v", err)}
	}

	text := string(raw)
	if limit > 0 {
		text = domain.TruncateBody(text, limit)
	}
	return domain.ProbeResult{Status: resp.StatusCode, Body: text}
}
