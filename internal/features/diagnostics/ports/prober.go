package ports

import (
	"context"

	"cybake-bridge/internal/features/diagnostics/domain"
)

// ShopifyProber exercises the Shopify credentials and Admin API.
// This is a Secondary Port (Driven Port).
type ShopifyProber interface {
	// Identity returns the configured store and a masked token.
	Identity() domain.ShopifyIdentity
	// ExchangeCredentials runs the client-credentials grant. Returns an error when no app credentials are configured.
	ExchangeCredentials(ctx context.Context) (domain.ProbeResult, error)
	// QueryShop runs `{ shop { name } }` against the given API version.
	QueryShop(ctx context.Context, version string) domain.ProbeResult
	// ListOrders calls the REST orders endpoint with limit=1.
	ListOrders(ctx context.Context, version string) domain.ProbeResult
}

// CybakeProber issues authenticated GETs against the Cybake API.
type CybakeProber interface {
	Get(ctx context.Context, path string) domain.ProbeResult
}
