package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cybake-bridge/internal/features/diagnostics/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeShopify is a ShopifyProber recording the versions it was asked about.
type fakeShopify struct {
	mu       sync.Mutex
	versions []string
	exchange domain.ProbeResult
	err      error
}

func (f *fakeShopify) Identity() domain.ShopifyIdentity {
	return domain.ShopifyIdentity{Store: "bakery.myshopify.com", TokenLength: 38, TokenPreview: "shpat_ab...wxyz (38 chars)"}
}

func (f *fakeShopify) ExchangeCredentials(ctx context.Context) (domain.ProbeResult, error) {
	return f.exchange, f.err
}

func (f *fakeShopify) QueryShop(ctx context.Context, version string) domain.ProbeResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.versions = append(f.versions, version)
	if version == "2024-07" {
		return domain.ProbeResult{Error: "connection refused"}
	}
	return domain.ProbeResult{Status: 200, Body: `{"data":{"shop":{"name":"Bakery"}}}`}
}

func (f *fakeShopify) ListOrders(ctx context.Context, version string) domain.ProbeResult {
	return domain.ProbeResult{Status: 403, Body: "forbidden"}
}

// fakeCybake answers 404 for everything except /api/home.
type fakeCybake struct{}

func (fakeCybake) Get(ctx context.Context, path string) domain.ProbeResult {
	if path == "/api/home" {
		return domain.ProbeResult{Status: 405}
	}
	return domain.ProbeResult{Status: 404}
}

func TestDiagnosticsService_ShopifyAPI(t *testing.T) {
	shopify := &fakeShopify{}
	svc := NewDiagnosticsService(shopify, fakeCybake{})

	report := svc.ShopifyAPI(context.Background())

	assert.Equal(t, "bakery.myshopify.com", report.Store)
	assert.Equal(t, 38, report.TokenLength)
	assert.ElementsMatch(t, ShopifyAPIVersions, shopify.versions)
	require.Len(t, report.GraphQL, 3)
	assert.Equal(t, 200, report.GraphQL["2025-01"].Status)
	assert.Equal(t, "connection refused", report.GraphQL["2024-07"].Error)
	assert.Equal(t, 403, report.REST.Status)
}

func TestDiagnosticsService_CybakeEndpoints(t *testing.T) {
	svc := NewDiagnosticsService(&fakeShopify{}, fakeCybake{})

	report := svc.CybakeEndpoints(context.Background())

	require.Len(t, report, len(CybakeEndpoints))
	assert.Equal(t, 405, report["/api/home"].Status)
	assert.Equal(t, 404, report["/swagger/index.html"].Status)
}

func TestDiagnosticsService_ShopifyToken(t *testing.T) {
	svc := NewDiagnosticsService(&fakeShopify{exchange: domain.ProbeResult{Status: 400, Body: `{"error":"invalid_client"}`}}, fakeCybake{})
	result, err := svc.ShopifyToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 400, result.Status)

	svc = NewDiagnosticsService(&fakeShopify{err: domain.ErrCredentialsNotConfigured}, fakeCybake{})
	_, err = svc.ShopifyToken(context.Background())
	assert.ErrorIs(t, err, ErrCredentialsNotConfigured)

	svc = NewDiagnosticsService(&fakeShopify{err: errors.New("bad request")}, fakeCybake{})
	_, err = svc.ShopifyToken(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCredentialsNotConfigured)
}
