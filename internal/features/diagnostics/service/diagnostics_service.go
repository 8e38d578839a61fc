package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cybake-bridge/internal/features/diagnostics/domain"
	"cybake-bridge/internal/features/diagnostics/ports"

	"golang.org/x/sync/errgroup"
)

// ErrCredentialsNotConfigured is returned when the credential probe has nothing to exchange.
var ErrCredentialsNotConfigured = errors.New("shopify client credentials not configured")

// ShopifyAPIVersions are the Admin API versions probed with a shop query.
var ShopifyAPIVersions = []string{"2025-01", "2024-10", "2024-07"}

// CybakeEndpoints are the paths probed on the Cybake API.
var CybakeEndpoints = []string{
	"/api/home",
	"/api/import",
	"/api/import/status",
	"/api/orders",
	"/api/home/status",
	"/api",
	"/swagger",
	"/swagger/v1/swagger.json",
	"/swagger/index.html",
}

// maxConcurrentProbes bounds in-flight outbound probe calls.
const maxConcurrentProbes = 4

// DiagnosticsService runs connectivity probes against both external systems.
type DiagnosticsService struct {
	shopify ports.ShopifyProber
	cybake  ports.CybakeProber
}

// NewDiagnosticsService creates a new DiagnosticsService.
func NewDiagnosticsService(shopify ports.ShopifyProber, cybake ports.CybakeProber) *DiagnosticsService {
	return &DiagnosticsService{
		shopify: shopify,
		cybake:  cybake,
	}
}

// ShopifyToken runs the client-credentials exchange and reports the raw outcome.
func (s *DiagnosticsService) ShopifyToken(ctx context.Context) (*domain.ProbeResult, error) {
	result, err := s.shopify.ExchangeCredentials(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialsNotConfigured) {
			return nil, ErrCredentialsNotConfigured
		}
		return nil, fmt.Errorf("exchange credentials: %w", err)
	}
	return &result, nil
}

// ShopifyAPI checks the access token against every probed API version and the REST orders endpoint.
func (s *DiagnosticsService) ShopifyAPI(ctx context.Context) *domain.ShopifyReport {
	report := &domain.ShopifyReport{
		ShopifyIdentity: s.shopify.Identity(),
		GraphQL:         make(map[string]domain.ProbeResult, len(ShopifyAPIVersions)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)

	for _, version := range ShopifyAPIVersions {
		g.Go(func() error {
			result := s.shopify.QueryShop(gctx, version)
			mu.Lock()
			report.GraphQL[version] = result
			mu.Unlock()
			return nil
		})
	}
	g.Go(func() error {
		result := s.shopify.ListOrders(gctx, ShopifyAPIVersions[0])
		mu.Lock()
		report.REST = result
		mu.Unlock()
		return nil
	})

	_ = g.Wait()
	return report
}

// CybakeEndpoints probes every known Cybake path. A failed path never stops the others.
func (s *DiagnosticsService) CybakeEndpoints(ctx context.Context) domain.CybakeReport {
	report := make(domain.CybakeReport, len(CybakeEndpoints))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)

	for _, path := range CybakeEndpoints {
		g.Go(func() error {
			result := s.cybake.Get(gctx, path)
			mu.Lock()
			report[path] = result
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return report
}
