package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	importdomain "cybake-bridge/internal/features/imports/domain"
	"cybake-bridge/internal/features/orders/domain"
	"cybake-bridge/internal/features/orders/ports"
)

// ErrOrderNotFound is returned when the order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrMissingOrderID is returned when no order id was supplied.
var ErrMissingOrderID = errors.New("missing order id")

// Preview is what an import of the order would send, without sending it.
type Preview struct {
	Order            *domain.Order         `json:"order"`
	Payload          *importdomain.Payload `json:"payload"`
	Summary          importdomain.Summary  `json:"summary"`
	ValidationErrors []string              `json:"validation_errors"`
}

// OrderService builds import previews for source orders.
type OrderService struct {
	// provider is the interface for fetching order data from external sources.
	provider ports.OrderProvider
	now      func() time.Time
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(provider ports.OrderProvider) *OrderService {
	return &OrderService{
		provider: provider,
		now:      time.Now,
	}
}

// Preview fetches the order and runs it through the transformer and validator.
func (s *OrderService) Preview(ctx context.Context, orderID string) (*Preview, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrMissingOrderID
	}

	order, err := s.provider.GetOrder(ctx, domain.GID(orderID))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("fetch order: %w", err)
	}

	if order == nil {
		return nil, ErrOrderNotFound
	}

	payload, summary := importdomain.Transform(order, s.now())
	validationErrors := importdomain.Validate(payload)
	if validationErrors == nil {
		validationErrors = []string{}
	}

	return &Preview{
		Order:            order,
		Payload:          payload,
		Summary:          summary,
		ValidationErrors: validationErrors,
	}, nil
}
