package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cybake-bridge/internal/core/config"
	"cybake-bridge/internal/core/httpclient"
	"cybake-bridge/internal/core/logger"
	"cybake-bridge/internal/features/orders/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const orderQuery = `query getOrder($id: ID!) {
  order(id: $id) {
    id
    legacyResourceId
    name
    tags
    note
    email
    phone
    createdAt
    totalShippingPriceSet { shopMoney { amount currencyCode } }
    currentTotalPriceSet { shopMoney { amount } }
    shippingAddress {
      name firstName lastName company
      address1 address2
      city province provinceCode
      zip country countryCode
      phone
    }
    lineItems(first: 100) {
      edges {
        node {
          id sku quantity title name
          originalUnitPriceSet { shopMoney { amount } }
        }
      }
    }
  }
}`

const tagsAddMutation = `mutation addTag($id: ID!, $tags: [String!]!) {
  tagsAdd(id: $id, tags: $tags) { userErrors { field message } }
}`

const tagsRemoveMutation = `mutation removeTag($id: ID!, $tags: [String!]!) {
  tagsRemove(id: $id, tags: $tags) { userErrors { field message } }
}`

// ShopifyAdapter implements the OrderProvider interface using the Shopify Admin GraphQL API.
type ShopifyAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the Shopify connection details.
	config config.ShopifyConfig
}

// NewShopifyAdapter creates a new instance of ShopifyAdapter.
func NewShopifyAdapter(cfg config.ShopifyConfig, timeout time.Duration) *ShopifyAdapter {
	return &ShopifyAdapter{
		client: httpclient.NewClient("shopify", timeout),
		config: cfg,
	}
}

// GetOrder fetches an order by global id and maps it to the domain entity.
func (a *ShopifyAdapter) GetOrder(ctx context.Context, gid string) (*domain.Order, error) {
	var data struct {
		Order *shopifyOrder `json:"order"`
	}
	if err := a.execute(ctx, orderQuery, map[string]any{"id": gid}, &data); err != nil {
		return nil, err
	}

	if data.Order == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, gid)
	}

	return mapToDomain(data.Order), nil
}

// AddTags attaches tags to an order.
func (a *ShopifyAdapter) AddTags(ctx context.Context, gid string, tags ...string) error {
	var data struct {
		TagsAdd tagsPayload `json:"tagsAdd"`
	}
	if err := a.execute(ctx, tagsAddMutation, map[string]any{"id": gid, "tags": tags}, &data); err != nil {
		return fmt.Errorf("tagsAdd failed: %w", err)
	}
	return data.TagsAdd.err()
}

// RemoveTags detaches tags from an order.
func (a *ShopifyAdapter) RemoveTags(ctx context.Context, gid string, tags ...string) error {
	var data struct {
		TagsRemove tagsPayload `json:"tagsRemove"`
	}
	if err := a.execute(ctx, tagsRemoveMutation, map[string]any{"id": gid, "tags": tags}, &data); err != nil {
		return fmt.Errorf("tagsRemove failed: %w", err)
	}
	return data.TagsRemove.err()
}

// HealthCheck verifies that the Admin API is reachable and the access token is accepted.
func (a *ShopifyAdapter) HealthCheck(ctx context.Context) error {
	var data struct {
		Shop struct {
			Name string `json:"name"`
		} `json:"shop"`
	}
	if err := a.execute(ctx, `{ shop { name } }`, nil, &data); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	logger.Get().Debug("Shopify shop reachable", zap.String("shop", data.Shop.Name))
	return nil
}

// execute posts a GraphQL document and decodes the data member into out.
func (a *ShopifyAdapter) execute(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	url := a.config.GraphQLURL(a.config.APIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", a.config.AccessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("shopify API returned status: %d", resp.StatusCode)
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		logger.Get().Warn("Shopify GraphQL errors", zap.Any("errors", envelope.Errors))
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		if len(envelope.Errors) > 0 {
			return fmt.Errorf("shopify graphql error: %s", envelope.Errors[0].Message)
		}
		return fmt.Errorf("shopify graphql response has no data")
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}

	return nil
}

// mapToDomain converts a raw GraphQL order into a domain Order entity.
func mapToDomain(o *shopifyOrder) *domain.Order {
	order := &domain.Order{
		ID:               o.ID,
		LegacyResourceID: o.LegacyResourceID,
		Name:             o.Name,
		Tags:             o.Tags,
		Note:             o.Note,
		Email:            o.Email,
		Phone:            o.Phone,
		ShippingAmount:   parseAmount(o.TotalShippingPriceSet.ShopMoney.Amount),
		TotalAmount:      parseAmount(o.CurrentTotalPriceSet.ShopMoney.Amount),
		LineItems:        make([]domain.LineItem, 0, len(o.LineItems.Edges)),
	}

	if o.CreatedAt != "" {
		created, err := time.Parse(time.RFC3339, o.CreatedAt)
		if err != nil {
			logger.Get().Warn("Failed to parse date", zap.String("date", o.CreatedAt), zap.Error(err))
		} else {
			order.CreatedAt = created
		}
	}

	if a := o.ShippingAddress; a != nil {
		order.ShippingAddress = &domain.Address{
			Name:         a.Name,
			FirstName:    a.FirstName,
			LastName:     a.LastName,
			Company:      a.Company,
			Address1:     a.Address1,
			Address2:     a.Address2,
			City:         a.City,
			Province:     a.Province,
			ProvinceCode: a.ProvinceCode,
			Zip:          a.Zip,
			Country:      a.Country,
			CountryCode:  a.CountryCode,
			Phone:        a.Phone,
		}
	}

	for _, edge := range o.LineItems.Edges {
		n := edge.Node
		order.LineItems = append(order.LineItems, domain.LineItem{
			ID:        n.ID,
			SKU:       n.SKU,
			Quantity:  n.Quantity,
			Title:     n.Title,
			Name:      n.Name,
			UnitPrice: parseAmount(n.OriginalUnitPriceSet.ShopMoney.Amount),
		})
	}

	return order
}

// parseAmount parses a Shopify money string, treating blanks and garbage as zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// internal structs for mapping

// graphQLRequest is the POST body of a GraphQL call.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLResponse is the GraphQL response envelope.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// graphQLError is a top-level GraphQL error.
type graphQLError struct {
	Message string `json:"message"`
}

// userError is a mutation-level validation error.
type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// tagsPayload is the payload of tagsAdd and tagsRemove.
type tagsPayload struct {
	UserErrors []userError `json:"userErrors"`
}

func (p tagsPayload) err() error {
	if len(p.UserErrors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(p.UserErrors))
	for _, ue := range p.UserErrors {
		msgs = append(msgs, ue.Message)
	}
	return fmt.Errorf("shopify rejected tag change: %s", strings.Join(msgs, "; "))
}

// moneyBag mirrors MoneyBag { shopMoney { amount currencyCode } }.
type moneyBag struct {
	ShopMoney struct {
		Amount       string `json:"amount"`
		CurrencyCode string `json:"currencyCode"`
	} `json:"shopMoney"`
}

// shopifyOrder is the order node returned by orderQuery.
type shopifyOrder struct {
	ID                    string          `json:"id"`
	LegacyResourceID      string          `json:"legacyResourceId"`
	Name                  string          `json:"name"`
	Tags                  []string        `json:"tags"`
	Note                  string          `json:"note"`
	Email                 string          `json:"email"`
	Phone                 string          `json:"phone"`
	CreatedAt             string          `json:"createdAt"`
	TotalShippingPriceSet moneyBag        `json:"totalShippingPriceSet"`
	CurrentTotalPriceSet  moneyBag        `json:"currentTotalPriceSet"`
	ShippingAddress       *shopifyAddress `json:"shippingAddress"`
	LineItems             struct {
		Edges []struct {
			Node shopifyLineItem `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

// shopifyAddress is a MailingAddress.
type shopifyAddress struct {
	Name         string `json:"name"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Company      string `json:"company"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	Province     string `json:"province"`
	ProvinceCode string `json:"provinceCode"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	CountryCode  string `json:"countryCode"`
	Phone        string `json:"phone"`
}

// shopifyLineItem is a LineItem node.
type shopifyLineItem struct {
	ID                   string   `json:"id"`
	SKU                  string   `json:"sku"`
	Quantity             int      `json:"quantity"`
	Title                string   `json:"title"`
	Name                 string   `json:"name"`
	OriginalUnitPriceSet moneyBag `json:"originalUnitPriceSet"`
}
