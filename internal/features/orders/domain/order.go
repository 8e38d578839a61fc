package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// gidPrefix is the Shopify global id prefix for orders.
const gidPrefix = "gid://shopify/Order/"

// ErrOrderNotFound is returned by providers when the order does not exist upstream.
var ErrOrderNotFound = errors.New("order not found")

// Order represents a source order as fetched from the e-commerce platform.
type Order struct {
	// ID is the platform global id (gid://shopify/Order/<n>).
	ID string `json:"id"`
	// LegacyResourceID is the numeric order id.
	LegacyResourceID string `json:"legacy_resource_id"`
	// Name is the display name, e.g. "#1042".
	Name string `json:"name"`
	// Tags are operator-entered free text, in platform order.
	Tags []string `json:"tags"`
	// Note is the customer note.
	Note string `json:"note"`
	// Email is the customer email.
	Email string `json:"email"`
	// Phone is the order-level phone number.
	Phone string `json:"phone"`
	// CreatedAt is the order creation time. Zero when the platform omitted it.
	CreatedAt time.Time `json:"created_at"`
	// ShippingAddress is nil for orders without one.
	ShippingAddress *Address `json:"shipping_address"`
	// ShippingAmount is the total shipping price.
	ShippingAmount decimal.Decimal `json:"shipping_amount"`
	// TotalAmount is the current grand total.
	TotalAmount decimal.Decimal `json:"total_amount"`
	// LineItems are the products ordered.
	LineItems []LineItem `json:"line_items"`
}

// Address is a shipping address.
type Address struct {
	Name         string `json:"name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Company      string `json:"company"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	Province     string `json:"province"`
	ProvinceCode string `json:"province_code"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
	Phone        string `json:"phone"`
}

// LineItem is a single product line of an order.
type LineItem struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	Title     string          `json:"title"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NumericID returns the legacy id, falling back to the numeric part of the global id.
func (o *Order) NumericID() string {
	if o.LegacyResourceID != "" {
		return o.LegacyResourceID
	}
	return NumericID(o.ID)
}

// NumericID strips the order global id prefix if present.
func NumericID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), gidPrefix)
}

// GID builds the order global id from either a numeric id or an existing global id.
func GID(id string) string {
	return gidPrefix + NumericID(id)
}
