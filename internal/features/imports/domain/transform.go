package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	orderdomain "cybake-bridge/internal/features/orders/domain"
)

// ISOMillis is the timestamp layout Cybake expects for delivery and ordered dates.
const ISOMillis = "2006-01-02T15:04:05.000Z"

// fallbackDeliveryDays is added to the creation time when no delivery date tag is present.
const fallbackDeliveryDays = 3

// Summary is the order digest stored with every import log row.
type Summary struct {
	ShopifyOrderID string          `json:"shopify_order_id"`
	OrderNumber    string          `json:"order_number"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email"`
	DeliveryDate   string          `json:"delivery_date"`
	OrderType      string          `json:"order_type"`
	LineItemsCount int             `json:"line_items_count"`
	OrderTotal     decimal.Decimal `json:"order_total"`
}

// Transform maps a source order into the Cybake payload and the log summary.
// now is used when the order carries no creation time.
func Transform(order *orderdomain.Order, now time.Time) (*Payload, Summary) {
	meta := ParseTags(order.Tags)
	lines := ConsolidateLines(order.LineItems)
	numericID := order.NumericID()

	shipping := orderdomain.Address{}
	if order.ShippingAddress != nil {
		shipping = *order.ShippingAddress
	}

	created := order.CreatedAt
	if created.IsZero() {
		created = now
	}

	deliveryDate := created.UTC().AddDate(0, 0, fallbackDeliveryDays)
	if meta.DeliveryDate != nil {
		deliveryDate = *meta.DeliveryDate
	}

	purchaseOrder := order.Name
	if purchaseOrder == "" {
		purchaseOrder = "SHOP-" + numericID
	}

	email := order.Email
	if email == "" {
		email = PlaceholderEmail
	}

	phone := shipping.Phone
	if phone == "" {
		phone = order.Phone
	}

	home := HomeOrder{
		ExternalUniqueIdentifier: fmt.Sprintf("SHOPIFY-%s-%s", strings.Replace(order.Name, "#", "", 1), numericID),
		DeliveryCustomer:         orDefault(shipping.Name, UnknownValue),
		DeliveryDate:             deliveryDate.Format(ISOMillis),
		PurchaseOrderNumber:      purchaseOrder,
		OrderedDate:              created.UTC().Format(ISOMillis),
		OrderNote:                buildNote(meta, order.Note),
		Email:                    email,
		Telephone:                CleanPhone(phone),
		AddressLineOne:           orDefault(shipping.Address1, PlaceholderAddress),
		AddressLineTwo:           optional(shipping.Address2),
		AddressCity:              optional(shipping.City),
		AddressCountry:           optional(shipping.Country),
		AddressCounty:            optional(shipping.Province),
		AddressPostcode:          orDefault(shipping.Zip, PlaceholderAddress),
		Shipping:                 order.ShippingAmount.InexactFloat64(),
		OrderLines:               lines,
	}

	orderNumber := order.Name
	if orderNumber == "" {
		orderNumber = "#" + numericID
	}

	summary := Summary{
		ShopifyOrderID: numericID,
		OrderNumber:    orderNumber,
		CustomerName:   orDefault(shipping.Name, UnknownValue),
		CustomerEmail:  order.Email,
		DeliveryDate:   deliveryDate.Format(time.DateOnly),
		OrderType:      orDefault(meta.OrderType, UnknownValue),
		LineItemsCount: len(lines),
		OrderTotal:     order.TotalAmount,
	}

	return &Payload{
		HomeOrderOptions: DefaultHomeOrderOptions(),
		Orders:           []HomeOrder{home},
	}, summary
}

// buildNote joins the tag metadata and the customer note with " | ". Returns nil when there is nothing to say.
func buildNote(meta TagMetadata, customerNote string) *string {
	var parts []string

	if meta.OrderType != "" {
		parts = append(parts, meta.OrderType)
	}
	switch {
	case meta.DayOfWeek != "" && meta.DateString != "":
		parts = append(parts, meta.DayOfWeek+", "+meta.DateString)
	case meta.DateString != "":
		parts = append(parts, meta.DateString)
	}
	if meta.TimeWindow != "" {
		parts = append(parts, meta.TimeWindow)
	}
	if meta.Location != "" {
		parts = append(parts, meta.Location)
	}
	if note := strings.TrimSpace(customerNote); note != "" && !strings.EqualFold(note, "null") {
		parts = append(parts, "Customer Note: "+note)
	}

	if len(parts) == 0 {
		return nil
	}
	return stringPtr(strings.Join(parts, " | "))
}

// CleanPhone strips leading apostrophes (spreadsheet export artifact) and surrounding space.
func CleanPhone(phone string) *string {
	return optional(strings.TrimSpace(strings.TrimLeft(phone, "'")))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
