package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrLogNotFound is returned by repositories when no row matches.
var ErrLogNotFound = errors.New("import log not found")

// ImportStatus is the outcome of the latest attempt for an order.
type ImportStatus string

const (
	// StatusSuccess marks an order accepted by Cybake. Terminal.
	StatusSuccess ImportStatus = "success"
	// StatusFailed marks an order whose latest attempt did not reach Cybake or was rejected.
	StatusFailed ImportStatus = "failed"
)

// MaxErrorMessageLength bounds the stored error text.
const MaxErrorMessageLength = 5000

// ImportLog is the durable record of import attempts for one source order.
type ImportLog struct {
	ID             string              `json:"id"`
	ShopifyOrderID string              `json:"shopify_order_id"`
	OrderNumber    string              `json:"order_number"`
	CustomerName   string              `json:"customer_name,omitempty"`
	CustomerEmail  string              `json:"customer_email,omitempty"`
	DeliveryDate   string              `json:"delivery_date,omitempty"`
	OrderType      string              `json:"order_type,omitempty"`
	LineItemsCount int                 `json:"line_items_count"`
	OrderTotal     decimal.NullDecimal `json:"order_total"`
	Status         ImportStatus        `json:"status"`
	CybakeImportID string              `json:"cybake_import_id,omitempty"`
	// HTTPStatus is the last Cybake status code. Zero for network failures or attempts that never submitted.
	HTTPStatus     int             `json:"http_status"`
	ErrorMessage   string          `json:"error_message,omitempty"`
	PayloadSent    json.RawMessage `json:"payload_sent,omitempty"`
	CybakeResponse json.RawMessage `json:"cybake_response,omitempty"`
	RetryCount     int             `json:"retry_count"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewImportLog starts a log row from an order summary.
func NewImportLog(summary Summary, status ImportStatus) *ImportLog {
	return &ImportLog{
		ShopifyOrderID: summary.ShopifyOrderID,
		OrderNumber:    summary.OrderNumber,
		CustomerName:   summary.CustomerName,
		CustomerEmail:  summary.CustomerEmail,
		DeliveryDate:   summary.DeliveryDate,
		OrderType:      summary.OrderType,
		LineItemsCount: summary.LineItemsCount,
		OrderTotal:     decimal.NewNullDecimal(summary.OrderTotal),
		Status:         status,
	}
}

// SetError stores msg truncated to MaxErrorMessageLength characters.
func (l *ImportLog) SetError(msg string) {
	l.ErrorMessage = Truncate(msg, MaxErrorMessageLength)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// SubmissionResult is the outcome of one call to Cybake.
type SubmissionResult struct {
	Success bool
	// HTTPStatus is 0 when the request never got a response.
	HTTPStatus int
	// Body is the parsed response, or {"raw": "..."} when it was not JSON. Nil on network failure.
	Body json.RawMessage
	// RawBody is the unparsed response text.
	RawBody string
	// ImportItemID is Cybake's ImportItemId when present.
	ImportItemID string
	// Error describes a failed submission.
	Error string
}

// LogFilter selects a page of import logs.
type LogFilter struct {
	// Status is "all", "success" or "failed".
	Status string `query:"status" validate:"omitempty,oneof=all success failed"`
	Page   int    `query:"page" validate:"gte=1"`
	Limit  int    `query:"limit" validate:"gte=1,lte=200"`
	// Search matches order number or customer name, case-insensitive.
	Search string `query:"search" validate:"max=200"`
}

// Offset is the number of rows skipped before the page.
func (f LogFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// LogSummary counts rows across the whole table, ignoring filters.
type LogSummary struct {
	Total   int64 `json:"total"`
	Success int64 `json:"success"`
	Failed  int64 `json:"failed"`
}

// LogPage is one page of import logs plus table-wide counters.
type LogPage struct {
	Logs    []ImportLog `json:"logs"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	Summary LogSummary  `json:"summary"`
}
