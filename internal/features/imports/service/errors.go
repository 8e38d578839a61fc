package service

import "errors"

var (
	// ErrMissingOrderID is returned when the webhook carries no order id.
	ErrMissingOrderID = errors.New("missing order_id")
	// ErrOrderNotFound is returned when the order does not exist in Shopify.
	ErrOrderNotFound = errors.New("order not found")
	// ErrImportInProgress is returned when another request holds the import lock for the order.
	ErrImportInProgress = errors.New("import already in progress")
	// ErrLogNotFound is returned when no import log row matches the id.
	ErrLogNotFound = errors.New("log entry not found")
	// ErrAlreadyImported is returned when retrying a row that already succeeded.
	ErrAlreadyImported = errors.New("order already imported successfully")
	// ErrNoStoredPayload is returned when retrying a row that never reached submission.
	ErrNoStoredPayload = errors.New("no stored payload and rebuild not yet supported, please re-trigger from Shopify")
	// ErrInvalidQuery is returned when log query parameters fail validation.
	ErrInvalidQuery = errors.New("invalid query parameters")
)
