package domain

// ImportOutcome classifies a completed import attempt.
type ImportOutcome string

const (
	// OutcomeImported means Cybake accepted the order.
	OutcomeImported ImportOutcome = "imported"
	// OutcomeDuplicate means the order had already been imported; nothing was submitted.
	OutcomeDuplicate ImportOutcome = "duplicate"
	// OutcomeInvalid means the order failed validation and was not submitted.
	OutcomeInvalid ImportOutcome = "invalid"
	// OutcomeRejected means Cybake rejected the order or could not be reached.
	OutcomeRejected ImportOutcome = "rejected"
)

// ImportRequest is the webhook input.
type ImportRequest struct {
	// OrderID is a numeric order id or an order global id.
	OrderID string
	// OrderName is the display name sent by the webhook, used when the order cannot be fetched.
	OrderName string
}

// ImportResult describes how an import attempt ended.
type ImportResult struct {
	Outcome          ImportOutcome
	OrderNumber      string
	CybakeImportID   string
	Error            string
	ValidationErrors []string
}

// RetryResult describes the outcome of resubmitting a logged order.
type RetryResult struct {
	Success        bool
	OrderNumber    string
	CybakeImportID string
	Error          string
}
