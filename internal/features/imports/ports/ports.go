package ports

import (
	"context"
	"time"

	"cybake-bridge/internal/features/imports/domain"
)

// Submitter sends an encoded payload to the production system.
// This is a Secondary Port (Driven Port).
type Submitter interface {
	// Submit posts the payload. Downstream rejections and network failures are reported in the
	// result, not as an error. The error is reserved for requests that could not be built.
	Submit(ctx context.Context, payload []byte) (*domain.SubmissionResult, error)
}

// LogRepository is the durable import log store.
type LogRepository interface {
	// FindSuccessful returns the success row for the order, or domain.ErrLogNotFound.
	FindSuccessful(ctx context.Context, shopifyOrderID string) (*domain.ImportLog, error)
	// Record upserts the row keyed by shopify order id. A stored success is never replaced by a
	// failure; written is false when the write was skipped for that reason.
	Record(ctx context.Context, log *domain.ImportLog) (written bool, err error)
	// FindByID returns the row with the given id, or domain.ErrLogNotFound.
	FindByID(ctx context.Context, id string) (*domain.ImportLog, error)
	// UpdateAfterRetry stores the outcome of a resubmission and increments the retry counter.
	// The update only applies while the row is not a success; updated reports whether it did.
	UpdateAfterRetry(ctx context.Context, log *domain.ImportLog) (updated bool, err error)
	// List returns a page of rows, newest first, and the count matching the filter.
	List(ctx context.Context, filter domain.LogFilter) ([]domain.ImportLog, int64, error)
	// Summary counts rows by status across the whole table.
	Summary(ctx context.Context) (domain.LogSummary, error)
}

// ImportLocker guards against two concurrent imports of the same order.
type ImportLocker interface {
	// Acquire takes the lock for the order. acquired is false when another holder owns it.
	Acquire(ctx context.Context, orderID string, ttl time.Duration) (token string, acquired bool, err error)
	// Release frees the lock if it is still owned by token.
	Release(ctx context.Context, orderID, token string) error
}

// ImportUseCase is the primary port for webhook-driven imports.
type ImportUseCase interface {
	Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error)
}

// RetryUseCase is the primary port for operator retries.
type RetryUseCase interface {
	Retry(ctx context.Context, logID string) (*domain.RetryResult, error)
}

// LogQuery is the primary port for the import history dashboard.
type LogQuery interface {
	List(ctx context.Context, filter domain.LogFilter) (*domain.LogPage, error)
}
