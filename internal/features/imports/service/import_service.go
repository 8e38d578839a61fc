package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cybake-bridge/internal/core/logger"
	"cybake-bridge/internal/features/imports/domain"
	"cybake-bridge/internal/features/imports/ports"
	orderdomain "cybake-bridge/internal/features/orders/domain"
	orderports "cybake-bridge/internal/features/orders/ports"

	"go.uber.org/zap"
)

// ImportService runs one order through fetch, duplicate check, transform, validation,
// submission, logging and tagging.
type ImportService struct {
	orders    orderports.OrderProvider
	submitter ports.Submitter
	logs      ports.LogRepository
	locker    ports.ImportLocker
	lockTTL   time.Duration
	now       func() time.Time
}

// NewImportService creates a new ImportService without an in-flight lock.
func NewImportService(orders orderports.OrderProvider, submitter ports.Submitter, logs ports.LogRepository) *ImportService {
	return &ImportService{
		orders:    orders,
		submitter: submitter,
		logs:      logs,
		now:       time.Now,
	}
}

// WithLocker enables the per-order in-flight lock.
func (s *ImportService) WithLocker(locker ports.ImportLocker, ttl time.Duration) *ImportService {
	s.locker = locker
	s.lockTTL = ttl
	return s
}

// Import processes a single order notification. Business outcomes are returned in the result;
// errors are reserved for missing orders, lock contention and system failures, which are
// recorded in the log as "System error: ...".
func (s *ImportService) Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error) {
	numericID := orderdomain.NumericID(req.OrderID)
	if numericID == "" {
		return nil, ErrMissingOrderID
	}
	log := logger.Get().With(zap.String("order_id", numericID))

	if s.locker != nil {
		token, acquired, err := s.locker.Acquire(ctx, numericID, s.lockTTL)
		switch {
		case err != nil:
			log.Warn("Import lock unavailable, continuing without it", zap.Error(err))
		case !acquired:
			return nil, ErrImportInProgress
		default:
			defer func() {
				if err := s.locker.Release(context.WithoutCancel(ctx), numericID, token); err != nil {
					log.Warn("Failed to release import lock", zap.Error(err))
				}
			}()
		}
	}

	result, err := s.process(ctx, numericID, req.OrderName)
	if err != nil && !errors.Is(err, ErrOrderNotFound) {
		log.Error("Import failed with system error", zap.Error(err))
		entry := &domain.ImportLog{
			ShopifyOrderID: numericID,
			OrderNumber:    orUnknown(req.OrderName),
			Status:         domain.StatusFailed,
		}
		entry.SetError("System error: " + err.Error())
		s.record(ctx, entry)
	}
	return result, err
}

func (s *ImportService) process(ctx context.Context, numericID, orderName string) (*domain.ImportResult, error) {
	gid := orderdomain.GID(numericID)
	log := logger.Get().With(zap.String("order_id", numericID))

	order, err := s.orders.GetOrder(ctx, gid)
	if errors.Is(err, orderdomain.ErrOrderNotFound) {
		log.Warn("Order not found in Shopify", zap.String("gid", gid))
		entry := &domain.ImportLog{
			ShopifyOrderID: numericID,
			OrderNumber:    orUnknown(orderName),
			Status:         domain.StatusFailed,
		}
		entry.SetError("Order not found in Shopify")
		s.record(ctx, entry)
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, gid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	log.Info("Order fetched", zap.String("name", order.Name), zap.Strings("tags", order.Tags))

	existing, err := s.logs.FindSuccessful(ctx, numericID)
	switch {
	case err == nil:
		log.Info("Order already imported", zap.String("cybake_import_id", existing.CybakeImportID))
		return &domain.ImportResult{
			Outcome:        domain.OutcomeDuplicate,
			OrderNumber:    existing.OrderNumber,
			CybakeImportID: existing.CybakeImportID,
		}, nil
	case !errors.Is(err, domain.ErrLogNotFound):
		return nil, fmt.Errorf("failed to check for duplicate import: %w", err)
	}

	payload, summary := domain.Transform(order, s.now())
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	log.Debug("Order transformed", zap.Any("summary", summary))

	if problems := domain.Validate(payload); len(problems) > 0 {
		log.Warn("Order failed validation", zap.Strings("problems", problems))
		entry := domain.NewImportLog(summary, domain.StatusFailed)
		entry.SetError("Validation: " + strings.Join(problems, "; "))
		entry.PayloadSent = body
		s.record(ctx, entry)
		s.tag(ctx, gid, domain.TagFailed)
		return &domain.ImportResult{
			Outcome:          domain.OutcomeInvalid,
			OrderNumber:      summary.OrderNumber,
			ValidationErrors: problems,
		}, nil
	}

	submission, err := s.submitter.Submit(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	entry := domain.NewImportLog(summary, domain.StatusFailed)
	entry.HTTPStatus = submission.HTTPStatus
	entry.PayloadSent = body
	entry.CybakeResponse = submission.Body

	if submission.Success {
		entry.Status = domain.StatusSuccess
		entry.CybakeImportID = submission.ImportItemID
		s.record(ctx, entry)
		s.tag(ctx, gid, domain.TagImported)
		return &domain.ImportResult{
			Outcome:        domain.OutcomeImported,
			OrderNumber:    summary.OrderNumber,
			CybakeImportID: submission.ImportItemID,
		}, nil
	}

	entry.SetError(submission.Error)
	s.record(ctx, entry)
	s.tag(ctx, gid, domain.TagFailed)
	return &domain.ImportResult{
		Outcome:     domain.OutcomeRejected,
		OrderNumber: summary.OrderNumber,
		Error:       submission.Error,
	}, nil
}

// record writes the log row. Failures are logged and swallowed.
func (s *ImportService) record(ctx context.Context, entry *domain.ImportLog) {
	log := logger.Get().With(zap.String("order_id", entry.ShopifyOrderID), zap.String("status", string(entry.Status)))

	written, err := s.logs.Record(context.WithoutCancel(ctx), entry)
	if err != nil {
		log.Error("Failed to write import log", zap.Error(err))
		return
	}
	if !written {
		log.Info("Skipping log update, order already succeeded")
	}
}

// tag adds a status tag to the order. Failures are logged and swallowed.
func (s *ImportService) tag(ctx context.Context, gid, tag string) {
	if err := s.orders.AddTags(context.WithoutCancel(ctx), gid, tag); err != nil {
		logger.Get().Warn("Failed to tag order", zap.String("gid", gid), zap.String("tag", tag), zap.Error(err))
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.UnknownValue
	}
	return s
}
