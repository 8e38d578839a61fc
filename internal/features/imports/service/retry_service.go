package service

import (
	"context"
	"errors"
	"fmt"

	"cybake-bridge/internal/core/logger"
	"cybake-bridge/internal/features/imports/domain"
	"cybake-bridge/internal/features/imports/ports"
	orderdomain "cybake-bridge/internal/features/orders/domain"
	orderports "cybake-bridge/internal/features/orders/ports"

	"go.uber.org/zap"
)

// maxRetryErrorBody bounds the response text quoted in a retry failure message.
const maxRetryErrorBody = 500

// RetryService resubmits the stored payload of a failed import.
type RetryService struct {
	orders    orderports.OrderProvider
	submitter ports.Submitter
	logs      ports.LogRepository
}

// NewRetryService creates a new RetryService.
func NewRetryService(orders orderports.OrderProvider, submitter ports.Submitter, logs ports.LogRepository) *RetryService {
	return &RetryService{
		orders:    orders,
		submitter: submitter,
		logs:      logs,
	}
}

// Retry resubmits the payload stored on the log row verbatim and records the outcome in place.
// Success rows and rows without a payload are refused before any external call.
func (s *RetryService) Retry(ctx context.Context, logID string) (*domain.RetryResult, error) {
	entry, err := s.logs.FindByID(ctx, logID)
	if errors.Is(err, domain.ErrLogNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrLogNotFound, logID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load log entry: %w", err)
	}

	if entry.Status == domain.StatusSuccess {
		return nil, ErrAlreadyImported
	}
	if len(entry.PayloadSent) == 0 {
		return nil, ErrNoStoredPayload
	}

	log := logger.Get().With(zap.String("log_id", entry.ID), zap.String("order_id", entry.ShopifyOrderID))

	submission, err := s.submitter.Submit(ctx, entry.PayloadSent)
	if err != nil {
		return nil, fmt.Errorf("failed to resubmit order: %w", err)
	}

	update := &domain.ImportLog{
		ID:             entry.ID,
		ShopifyOrderID: entry.ShopifyOrderID,
		Status:         domain.StatusFailed,
		HTTPStatus:     submission.HTTPStatus,
		CybakeResponse: submission.Body,
	}
	result := &domain.RetryResult{OrderNumber: entry.OrderNumber}

	if submission.Success {
		update.Status = domain.StatusSuccess
		update.CybakeImportID = submission.ImportItemID
		result.Success = true
		result.CybakeImportID = submission.ImportItemID
	} else if submission.HTTPStatus == 0 {
		update.SetError("Retry failed - " + submission.Error)
		result.Error = submission.Error
	} else {
		update.SetError(fmt.Sprintf("Retry failed - Cybake returned %d: %s",
			submission.HTTPStatus, domain.Truncate(submission.RawBody, maxRetryErrorBody)))
		result.Error = fmt.Sprintf("Cybake returned %d", submission.HTTPStatus)
	}

	updated, err := s.logs.UpdateAfterRetry(context.WithoutCancel(ctx), update)
	switch {
	case err != nil:
		log.Error("Failed to update log entry after retry", zap.Error(err))
	case !updated:
		log.Warn("Log entry became successful during retry, left unchanged")
	}

	gid := orderdomain.GID(entry.ShopifyOrderID)
	tagCtx := context.WithoutCancel(ctx)
	if result.Success {
		log.Info("Retry succeeded", zap.String("cybake_import_id", result.CybakeImportID))
		if err := s.orders.RemoveTags(tagCtx, gid, domain.TagFailed); err != nil {
			log.Warn("Failed to remove tag", zap.String("tag", domain.TagFailed), zap.Error(err))
		}
		if err := s.orders.AddTags(tagCtx, gid, domain.TagImported); err != nil {
			log.Warn("Failed to add tag", zap.String("tag", domain.TagImported), zap.Error(err))
		}
		return result, nil
	}

	log.Warn("Retry failed", zap.Int("http_status", submission.HTTPStatus), zap.String("error", result.Error))
	if err := s.orders.AddTags(tagCtx, gid, domain.TagFailed); err != nil {
		log.Warn("Failed to add tag", zap.String("tag", domain.TagFailed), zap.Error(err))
	}
	return result, nil
}
