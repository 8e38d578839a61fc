package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cybake-bridge/internal/features/imports/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// importLogModel is the persistence model for domain.ImportLog.
type importLogModel struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ShopifyOrderID string              `gorm:"type:varchar(64);not null;uniqueIndex"`
	OrderNumber    string              `gorm:"type:varchar(64);not null"`
	CustomerName   *string             `gorm:"type:varchar(255)"`
	CustomerEmail  *string             `gorm:"type:varchar(255)"`
	DeliveryDate   *string             `gorm:"type:varchar(10)"`
	OrderType      *string             `gorm:"type:varchar(100)"`
	LineItemsCount int                 `gorm:"not null"`
	OrderTotal     decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Status         string              `gorm:"type:varchar(20);not null;index"`
	CybakeImportID *string             `gorm:"type:varchar(100)"`
	HTTPStatus     *int
	ErrorMessage   *string   `gorm:"type:text"`
	PayloadSent    *string   `gorm:"type:jsonb"`
	CybakeResponse *string   `gorm:"type:jsonb"`
	RetryCount     int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM.
func (importLogModel) TableName() string {
	return "import_logs"
}

// BeforeCreate assigns a fresh id.
func (m *importLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// upsertColumns are replaced when an attempt for a known order is recorded.
// id, created_at and retry_count keep their stored values.
var upsertColumns = []string{
	"order_number", "customer_name", "customer_email", "delivery_date", "order_type",
	"line_items_count", "order_total", "status", "cybake_import_id", "http_status",
	"error_message", "payload_sent", "cybake_response", "updated_at",
}

// GormLogRepository implements the LogRepository interface on a SQL database through GORM.
type GormLogRepository struct {
	db *gorm.DB
}

// NewGormLogRepository creates a new GormLogRepository.
func NewGormLogRepository(db *gorm.DB) *GormLogRepository {
	return &GormLogRepository{db: db}
}

// Migrate creates the import_logs table or appends missing columns and indexes.
func (r *GormLogRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&importLogModel{}); err != nil {
		return fmt.Errorf("failed to migrate import_logs: %w", err)
	}
	return nil
}

// FindSuccessful returns the success row for an order.
func (r *GormLogRepository) FindSuccessful(ctx context.Context, shopifyOrderID string) (*domain.ImportLog, error) {
	var model importLogModel
	err := r.db.WithContext(ctx).
		Where("shopify_order_id = ? AND status = ?", shopifyOrderID, domain.StatusSuccess).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query import log: %w", err)
	}
	return model.toDomain(), nil
}

// Record inserts the row, or updates the existing row for the same order unless that row is a
// success and the new attempt is not. The check and the write are one statement.
func (r *GormLogRepository) Record(ctx context.Context, log *domain.ImportLog) (bool, error) {
	model := fromDomain(log)
	now := time.Now().UTC()
	model.CreatedAt = now
	model.UpdatedAt = now

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shopify_order_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{
					SQL:  "(import_logs.status <> ? OR excluded.status = ?)",
					Vars: []any{string(domain.StatusSuccess), string(domain.StatusSuccess)},
				},
			}},
		}).
		Create(model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to record import log: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// FindByID returns a row by id. Malformed ids are reported as not found.
func (r *GormLogRepository) FindByID(ctx context.Context, id string) (*domain.ImportLog, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrLogNotFound
	}

	var model importLogModel
	err = r.db.WithContext(ctx).Where("id = ?", parsed).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query import log: %w", err)
	}
	return model.toDomain(), nil
}

// UpdateAfterRetry writes the retry outcome in place and bumps retry_count, guarded on the row
// not having become a success in the meantime.
func (r *GormLogRepository) UpdateAfterRetry(ctx context.Context, log *domain.ImportLog) (bool, error) {
	parsed, err := uuid.Parse(log.ID)
	if err != nil {
		return false, domain.ErrLogNotFound
	}

	updates := map[string]any{
		"status":          string(log.Status),
		"http_status":     nullInt(log.HTTPStatus),
		"cybake_response": nullJSON(log.CybakeResponse),
		"error_message":   nullString(log.ErrorMessage),
		"retry_count":     gorm.Expr("retry_count + 1"),
		"updated_at":      time.Now().UTC(),
	}
	if log.CybakeImportID != "" {
		updates["cybake_import_id"] = log.CybakeImportID
	}

	result := r.db.WithContext(ctx).
		Model(&importLogModel{}).
		Where("id = ? AND status <> ?", parsed, domain.StatusSuccess).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update import log: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// List returns one page of rows, newest first, and the number of rows matching the filter.
func (r *GormLogRepository) List(ctx context.Context, filter domain.LogFilter) ([]domain.ImportLog, int64, error) {
	var total int64
	countQuery := applyLogFilter(r.db.WithContext(ctx).Model(&importLogModel{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count import logs: %w", err)
	}

	var models []importLogModel
	err := applyLogFilter(r.db.WithContext(ctx).Model(&importLogModel{}), filter).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list import logs: %w", err)
	}

	logs := make([]domain.ImportLog, 0, len(models))
	for i := range models {
		logs = append(logs, *models[i].toDomain())
	}

	return logs, total, nil
}

// applyLogFilter applies the status and search conditions without pagination.
func applyLogFilter(query *gorm.DB, filter domain.LogFilter) *gorm.DB {
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(`(LOWER(order_number) LIKE ? ESCAPE '\' OR LOWER(customer_name) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	return query
}

// Summary counts rows per status across the whole table.
func (r *GormLogRepository) Summary(ctx context.Context) (domain.LogSummary, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	err := r.db.WithContext(ctx).
		Model(&importLogModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return domain.LogSummary{}, fmt.Errorf("failed to summarize import logs: %w", err)
	}

	var summary domain.LogSummary
	for _, row := range rows {
		summary.Total += row.Count
		switch domain.ImportStatus(row.Status) {
		case domain.StatusSuccess:
			summary.Success = row.Count
		case domain.StatusFailed:
			summary.Failed = row.Count
		}
	}

	return summary, nil
}

// escapeLike escapes LIKE wildcards so the search term matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func fromDomain(l *domain.ImportLog) *importLogModel {
	model := &importLogModel{
		ShopifyOrderID: l.ShopifyOrderID,
		OrderNumber:    l.OrderNumber,
		CustomerName:   nullString(l.CustomerName),
		CustomerEmail:  nullString(l.CustomerEmail),
		DeliveryDate:   nullString(l.DeliveryDate),
		OrderType:      nullString(l.OrderType),
		LineItemsCount: l.LineItemsCount,
		OrderTotal:     l.OrderTotal,
		Status:         string(l.Status),
		CybakeImportID: nullString(l.CybakeImportID),
		HTTPStatus:     nullInt(l.HTTPStatus),
		ErrorMessage:   nullString(domain.Truncate(l.ErrorMessage, domain.MaxErrorMessageLength)),
		PayloadSent:    nullJSON(l.PayloadSent),
		CybakeResponse: nullJSON(l.CybakeResponse),
		RetryCount:     l.RetryCount,
	}
	if id, err := uuid.Parse(l.ID); err == nil {
		model.ID = id
	}
	if model.OrderNumber == "" {
		model.OrderNumber = domain.UnknownValue
	}
	return model
}

func (m *importLogModel) toDomain() *domain.ImportLog {
	l := &domain.ImportLog{
		ID:             m.ID.String(),
		ShopifyOrderID: m.ShopifyOrderID,
		OrderNumber:    m.OrderNumber,
		CustomerName:   deref(m.CustomerName),
		CustomerEmail:  deref(m.CustomerEmail),
		DeliveryDate:   deref(m.DeliveryDate),
		OrderType:      deref(m.OrderType),
		LineItemsCount: m.LineItemsCount,
		OrderTotal:     m.OrderTotal,
		Status:         domain.ImportStatus(m.Status),
		CybakeImportID: deref(m.CybakeImportID),
		ErrorMessage:   deref(m.ErrorMessage),
		RetryCount:     m.RetryCount,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.HTTPStatus != nil {
		l.HTTPStatus = *m.HTTPStatus
	}
	if m.PayloadSent != nil {
		l.PayloadSent = json.RawMessage(*m.PayloadSent)
	}
	if m.CybakeResponse != nil {
		l.CybakeResponse = json.RawMessage(*m.CybakeResponse)
	}
	return l
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func nullJSON(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	s := string(raw)
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
