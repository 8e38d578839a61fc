package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"cybake-bridge/internal/features/imports/domain"
	"cybake-bridge/internal/features/imports/ports"

	"github.com/go-playground/validator/v10"
)

const (
	defaultPage  = 1
	defaultLimit = 50
)

// LogService serves paginated import history for the dashboard.
type LogService struct {
	logs     ports.LogRepository
	validate *validator.Validate
}

// NewLogService creates a new LogService.
func NewLogService(logs ports.LogRepository) *LogService {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report query parameter names in validation messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &LogService{logs: logs, validate: v}
}

// List applies defaults to the filter, validates it and returns the matching page with
// table-wide status counts.
func (s *LogService) List(ctx context.Context, filter domain.LogFilter) (*domain.LogPage, error) {
	if filter.Status == "" {
		filter.Status = "all"
	}
	if filter.Page == 0 {
		filter.Page = defaultPage
	}
	if filter.Limit == 0 {
		filter.Limit = defaultLimit
	}

	if err := s.validate.Struct(filter); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, describeValidation(err))
	}

	logs, total, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list import logs: %w", err)
	}

	summary, err := s.logs.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize import logs: %w", err)
	}

	return &domain.LogPage{
		Logs:    logs,
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
		Summary: summary,
	}, nil
}

// describeValidation flattens validator errors into "field: rule" pairs.
func describeValidation(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		rule := e.Tag()
		if e.Param() != "" {
			rule += "=" + e.Param()
		}
		parts = append(parts, e.Field()+" must satisfy "+rule)
	}
	return strings.Join(parts, "; ")
}
