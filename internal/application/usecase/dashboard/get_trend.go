// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/domain/entity"
	domainerror "github.com/farm-manager/backend/internal/domain/error"
)

// GetTrendInput represents the input for a single-metric trend chart.
type GetTrendInput struct {
	UserID   uuid.UUID
	Metric   string
	Window   WindowInput
	Page     int
	SubTypes []string
}

// TrendDay is one bar of the trend chart.
type TrendDay struct {
	Date      time.Time
	Label     string
	Total     decimal.Decimal
	Breakdown []entity.SubTypeAmount
}

// GetTrendOutput represents one page of a trend chart.
type GetTrendOutput struct {
	Metric     entity.MetricKey
	Preset     Preset
	Period     DateRange
	Page       int
	PageSize   int
	TotalPages int
	SubTypes   []string
	Days       []TrendDay
}

// GetTrendUseCase handles the per sub-type trend chart of one metric.
type GetTrendUseCase struct {
	seriesUC *GetDailySeriesUseCase
}

// NewGetTrendUseCase creates a new GetTrendUseCase instance.
func NewGetTrendUseCase(seriesUC *GetDailySeriesUseCase) *GetTrendUseCase {
	return &GetTrendUseCase{seriesUC: seriesUC}
}

// Execute returns the requested page of the trend chart.
func (uc *GetTrendUseCase) Execute(ctx context.Context, input GetTrendInput) (*GetTrendOutput, error) {
	// Validate input
	metric, err := parseMetric(input.Metric)
	if err != nil {
		return nil, err
	}

	seriesOut, err := uc.seriesUC.Execute(ctx, GetDailySeriesInput{UserID: input.UserID, SubTypes: input.SubTypes})
	if err != nil {
		return nil, err
	}
	snapshot := seriesOut.Snapshot

	period, preset, err := input.Window.resolve(snapshot.Today, PresetWeekly)
	if err != nil {
		return nil, err
	}

	pageSize := uc.seriesUC.settings.pageSize()
	pageDays, page, totalPages := pageOf(IntervalDays(snapshot.Series, period), input.Page, pageSize)

	days := make([]TrendDay, 0, len(pageDays))
	for _, d := range pageDays {
		breakdown := ProjectMetric(snapshot.Series, d, metric)
		days = append(days, TrendDay{
			Date:      d,
			Label:     DayLabel(d),
			Total:     breakdown.Total,
			Breakdown: breakdown.Breakdown,
		})
	}

	return &GetTrendOutput{
		Metric:     metric,
		Preset:     preset,
		Period:     period,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		SubTypes:   snapshot.SubTypes,
		Days:       days,
	}, nil
}

func parseMetric(raw string) (entity.MetricKey, error) {
	if raw == "" {
		return "", domainerror.NewFinanceError(
			domainerror.ErrCodeMissingMetric,
			domainerror.ErrMissingMetric.Error(),
			domainerror.ErrMissingMetric,
		)
	}
	metric := entity.MetricKey(raw)
	if !metric.IsValid() {
		return "", domainerror.NewFinanceError(
			domainerror.ErrCodeInvalidMetric,
			domainerror.ErrInvalidMetric.Error(),
			domainerror.ErrInvalidMetric,
		)
	}
	return metric, nil
}
