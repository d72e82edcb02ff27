// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/domain/entity"
)

// GetComparisonInput represents the input for the metric comparison chart.
type GetComparisonInput struct {
	UserID uuid.UUID
	// Metrics to compare. Empty compares all five.
	Metrics  []string
	Window   WindowInput
	Page     int
	SubTypes []string
}

// MetricValue is one metric's total on a day.
type MetricValue struct {
	Metric entity.MetricKey
	Total  decimal.Decimal
}

// ComparisonDay is one group of bars on the comparison chart.
type ComparisonDay struct {
	Date   time.Time
	Label  string
	Values []MetricValue
}

// GetComparisonOutput represents one page of the comparison chart.
type GetComparisonOutput struct {
	Metrics    []entity.MetricKey
	Preset     Preset
	Period     DateRange
	Page       int
	PageSize   int
	TotalPages int
	Days       []ComparisonDay
}

// GetComparisonUseCase handles the side-by-side chart of several metric totals.
type GetComparisonUseCase struct {
	seriesUC *GetDailySeriesUseCase
}

// NewGetComparisonUseCase creates a new GetComparisonUseCase instance.
func NewGetComparisonUseCase(seriesUC *GetDailySeriesUseCase) *GetComparisonUseCase {
	return &GetComparisonUseCase{seriesUC: seriesUC}
}

// Execute returns the requested page of the comparison chart.
func (uc *GetComparisonUseCase) Execute(ctx context.Context, input GetComparisonInput) (*GetComparisonOutput, error) {
	// Validate input
	metrics, err := parseMetrics(input.Metrics)
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

	days := make([]ComparisonDay, 0, len(pageDays))
	for _, d := range pageDays {
		values := make([]MetricValue, 0, len(metrics))
		for _, metric := range metrics {
			values = append(values, MetricValue{
				Metric: metric,
				Total:  ProjectMetric(snapshot.Series, d, metric).Total,
			})
		}
		days = append(days, ComparisonDay{Date: d, Label: DayLabel(d), Values: values})
	}

	return &GetComparisonOutput{
		Metrics:    metrics,
		Preset:     preset,
		Period:     period,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Days:       days,
	}, nil
}

// parseMetrics validates and dedupes metric names, keeping request order.
func parseMetrics(raw []string) ([]entity.MetricKey, error) {
	if len(raw) == 0 {
		return append([]entity.MetricKey(nil), entity.AllMetrics...), nil
	}
	seen := make(map[entity.MetricKey]bool, len(raw))
	metrics := make([]entity.MetricKey, 0, len(raw))
	for _, name := range raw {
		metric, err := parseMetric(name)
		if err != nil {
			return nil, err
		}
		if seen[metric] {
			continue
		}
		seen[metric] = true
		metrics = append(metrics, metric)
	}
	return metrics, nil
}
