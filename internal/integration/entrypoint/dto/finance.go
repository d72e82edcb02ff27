// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/application/usecase/dashboard"
	"github.com/farm-manager/backend/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// SubTypeAmountResponse is a metric value for one sub-type.
type SubTypeAmountResponse struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MetricBreakdownResponse is a metric total with its per sub-type breakdown.
type MetricBreakdownResponse struct {
	Total     float64                 `json:"total"`
	Breakdown []SubTypeAmountResponse `json:"breakdown"`
}

// DailyEntryResponse holds the five metrics for one day.
type DailyEntryResponse struct {
	Date        string                  `json:"date"`
	Label       string                  `json:"label"`
	Revenue     MetricBreakdownResponse `json:"revenue"`
	COGS        MetricBreakdownResponse `json:"cogs"`
	GrossProfit MetricBreakdownResponse `json:"gross_profit"`
	Expenses    MetricBreakdownResponse `json:"expenses"`
	NetProfit   MetricBreakdownResponse `json:"net_profit"`
}

// DiagnosticsResponse counts records left out of the figures.
type DiagnosticsResponse struct {
	SkippedSales         int `json:"skipped_sales"`
	SkippedExpenses      int `json:"skipped_expenses"`
	UnpricedLines        int `json:"unpriced_lines"`
	MismatchedLines      int `json:"mismatched_lines"`
	UnclassifiedExpenses int `json:"unclassified_expenses"`
}

// PeriodResponse describes the interval a response covers.
type PeriodResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// PaginationResponse describes the page of an interval a response covers.
type PaginationResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// SeriesResponse represents the response for the daily series API.
type SeriesResponse struct {
	Data SeriesData `json:"data"`
}

// SeriesData represents the data section of the daily series response.
type SeriesData struct {
	Today       string               `json:"today"`
	WindowDays  int                  `json:"window_days"`
	SubTypes    []string             `json:"sub_types"`
	FromCache   bool                 `json:"from_cache"`
	Series      []DailyEntryResponse `json:"series"`
	Diagnostics DiagnosticsResponse  `json:"diagnostics"`
}

// TrendResponse represents the response for the trend chart API.
type TrendResponse struct {
	Data TrendData `json:"data"`
}

// TrendData represents the data section of the trend chart response.
type TrendData struct {
	Metric     string             `json:"metric"`
	Preset     string             `json:"preset"`
	Period     PeriodResponse     `json:"period"`
	Pagination PaginationResponse `json:"pagination"`
	SubTypes   []string           `json:"sub_types"`
	Days       []TrendDayResponse `json:"days"`
}

// TrendDayResponse is one bar of the trend chart.
type TrendDayResponse struct {
	Date      string                  `json:"date"`
	Label     string                  `json:"label"`
	Total     float64                 `json:"total"`
	Breakdown []SubTypeAmountResponse `json:"breakdown"`
}

// ComparisonResponse represents the response for the comparison chart API.
type ComparisonResponse struct {
	Data ComparisonData `json:"data"`
}

// ComparisonData represents the data section of the comparison chart response.
type ComparisonData struct {
	Metrics    []string                `json:"metrics"`
	Preset     string                  `json:"preset"`
	Period     PeriodResponse          `json:"period"`
	Pagination PaginationResponse      `json:"pagination"`
	Days       []ComparisonDayResponse `json:"days"`
}

// ComparisonDayResponse is one group of bars on the comparison chart.
type ComparisonDayResponse struct {
	Date   string                `json:"date"`
	Label  string                `json:"label"`
	Values []MetricValueResponse `json:"values"`
}

// MetricValueResponse is one metric's total on a day.
type MetricValueResponse struct {
	Metric string  `json:"metric"`
	Total  float64 `json:"total"`
}

// WorkingCapitalResponse represents the response for the working capital API.
type WorkingCapitalResponse struct {
	Data WorkingCapitalData `json:"data"`
}

// WorkingCapitalData represents the data section of the working capital response.
type WorkingCapitalData struct {
	Today       DailyEntryResponse    `json:"today"`
	MonthToDate PeriodSummaryResponse `json:"month_to_date"`
	SubTypes    []string              `json:"sub_types"`
	Diagnostics DiagnosticsResponse   `json:"diagnostics"`
}

// PeriodSummaryResponse holds the five metrics summed over a period.
type PeriodSummaryResponse struct {
	Period      PeriodResponse          `json:"period"`
	Days        int                     `json:"days"`
	Revenue     MetricBreakdownResponse `json:"revenue"`
	COGS        MetricBreakdownResponse `json:"cogs"`
	GrossProfit MetricBreakdownResponse `json:"gross_profit"`
	Expenses    MetricBreakdownResponse `json:"expenses"`
	NetProfit   MetricBreakdownResponse `json:"net_profit"`
}

// ExpenseBreakdownResponse represents the response for the expense breakdown API.
type ExpenseBreakdownResponse struct {
	Data ExpenseBreakdownData `json:"data"`
}

// ExpenseBreakdownData represents the data section of the expense breakdown response.
type ExpenseBreakdownData struct {
	Period        PeriodResponse          `json:"period"`
	PeriodLabel   string                  `json:"period_label"`
	Preset        string                  `json:"preset"`
	TotalExpenses float64                 `json:"total_expenses"`
	Groups        []ExpenseGroupResponse  `json:"groups"`
	Categories    []CategoryShareResponse `json:"categories"`
	Diagnostics   DiagnosticsResponse     `json:"diagnostics"`
}

// ExpenseGroupResponse is the amount spent on one expense group.
type ExpenseGroupResponse struct {
	Group      string  `json:"group"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// CategoryShareResponse is the amount spent on one expense sub-category.
type CategoryShareResponse struct {
	Group            string  `json:"group"`
	Category         string  `json:"category"`
	SubCategory      string  `json:"sub_category"`
	Amount           float64 `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transaction_count"`
}

// SubTypesResponse represents the response for the sub-types API.
type SubTypesResponse struct {
	Data SubTypesData `json:"data"`
}

// SubTypesData represents the data section of the sub-types response.
type SubTypesData struct {
	FarmName   string   `json:"farm_name"`
	Configured []string `json:"configured"`
	SubTypes   []string `json:"sub_types"`
}

// ToSeriesResponse converts a GetDailySeriesOutput to SeriesResponse DTO.
func ToSeriesResponse(output *dashboard.GetDailySeriesOutput) SeriesResponse {
	snapshot := output.Snapshot
	series := make([]DailyEntryResponse, len(snapshot.Series))
	for i, entry := range snapshot.Series {
		series[i] = toDailyEntryResponse(entry)
	}

	return SeriesResponse{
		Data: SeriesData{
			Today:       snapshot.Today.Format(dateLayout),
			WindowDays:  snapshot.WindowDays,
			SubTypes:    nonNilStrings(snapshot.SubTypes),
			FromCache:   output.FromCache,
			Series:      series,
			Diagnostics: toDiagnosticsResponse(snapshot.Diagnostics),
		},
	}
}

// ToTrendResponse converts a GetTrendOutput to TrendResponse DTO.
func ToTrendResponse(output *dashboard.GetTrendOutput) TrendResponse {
	days := make([]TrendDayResponse, len(output.Days))
	for i, d := range output.Days {
		days[i] = TrendDayResponse{
			Date:      d.Date.Format(dateLayout),
			Label:     d.Label,
			Total:     toFloat(d.Total),
			Breakdown: toSubTypeAmounts(d.Breakdown),
		}
	}

	return TrendResponse{
		Data: TrendData{
			Metric: string(output.Metric),
			Preset: string(output.Preset),
			Period: toPeriodResponse(output.Period),
			Pagination: PaginationResponse{
				Page:       output.Page,
				PageSize:   output.PageSize,
				TotalPages: output.TotalPages,
			},
			SubTypes: nonNilStrings(output.SubTypes),
			Days:     days,
		},
	}
}

// ToComparisonResponse converts a GetComparisonOutput to ComparisonResponse DTO.
func ToComparisonResponse(output *dashboard.GetComparisonOutput) ComparisonResponse {
	metrics := make([]string, len(output.Metrics))
	for i, m := range output.Metrics {
		metrics[i] = string(m)
	}

	days := make([]ComparisonDayResponse, len(output.Days))
	for i, d := range output.Days {
		values := make([]MetricValueResponse, len(d.Values))
		for j, v := range d.Values {
			values[j] = MetricValueResponse{Metric: string(v.Metric), Total: toFloat(v.Total)}
		}
		days[i] = ComparisonDayResponse{
			Date:   d.Date.Format(dateLayout),
			Label:  d.Label,
			Values: values,
		}
	}

	return ComparisonResponse{
		Data: ComparisonData{
			Metrics: metrics,
			Preset:  string(output.Preset),
			Period:  toPeriodResponse(output.Period),
			Pagination: PaginationResponse{
				Page:       output.Page,
				PageSize:   output.PageSize,
				TotalPages: output.TotalPages,
			},
			Days: days,
		},
	}
}

// ToWorkingCapitalResponse converts a GetWorkingCapitalOutput to WorkingCapitalResponse DTO.
func ToWorkingCapitalResponse(output *dashboard.GetWorkingCapitalOutput) WorkingCapitalResponse {
	mtd := output.MonthToDate
	return WorkingCapitalResponse{
		Data: WorkingCapitalData{
			Today: toDailyEntryResponse(output.TodayEntry),
			MonthToDate: PeriodSummaryResponse{
				Period:      toPeriodResponse(mtd.Period),
				Days:        mtd.Days,
				Revenue:     toBreakdownResponse(mtd.Revenue),
				COGS:        toBreakdownResponse(mtd.COGS),
				GrossProfit: toBreakdownResponse(mtd.GrossProfit),
				Expenses:    toBreakdownResponse(mtd.Expenses),
				NetProfit:   toBreakdownResponse(mtd.NetProfit),
			},
			SubTypes:    nonNilStrings(output.SubTypes),
			Diagnostics: toDiagnosticsResponse(output.Diagnostics),
		},
	}
}

// ToExpenseBreakdownResponse converts a GetExpenseBreakdownOutput to ExpenseBreakdownResponse DTO.
func ToExpenseBreakdownResponse(output *dashboard.GetExpenseBreakdownOutput) ExpenseBreakdownResponse {
	groups := make([]ExpenseGroupResponse, len(output.Groups))
	for i, g := range output.Groups {
		groups[i] = ExpenseGroupResponse{
			Group:      string(g.Group),
			Amount:     toFloat(g.Amount),
			Percentage: g.Percentage,
		}
	}

	categories := make([]CategoryShareResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryShareResponse{
			Group:            string(c.Group),
			Category:         c.TopLevel,
			SubCategory:      c.SubCategory,
			Amount:           toFloat(c.Amount),
			Percentage:       c.Percentage,
			TransactionCount: c.TransactionCount,
		}
	}

	return ExpenseBreakdownResponse{
		Data: ExpenseBreakdownData{
			Period:        toPeriodResponse(output.Period),
			PeriodLabel:   output.PeriodLabel,
			Preset:        string(output.Preset),
			TotalExpenses: toFloat(output.Total),
			Groups:        groups,
			Categories:    categories,
			Diagnostics:   toDiagnosticsResponse(output.Diagnostics),
		},
	}
}

// ToSubTypesResponse converts a ListSubTypesOutput to SubTypesResponse DTO.
func ToSubTypesResponse(output *dashboard.ListSubTypesOutput) SubTypesResponse {
	return SubTypesResponse{
		Data: SubTypesData{
			FarmName:   output.FarmName,
			Configured: nonNilStrings(output.Configured),
			SubTypes:   nonNilStrings(output.SubTypes),
		},
	}
}

func toDailyEntryResponse(entry entity.DailyEntry) DailyEntryResponse {
	return DailyEntryResponse{
		Date:        entry.Date.Format(dateLayout),
		Label:       dashboard.DayLabel(entry.Date),
		Revenue:     toBreakdownResponse(entry.Revenue),
		COGS:        toBreakdownResponse(entry.COGS),
		GrossProfit: toBreakdownResponse(entry.GrossProfit),
		Expenses:    toBreakdownResponse(entry.Expenses),
		NetProfit:   toBreakdownResponse(entry.NetProfit),
	}
}

func toBreakdownResponse(m entity.MetricBreakdown) MetricBreakdownResponse {
	return MetricBreakdownResponse{
		Total:     toFloat(m.Total),
		Breakdown: toSubTypeAmounts(m.Breakdown),
	}
}

func toSubTypeAmounts(items []entity.SubTypeAmount) []SubTypeAmountResponse {
	out := make([]SubTypeAmountResponse, len(items))
	for i, item := range items {
		out[i] = SubTypeAmountResponse{Name: item.Name, Value: toFloat(item.Value)}
	}
	return out
}

func toDiagnosticsResponse(d entity.RecordDiagnostics) DiagnosticsResponse {
	return DiagnosticsResponse{
		SkippedSales:         d.SkippedSales,
		SkippedExpenses:      d.SkippedExpenses,
		UnpricedLines:        d.UnpricedLines,
		MismatchedLines:      d.MismatchedLines,
		UnclassifiedExpenses: d.UnclassifiedExpenses,
	}
}

func toPeriodResponse(r dashboard.DateRange) PeriodResponse {
	if r.IsEmpty() {
		return PeriodResponse{}
	}
	return PeriodResponse{
		StartDate: formatDate(r.Start),
		EndDate:   formatDate(r.End),
	}
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
