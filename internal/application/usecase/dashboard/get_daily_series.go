// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/application/adapter"
	"github.com/farm-manager/backend/internal/domain/entity"
	domainerror "github.com/farm-manager/backend/internal/domain/error"
)

// GetDailySeriesInput represents the input for building a daily series.
type GetDailySeriesInput struct {
	UserID uuid.UUID
	// Days is the window length. Zero uses the configured window.
	Days int
	// SubTypes restricts the breakdowns to these sub-types. Empty means all.
	SubTypes []string
}

// GetDailySeriesOutput represents the output of building a daily series.
type GetDailySeriesOutput struct {
	Snapshot  *entity.SeriesSnapshot
	FromCache bool
}

// GetDailySeriesUseCase builds the per-day financial series for an account.
type GetDailySeriesUseCase struct {
	loader   *recordLoader
	cache    adapter.SeriesCache
	clock    adapter.Clock
	settings Settings
}

// NewGetDailySeriesUseCase creates a new GetDailySeriesUseCase instance.
// cache may be nil, in which case every call rebuilds the series.
func NewGetDailySeriesUseCase(
	saleRepo adapter.SaleRepository,
	expenseRepo adapter.ExpenseRepository,
	profileRepo adapter.FarmProfileRepository,
	cache adapter.SeriesCache,
	clock adapter.Clock,
	settings Settings,
) *GetDailySeriesUseCase {
	return &GetDailySeriesUseCase{
		loader:   newRecordLoader(saleRepo, expenseRepo, profileRepo),
		cache:    cache,
		clock:    clock,
		settings: settings,
	}
}

// Execute returns the series for the window ending today.
func (uc *GetDailySeriesUseCase) Execute(ctx context.Context, input GetDailySeriesInput) (*GetDailySeriesOutput, error) {
	// Validate input
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	days := input.Days
	if days == 0 {
		days = uc.settings.windowDays()
	}
	today := uc.Today()

	records, err := uc.loader.load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// A hit skips normalizing and building only; changed records change the key.
	key := seriesCacheKey(input.UserID, today, days, input.SubTypes, recordsDigest(records, uc.settings.Normalize))
	if snapshot := uc.cached(ctx, key); snapshot != nil {
		return &GetDailySeriesOutput{Snapshot: snapshot, FromCache: true}, nil
	}

	universe := ResolveSubTypes(records.configuredSubTypes(), records.sales, records.expenses)
	subTypes := FilterSubTypes(universe, input.SubTypes)

	normalized := Normalize(records.sales, records.expenses, universe, uc.settings.Normalize)
	series := BuildDailySeries(today, days, subTypes, normalized)

	snapshot := &entity.SeriesSnapshot{
		Today:       today,
		WindowDays:  days,
		SubTypes:    subTypes,
		Series:      series,
		Diagnostics: normalized.Diagnostics,
	}

	if normalized.Diagnostics != (entity.RecordDiagnostics{}) {
		slog.Info("Built daily series with excluded records",
			"userID", input.UserID,
			"skippedSales", normalized.Diagnostics.SkippedSales,
			"skippedExpenses", normalized.Diagnostics.SkippedExpenses,
			"unpricedLines", normalized.Diagnostics.UnpricedLines,
			"unclassifiedExpenses", normalized.Diagnostics.UnclassifiedExpenses,
		)
	}

	uc.store(ctx, key, snapshot)

	return &GetDailySeriesOutput{Snapshot: snapshot}, nil
}

// Today returns the current calendar day in the configured location.
func (uc *GetDailySeriesUseCase) Today() time.Time {
	return StartOfDay(uc.clock.Now().In(uc.settings.Normalize.location()))
}

// validateInput validates the input parameters.
func (uc *GetDailySeriesUseCase) validateInput(input GetDailySeriesInput) error {
	if input.Days < 0 || input.Days > MaxWindowDays {
		return domainerror.NewFinanceError(
			domainerror.ErrCodeInvalidWindow,
			domainerror.ErrInvalidWindow.Error(),
			domainerror.ErrInvalidWindow,
		)
	}
	return nil
}

func (uc *GetDailySeriesUseCase) cached(ctx context.Context, key string) *entity.SeriesSnapshot {
	if uc.cache == nil || uc.settings.CacheTTL <= 0 {
		return nil
	}
	snapshot, err := uc.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Failed to read series cache", "error", err)
		return nil
	}
	return snapshot
}

func (uc *GetDailySeriesUseCase) store(ctx context.Context, key string, snapshot *entity.SeriesSnapshot) {
	if uc.cache == nil || uc.settings.CacheTTL <= 0 {
		return
	}
	if err := uc.cache.Set(ctx, key, snapshot, uc.settings.CacheTTL); err != nil {
		slog.Warn("Failed to write series cache", "error", err)
	}
}

// seriesCacheKey identifies a series by everything that shapes it.
// digest covers the account's records and the normalization settings.
func seriesCacheKey(userID uuid.UUID, today time.Time, days int, subTypes []string, digest string) string {
	requested := make([]string, 0, len(subTypes))
	for _, name := range subTypes {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			requested = append(requested, name)
		}
	}
	sort.Strings(requested)

	payload, _ := json.Marshal(struct {
		UserID   string   `json:"u"`
		Today    string   `json:"t"`
		Location string   `json:"l"`
		Days     int      `json:"d"`
		SubTypes []string `json:"s"`
		Records  string   `json:"r"`
	}{
		UserID:   userID.String(),
		Today:    DayKey(today),
		Location: today.Location().String(),
		Days:     days,
		SubTypes: requested,
		Records:  digest,
	})

	sum := sha256.Sum256(payload)
	return "finance:series:" + userID.String() + ":" + hex.EncodeToString(sum[:])
}

// recordsDigest hashes the loaded records together with the settings that change
// how they are normalized.
func recordsDigest(records *accountRecords, opts NormalizeOptions) string {
	payload, err := json.Marshal(struct {
		Sales                   []*entity.Sale             `json:"s"`
		Expenses                []*entity.Expense          `json:"e"`
		Configured              []string                   `json:"c"`
		FallbackPrices          map[string]decimal.Decimal `json:"p"`
		UnclassifiedAsOperating bool                       `json:"o"`
	}{
		Sales:                   records.sales,
		Expenses:                records.expenses,
		Configured:              records.configuredSubTypes(),
		FallbackPrices:          opts.FallbackPrices,
		UnclassifiedAsOperating: opts.UnclassifiedAsOperating,
	})
	if err != nil {
		// An unhashable record set never matches a cached entry.
		return uuid.NewString()
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
