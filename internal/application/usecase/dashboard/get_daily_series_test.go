package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/domain/entity"
	domainerror "github.com/farm-manager/backend/internal/domain/error"
)

func TestGetDailySeriesUseCase_Execute(t *testing.T) {
	farm := newTestFarm()
	uc := farm.seriesUseCase()

	out, err := uc.Execute(context.Background(), GetDailySeriesInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot := out.Snapshot
	if out.FromCache {
		t.Error("expected first call to build the series")
	}
	if len(snapshot.Series) != 30 || snapshot.WindowDays != 30 {
		t.Fatalf("expected 30 days, got %d", len(snapshot.Series))
	}
	if DayKey(snapshot.Today) != "2024-03-15" {
		t.Errorf("expected today 2024-03-15, got %s", DayKey(snapshot.Today))
	}

	wantSubTypes := []string{"Poultry", "Apiculture", entity.UncategorizedSubType}
	if len(snapshot.SubTypes) != len(wantSubTypes) {
		t.Fatalf("expected sub-types %v, got %v", wantSubTypes, snapshot.SubTypes)
	}
	for i, name := range wantSubTypes {
		if snapshot.SubTypes[i] != name {
			t.Errorf("sub-type %d: expected %s, got %s", i, name, snapshot.SubTypes[i])
		}
	}

	today := snapshot.Series[len(snapshot.Series)-1]
	assertDecimal(t, "today revenue", today.Revenue.Total, "40")
	assertDecimal(t, "today apiculture revenue", today.Revenue.Value("Apiculture"), "40")
	assertDecimal(t, "today expenses", today.Expenses.Total, "15")
	assertDecimal(t, "today uncategorized expenses", today.Expenses.Value(entity.UncategorizedSubType), "5")
	assertDecimal(t, "today net profit", today.NetProfit.Total, "25")

	for _, entry := range snapshot.Series {
		assertProfitIdentities(t, entry)
	}
}

func TestGetDailySeriesUseCase_SubTypeFilter(t *testing.T) {
	farm := newTestFarm()
	uc := farm.seriesUseCase()

	out, err := uc.Execute(context.Background(), GetDailySeriesInput{
		UserID:   uuid.New(),
		Days:     7,
		SubTypes: []string{"poultry"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Snapshot.SubTypes) != 1 || out.Snapshot.SubTypes[0] != "Poultry" {
		t.Fatalf("expected only Poultry, got %v", out.Snapshot.SubTypes)
	}
	entry, _ := FindEntry(out.Snapshot.Series, day(2024, 3, 15))
	assertDecimal(t, "filtered revenue", entry.Revenue.Total, "0")
	entry, _ = FindEntry(out.Snapshot.Series, day(2024, 3, 14))
	assertDecimal(t, "filtered gross profit", entry.GrossProfit.Total, "100")
}

func TestGetDailySeriesUseCase_Caching(t *testing.T) {
	farm := newTestFarm()
	uc := farm.seriesUseCase()
	userID := uuid.New()

	first, err := uc.Execute(context.Background(), GetDailySeriesInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Execute(context.Background(), GetDailySeriesInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !second.FromCache {
		t.Error("expected second call to hit the cache")
	}
	if len(second.Snapshot.Series) != len(first.Snapshot.Series) {
		t.Error("expected cached snapshot to match")
	}

	t.Run("new record misses the cache", func(t *testing.T) {
		farm.sales.add(newSale("2024-03-15", "Poultry", []string{"Eggs"}, []string{"10"}, price("5")))

		out, err := uc.Execute(context.Background(), GetDailySeriesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.FromCache {
			t.Error("expected a rebuild after the records changed")
		}
		today := out.Snapshot.Series[len(out.Snapshot.Series)-1]
		assertDecimal(t, "today revenue", today.Revenue.Total, "90")
	})

	t.Run("edited expense misses the cache", func(t *testing.T) {
		farm.expenses.expenses[0].Amount = price("80")

		out, err := uc.Execute(context.Background(), GetDailySeriesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.FromCache {
			t.Error("expected a rebuild after an expense changed")
		}
		entry, _ := FindEntry(out.Snapshot.Series, day(2024, 3, 14))
		assertDecimal(t, "edited cogs", entry.COGS.Total, "80")
	})

	t.Run("different window misses the cache", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), GetDailySeriesInput{UserID: userID, Days: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.FromCache {
			t.Error("expected a rebuild for a different window")
		}
	})
}

func TestGetDailySeriesUseCase_CacheFailuresAreNotFatal(t *testing.T) {
	farm := newTestFarm()
	farm.cache.getErr = errors.New("connection refused")
	farm.cache.setErr = errors.New("connection refused")
	uc := farm.seriesUseCase()

	out, err := uc.Execute(context.Background(), GetDailySeriesInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("expected cache errors to be tolerated, got %v", err)
	}
	if out.FromCache || len(out.Snapshot.Series) != 30 {
		t.Error("expected a freshly built series")
	}
}

func TestGetDailySeriesUseCase_WithoutCache(t *testing.T) {
	farm := newTestFarm()
	uc := NewGetDailySeriesUseCase(farm.sales, farm.expenses, farm.profiles, nil, farm.clock, farm.settings)

	if _, err := uc.Execute(context.Background(), GetDailySeriesInput{UserID: uuid.New()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Execute(context.Background(), GetDailySeriesInput{UserID: uuid.New()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if farm.sales.calls != 2 {
		t.Errorf("expected every call to load records, got %d", farm.sales.calls)
	}
}

func TestGetDailySeriesUseCase_Validation(t *testing.T) {
	uc := newTestFarm().seriesUseCase()

	for _, days := range []int{-1, MaxWindowDays + 1} {
		_, err := uc.Execute(context.Background(), GetDailySeriesInput{UserID: uuid.New(), Days: days})

		var finErr *domainerror.FinanceError
		if !errors.As(err, &finErr) || finErr.Code != domainerror.ErrCodeInvalidWindow {
			t.Errorf("days=%d: expected invalid window error, got %v", days, err)
		}
	}
}

func TestGetDailySeriesUseCase_RecordSourceFailure(t *testing.T) {
	farm := newTestFarm()
	farm.expenses.err = errors.New("database is down")
	uc := farm.seriesUseCase()

	_, err := uc.Execute(context.Background(), GetDailySeriesInput{UserID: uuid.New()})

	var finErr *domainerror.FinanceError
	if !errors.As(err, &finErr) || finErr.Code != domainerror.ErrCodeRecordSourceUnavailable {
		t.Fatalf("expected record source error, got %v", err)
	}
	if farm.cache.sets != 0 {
		t.Error("expected nothing to be cached after a failure")
	}
}

func TestGetDailySeriesUseCase_NoProfile(t *testing.T) {
	farm := newTestFarm()
	farm.profiles.profile = nil
	uc := farm.seriesUseCase()

	out, err := uc.Execute(context.Background(), GetDailySeriesInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Discovered sub-types keep the first spelling seen and sort byte-wise.
	want := []string{"Poultry", "apiculture", entity.UncategorizedSubType}
	for i, name := range want {
		if out.Snapshot.SubTypes[i] != name {
			t.Errorf("sub-type %d: expected %s, got %s", i, name, out.Snapshot.SubTypes[i])
		}
	}
}

func TestSeriesCacheKey(t *testing.T) {
	userID := uuid.New()
	today := day(2024, 3, 15)

	a := seriesCacheKey(userID, today, 30, []string{"Poultry", "apiculture"}, "digest")
	b := seriesCacheKey(userID, today, 30, []string{" Apiculture", "poultry"}, "digest")
	c := seriesCacheKey(userID, today.AddDate(0, 0, 1), 30, []string{"Poultry", "apiculture"}, "digest")
	d := seriesCacheKey(userID, today, 30, []string{"Poultry", "apiculture"}, "other")

	if a != b {
		t.Error("expected sub-type order and case not to affect the key")
	}
	if a == c {
		t.Error("expected a new day to change the key")
	}
	if a == d {
		t.Error("expected different records to change the key")
	}
}

func TestRecordsDigest(t *testing.T) {
	farm := newTestFarm()
	records := &accountRecords{
		sales:    farm.sales.sales,
		expenses: farm.expenses.expenses,
		profile:  farm.profiles.profile,
	}
	opts := testOptions()
	base := recordsDigest(records, opts)

	if recordsDigest(records, opts) != base {
		t.Fatal("expected the digest to be stable")
	}

	tests := []struct {
		name   string
		mutate func(r *accountRecords, o *NormalizeOptions)
	}{
		{"sale added", func(r *accountRecords, _ *NormalizeOptions) {
			r.sales = append(append([]*entity.Sale(nil), r.sales...), newSale("2024-03-15", "Poultry", []string{"Eggs"}, []string{"1"}, price("5")))
		}},
		{"expense removed", func(r *accountRecords, _ *NormalizeOptions) {
			r.expenses = r.expenses[1:]
		}},
		{"profile sub-types changed", func(r *accountRecords, _ *NormalizeOptions) {
			r.profile = &entity.FarmProfile{SubTypes: []string{"Apiculture"}}
		}},
		{"fallback price changed", func(_ *accountRecords, o *NormalizeOptions) {
			o.FallbackPrices = map[string]decimal.Decimal{"eggs": dec("3")}
		}},
		{"unclassified bucketing changed", func(_ *accountRecords, o *NormalizeOptions) {
			o.UnclassifiedAsOperating = true
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := *records
			changedOpts := opts
			tt.mutate(&changed, &changedOpts)
			if recordsDigest(&changed, changedOpts) == base {
				t.Error("expected the digest to change")
			}
		})
	}
}
