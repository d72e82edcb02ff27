package dashboard

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/domain/entity"
	"github.com/farm-manager/backend/internal/domain/valueobject"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func testOptions() NormalizeOptions {
	return NormalizeOptions{
		Location: time.UTC,
		Taxonomy: valueobject.DefaultCategoryTaxonomy(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newSale(date, subType string, items []string, quantities []string, prices ...decimal.NullDecimal) *entity.Sale {
	qty := make([]decimal.Decimal, len(quantities))
	for i, q := range quantities {
		qty[i] = dec(q)
	}
	return &entity.Sale{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Date:          date,
		SubType:       subType,
		Items:         items,
		Quantities:    qty,
		PricesPerUnit: prices,
	}
}

func newExpense(date, subType, category, amount string) *entity.Expense {
	e := &entity.Expense{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Title:     category + " bill",
		SubType:   subType,
		Category:  category,
		CreatedAt: date,
	}
	if amount != "" {
		e.Amount = decimal.NewNullDecimal(dec(amount))
	}
	return e
}

// assertDecimal fails the test when got differs from want.
func assertDecimal(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s: expected %s, got %s", label, want, got)
	}
}

// assertProfitIdentities checks gross and net profit identities on totals and per sub-type.
func assertProfitIdentities(t *testing.T, entry entity.DailyEntry) {
	t.Helper()
	if !entry.GrossProfit.Total.Equal(entry.Revenue.Total.Sub(entry.COGS.Total)) {
		t.Errorf("%s: grossProfit.total %s != revenue %s - cogs %s", DayKey(entry.Date),
			entry.GrossProfit.Total, entry.Revenue.Total, entry.COGS.Total)
	}
	if !entry.NetProfit.Total.Equal(entry.GrossProfit.Total.Sub(entry.Expenses.Total)) {
		t.Errorf("%s: netProfit.total %s != grossProfit %s - expenses %s", DayKey(entry.Date),
			entry.NetProfit.Total, entry.GrossProfit.Total, entry.Expenses.Total)
	}
	for _, item := range entry.GrossProfit.Breakdown {
		want := entry.Revenue.Value(item.Name).Sub(entry.COGS.Value(item.Name))
		if !item.Value.Equal(want) {
			t.Errorf("%s/%s: grossProfit %s, want %s", DayKey(entry.Date), item.Name, item.Value, want)
		}
	}
	for _, item := range entry.NetProfit.Breakdown {
		want := entry.GrossProfit.Value(item.Name).Sub(entry.Expenses.Value(item.Name))
		if !item.Value.Equal(want) {
			t.Errorf("%s/%s: netProfit %s, want %s", DayKey(entry.Date), item.Name, item.Value, want)
		}
	}
}
