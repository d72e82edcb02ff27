package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/farm-manager/backend/internal/domain/entity"
)

type fakeSaleRepo struct {
	sales []*entity.Sale
	err   error
	calls int
	mu    sync.Mutex
}

func (r *fakeSaleRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return append([]*entity.Sale(nil), r.sales...), r.err
}

func (r *fakeSaleRepo) add(sale *entity.Sale) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = append(r.sales, sale)
}

type fakeExpenseRepo struct {
	expenses []*entity.Expense
	err      error
}

func (r *fakeExpenseRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]*entity.Expense, error) {
	return r.expenses, r.err
}

type fakeProfileRepo struct {
	profile *entity.FarmProfile
	err     error
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, _ uuid.UUID) (*entity.FarmProfile, error) {
	return r.profile, r.err
}

type fakeSeriesCache struct {
	mu      sync.Mutex
	entries map[string]*entity.SeriesSnapshot
	getErr  error
	setErr  error
	sets    int
}

func newFakeSeriesCache() *fakeSeriesCache {
	return &fakeSeriesCache{entries: make(map[string]*entity.SeriesSnapshot)}
}

func (c *fakeSeriesCache) Get(_ context.Context, key string) (*entity.SeriesSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[key], nil
}

func (c *fakeSeriesCache) Set(_ context.Context, key string, snapshot *entity.SeriesSnapshot, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = snapshot
	return nil
}

func (c *fakeSeriesCache) Ping(_ context.Context) error {
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// testFarm bundles fakes for a farm with poultry and beekeeping records around 2024-03-15.
type testFarm struct {
	sales    *fakeSaleRepo
	expenses *fakeExpenseRepo
	profiles *fakeProfileRepo
	cache    *fakeSeriesCache
	clock    fixedClock
	settings Settings
}

func newTestFarm() *testFarm {
	return &testFarm{
		sales: &fakeSaleRepo{sales: []*entity.Sale{
			newSale("2024-03-14T09:30:00Z", "Poultry", []string{"Eggs"}, []string{"30"}, price("5")),
			newSale("2024-03-15", "apiculture", []string{"Honey"}, []string{"2"}, price("20")),
			newSale("2024-03-01", "Poultry", []string{"Chicken"}, []string{"1"}, price("40")),
		}},
		expenses: &fakeExpenseRepo{expenses: []*entity.Expense{
			newExpense("2024-03-14", "Poultry", "Feed", "50"),
			newExpense("2024-03-15", "Apiculture", "Electricity", "10"),
			newExpense("2024-03-15", "", "Fuel", "5"),
		}},
		profiles: &fakeProfileRepo{profile: &entity.FarmProfile{
			FarmName: "Green Acres",
			SubTypes: []string{"Poultry", "Apiculture"},
		}},
		cache: newFakeSeriesCache(),
		clock: fixedClock{now: time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)},
		settings: Settings{
			WindowDays: 30,
			PageSize:   7,
			CacheTTL:   time.Minute,
			Normalize:  testOptions(),
		},
	}
}

func (f *testFarm) seriesUseCase() *GetDailySeriesUseCase {
	return NewGetDailySeriesUseCase(f.sales, f.expenses, f.profiles, f.cache, f.clock, f.settings)
}
