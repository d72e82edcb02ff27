// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/config"
	"github.com/farm-manager/backend/internal/infra/db"
	"github.com/farm-manager/backend/internal/infra/dependency"
	"github.com/farm-manager/backend/internal/integration/persistence/model"
	"github.com/farm-manager/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// testContext holds the state of one scenario.
type testContext struct {
	server        *httptest.Server
	client        *http.Client
	headers       map[string]string
	response      *response
	db            *mock.Db
	redis         *redis.Client
	miniRedis     *miniredis.Miniredis
	clock         *mock.Time
	accessToken   string
	currentUserID uuid.UUID
}

type response struct {
	status int
	body   any
}

var (
	serverInit sync.Once
	testServer *httptest.Server
	testClock  = mock.NewTime()
)

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	redisClient, miniRedis := mock.NewRedis()

	test := &testContext{
		client:    &http.Client{Timeout: 10 * time.Second},
		clock:     testClock,
		redis:     redisClient,
		miniRedis: miniRedis,
		db: mock.NewDb(map[string]any{
			"sales":         &model.SaleModel{},
			"expenses":      &model.ExpenseModel{},
			"farm_profiles": &model.FarmProfileModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Auth steps
	ctx.Given(`^a farm user is logged in$`, test.aFarmUserIsLoggedIn)
	ctx.Given(`^the access token has expired$`, test.theAccessTokenHasExpired)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Record setup steps
	ctx.Given(`^the farm profile "([^"]*)" lists the sub-types "([^"]*)"$`, test.theFarmProfileListsTheSubTypes)
	ctx.Given(`^the following sales exist:$`, test.theFollowingSalesExist)
	ctx.Given(`^the following expenses exist:$`, test.theFollowingExpensesExist)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response list "([^"]*)" should have (\d+) items$`, test.theResponseListShouldHaveItems)

	// Storage assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the series cache should hold (\d+) entr(?:y|ies)$`, test.theSeriesCacheShouldHoldEntries)
	ctx.Given(`^the cached series have expired$`, test.theSeriesCacheExpires)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.response = nil
	t.clock.Reset()

	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	return t.db.ClearDB()
}

// startServer wires the application once against the shared mocks.
func (t *testContext) startServer() {
	serverInit.Do(func() {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.CORS.AllowedOrigins = nil
		cfg.Finance.WindowDays = 60
		cfg.Finance.PageSize = 7
		cfg.Finance.Location = time.UTC
		cfg.Finance.CacheEnabled = true
		cfg.Finance.CacheTTL = 5 * time.Minute
		cfg.Finance.UnclassifiedAsOperating = false
		cfg.Finance.FallbackPrices = map[string]decimal.Decimal{"eggs": decimal.NewFromInt(10)}

		injector := dependency.NewInjector(cfg, db.NewDatabase(t.db.DbConn), t.redis, testClock)
		testServer = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})
	t.server = testServer
}
