package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Finance.WindowDays != 180 {
		t.Errorf("expected window of 180 days, got %d", cfg.Finance.WindowDays)
	}
	if cfg.Finance.PageSize != 7 {
		t.Errorf("expected page size 7, got %d", cfg.Finance.PageSize)
	}
	if cfg.Finance.Location != time.UTC {
		t.Errorf("expected UTC location, got %v", cfg.Finance.Location)
	}
	if cfg.Finance.UnclassifiedAsOperating {
		t.Error("expected unclassified expenses to be excluded by default")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info log level, got %v", cfg.LogLevel)
	}
	if cfg.RateLimit.Requests != 120 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("unexpected rate limit %+v", cfg.RateLimit)
	}
}

func TestLoad_FinanceOverrides(t *testing.T) {
	t.Setenv("FINANCE_WINDOW_DAYS", "90")
	t.Setenv("FINANCE_TIMEZONE", "Africa/Nairobi")
	t.Setenv("FINANCE_UNCLASSIFIED_AS_OPERATING", "true")
	t.Setenv("FINANCE_FALLBACK_PRICES", "Eggs=5, Honey = 12.50,broken,Feed=abc,eggs=6")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://farm.example, https://app.farm.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Finance.WindowDays != 90 {
		t.Errorf("expected window of 90 days, got %d", cfg.Finance.WindowDays)
	}
	if cfg.Finance.Location.String() != "Africa/Nairobi" {
		t.Errorf("expected Africa/Nairobi, got %s", cfg.Finance.Location)
	}
	if !cfg.Finance.UnclassifiedAsOperating {
		t.Error("expected unclassified-as-operating to be enabled")
	}
	if len(cfg.Finance.FallbackPrices) != 2 {
		t.Fatalf("expected 2 fallback prices, got %d", len(cfg.Finance.FallbackPrices))
	}
	if !cfg.Finance.FallbackPrices["honey"].Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("unexpected honey price %s", cfg.Finance.FallbackPrices["honey"])
	}
	if !cfg.Finance.FallbackPrices["eggs"].Equal(decimal.NewFromInt(6)) {
		t.Errorf("expected the later eggs price to win, got %s", cfg.Finance.FallbackPrices["eggs"])
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://app.farm.example" {
		t.Errorf("unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug log level, got %v", cfg.LogLevel)
	}
}
