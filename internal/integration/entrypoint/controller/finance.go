// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farm-manager/backend/internal/application/usecase/dashboard"
	domainerror "github.com/farm-manager/backend/internal/domain/error"
	"github.com/farm-manager/backend/internal/integration/entrypoint/dto"
	"github.com/farm-manager/backend/internal/integration/entrypoint/middleware"
)

// FinanceController handles finance dashboard endpoints.
type FinanceController struct {
	getDailySeriesUseCase      *dashboard.GetDailySeriesUseCase
	getTrendUseCase            *dashboard.GetTrendUseCase
	getComparisonUseCase       *dashboard.GetComparisonUseCase
	getWorkingCapitalUseCase   *dashboard.GetWorkingCapitalUseCase
	getExpenseBreakdownUseCase *dashboard.GetExpenseBreakdownUseCase
	listSubTypesUseCase        *dashboard.ListSubTypesUseCase
}

// NewFinanceController creates a new finance controller instance.
func NewFinanceController(
	getDailySeriesUseCase *dashboard.GetDailySeriesUseCase,
	getTrendUseCase *dashboard.GetTrendUseCase,
	getComparisonUseCase *dashboard.GetComparisonUseCase,
	getWorkingCapitalUseCase *dashboard.GetWorkingCapitalUseCase,
	getExpenseBreakdownUseCase *dashboard.GetExpenseBreakdownUseCase,
	listSubTypesUseCase *dashboard.ListSubTypesUseCase,
) *FinanceController {
	return &FinanceController{
		getDailySeriesUseCase:      getDailySeriesUseCase,
		getTrendUseCase:            getTrendUseCase,
		getComparisonUseCase:       getComparisonUseCase,
		getWorkingCapitalUseCase:   getWorkingCapitalUseCase,
		getExpenseBreakdownUseCase: getExpenseBreakdownUseCase,
		listSubTypesUseCase:        listSubTypesUseCase,
	}
}

// GetSeries handles GET /finance/series requests.
func (c *FinanceController) GetSeries(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	days := 0
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.badRequest(ctx, domainerror.ErrInvalidWindow.Error(), string(domainerror.ErrCodeInvalidWindow))
			return
		}
		days = parsed
	}

	output, err := c.getDailySeriesUseCase.Execute(ctx.Request.Context(), dashboard.GetDailySeriesInput{
		UserID:   userID,
		Days:     days,
		SubTypes: parseList(ctx.Query("sub_types")),
	})
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSeriesResponse(output))
}

// GetTrend handles GET /finance/trend requests.
func (c *FinanceController) GetTrend(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	page, ok := c.parsePage(ctx)
	if !ok {
		return
	}

	output, err := c.getTrendUseCase.Execute(ctx.Request.Context(), dashboard.GetTrendInput{
		UserID:   userID,
		Metric:   ctx.Query("metric"),
		Window:   parseWindow(ctx),
		Page:     page,
		SubTypes: parseList(ctx.Query("sub_types")),
	})
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendResponse(output))
}

// GetComparison handles GET /finance/compare requests.
func (c *FinanceController) GetComparison(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	page, ok := c.parsePage(ctx)
	if !ok {
		return
	}

	output, err := c.getComparisonUseCase.Execute(ctx.Request.Context(), dashboard.GetComparisonInput{
		UserID:   userID,
		Metrics:  parseList(ctx.Query("metrics")),
		Window:   parseWindow(ctx),
		Page:     page,
		SubTypes: parseList(ctx.Query("sub_types")),
	})
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToComparisonResponse(output))
}

// GetWorkingCapital handles GET /finance/working-capital requests.
func (c *FinanceController) GetWorkingCapital(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getWorkingCapitalUseCase.Execute(ctx.Request.Context(), dashboard.GetWorkingCapitalInput{
		UserID:   userID,
		SubTypes: parseList(ctx.Query("sub_types")),
	})
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWorkingCapitalResponse(output))
}

// GetExpenseBreakdown handles GET /finance/expense-breakdown requests.
func (c *FinanceController) GetExpenseBreakdown(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getExpenseBreakdownUseCase.Execute(ctx.Request.Context(), dashboard.GetExpenseBreakdownInput{
		UserID: userID,
		Window: parseWindow(ctx),
	})
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseBreakdownResponse(output))
}

// ListSubTypes handles GET /finance/sub-types requests.
func (c *FinanceController) ListSubTypes(ctx *gin.Context) {
	userID, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listSubTypesUseCase.Execute(ctx.Request.Context(), dashboard.ListSubTypesInput{UserID: userID})
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubTypesResponse(output))
}

func (c *FinanceController) requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

func (c *FinanceController) parsePage(ctx *gin.Context) (int, bool) {
	raw := ctx.Query("page")
	if raw == "" {
		return 0, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		c.badRequest(ctx, domainerror.ErrInvalidPage.Error(), string(domainerror.ErrCodeInvalidPage))
		return 0, false
	}
	return page, true
}

func (c *FinanceController) badRequest(ctx *gin.Context, message, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// parseWindow reads preset, start_date and end_date. Dates that are not YYYY-MM-DD
// are ignored so the preset applies.
func parseWindow(ctx *gin.Context) dashboard.WindowInput {
	return dashboard.WindowInput{
		Preset:    ctx.Query("preset"),
		StartDate: parseDate(ctx.Query("start_date")),
		EndDate:   parseDate(ctx.Query("end_date")),
	}
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

// parseList splits a comma-separated query value, dropping blanks.
func parseList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// handleFinanceError handles finance errors and returns appropriate HTTP responses.
func (c *FinanceController) handleFinanceError(ctx *gin.Context, err error) {
	var finErr *domainerror.FinanceError
	if errors.As(err, &finErr) {
		statusCode := c.getStatusCodeForFinanceError(finErr.Code)
		if statusCode >= http.StatusInternalServerError {
			slog.Error("Finance request failed", "code", finErr.Code, "error", err)
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: finErr.Message,
			Code:  string(finErr.Code),
		})
		return
	}

	slog.Error("Unexpected finance error", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeFinanceInternalError),
	})
}

// getStatusCodeForFinanceError maps finance error codes to HTTP status codes.
func (c *FinanceController) getStatusCodeForFinanceError(code domainerror.FinanceErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidMetric,
		domainerror.ErrCodeMissingMetric,
		domainerror.ErrCodeInvalidPreset,
		domainerror.ErrCodeInvalidPage,
		domainerror.ErrCodeInvalidWindow:
		return http.StatusBadRequest
	case domainerror.ErrCodeRecordSourceUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
