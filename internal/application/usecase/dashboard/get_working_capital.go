// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/farm-manager/backend/internal/domain/entity"
)

// GetWorkingCapitalInput represents the input for the working capital card.
type GetWorkingCapitalInput struct {
	UserID   uuid.UUID
	SubTypes []string
}

// GetWorkingCapitalOutput holds today's figures and the month so far.
type GetWorkingCapitalOutput struct {
	Today       time.Time
	TodayEntry  entity.DailyEntry
	MonthToDate PeriodSummary
	SubTypes    []string
	Diagnostics entity.RecordDiagnostics
}

// GetWorkingCapitalUseCase handles the working capital card.
type GetWorkingCapitalUseCase struct {
	seriesUC *GetDailySeriesUseCase
}

// NewGetWorkingCapitalUseCase creates a new GetWorkingCapitalUseCase instance.
func NewGetWorkingCapitalUseCase(seriesUC *GetDailySeriesUseCase) *GetWorkingCapitalUseCase {
	return &GetWorkingCapitalUseCase{seriesUC: seriesUC}
}

// Execute returns today's entry and the month-to-date summary.
func (uc *GetWorkingCapitalUseCase) Execute(ctx context.Context, input GetWorkingCapitalInput) (*GetWorkingCapitalOutput, error) {
	seriesOut, err := uc.seriesUC.Execute(ctx, GetDailySeriesInput{UserID: input.UserID, SubTypes: input.SubTypes})
	if err != nil {
		return nil, err
	}
	snapshot := seriesOut.Snapshot

	todayEntry, ok := FindEntry(snapshot.Series, snapshot.Today)
	if !ok {
		todayEntry = BuildDailySeries(snapshot.Today, 1, snapshot.SubTypes, nil)[0]
	}

	monthToDate := SelectInterval(snapshot.Today, PresetMonthly, nil, nil).ClipEnd(snapshot.Today)

	return &GetWorkingCapitalOutput{
		Today:       snapshot.Today,
		TodayEntry:  todayEntry,
		MonthToDate: Summarize(snapshot.Series, monthToDate),
		SubTypes:    snapshot.SubTypes,
		Diagnostics: snapshot.Diagnostics,
	}, nil
}
