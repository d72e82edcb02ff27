// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/farm-manager/backend/internal/application/adapter"
	"github.com/farm-manager/backend/internal/domain/entity"
	domainerror "github.com/farm-manager/backend/internal/domain/error"
)

// accountRecords is everything recorded for one account.
type accountRecords struct {
	sales    []*entity.Sale
	expenses []*entity.Expense
	profile  *entity.FarmProfile
}

// configuredSubTypes returns the sub-types set up on the farm profile, if any.
func (r *accountRecords) configuredSubTypes() []string {
	if r.profile == nil {
		return nil
	}
	return r.profile.SubTypes
}

// recordLoader fetches an account's sales, expenses and farm profile concurrently.
type recordLoader struct {
	saleRepo    adapter.SaleRepository
	expenseRepo adapter.ExpenseRepository
	profileRepo adapter.FarmProfileRepository
}

func newRecordLoader(
	saleRepo adapter.SaleRepository,
	expenseRepo adapter.ExpenseRepository,
	profileRepo adapter.FarmProfileRepository,
) *recordLoader {
	return &recordLoader{
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
		profileRepo: profileRepo,
	}
}

// load returns the account's records. Any failing source fails the whole load.
func (l *recordLoader) load(ctx context.Context, userID uuid.UUID) (*accountRecords, error) {
	records := &accountRecords{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sales, err := l.saleRepo.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list sales: %w", err)
		}
		records.sales = sales
		return nil
	})

	g.Go(func() error {
		expenses, err := l.expenseRepo.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}
		records.expenses = expenses
		return nil
	})

	g.Go(func() error {
		profile, err := l.profileRepo.GetByUserID(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get farm profile: %w", err)
		}
		records.profile = profile
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, domainerror.NewFinanceError(
			domainerror.ErrCodeRecordSourceUnavailable,
			domainerror.ErrRecordSourceUnavailable.Error(),
			err,
		)
	}

	return records, nil
}
