// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farm-manager/backend/internal/application/adapter"
	"github.com/farm-manager/backend/internal/domain/entity"
	"github.com/farm-manager/backend/internal/integration/persistence/model"
)

// saleRepository implements the adapter.SaleRepository interface.
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository instance.
func NewSaleRepository(db *gorm.DB) adapter.SaleRepository {
	return &saleRepository{
		db: db,
	}
}

// ListByUser retrieves all sales for a given user.
// Rows whose quantities or prices are not numbers are returned marked Malformed.
func (r *saleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Sale, error) {
	var saleModels []model.SaleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&saleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	sales := make([]*entity.Sale, len(saleModels))
	for i := range saleModels {
		sales[i] = saleModels[i].ToEntity()
		if sales[i].Malformed != "" {
			slog.Warn("Read malformed sale row", "saleID", saleModels[i].ID, "reason", sales[i].Malformed)
		}
	}
	return sales, nil
}
