// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farm-manager/backend/internal/application/adapter"
	"github.com/farm-manager/backend/internal/domain/entity"
	"github.com/farm-manager/backend/internal/integration/persistence/model"
)

// farmProfileRepository implements the adapter.FarmProfileRepository interface.
type farmProfileRepository struct {
	db *gorm.DB
}

// NewFarmProfileRepository creates a new farm profile repository instance.
func NewFarmProfileRepository(db *gorm.DB) adapter.FarmProfileRepository {
	return &farmProfileRepository{
		db: db,
	}
}

// GetByUserID retrieves the farm profile of a user. Returns nil, nil when none exists.
func (r *farmProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.FarmProfile, error) {
	var profileModel model.FarmProfileModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return profileModel.ToEntity(), nil
}
