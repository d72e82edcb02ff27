// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/farm-manager/backend/internal/domain/entity"
)

// FarmProfileModel represents the farm_profiles table in the database.
type FarmProfileModel struct {
	UserID    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	FarmName  string         `gorm:"type:varchar(255)"`
	SubTypes  pq.StringArray `gorm:"column:sub_types;type:text"`
	UpdatedAt time.Time      `gorm:"not null"`
}

// TableName returns the table name for the FarmProfileModel.
func (FarmProfileModel) TableName() string {
	return "farm_profiles"
}

// ToEntity converts a FarmProfileModel to a domain FarmProfile entity.
func (m *FarmProfileModel) ToEntity() *entity.FarmProfile {
	return &entity.FarmProfile{
		UserID:    m.UserID,
		FarmName:  m.FarmName,
		SubTypes:  append([]string(nil), m.SubTypes...),
		UpdatedAt: m.UpdatedAt,
	}
}

// FarmProfileFromEntity creates a FarmProfileModel from a domain FarmProfile entity.
func FarmProfileFromEntity(profile *entity.FarmProfile) *FarmProfileModel {
	return &FarmProfileModel{
		UserID:    profile.UserID,
		FarmName:  profile.FarmName,
		SubTypes:  pq.StringArray(append([]string(nil), profile.SubTypes...)),
		UpdatedAt: profile.UpdatedAt,
	}
}

// AllModels lists every model the service migrates.
func AllModels() []any {
	return []any{&SaleModel{}, &ExpenseModel{}, &FarmProfileModel{}}
}
