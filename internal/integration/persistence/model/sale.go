// Package model defines database models for persistence layer.
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/domain/entity"
)

// SaleModel represents the sales table in the database.
// Items, quantities and unit prices are parallel arrays; an empty price means none was recorded.
type SaleModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Date          string         `gorm:"column:date;type:varchar(40);not null"`
	SubType       string         `gorm:"column:sub_type;type:varchar(100)"`
	Items         pq.StringArray `gorm:"type:text"`
	Quantities    pq.StringArray `gorm:"type:text"`
	PricesPerUnit pq.StringArray `gorm:"column:prices_per_unit;type:text"`
	CreatedAt     time.Time      `gorm:"not null"`
}

// TableName returns the table name for the SaleModel.
func (SaleModel) TableName() string {
	return "sales"
}

// ToEntity converts a SaleModel to a domain Sale entity.
// A quantity or price that is not a number yields a sale marked Malformed, without lines.
func (m *SaleModel) ToEntity() *entity.Sale {
	sale := &entity.Sale{
		ID:      m.ID,
		UserID:  m.UserID,
		Date:    m.Date,
		SubType: m.SubType,
	}

	quantities, prices, err := m.parseLines()
	if err != nil {
		sale.Malformed = err.Error()
		return sale
	}

	sale.Items = append([]string(nil), m.Items...)
	sale.Quantities = quantities
	sale.PricesPerUnit = prices
	return sale
}

func (m *SaleModel) parseLines() ([]decimal.Decimal, []decimal.NullDecimal, error) {
	quantities := make([]decimal.Decimal, len(m.Quantities))
	for i, raw := range m.Quantities {
		q, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid quantity %q at line %d: %w", raw, i, err)
		}
		quantities[i] = q
	}

	prices := make([]decimal.NullDecimal, len(m.PricesPerUnit))
	for i, raw := range m.PricesPerUnit {
		if raw == "" {
			continue
		}
		p, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid price %q at line %d: %w", raw, i, err)
		}
		prices[i] = decimal.NewNullDecimal(p)
	}

	return quantities, prices, nil
}

// SaleFromEntity creates a SaleModel from a domain Sale entity.
func SaleFromEntity(sale *entity.Sale) *SaleModel {
	quantities := make(pq.StringArray, len(sale.Quantities))
	for i, q := range sale.Quantities {
		quantities[i] = q.String()
	}

	prices := make(pq.StringArray, len(sale.PricesPerUnit))
	for i, p := range sale.PricesPerUnit {
		if p.Valid {
			prices[i] = p.Decimal.String()
		}
	}

	return &SaleModel{
		ID:            sale.ID,
		UserID:        sale.UserID,
		Date:          sale.Date,
		SubType:       sale.SubType,
		Items:         pq.StringArray(append([]string(nil), sale.Items...)),
		Quantities:    quantities,
		PricesPerUnit: prices,
		CreatedAt:     time.Now().UTC(),
	}
}
