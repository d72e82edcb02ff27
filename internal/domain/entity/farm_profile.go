// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// FarmProfile holds the account settings relevant to the finance dashboard.
type FarmProfile struct {
	UserID    uuid.UUID
	FarmName  string
	SubTypes  []string // Configured business occupations, in display order
	UpdatedAt time.Time
}
