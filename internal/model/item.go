package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a single inventory record. ItemID is the caller-assigned natural
// key shown to operators; ID is the surrogate key used for foreign keys.
// Position preserves insertion order so listings are reproducible.
type Item struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID   string    `gorm:"uniqueIndex;not null;size:20"`
	Name     string    `gorm:"index;not null;size:100"`
	Category string
	Quantity int             `gorm:"not null;default:0"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// ImagePath is an opaque reference; the server never opens it.
	ImagePath string
	// Threshold is the reorder trigger level. An alert fires while
	// Quantity < Threshold. Zero disables alerting for the item.
	Threshold int   `gorm:"not null;default:0"`
	Position  int64 `gorm:"autoIncrement;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalValue is derived, never stored.
func (i *Item) TotalValue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// BelowThreshold reports whether the item should appear in low-stock alerts.
func (i *Item) BelowThreshold() bool {
	return i.Quantity < i.Threshold
}
