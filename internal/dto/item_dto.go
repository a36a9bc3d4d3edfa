package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateItemRequest struct {
	ItemID    string          `json:"item_id"    validate:"required,max=20"`
	Name      string          `json:"name"       validate:"required,max=100"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"      validate:"required"`
	ImagePath string          `json:"image_path"`
	Threshold int             `json:"threshold"  validate:"min=0"`
}

// UpdateItemRequest replaces every mutable field at once — there are no
// partial updates. ItemID itself is immutable.
type UpdateItemRequest struct {
	Name      string          `json:"name"       validate:"required,max=100"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"   validate:"min=0"`
	Price     decimal.Decimal `json:"price"      validate:"required"`
	ImagePath string          `json:"image_path"`
	Threshold int             `json:"threshold"  validate:"min=0"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type ItemFilter struct {
	// Query is matched case-insensitively against item_id, name, and
	// category. Empty means no filter.
	Query string `form:"q"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemResponse struct {
	ItemID     string          `json:"item_id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	ImagePath  string          `json:"image_path"`
	Threshold  int             `json:"threshold"`
	TotalValue decimal.Decimal `json:"total_value"`
}

type ItemListResponse struct {
	Data  []ItemResponse `json:"data"`
	Total int            `json:"total"`
}

// AlertResponse is one low-stock alert row, reported while quantity sits
// below the configured threshold.
type AlertResponse struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}
