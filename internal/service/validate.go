package service

import (
	"regexp"

	"github.com/kuxall/InventoryManagementSystem/internal/apperr"
	"github.com/kuxall/InventoryManagementSystem/internal/model"
)

var itemIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

const (
	maxItemIDLen = 20
	maxNameLen   = 100
)

// ValidateItem checks a candidate record field by field and returns the
// first failure, so every rejection carries exactly one field and one
// reason. strictQuantity applies the creation rule (quantity must be
// positive); updates only require it to be non-negative.
//
// The function is pure: no storage access, same input, same answer.
func ValidateItem(item *model.Item, strictQuantity bool) *apperr.ValidationError {
	if item.ItemID == "" {
		return &apperr.ValidationError{Field: "item_id", Reason: "empty"}
	}
	if len(item.ItemID) > maxItemIDLen {
		return &apperr.ValidationError{Field: "item_id", Reason: "longer than 20 characters"}
	}
	if !itemIDPattern.MatchString(item.ItemID) {
		return &apperr.ValidationError{Field: "item_id", Reason: "must contain only letters, digits, '_' or '-'"}
	}

	if item.Name == "" {
		return &apperr.ValidationError{Field: "name", Reason: "empty"}
	}
	if len(item.Name) > maxNameLen {
		return &apperr.ValidationError{Field: "name", Reason: "longer than 100 characters"}
	}

	if strictQuantity {
		if item.Quantity <= 0 {
			return &apperr.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
		}
	} else if item.Quantity < 0 {
		return &apperr.ValidationError{Field: "quantity", Reason: "must not be negative"}
	}

	if !item.Price.IsPositive() {
		return &apperr.ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	// decimal exponents are negative for fractional digits: 2.999 has
	// exponent -3. Reject rather than round.
	if item.Price.Exponent() < -2 {
		return &apperr.ValidationError{Field: "price", Reason: "too many fractional digits"}
	}

	if item.Threshold < 0 {
		return &apperr.ValidationError{Field: "threshold", Reason: "must not be negative"}
	}

	return nil
}
