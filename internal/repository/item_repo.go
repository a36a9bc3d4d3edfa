package repository

import (
	"context"
	"errors"

	"github.com/kuxall/InventoryManagementSystem/internal/apperr"
	"github.com/kuxall/InventoryManagementSystem/internal/model"

	"gorm.io/gorm"
)

// ItemRepository is the storage contract for inventory records. Services
// depend on this interface, not on the concrete GORM implementation, so unit
// tests can substitute an in-memory implementation.
//
// Every error leaving this interface belongs to the apperr taxonomy:
// DuplicateKeyError, NotFoundError, or StorageError. GORM errors never
// escape upward.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByItemID(ctx context.Context, itemID string) (*model.Item, error)
	// List returns the full snapshot ordered by insertion position.
	List(ctx context.Context) ([]model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, itemID string) error
	Count(ctx context.Context) (int64, error)
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &apperr.DuplicateKeyError{ItemID: item.ItemID}
		}
		return &apperr.StorageError{Op: "insert item", Cause: err}
	}
	return nil
}

func (r *itemRepo) FindByItemID(ctx context.Context, itemID string) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{ItemID: itemID}
		}
		return nil, &apperr.StorageError{Op: "find item", Cause: err}
	}
	return &item, nil
}

func (r *itemRepo) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Order("position ASC").Find(&items).Error
	if err != nil {
		return nil, &apperr.StorageError{Op: "list items", Cause: err}
	}
	return items, nil
}

// Update replaces all mutable fields in a single statement so a failed write
// leaves the stored record untouched.
func (r *itemRepo) Update(ctx context.Context, item *model.Item) error {
	res := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("item_id = ?", item.ItemID).
		Updates(map[string]interface{}{
			"name":       item.Name,
			"category":   item.Category,
			"quantity":   item.Quantity,
			"price":      item.Price,
			"image_path": item.ImagePath,
			"threshold":  item.Threshold,
		})
	if res.Error != nil {
		return &apperr.StorageError{Op: "update item", Cause: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperr.NotFoundError{ItemID: item.ItemID}
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, itemID string) error {
	res := r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&model.Item{})
	if res.Error != nil {
		return &apperr.StorageError{Op: "delete item", Cause: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperr.NotFoundError{ItemID: itemID}
	}
	return nil
}

func (r *itemRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Item{}).Count(&n).Error; err != nil {
		return 0, &apperr.StorageError{Op: "count items", Cause: err}
	}
	return n, nil
}
