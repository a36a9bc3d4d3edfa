package service_test

import (
	"context"
	"errors"

	"github.com/kuxall/InventoryManagementSystem/internal/apperr"
	"github.com/kuxall/InventoryManagementSystem/internal/dto"
	"github.com/kuxall/InventoryManagementSystem/internal/model"
	"github.com/kuxall/InventoryManagementSystem/internal/repository"
	"github.com/kuxall/InventoryManagementSystem/internal/service"

	"github.com/google/uuid"
)

// stubItemRepo is an in-memory ItemRepository. It keeps records in a slice so
// tests can assert on insertion order, and mirrors the error contract of the
// real implementation.
type stubItemRepo struct {
	items []model.Item
	// failWith, when set, is returned by every method. Used to drive the
	// storage-failure paths.
	failWith error
}

var _ repository.ItemRepository = (*stubItemRepo)(nil)

func (r *stubItemRepo) Create(_ context.Context, item *model.Item) error {
	if r.failWith != nil {
		return r.failWith
	}
	for _, it := range r.items {
		if it.ItemID == item.ItemID {
			return &apperr.DuplicateKeyError{ItemID: item.ItemID}
		}
	}
	item.ID = uuid.New()
	item.Position = int64(len(r.items) + 1)
	r.items = append(r.items, *item)
	return nil
}

func (r *stubItemRepo) FindByItemID(_ context.Context, itemID string) (*model.Item, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, it := range r.items {
		if it.ItemID == itemID {
			found := it
			return &found, nil
		}
	}
	return nil, &apperr.NotFoundError{ItemID: itemID}
}

func (r *stubItemRepo) List(_ context.Context) ([]model.Item, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]model.Item, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *stubItemRepo) Update(_ context.Context, item *model.Item) error {
	if r.failWith != nil {
		return r.failWith
	}
	for i, it := range r.items {
		if it.ItemID == item.ItemID {
			item.ID = it.ID
			item.Position = it.Position
			r.items[i] = *item
			return nil
		}
	}
	return &apperr.NotFoundError{ItemID: item.ItemID}
}

func (r *stubItemRepo) Delete(_ context.Context, itemID string) error {
	if r.failWith != nil {
		return r.failWith
	}
	for i, it := range r.items {
		if it.ItemID == itemID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return &apperr.NotFoundError{ItemID: itemID}
}

func (r *stubItemRepo) Count(_ context.Context) (int64, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	return int64(len(r.items)), nil
}

// recordingNotifier captures every alert batch handed to it.
type recordingNotifier struct {
	batches [][]dto.AlertResponse
}

var _ service.AlertNotifier = (*recordingNotifier)(nil)

func (n *recordingNotifier) NotifyLowStock(_ context.Context, alerts []dto.AlertResponse) {
	n.batches = append(n.batches, alerts)
}

var errStorageDown = errors.New("storage down")
