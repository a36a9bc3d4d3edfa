package service_test

import (
	"context"
	"testing"

	"github.com/kuxall/InventoryManagementSystem/internal/apperr"
	"github.com/kuxall/InventoryManagementSystem/internal/dto"
	"github.com/kuxall/InventoryManagementSystem/internal/model"
	"github.com/kuxall/InventoryManagementSystem/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminSession = model.Session{Username: "admin", Role: model.RoleAdmin}
	userSession  = model.Session{Username: "viewer", Role: model.RoleUser}
)

func newItemService(repo *stubItemRepo) service.ItemService {
	return service.NewItemService(repo, nil, nil)
}

func createReq(itemID, name string, qty int, price string, threshold int) dto.CreateItemRequest {
	return dto.CreateItemRequest{
		ItemID:    itemID,
		Name:      name,
		Category:  "General",
		Quantity:  qty,
		Price:     decimal.RequireFromString(price),
		Threshold: threshold,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo)
	ctx := context.Background()

	resp, err := svc.Create(ctx, adminSession, createReq("SKU1", "Widget", 5, "2.50", 10))
	require.NoError(t, err)
	assert.Equal(t, "SKU1", resp.ItemID)
	assert.Equal(t, "12.50", resp.TotalValue.StringFixed(2))

	got, err := svc.Get(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 5, got.Quantity)
}

func TestCreateDuplicateItemID(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminSession, createReq("SKU1", "Widget", 5, "2.50", 10))
	require.NoError(t, err)

	_, err = svc.Create(ctx, adminSession, createReq("SKU1", "Other", 3, "1.00", 1))
	require.Error(t, err)
	assert.True(t, apperr.IsDuplicateKey(err))
	assert.Len(t, repo.items, 1, "failed create must not change the stored set")
}

func TestCreateValidationRejectedBeforeStorage(t *testing.T) {
	repo := &stubItemRepo{failWith: errStorageDown}
	svc := newItemService(repo)

	_, err := svc.Create(context.Background(), adminSession, createReq("", "Widget", 5, "2.50", 10))
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "item_id", verr.Field)
	assert.Equal(t, "empty", verr.Reason)
}

func TestMutationsDeniedForNonAdmin(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminSession, createReq("SKU1", "Widget", 5, "2.50", 10))
	require.NoError(t, err)

	sessions := []model.Session{userSession, {}} // regular user and unauthenticated
	for _, sess := range sessions {
		_, err = svc.Create(ctx, sess, createReq("SKU2", "Gadget", 3, "1.00", 1))
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

		_, err = svc.Update(ctx, sess, "SKU1", dto.UpdateItemRequest{
			Name: "Hacked", Quantity: 0, Price: decimal.RequireFromString("0.01"),
		})
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

		err = svc.Delete(ctx, sess, "SKU1")
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	}

	// The stored set is untouched by any of the denied calls.
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Widget", list.Data[0].Name)
}

func TestReadsAllowedForAnyRole(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminSession, createReq("SKU1", "Widget", 5, "2.50", 10))
	require.NoError(t, err)

	// Reads carry no session at all — the service only gates mutations.
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestUpdateReplacesAllFields(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminSession, createReq("SKU1", "Widget", 5, "2.50", 10))
	require.NoError(t, err)

	resp, err := svc.Update(ctx, adminSession, "SKU1", dto.UpdateItemRequest{
		Name:      "Widget v2",
		Category:  "Hardware",
		Quantity:  0, // zero is legal on update
		Price:     decimal.RequireFromString("3.75"),
		Threshold: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", resp.Name)
	assert.Equal(t, 0, resp.Quantity)
	assert.Equal(t, "3.75", resp.Price.StringFixed(2))
	assert.Equal(t, "0.00", resp.TotalValue.StringFixed(2))
}

func TestUpdateUnknownItem(t *testing.T) {
	svc := newItemService(&stubItemRepo{})

	_, err := svc.Update(context.Background(), adminSession, "GHOST", dto.UpdateItemRequest{
		Name: "Nope", Price: decimal.RequireFromString("1.00"),
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminSession, createReq("SKU1", "Widget", 5, "2.50", 10))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, adminSession, "SKU1"))
	assert.True(t, apperr.IsNotFound(svc.Delete(ctx, adminSession, "SKU1")))

	_, err = svc.Get(ctx, "SKU1")
	assert.True(t, apperr.IsNotFound(err))
}

func TestListPreservesInsertionOrder(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo)
	ctx := context.Background()

	for _, id := range []string{"ZZZ", "AAA", "MMM"} {
		_, err := svc.Create(ctx, adminSession, createReq(id, "Item "+id, 5, "1.00", 1))
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, list.Total)
	assert.Equal(t, "ZZZ", list.Data[0].ItemID)
	assert.Equal(t, "AAA", list.Data[1].ItemID)
	assert.Equal(t, "MMM", list.Data[2].ItemID)
}

func TestSearch(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo)
	ctx := context.Background()

	seed := []struct{ id, name, cat string }{
		{"SKU1", "Steel Hammer", "Tools"},
		{"SKU2", "Copper Wire", "Electrical"},
		{"BOLT-9", "Hex Bolt", "Tools"},
	}
	for _, s := range seed {
		_, err := svc.Create(ctx, adminSession, dto.CreateItemRequest{
			ItemID: s.id, Name: s.name, Category: s.cat,
			Quantity: 5, Price: decimal.RequireFromString("1.00"), Threshold: 1,
		})
		require.NoError(t, err)
	}

	t.Run("empty query returns full snapshot", func(t *testing.T) {
		res, err := svc.Search(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
	})

	t.Run("case-insensitive name match", func(t *testing.T) {
		res, err := svc.Search(ctx, "hammer")
		require.NoError(t, err)
		require.Equal(t, 1, res.Total)
		assert.Equal(t, "SKU1", res.Data[0].ItemID)
	})

	t.Run("matches category too", func(t *testing.T) {
		res, err := svc.Search(ctx, "TOOLS")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
	})

	t.Run("matches item id", func(t *testing.T) {
		res, err := svc.Search(ctx, "bolt-9")
		require.NoError(t, err)
		require.Equal(t, 1, res.Total)
		assert.Equal(t, "BOLT-9", res.Data[0].ItemID)
	})

	t.Run("no match yields empty list, not error", func(t *testing.T) {
		res, err := svc.Search(ctx, "plutonium")
		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.NotNil(t, res.Data)
	})

	t.Run("regex query", func(t *testing.T) {
		res, err := svc.Search(ctx, "^SKU[0-9]$")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
	})

	t.Run("broken regex degrades to literal", func(t *testing.T) {
		res, err := svc.Search(ctx, "bolt-9(")
		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
	})

	t.Run("result preserves insertion order", func(t *testing.T) {
		res, err := svc.Search(ctx, "tools")
		require.NoError(t, err)
		require.Equal(t, 2, res.Total)
		assert.Equal(t, "SKU1", res.Data[0].ItemID)
		assert.Equal(t, "BOLT-9", res.Data[1].ItemID)
	})
}

func TestLowStockLifecycle(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo)
	ctx := context.Background()

	// quantity 5 < threshold 10 → alert
	_, err := svc.Create(ctx, adminSession, createReq("SKU1", "Widget", 5, "2.50", 10))
	require.NoError(t, err)

	alerts, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, dto.AlertResponse{ItemID: "SKU1", Name: "Widget", Quantity: 5, Threshold: 10}, alerts[0])

	// restock to 20 → alert clears
	_, err = svc.Update(ctx, adminSession, "SKU1", dto.UpdateItemRequest{
		Name: "Widget", Category: "General", Quantity: 20,
		Price: decimal.RequireFromString("2.50"), Threshold: 10,
	})
	require.NoError(t, err)

	alerts, err = svc.LowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestLowStockBoundaryIsExclusive(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo)
	ctx := context.Background()

	// quantity == threshold must NOT alert
	_, err := svc.Create(ctx, adminSession, createReq("EQ", "AtThreshold", 10, "1.00", 10))
	require.NoError(t, err)
	// one below must alert
	_, err = svc.Create(ctx, adminSession, createReq("LOW", "BelowThreshold", 9, "1.00", 10))
	require.NoError(t, err)
	// zero threshold can never alert
	_, err = svc.Create(ctx, adminSession, createReq("ZT", "ZeroThreshold", 1, "1.00", 0))
	require.NoError(t, err)

	alerts, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "LOW", alerts[0].ItemID)
}

func TestLowStockReportsInInsertionOrder(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo)
	ctx := context.Background()

	for _, id := range []string{"C3", "A1", "B2"} {
		_, err := svc.Create(ctx, adminSession, createReq(id, "Item "+id, 1, "1.00", 5))
		require.NoError(t, err)
	}

	alerts, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, "C3", alerts[0].ItemID)
	assert.Equal(t, "A1", alerts[1].ItemID)
	assert.Equal(t, "B2", alerts[2].ItemID)
}

func TestMutationNotifiesLowStock(t *testing.T) {
	repo := &stubItemRepo{}
	notifier := &recordingNotifier{}
	svc := service.NewItemService(repo, nil, notifier)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminSession, createReq("SKU1", "Widget", 5, "2.50", 10))
	require.NoError(t, err)

	require.Len(t, notifier.batches, 1)
	require.Len(t, notifier.batches[0], 1)
	assert.Equal(t, "SKU1", notifier.batches[0][0].ItemID)

	// Healthy mutations don't notify.
	_, err = svc.Update(ctx, adminSession, "SKU1", dto.UpdateItemRequest{
		Name: "Widget", Quantity: 20,
		Price: decimal.RequireFromString("2.50"), Threshold: 10,
	})
	require.NoError(t, err)
	assert.Len(t, notifier.batches, 1)
}

func TestStorageFailurePropagates(t *testing.T) {
	svc := newItemService(&stubItemRepo{failWith: errStorageDown})
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, errStorageDown)

	_, err = svc.Search(ctx, "anything")
	assert.ErrorIs(t, err, errStorageDown)

	_, err = svc.LowStock(ctx)
	assert.ErrorIs(t, err, errStorageDown)

	_, err = svc.Create(ctx, adminSession, createReq("SKU1", "Widget", 5, "2.50", 10))
	assert.ErrorIs(t, err, errStorageDown)
}
