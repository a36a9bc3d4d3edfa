package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/kuxall/InventoryManagementSystem/internal/model"
	"github.com/kuxall/InventoryManagementSystem/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedExportRepo(items ...model.Item) *stubItemRepo {
	repo := &stubItemRepo{}
	for i := range items {
		items[i].Position = int64(i + 1)
	}
	repo.items = items
	return repo
}

func TestExportCSVEmptyCatalog(t *testing.T) {
	svc := service.NewExportService(seedExportRepo())
	var buf bytes.Buffer

	require.NoError(t, svc.ExportCSV(context.Background(), &buf))
	assert.Equal(t, "item_id,name,category,quantity,unit_price,image_path,threshold\n", buf.String())
}

func TestExportCSVRows(t *testing.T) {
	svc := service.NewExportService(seedExportRepo(
		model.Item{ItemID: "SKU1", Name: "Widget", Category: "Tools", Quantity: 5,
			Price: decimal.RequireFromString("2.50"), ImagePath: "/img/widget.png", Threshold: 10},
		model.Item{ItemID: "SKU2", Name: "Gadget", Category: "Tools", Quantity: 100,
			Price: decimal.RequireFromString("19.9"), Threshold: 0},
	))
	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "item_id,name,category,quantity,unit_price,image_path,threshold", lines[0])
	assert.Equal(t, "SKU1,Widget,Tools,5,2.50,/img/widget.png,10", lines[1])
	// 19.9 renders with exactly two fractional digits
	assert.Equal(t, "SKU2,Gadget,Tools,100,19.90,,0", lines[2])
}

func TestExportCSVQuotesEmbeddedDelimiters(t *testing.T) {
	svc := service.NewExportService(seedExportRepo(
		model.Item{ItemID: "SKU1", Name: `Bolt, hex "large"`, Category: "Fasteners",
			Quantity: 7, Price: decimal.RequireFromString("0.35"), Threshold: 2},
	))
	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	// The output must survive a round trip through a conforming reader.
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, service.ExportColumns, records[0])
	assert.Equal(t, `Bolt, hex "large"`, records[1][1])
}

func TestExportCSVPreservesInsertionOrder(t *testing.T) {
	svc := service.NewExportService(seedExportRepo(
		model.Item{ItemID: "ZZZ", Name: "Last alphabetically", Quantity: 1, Price: decimal.New(1, 0)},
		model.Item{ItemID: "AAA", Name: "First alphabetically", Quantity: 1, Price: decimal.New(1, 0)},
	))
	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "ZZZ", records[1][0])
	assert.Equal(t, "AAA", records[2][0])
}

func TestExportCSVStorageFailure(t *testing.T) {
	svc := service.NewExportService(&stubItemRepo{failWith: errStorageDown})
	var buf bytes.Buffer

	err := svc.ExportCSV(context.Background(), &buf)
	assert.ErrorIs(t, err, errStorageDown)
	assert.Zero(t, buf.Len(), "no partial output on failure")
}
