package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/kuxall/InventoryManagementSystem/internal/apperr"
	"github.com/kuxall/InventoryManagementSystem/internal/repository"
)

// ExportColumns is the fixed header row of every catalog export, in column
// order. Consumers parse by position.
var ExportColumns = []string{
	"item_id", "name", "category", "quantity", "unit_price", "image_path", "threshold",
}

// ExportService serializes the current snapshot to delimited text.
type ExportService interface {
	// ExportCSV writes the catalog as RFC 4180 CSV: header row, then one
	// row per record in insertion order, prices fixed to 2 fractional
	// digits, \n-terminated lines. Field values containing the delimiter
	// or newlines are quoted rather than corrupting the output.
	ExportCSV(ctx context.Context, w io.Writer) error
}

type exportService struct {
	repo repository.ItemRepository
}

func NewExportService(repo repository.ItemRepository) ExportService {
	return &exportService{repo: repo}
}

func (s *exportService) ExportCSV(ctx context.Context, w io.Writer) error {
	items, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return &apperr.StorageError{Op: "write csv header", Cause: err}
	}
	for _, i := range items {
		row := []string{
			i.ItemID,
			i.Name,
			i.Category,
			strconv.Itoa(i.Quantity),
			i.Price.StringFixed(2),
			i.ImagePath,
			strconv.Itoa(i.Threshold),
		}
		if err := cw.Write(row); err != nil {
			return &apperr.StorageError{Op: "write csv row", Cause: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return &apperr.StorageError{Op: "flush csv", Cause: err}
	}
	return nil
}
