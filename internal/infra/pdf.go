package infra

// pdf.go — low-stock report generation using go-pdf/fpdf.
// Produces an A4 report with a header, generation timestamp, and one table
// row per item sitting below its reorder threshold.
//
// The output file is saved to storagePath/low_stock_{timestamp}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kuxall/InventoryManagementSystem/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateLowStockReportPDF renders the current alert set to a PDF file.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateLowStockReportPDF(alerts []dto.AlertResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	now := time.Now()
	fileName := fmt.Sprintf("low_stock_%s.pdf", now.Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, "Low Stock Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, "Generated "+now.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(alerts) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(contentW, 8, "All items are at or above their reorder threshold.", "", 1, "L", false, 0, "")
	} else {
		// ── Table header ─────────────────────────────────────────────────────
		colW := []float64{40, contentW - 100, 30, 30}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		headers := []string{"Item ID", "Name", "Quantity", "Threshold"}
		for i, h := range headers {
			pdf.CellFormat(colW[i], 8, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		// ── Rows ─────────────────────────────────────────────────────────────
		pdf.SetFont("Helvetica", "", 10)
		for _, a := range alerts {
			pdf.CellFormat(colW[0], 7, a.ItemID, "1", 0, "L", false, 0, "")
			pdf.CellFormat(colW[1], 7, a.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(colW[2], 7, strconv.Itoa(a.Quantity), "1", 0, "R", false, 0, "")
			pdf.CellFormat(colW[3], 7, strconv.Itoa(a.Threshold), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}

		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 7, fmt.Sprintf("%d item(s) below threshold", len(alerts)), "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write report: %w", err)
	}
	return filePath, nil
}
