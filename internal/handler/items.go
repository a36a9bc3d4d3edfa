package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/kuxall/InventoryManagementSystem/internal/apierror"
	"github.com/kuxall/InventoryManagementSystem/internal/dto"
	"github.com/kuxall/InventoryManagementSystem/internal/infra"
	"github.com/kuxall/InventoryManagementSystem/internal/middleware"
	"github.com/kuxall/InventoryManagementSystem/internal/service"

	"github.com/gin-gonic/gin"
)

type ItemsHandler struct {
	svc        service.ItemService
	exporter   service.ExportService
	reportPath string
}

func NewItemsHandler(svc service.ItemService, exporter service.ExportService, reportPath string) *ItemsHandler {
	return &ItemsHandler{svc: svc, exporter: exporter, reportPath: reportPath}
}

// Create godoc
// @Summary Create inventory item
// @Tags items
// @Accept json
// @Produce json
// @Param body body dto.CreateItemRequest true "Item"
// @Success 201 {object} dto.ItemResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/items [post]
func (h *ItemsHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.GetSession(c), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ItemsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("item_id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns the catalog, optionally filtered by the q query parameter.
// An empty q returns the full snapshot in insertion order.
func (h *ItemsHandler) List(c *gin.Context) {
	var filter dto.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query parameters"))
		return
	}
	resp, err := h.svc.Search(c.Request.Context(), filter.Query)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) Update(c *gin.Context) {
	var req dto.UpdateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), middleware.GetSession(c), c.Param("item_id"), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.GetSession(c), c.Param("item_id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportCSV streams the catalog as a CSV download.
func (h *ItemsHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exporter.ExportCSV(c.Request.Context(), &buf); err != nil {
		writeDomainError(c, err)
		return
	}
	filename := "inventory_" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Alerts returns the current low-stock alert set.
func (h *ItemsHandler) Alerts(c *gin.Context) {
	alerts, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// AlertsReport renders the current alert set as a PDF and serves the file.
func (h *ItemsHandler) AlertsReport(c *gin.Context) {
	alerts, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	path, err := infra.GenerateLowStockReportPDF(alerts, h.reportPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to generate report"))
		return
	}
	c.FileAttachment(path, "low_stock_report.pdf")
}
