package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

const exportPageSize = 500

type ExportHandler struct {
	products repository.ProductsStore
	logger   *logrus.Logger
}

func NewExportHandler(products repository.ProductsStore, logger *logrus.Logger) *ExportHandler {
	return &ExportHandler{products: products, logger: logger}
}

var exportColumns = []string{
	"id", "title", "slug", "brand", "categoryId", "pricingMode", "currency",
	"price", "salePrice", "compareAtPrice", "offerStart", "offerEnd",
	"effectivePrice", "stock", "totalStock", "variantCount", "isActive", "createdAt",
}

// ExportProducts downloads the full catalog as CSV or XLSX
// @Summary Export products
// @Description Download the full product catalog as a CSV or XLSX file
// @Tags products
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "Export format: csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/products/export [get]
func (h *ExportHandler) ExportProducts(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", "Only csv and xlsx formats are supported", "format")
		return
	}

	products, err := h.collectProducts(c)
	if err != nil {
		h.logger.WithError(err).Error("Failed to collect products for export")
		respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export products", "")
		return
	}

	if format == "xlsx" {
		h.writeXLSX(c, products)
		return
	}
	h.writeCSV(c, products)
}

// collectProducts pages through the full listing so exports are not
// capped at the API page limit.
func (h *ExportHandler) collectProducts(c *gin.Context) ([]models.Product, error) {
	q := models.ProductListQuery{
		Page:     1,
		Limit:    exportPageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Brand:    strings.TrimSpace(c.Query("brand")),
		IsActive: parseBoolQuery(c, "isActive"),
		Sort:     "createdAt",
	}

	var all []models.Product
	for {
		page, total, err := h.products.List(c.Request.Context(), q)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if int64(len(all)) >= total || len(page) == 0 {
			return all, nil
		}
		q.Page++
	}
}

func exportRow(p *models.Product) []string {
	now := time.Now()
	return []string{
		p.ID.String(),
		p.Title,
		p.Slug,
		derefString(p.Brand),
		uuidString(p.CategoryID),
		string(p.PricingMode),
		p.Currency,
		floatString(p.Price),
		floatString(p.SalePrice),
		floatString(p.CompareAtPrice),
		timeString(p.OfferStart),
		timeString(p.OfferEnd),
		floatString(catalog.EffectivePrice(p.PricingFields, now)),
		intString(p.Stock),
		strconv.Itoa(p.TotalStock),
		strconv.Itoa(len(p.Variants)),
		strconv.FormatBool(p.IsActive),
		p.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ExportHandler) writeCSV(c *gin.Context, products []models.Product) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=products_export.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportColumns)
	for i := range products {
		writer.Write(exportRow(&products[i]))
	}
}

func (h *ExportHandler) writeXLSX(c *gin.Context, products []models.Product) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Products"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 18)
	}

	for rowIdx := range products {
		for colIdx, value := range exportRow(&products[rowIdx]) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Variant breakdown on a second sheet
	f.NewSheet("Variants")
	variantColumns := []string{"productId", "productTitle", "variantId", "sku", "barcode", "price", "salePrice", "stock"}
	for i, col := range variantColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue("Variants", cell, col)
		f.SetCellStyle("Variants", cell, cell, headerStyle)
	}
	row := 2
	for i := range products {
		p := &products[i]
		for j := range p.Variants {
			v := &p.Variants[j]
			values := []string{
				p.ID.String(), p.Title, v.ID.String(), derefString(v.SKU), derefString(v.Barcode),
				floatString(v.Price), floatString(v.SalePrice), strconv.Itoa(v.Stock),
			}
			for colIdx, value := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
				f.SetCellValue("Variants", cell, value)
			}
			row++
		}
	}
	f.SetColWidth("Variants", "A", "C", 36)
	f.SetColWidth("Variants", "D", "H", 15)

	sheetIdx, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIdx)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=products_export_%s.xlsx", time.Now().Format("20060102")))

	f.Write(c.Writer)
}

func floatString(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func timeString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
