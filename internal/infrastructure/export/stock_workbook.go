// Package export renders stock data into spreadsheet documents.
package export

import (
	"bytes"
	"fmt"

	appinv "github.com/erp/inventory/internal/application/inventory"
	"github.com/xuri/excelize/v2"
)

// StockSheetName is the name of the single sheet in the stock workbook
const StockSheetName = "Stock"

var stockHeader = []any{
	"Product SKU",
	"Product",
	"UOM",
	"Location",
	"Location Type",
	"Quantity",
	"Updated At",
}

// StockWorkbook writes per-location stock rows as an XLSX workbook
type StockWorkbook struct{}

// NewStockWorkbook creates a new StockWorkbook
func NewStockWorkbook() *StockWorkbook {
	return &StockWorkbook{}
}

// WriteStock renders one row per quant below a frozen header row
func (w *StockWorkbook) WriteStock(rows []appinv.StockQuantResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, StockSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(StockSheetName, "A1", &stockHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(stockHeader))
	if err := f.SetCellStyle(StockSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetPanes(StockSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		values := stockRowValues(r)
		if err := f.SetSheetRow(StockSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(StockSheetName, "A", "B", 24); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(StockSheetName, "D", "D", 24); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func stockRowValues(r appinv.StockQuantResponse) []any {
	var sku, product, uom, location, locationType string
	if r.Product != nil {
		sku, product, uom = r.Product.SKU, r.Product.Name, r.Product.UOM
	} else {
		product = r.ProductID.String()
	}
	if r.Location != nil {
		location, locationType = r.Location.Name, r.Location.Type
	} else {
		location = r.LocationID.String()
	}
	updated := ""
	if !r.UpdatedAt.IsZero() {
		updated = r.UpdatedAt.UTC().Format("2006-01-02 15:04:05")
	}
	return []any{sku, product, uom, location, locationType, r.Quantity, updated}
}

var _ appinv.StockWorkbookWriter = (*StockWorkbook)(nil)
