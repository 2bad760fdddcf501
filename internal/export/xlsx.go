package export

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx/v3"

	"assetflow-api/internal/models"
)

// XLSX writes assets as a single-sheet workbook. The column layout is the
// same as the CSV export.
func XLSX(w io.Writer, assets []models.Asset) error {
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Assets")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range csvHeader {
		header.AddCell().SetString(h)
	}

	for _, a := range assets {
		row := sheet.AddRow()
		row.AddCell().SetString(a.Name)
		row.AddCell().SetString(a.Category)
		row.AddCell().SetString(a.Location)
		row.AddCell().SetString(deref(a.SerialNumber))
		row.AddCell().SetString(deref(a.Model))
		row.AddCell().SetString(deref(a.Manufacturer))
		row.AddCell().SetString(a.Status)
		row.AddCell().SetString(a.Condition)
		row.AddCell().SetFloat(a.PurchaseCost)
		row.AddCell().SetFloat(a.CurrentValue)
		row.AddCell().SetString(deref(a.AssignedTo))
	}

	return wb.Write(w)
}
