package importer

import (
	"context"
	"fmt"

	"assetflow-api/internal/models"
)

// AssetCreator persists one asset. Satisfied by the API server's store so
// imports go through the same create path as the REST endpoint.
type AssetCreator interface {
	CreateAsset(ctx context.Context, req *models.CreateAssetRequest) (*models.Asset, error)
}

// RowResult reports the outcome of one CSV data row. Row is the line
// number in the uploaded file, so the first data row is 2.
type RowResult struct {
	Success bool   `json:"success"`
	Row     int    `json:"row"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Summary aggregates an import run.
type Summary struct {
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Results   []RowResult `json:"results"`
}

// Run imports CSV text row by row using the named template. Rows are
// processed sequentially in file order and every row gets a result; a
// failed row never stops the rows after it.
func Run(ctx context.Context, store AssetCreator, text string, t TemplateType) (Summary, error) {
	if !ValidTemplate(t) {
		return Summary{}, fmt.Errorf("unknown template type: %s", t)
	}

	rows := ParseCSV(text)
	summary := Summary{Results: make([]RowResult, 0, len(rows))}

	for i, row := range rows {
		lineNo := i + 2

		req, err := MapRow(row, t)
		if err != nil {
			summary.Results = append(summary.Results, RowResult{
				Success: false,
				Row:     lineNo,
				Name:    fallbackName(row),
				Message: err.Error(),
			})
			continue
		}

		if req.Name == "" && req.SerialNumber == nil {
			summary.Results = append(summary.Results, RowResult{
				Success: false,
				Row:     lineNo,
				Name:    "Unknown",
				Message: "Missing required fields (Asset Name or Serial Number)",
			})
			continue
		}

		if _, err := store.CreateAsset(ctx, req); err != nil {
			summary.Results = append(summary.Results, RowResult{
				Success: false,
				Row:     lineNo,
				Name:    fallbackName(row),
				Message: err.Error(),
			})
			continue
		}

		name := req.Name
		if name == "" {
			name = *req.SerialNumber
		}
		summary.Results = append(summary.Results, RowResult{
			Success: true,
			Row:     lineNo,
			Name:    name,
			Message: "Successfully imported",
		})
	}

	summary.Total = len(summary.Results)
	for _, r := range summary.Results {
		if r.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	return summary, nil
}

func fallbackName(row Row) string {
	if n := row["Asset Name"]; n != "" {
		return n
	}
	if m := row["Model Name"]; m != "" {
		return m
	}
	return "Unknown"
}
