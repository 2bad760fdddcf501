package internal

import (
	"testing"
	"time"

	"assetflow-api/internal/models"
	"assetflow-api/pkg/importer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidAssetRequest(t *testing.T) {
	serial := "CZJ1020F01"
	empty := ""

	cases := []struct {
		name string
		req  models.CreateAssetRequest
		ok   bool
	}{
		{"name and category", models.CreateAssetRequest{Name: "SRV-1", Category: "Server"}, true},
		{"serial only", models.CreateAssetRequest{Category: "Tablet", SerialNumber: &serial}, true},
		{"no category", models.CreateAssetRequest{Name: "SRV-1"}, false},
		{"no name no serial", models.CreateAssetRequest{Category: "Monitor"}, false},
		{"empty serial does not count", models.CreateAssetRequest{Category: "Monitor", SerialNumber: &empty}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validAssetRequest(&tc.req)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// The tablet template has no Asset Name column and the monitor template
// ships blank names; rows identified by serial number alone must pass
// create validation.
func TestTemplateRowsPassCreateValidation(t *testing.T) {
	for _, tt := range []importer.TemplateType{importer.TemplateTablet, importer.TemplateMonitor} {
		_, content, err := importer.TemplateCSV(tt)
		require.NoError(t, err)

		rows := importer.ParseCSV(content)
		require.NotEmpty(t, rows)
		for i, row := range rows {
			req, err := importer.MapRow(row, tt)
			require.NoError(t, err)
			assert.NoError(t, validAssetRequest(req), "%s row %d", tt, i+2)
		}
	}
}

func TestApplyConditionRule(t *testing.T) {
	now := time.Now()
	manual := "poor"

	t.Run("request date wins", func(t *testing.T) {
		date := now.AddDate(0, -6, 0).Format("2006-01-02")
		req := models.UpdateAssetRequest{PurchaseDate: &date, Condition: &manual}
		applyConditionRule(&req, nil)
		require.NotNil(t, req.Condition)
		assert.Equal(t, "excellent", *req.Condition)
	})

	t.Run("stored date overrides manual condition", func(t *testing.T) {
		stored := now.AddDate(-5, 0, 0)
		req := models.UpdateAssetRequest{Condition: &manual}
		applyConditionRule(&req, &stored)
		require.NotNil(t, req.Condition)
		assert.Equal(t, "poor", *req.Condition)
	})

	t.Run("stored recent date overrides manual condition", func(t *testing.T) {
		stored := now.AddDate(0, -3, 0)
		req := models.UpdateAssetRequest{Condition: &manual}
		applyConditionRule(&req, &stored)
		require.NotNil(t, req.Condition)
		assert.Equal(t, "excellent", *req.Condition)
	})

	t.Run("manual condition sticks without any date", func(t *testing.T) {
		req := models.UpdateAssetRequest{Condition: &manual}
		applyConditionRule(&req, nil)
		require.NotNil(t, req.Condition)
		assert.Equal(t, "poor", *req.Condition)
	})

	t.Run("untouched condition stays untouched", func(t *testing.T) {
		stored := now.AddDate(-5, 0, 0)
		req := models.UpdateAssetRequest{}
		applyConditionRule(&req, &stored)
		assert.Nil(t, req.Condition)
	})
}
