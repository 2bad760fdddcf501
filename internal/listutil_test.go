package internal

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssetFilters(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/assets?search=dell&category=Laptop&status=active&warranty=expired"+
			"&date_from=2023-01-01&date_to=2023-12-31&value_min=100&value_max=2500"+
			"&sort_by=name&sort_order=desc", nil)

	p := parseAssetFilters(r)

	assert.Equal(t, "dell", p.Search)
	assert.Equal(t, "Laptop", p.Category)
	assert.Equal(t, "active", p.Status)
	assert.Equal(t, "expired", p.Warranty)
	assert.Equal(t, "name", p.SortBy)
	assert.Equal(t, "desc", p.SortOrder)
	require.NotNil(t, p.DateFrom)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), *p.DateFrom)
	require.NotNil(t, p.ValueMin)
	assert.Equal(t, 100.0, *p.ValueMin)
	require.NotNil(t, p.ValueMax)
	assert.Equal(t, 2500.0, *p.ValueMax)
}

func TestParseAssetFiltersDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/assets", nil)
	p := parseAssetFilters(r)

	assert.Empty(t, p.Search)
	assert.Empty(t, p.Category)
	assert.Nil(t, p.DateFrom)
	assert.Nil(t, p.ValueMin)
}

func TestParseAssetFiltersIgnoresMalformedValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/assets?date_from=yesterday&value_min=cheap", nil)
	p := parseAssetFilters(r)

	assert.Nil(t, p.DateFrom)
	assert.Nil(t, p.ValueMin)
}

func TestSendListResponse(t *testing.T) {
	w := httptest.NewRecorder()
	sendListResponse(w, []string{"a", "b"}, 2)

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp struct {
		Items []string `json:"items"`
		Total int      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"a", "b"}, resp.Items)
	assert.Equal(t, 2, resp.Total)
}

func TestDeriveCondition(t *testing.T) {
	recent := time.Now().AddDate(0, -6, 0).Format("2006-01-02")
	old := time.Now().AddDate(-6, 0, 0).Format("2006-01-02")

	// Purchase date wins over a manual condition
	assert.Equal(t, "excellent", deriveCondition("poor", &recent))
	assert.Equal(t, "poor", deriveCondition("excellent", &old))

	// Without a purchase date the manual value sticks
	assert.Equal(t, "fair", deriveCondition("fair", nil))

	// Default when nothing is known
	assert.Equal(t, "good", deriveCondition("", nil))

	// Unparseable dates fall back to the manual value
	bad := "last spring"
	assert.Equal(t, "fair", deriveCondition("fair", &bad))
}
