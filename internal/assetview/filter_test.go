package assetview

import (
	"testing"
	"time"

	"assetflow-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func timePtr(t time.Time) *time.Time {
	return &t
}

func testAssets() []models.Asset {
	return []models.Asset{
		{
			ID: 1, Name: "ONEH-JOHN-LAPTOP", Category: "Laptop", Location: "Head Office",
			SerialNumber: strPtr("5CD0123456"), Model: strPtr("HP EliteBook 840 G8"),
			Manufacturer: strPtr("HP"), Status: "active", Condition: "good",
			PurchaseDate:   timePtr(time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)),
			CurrentValue:   800,
			WarrantyExpiry: timePtr(time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)),
		},
		{
			ID: 2, Name: "ONEH-RANJEET", Category: "Desktop", Location: "Head Office",
			SerialNumber: strPtr("4CE323CR0Q"), Model: strPtr("HP Pro Tower 290 G9"),
			Manufacturer: strPtr("HP"), Status: "active", Condition: "good",
			PurchaseDate: timePtr(time.Date(2023, 10, 19, 0, 0, 0, 0, time.UTC)),
			CurrentValue: 450,
		},
		{
			ID: 3, Name: "ONEH-SURESH-ALA", Category: "Laptop", Location: "Spanish Villa",
			SerialNumber: strPtr("5CD048LR8R"), Model: strPtr("Lenovo ThinkPad T14s"),
			Manufacturer: strPtr("Lenovo"), Status: "in_stock", Condition: "excellent",
			PurchaseDate:   timePtr(time.Date(2024, 9, 25, 0, 0, 0, 0, time.UTC)),
			CurrentValue:   1200,
			WarrantyExpiry: timePtr(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)),
		},
	}
}

func TestApplyCategoryFilter(t *testing.T) {
	got := Apply(testAssets(), FilterParams{Category: "Laptop"}, now)
	require.Len(t, got, 2)
	// original relative order is preserved when no sort key is active
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestApplyAllSentinel(t *testing.T) {
	got := Apply(testAssets(), FilterParams{Category: "all", Location: "all", Status: "all", Condition: "all", Warranty: "all"}, now)
	assert.Len(t, got, 3)
}

func TestSearchMatchesAnyField(t *testing.T) {
	assets := testAssets()

	cases := []struct {
		query string
		want  []int64
	}{
		{"oneh", []int64{1, 2, 3}}, // name
		{"desktop", []int64{2}},    // category
		{"5cd048", []int64{3}},     // serial, case-insensitive
		{"elitebook", []int64{1}},  // model
		{"lenovo", []int64{3}},     // manufacturer and model
		{"no-such-asset-anywhere", []int64{}},
	}
	for _, tc := range cases {
		got := Apply(assets, FilterParams{Search: tc.query}, now)
		ids := make([]int64, 0, len(got))
		for _, a := range got {
			ids = append(ids, a.ID)
		}
		assert.Equal(t, tc.want, ids, "query %q", tc.query)
	}
}

func TestDateRangeFilter(t *testing.T) {
	assets := testAssets()

	from := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	got := Apply(assets, FilterParams{DateFrom: &from}, now)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	to := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	got = Apply(assets, FilterParams{DateFrom: &from, DateTo: &to}, now)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	// boundary: purchase date equal to the bound is included on both sides
	exact := time.Date(2023, 10, 19, 0, 0, 0, 0, time.UTC)
	got = Apply(assets, FilterParams{DateFrom: &exact, DateTo: &exact}, now)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestValueRangeFilter(t *testing.T) {
	assets := testAssets()

	got := Apply(assets, FilterParams{ValueMin: f64Ptr(500)}, now)
	require.Len(t, got, 2)

	got = Apply(assets, FilterParams{ValueMin: f64Ptr(500), ValueMax: f64Ptr(1000)}, now)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	// inclusive boundaries
	got = Apply(assets, FilterParams{ValueMin: f64Ptr(450), ValueMax: f64Ptr(450)}, now)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestWarrantyFilter(t *testing.T) {
	assets := testAssets()

	got := Apply(assets, FilterParams{Warranty: "active"}, now)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	got = Apply(assets, FilterParams{Warranty: "expired"}, now)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)

	got = Apply(assets, FilterParams{Warranty: "none"}, now)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilterOrderIndependence(t *testing.T) {
	assets := testAssets()

	// {A, B} and {B, A} are the same AND-combination; applying the combined
	// params must equal applying each predicate as a second pass over the
	// other's output, in either order.
	a := FilterParams{Category: "Laptop"}
	b := FilterParams{Status: "active"}
	both := FilterParams{Category: "Laptop", Status: "active"}

	ab := Apply(Apply(assets, a, now), b, now)
	ba := Apply(Apply(assets, b, now), a, now)
	combined := Apply(assets, both, now)

	assert.Equal(t, ab, ba)
	assert.Equal(t, combined, ab)
}

func TestFilterIdempotence(t *testing.T) {
	assets := testAssets()
	p := FilterParams{Category: "Laptop", Status: "active", SortBy: "name", SortOrder: "asc"}

	once := Apply(assets, p, now)
	twice := Apply(once, p, now)
	assert.Equal(t, once, twice)
}

func TestSortByValueAscDesc(t *testing.T) {
	assets := testAssets()

	asc := Apply(assets, FilterParams{SortBy: "current_value", SortOrder: "asc"}, now)
	require.Len(t, asc, 3)
	assert.Equal(t, []int64{2, 1, 3}, []int64{asc[0].ID, asc[1].ID, asc[2].ID})

	desc := Apply(assets, FilterParams{SortBy: "current_value", SortOrder: "desc"}, now)
	// all-distinct values: desc is exactly the reverse of asc
	for i := range asc {
		assert.Equal(t, asc[len(asc)-1-i].ID, desc[i].ID)
	}
}

func TestSortByNameCaseInsensitive(t *testing.T) {
	assets := []models.Asset{
		{ID: 1, Name: "zeta"},
		{ID: 2, Name: "Alpha"},
		{ID: 3, Name: "beta"},
	}
	got := Apply(assets, FilterParams{SortBy: "name", SortOrder: "asc"}, now)
	assert.Equal(t, []int64{2, 3, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestSortByPurchaseDate(t *testing.T) {
	assets := testAssets()
	got := Apply(assets, FilterParams{SortBy: "purchase_date", SortOrder: "desc"}, now)
	assert.Equal(t, []int64{3, 2, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestUnknownSortKeyIsPassThrough(t *testing.T) {
	assets := testAssets()
	got := Apply(assets, FilterParams{SortBy: "bogus"}, now)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestSortEmptyCollection(t *testing.T) {
	got := Apply(nil, FilterParams{SortBy: "current_value"}, now)
	assert.Empty(t, got)
}

func TestEndToEndCategoryThenSort(t *testing.T) {
	assets := []models.Asset{
		{ID: 1, Name: "L1", Category: "Laptop", CurrentValue: 900},
		{ID: 2, Name: "D1", Category: "Desktop", CurrentValue: 500},
		{ID: 3, Name: "L2", Category: "Laptop", CurrentValue: 300},
	}

	// no sort: original relative order
	got := Apply(assets, FilterParams{Category: "Laptop"}, now)
	require.Len(t, got, 2)
	assert.Equal(t, []int64{1, 3}, []int64{got[0].ID, got[1].ID})

	// with sort: sorted order
	got = Apply(assets, FilterParams{Category: "Laptop", SortBy: "current_value", SortOrder: "asc"}, now)
	assert.Equal(t, []int64{3, 1}, []int64{got[0].ID, got[1].ID})
}
