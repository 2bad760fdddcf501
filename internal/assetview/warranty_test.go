package assetview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWarrantyState(t *testing.T) {
	ref := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "none", WarrantyState(nil, ref))

	future := ref.Add(24 * time.Hour)
	assert.Equal(t, "active", WarrantyState(&future, ref))

	past := ref.Add(-24 * time.Hour)
	assert.Equal(t, "expired", WarrantyState(&past, ref))
}

func TestWarrantyLabelBuckets(t *testing.T) {
	ref := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	day := func(offset int) *time.Time {
		d := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
		return &d
	}

	cases := []struct {
		name   string
		expiry *time.Time
		want   string
	}{
		{"nil", nil, "None"},
		{"yesterday", day(-1), "Expired"},
		{"today", day(0), "0d left"},
		{"in 30 days", day(30), "30d left"},
		{"in 31 days", day(31), "1mo left"},
		{"in 90 days", day(90), "3mo left"},
		{"in 91 days", day(91), "Active"},
		{"far future", day(400), "Active"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WarrantyLabel(tc.expiry, ref))
		})
	}
}

func TestDaysUntilIgnoresTimeOfDay(t *testing.T) {
	// late evening now, early morning expiry: still a whole-day difference
	ref := time.Date(2025, 6, 15, 23, 50, 0, 0, time.UTC)
	expiry := time.Date(2025, 6, 18, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysUntil(expiry, ref))
}
