package assetview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConditionForAgeBoundaries(t *testing.T) {
	ref := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	purchasedYearsAgo := func(years, extraDays int) time.Time {
		return ref.AddDate(-years, 0, -extraDays)
	}

	cases := []struct {
		name string
		pd   time.Time
		want string
	}{
		{"today", ref, "excellent"},
		{"exactly 1y", purchasedYearsAgo(1, 0), "excellent"},
		{"1y + 1d", purchasedYearsAgo(1, 1), "good"},
		{"exactly 3y", purchasedYearsAgo(3, 0), "good"},
		{"3y + 1d", purchasedYearsAgo(3, 1), "fair"},
		{"exactly 4y", purchasedYearsAgo(4, 0), "fair"},
		{"4y + 1d", purchasedYearsAgo(4, 1), "poor"},
		{"10y", purchasedYearsAgo(10, 0), "poor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ConditionForAge(tc.pd, ref))
		})
	}
}
