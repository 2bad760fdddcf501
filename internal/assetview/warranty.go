package assetview

import (
	"fmt"
	"time"
)

// WarrantyState classifies an asset's warranty relative to now:
// "active" when the expiry is strictly in the future, "expired" when it is
// not, "none" when there is no expiry at all.
func WarrantyState(expiry *time.Time, now time.Time) string {
	if expiry == nil {
		return "none"
	}
	if expiry.After(now) {
		return "active"
	}
	return "expired"
}

// DaysUntil returns the whole calendar days from now to t. The clock time of
// either value does not affect the result.
func DaysUntil(t, now time.Time) int {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n).Hours() / 24)
}

// WarrantyLabel renders the warranty column text. Buckets are inclusive on
// the day boundaries: day 0 through 30 show days, 31 through 90 show months
// (floored), beyond that just "Active".
func WarrantyLabel(expiry *time.Time, now time.Time) string {
	if expiry == nil {
		return "None"
	}
	days := DaysUntil(*expiry, now)
	switch {
	case days < 0:
		return "Expired"
	case days <= 30:
		return fmt.Sprintf("%dd left", days)
	case days <= 90:
		return fmt.Sprintf("%dmo left", days/30)
	default:
		return "Active"
	}
}
