package assetview

import "time"

// ConditionForAge derives the condition bucket from asset age:
// up to 1 year excellent, up to 3 good, up to 4 fair, older than 4 poor.
// When a purchase date is present this derivation wins over any manually
// supplied condition.
func ConditionForAge(purchaseDate, now time.Time) string {
	switch {
	case !now.After(purchaseDate.AddDate(1, 0, 0)):
		return "excellent"
	case !now.After(purchaseDate.AddDate(3, 0, 0)):
		return "good"
	case !now.After(purchaseDate.AddDate(4, 0, 0)):
		return "fair"
	default:
		return "poor"
	}
}
