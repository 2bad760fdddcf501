// Package assetview implements the in-memory asset filter/sort pipeline and
// the derived classifications (warranty state, condition-from-age) used by the
// asset list and export endpoints. All functions are pure: the view is
// recomputed from the full collection on every call.
package assetview

import (
	"sort"
	"strings"
	"time"

	"assetflow-api/internal/models"
)

// FilterParams holds the active filter and sort inputs for the asset list.
// The zero value (and the "all" sentinel for the select filters) matches
// everything in input order.
type FilterParams struct {
	Search    string
	Category  string
	Location  string
	Status    string
	Condition string
	DateFrom  *time.Time
	DateTo    *time.Time
	ValueMin  *float64
	ValueMax  *float64
	Warranty  string // all | active | expired | none
	SortBy    string // name | category | purchase_date | current_value | status
	SortOrder string // asc | desc
}

// searchFields returns the values the free-text search matches against.
func searchFields(a *models.Asset) []string {
	return []string{
		a.Name,
		a.Category,
		deref(a.SerialNumber),
		deref(a.Model),
		deref(a.Manufacturer),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Matches reports whether a single asset passes every active filter.
// Predicates are AND-combined and individually order-independent.
func Matches(a *models.Asset, p FilterParams, now time.Time) bool {
	if p.Search != "" {
		q := strings.ToLower(p.Search)
		found := false
		for _, f := range searchFields(a) {
			if strings.Contains(strings.ToLower(f), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if !matchesExact(a.Category, p.Category) {
		return false
	}
	if !matchesExact(a.Location, p.Location) {
		return false
	}
	if !matchesExact(a.Status, p.Status) {
		return false
	}
	if !matchesExact(a.Condition, p.Condition) {
		return false
	}

	if p.DateFrom != nil {
		if a.PurchaseDate == nil || a.PurchaseDate.Before(*p.DateFrom) {
			return false
		}
	}
	if p.DateTo != nil {
		if a.PurchaseDate == nil || a.PurchaseDate.After(*p.DateTo) {
			return false
		}
	}

	if p.ValueMin != nil && a.CurrentValue < *p.ValueMin {
		return false
	}
	if p.ValueMax != nil && a.CurrentValue > *p.ValueMax {
		return false
	}

	if p.Warranty != "" && p.Warranty != "all" {
		if WarrantyState(a.WarrantyExpiry, now) != p.Warranty {
			return false
		}
	}

	return true
}

// matchesExact treats "" and "all" as the match-everything sentinel.
func matchesExact(field, selected string) bool {
	if selected == "" || selected == "all" {
		return true
	}
	return field == selected
}

// Apply filters and sorts the collection, returning a new slice. Ties keep
// the input collection's relative order; an unrecognized sort key leaves the
// filtered set unsorted.
func Apply(assets []models.Asset, p FilterParams, now time.Time) []models.Asset {
	out := make([]models.Asset, 0, len(assets))
	for i := range assets {
		if Matches(&assets[i], p, now) {
			out = append(out, assets[i])
		}
	}
	sortAssets(out, p.SortBy, p.SortOrder)
	return out
}

func sortAssets(assets []models.Asset, key, order string) {
	var less func(a, b *models.Asset) bool
	switch key {
	case "name":
		less = func(a, b *models.Asset) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case "category":
		less = func(a, b *models.Asset) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	case "purchase_date":
		less = func(a, b *models.Asset) bool {
			return timeKey(a.PurchaseDate) < timeKey(b.PurchaseDate)
		}
	case "current_value":
		less = func(a, b *models.Asset) bool {
			return a.CurrentValue < b.CurrentValue
		}
	case "status":
		less = func(a, b *models.Asset) bool {
			return a.Status < b.Status
		}
	default:
		return
	}

	if order == "desc" {
		base := less
		less = func(a, b *models.Asset) bool { return base(b, a) }
	}

	sort.SliceStable(assets, func(i, j int) bool {
		return less(&assets[i], &assets[j])
	})
}

// timeKey sorts missing dates first, everything else by timestamp.
func timeKey(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}
