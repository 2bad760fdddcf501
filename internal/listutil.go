package internal

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"assetflow-api/internal/assetview"
)

// parseAssetFilters maps list query parameters onto the filter pipeline
// inputs. Unset parameters leave the zero value, which matches everything.
func parseAssetFilters(r *http.Request) assetview.FilterParams {
	values := r.URL.Query()

	p := assetview.FilterParams{
		Search:    strings.TrimSpace(values.Get("search")),
		Category:  strings.TrimSpace(values.Get("category")),
		Location:  strings.TrimSpace(values.Get("location")),
		Status:    strings.TrimSpace(values.Get("status")),
		Condition: strings.TrimSpace(values.Get("condition")),
		Warranty:  strings.TrimSpace(values.Get("warranty")),
		SortBy:    strings.TrimSpace(values.Get("sort_by")),
		SortOrder: strings.TrimSpace(values.Get("sort_order")),
	}

	if s := strings.TrimSpace(values.Get("date_from")); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			p.DateFrom = &t
		}
	}
	if s := strings.TrimSpace(values.Get("date_to")); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			p.DateTo = &t
		}
	}
	if s := strings.TrimSpace(values.Get("value_min")); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			p.ValueMin = &v
		}
	}
	if s := strings.TrimSpace(values.Get("value_max")); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			p.ValueMax = &v
		}
	}

	return p
}

// listResponse is the common envelope for list endpoints.
type listResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}

func sendListResponse(w http.ResponseWriter, items interface{}, total int) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(listResponse{Items: items, Total: total}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
