package internal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"assetflow-api/internal/assetview"
	"assetflow-api/internal/export"
	"assetflow-api/internal/models"
	"assetflow-api/internal/realtime"

	"github.com/go-chi/chi/v5"
)

const assetColumns = `id, name, asset_code, category, location, in_office_location,
	description, manufacturer, model, serial_number, os_version, cpu_type,
	memory, storage, ip_address, mac_address, ilo_ip, assigned_to,
	department_id, previous_owner, status, condition, purchase_date,
	purchase_cost, current_value, warranty_expiry, year_of_purchase,
	sentinel_status, ninja_status, domain_status, function, physical_virtual,
	issue_date, notes, created_at, updated_at`

func scanAsset(row interface{ Scan(...interface{}) error }) (*models.Asset, error) {
	var a models.Asset
	err := row.Scan(
		&a.ID, &a.Name, &a.AssetCode, &a.Category, &a.Location, &a.InOfficeLocation,
		&a.Description, &a.Manufacturer, &a.Model, &a.SerialNumber, &a.OSVersion, &a.CPUType,
		&a.Memory, &a.Storage, &a.IPAddress, &a.MACAddress, &a.ILOIP, &a.AssignedTo,
		&a.DepartmentID, &a.PreviousOwner, &a.Status, &a.Condition, &a.PurchaseDate,
		&a.PurchaseCost, &a.CurrentValue, &a.WarrantyExpiry, &a.YearOfPurchase,
		&a.SentinelStatus, &a.NinjaStatus, &a.DomainStatus, &a.Function, &a.PhysicalVirtual,
		&a.IssueDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// loadAssets reads the full collection; filtering and sorting happen in
// memory through the assetview pipeline.
func (s *Server) loadAssets(ctx context.Context) ([]models.Asset, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

func (s *Server) loadAsset(ctx context.Context, id int64) (*models.Asset, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	return scanAsset(row)
}

// applyConditionRule pins the condition to the purchase date. A manual
// condition in the request only survives when neither the request nor
// the stored row has a date to derive from.
func applyConditionRule(req *models.UpdateAssetRequest, stored *time.Time) {
	if req.PurchaseDate != nil {
		c := deriveCondition("", req.PurchaseDate)
		req.Condition = &c
		return
	}
	if req.Condition != nil && stored != nil {
		c := assetview.ConditionForAge(*stored, time.Now())
		req.Condition = &c
	}
}

// deriveCondition applies the age-based condition when a purchase date is
// known. A manually supplied condition only sticks for assets without one.
func deriveCondition(condition string, purchaseDate *string) string {
	if purchaseDate != nil && *purchaseDate != "" {
		if t, err := time.Parse("2006-01-02", *purchaseDate); err == nil {
			return assetview.ConditionForAge(t, time.Now())
		}
	}
	if condition != "" {
		return condition
	}
	return "good"
}

// validAssetRequest checks the minimum identity an asset row needs: a
// category plus at least one of name or serial number. Serial-only rows
// are normal; some import templates carry no asset name column at all.
func validAssetRequest(req *models.CreateAssetRequest) error {
	if req.Category == "" {
		return fmt.Errorf("category is required")
	}
	if req.Name == "" && (req.SerialNumber == nil || *req.SerialNumber == "") {
		return fmt.Errorf("name or serial number is required")
	}
	return nil
}

// CreateAsset inserts one asset and broadcasts the INSERT event. The CSV
// importer and the HTTP create handler share this path.
func (s *Server) CreateAsset(ctx context.Context, req *models.CreateAssetRequest) (*models.Asset, error) {
	if err := validAssetRequest(req); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = "active"
	}
	condition := deriveCondition(req.Condition, req.PurchaseDate)

	row := s.DB.QueryRowContext(ctx, `
		INSERT INTO assets (
			name, asset_code, category, location, in_office_location,
			description, manufacturer, model, serial_number, os_version, cpu_type,
			memory, storage, ip_address, mac_address, ilo_ip, assigned_to,
			department_id, previous_owner, status, condition, purchase_date,
			purchase_cost, current_value, warranty_expiry, year_of_purchase,
			sentinel_status, ninja_status, domain_status, function, physical_virtual,
			issue_date, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33
		)
		RETURNING `+assetColumns,
		req.Name, req.AssetCode, req.Category, req.Location, req.InOfficeLocation,
		req.Description, req.Manufacturer, req.Model, req.SerialNumber, req.OSVersion, req.CPUType,
		req.Memory, req.Storage, req.IPAddress, req.MACAddress, req.ILOIP, req.AssignedTo,
		req.DepartmentID, req.PreviousOwner, status, condition, req.PurchaseDate,
		req.PurchaseCost, req.CurrentValue, req.WarrantyExpiry, req.YearOfPurchase,
		req.SentinelStatus, req.NinjaStatus, req.DomainStatus, req.Function, req.PhysicalVirtual,
		req.IssueDate, req.Notes,
	)
	a, err := scanAsset(row)
	if err != nil {
		return nil, err
	}
	s.Hub.Publish(realtime.Event{Type: realtime.EventInsert, Table: "assets", New: a})
	return a, nil
}

func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.loadAssets(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	params := parseAssetFilters(r)
	out := assetview.Apply(assets, params, time.Now())
	sendListResponse(w, out, len(out))
}

func (s *Server) getAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	a, err := s.loadAsset(r.Context(), id)
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusOK, a)
}

func (s *Server) createAsset(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if err := validAssetRequest(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	a, err := s.CreateAsset(r.Context(), &req)
	if err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			http.Error(w, "asset with this serial number already exists", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusCreated, a)
}

func (s *Server) updateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}

	var req models.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}

	old, err := s.loadAsset(r.Context(), id)
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	applyConditionRule(&req, old.PurchaseDate)

	type set struct {
		sql string
		val interface{}
	}
	var sets []set
	add := func(col string, val interface{}) {
		sets = append(sets, set{col, val})
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.AssetCode != nil {
		add("asset_code", *req.AssetCode)
	}
	if req.Category != nil {
		add("category", *req.Category)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.InOfficeLocation != nil {
		add("in_office_location", *req.InOfficeLocation)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Manufacturer != nil {
		add("manufacturer", *req.Manufacturer)
	}
	if req.Model != nil {
		add("model", *req.Model)
	}
	if req.SerialNumber != nil {
		add("serial_number", *req.SerialNumber)
	}
	if req.OSVersion != nil {
		add("os_version", *req.OSVersion)
	}
	if req.CPUType != nil {
		add("cpu_type", *req.CPUType)
	}
	if req.Memory != nil {
		add("memory", *req.Memory)
	}
	if req.Storage != nil {
		add("storage", *req.Storage)
	}
	if req.IPAddress != nil {
		add("ip_address", *req.IPAddress)
	}
	if req.MACAddress != nil {
		add("mac_address", *req.MACAddress)
	}
	if req.ILOIP != nil {
		add("ilo_ip", *req.ILOIP)
	}
	if req.AssignedTo != nil {
		add("assigned_to", *req.AssignedTo)
	}
	if req.DepartmentID != nil {
		add("department_id", *req.DepartmentID)
	}
	if req.PreviousOwner != nil {
		add("previous_owner", *req.PreviousOwner)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}
	if req.Condition != nil {
		add("condition", *req.Condition)
	}
	if req.PurchaseDate != nil {
		add("purchase_date", *req.PurchaseDate)
	}
	if req.PurchaseCost != nil {
		add("purchase_cost", *req.PurchaseCost)
	}
	if req.CurrentValue != nil {
		add("current_value", *req.CurrentValue)
	}
	if req.WarrantyExpiry != nil {
		add("warranty_expiry", *req.WarrantyExpiry)
	}
	if req.YearOfPurchase != nil {
		add("year_of_purchase", *req.YearOfPurchase)
	}
	if req.SentinelStatus != nil {
		add("sentinel_status", *req.SentinelStatus)
	}
	if req.NinjaStatus != nil {
		add("ninja_status", *req.NinjaStatus)
	}
	if req.DomainStatus != nil {
		add("domain_status", *req.DomainStatus)
	}
	if req.Function != nil {
		add("function", *req.Function)
	}
	if req.PhysicalVirtual != nil {
		add("physical_virtual", *req.PhysicalVirtual)
	}
	if req.IssueDate != nil {
		add("issue_date", *req.IssueDate)
	}
	if req.Notes != nil {
		add("notes", *req.Notes)
	}

	if len(sets) == 0 {
		sendJSON(w, http.StatusOK, old)
		return
	}

	clauses := make([]string, 0, len(sets)+1)
	args := make([]interface{}, 0, len(sets)+1)
	for i, c := range sets {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", c.sql, i+1))
		args = append(args, c.val)
	}
	clauses = append(clauses, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE assets SET %s WHERE id = $%d RETURNING `+assetColumns,
		strings.Join(clauses, ", "), len(args))

	a, err := scanAsset(s.DB.QueryRowContext(r.Context(), query, args...))
	if err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			http.Error(w, "asset with this serial number already exists", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}
	s.Hub.Publish(realtime.Event{Type: realtime.EventUpdate, Table: "assets", New: a, Old: old})
	sendJSON(w, http.StatusOK, a)
}

func (s *Server) deleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	old, err := s.loadAsset(r.Context(), id)
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if _, err := s.DB.ExecContext(r.Context(), `DELETE FROM assets WHERE id = $1`, id); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	s.Hub.Publish(realtime.Event{Type: realtime.EventDelete, Table: "assets", Old: old})
	w.WriteHeader(http.StatusNoContent)
}

// bulkAssets applies one action to a list of assets. Processing is
// sequential and stops at the first failure.
func (s *Server) bulkAssets(w http.ResponseWriter, r *http.Request) {
	var req models.BulkAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, "ids are required", 400)
		return
	}

	var column string
	switch req.Action {
	case "assign":
		column = "assigned_to"
	case "transfer":
		column = "location"
	case "status":
		column = "status"
	case "condition":
		column = "condition"
	case "delete":
		column = ""
	default:
		http.Error(w, "unknown action: "+req.Action, 400)
		return
	}
	if column != "" && req.Value == "" {
		http.Error(w, "value is required for action "+req.Action, 400)
		return
	}

	processed := 0
	for _, id := range req.IDs {
		old, err := s.loadAsset(r.Context(), id)
		if err != nil {
			http.Error(w, fmt.Sprintf("asset %d: %v (processed %d)", id, err, processed), 500)
			return
		}
		if req.Action == "delete" {
			if _, err := s.DB.ExecContext(r.Context(), `DELETE FROM assets WHERE id = $1`, id); err != nil {
				http.Error(w, fmt.Sprintf("asset %d: %v (processed %d)", id, err, processed), 500)
				return
			}
			s.Hub.Publish(realtime.Event{Type: realtime.EventDelete, Table: "assets", Old: old})
		} else {
			query := fmt.Sprintf(`UPDATE assets SET %s = $1, updated_at = now() WHERE id = $2 RETURNING `+assetColumns, column)
			a, err := scanAsset(s.DB.QueryRowContext(r.Context(), query, req.Value, id))
			if err != nil {
				http.Error(w, fmt.Sprintf("asset %d: %v (processed %d)", id, err, processed), 500)
				return
			}
			s.Hub.Publish(realtime.Event{Type: realtime.EventUpdate, Table: "assets", New: a, Old: old})
		}
		processed++
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"action":    req.Action,
		"processed": processed,
	})
}

func (s *Server) assetStats(w http.ResponseWriter, r *http.Request) {
	assets, err := s.loadAssets(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	stats := models.AssetStats{
		ByCategory: map[string]int{},
		ByStatus:   map[string]int{},
	}
	for i := range assets {
		a := &assets[i]
		stats.TotalAssets++
		stats.TotalValue += a.CurrentValue
		if a.AssignedTo != nil && *a.AssignedTo != "" {
			stats.Assigned++
		}
		if a.Status == "maintenance" {
			stats.InMaintenance++
		}
		stats.ByCategory[a.Category]++
		stats.ByStatus[a.Status]++
	}
	sendJSON(w, http.StatusOK, stats)
}

// exportAssets serves the filtered collection as a CSV or XLSX download.
// An explicit ids list (comma-separated) exports exactly those rows and
// skips the filter pipeline, matching a selection-based export.
func (s *Server) exportAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.loadAssets(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("ids")); raw != "" {
		want := map[int64]bool{}
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				http.Error(w, "invalid ids", 400)
				return
			}
			want[id] = true
		}
		selected := make([]models.Asset, 0, len(want))
		for _, a := range assets {
			if want[a.ID] {
				selected = append(selected, a)
			}
		}
		assets = selected
	} else {
		assets = assetview.Apply(assets, parseAssetFilters(r), time.Now())
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="assets.csv"`)
		if _, err := w.Write([]byte(export.CSV(assets))); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="assets.xlsx"`)
		if err := export.XLSX(w, assets); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	default:
		http.Error(w, "unknown format: "+format, 400)
	}
}
