package internal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"assetflow-api/internal/models"

	"github.com/go-chi/chi/v5"
)

const maintenanceColumns = `id, asset_id, type, description, status,
	scheduled_date, completed_date, cost, performed_by, created_at, updated_at`

func scanMaintenance(row interface{ Scan(...interface{}) error }) (*models.MaintenanceRecord, error) {
	var m models.MaintenanceRecord
	err := row.Scan(
		&m.ID, &m.AssetID, &m.Type, &m.Description, &m.Status,
		&m.ScheduledDate, &m.CompletedDate, &m.Cost, &m.PerformedBy,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func validMaintenanceStatus(status string) bool {
	for _, s := range models.MaintenanceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s *Server) listMaintenance(w http.ResponseWriter, r *http.Request) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records`
	var args []interface{}

	if v := strings.TrimSpace(r.URL.Query().Get("asset_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid asset_id", 400)
			return
		}
		query += ` WHERE asset_id = $1`
		args = append(args, id)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.DB.QueryContext(r.Context(), query, args...)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	out := []models.MaintenanceRecord{}
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		out = append(out, *m)
	}
	sendListResponse(w, out, len(out))
}

func (s *Server) getMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	m, err := scanMaintenance(s.DB.QueryRowContext(r.Context(),
		`SELECT `+maintenanceColumns+` FROM maintenance_records WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusOK, m)
}

func (s *Server) createMaintenance(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if req.AssetID == 0 || req.Type == "" {
		http.Error(w, "asset_id and type are required", 400)
		return
	}
	status := req.Status
	if status == "" {
		status = "scheduled"
	}
	if !validMaintenanceStatus(status) {
		http.Error(w, "invalid status: "+status, 400)
		return
	}

	m, err := scanMaintenance(s.DB.QueryRowContext(r.Context(), `
		INSERT INTO maintenance_records (asset_id, type, description, status, scheduled_date, cost, performed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+maintenanceColumns,
		req.AssetID, req.Type, req.Description, status, req.ScheduledDate, req.Cost, req.PerformedBy,
	))
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			http.Error(w, fmt.Sprintf("asset %d does not exist", req.AssetID), 400)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}

	// A scheduled or running job flips the asset into maintenance status.
	if status == "scheduled" || status == "in_progress" {
		if _, err := s.DB.ExecContext(r.Context(),
			`UPDATE assets SET status = 'maintenance', updated_at = now() WHERE id = $1`, req.AssetID); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
	}

	sendJSON(w, http.StatusCreated, m)
}

func (s *Server) updateMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}

	var req models.UpdateMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if req.Status != nil && !validMaintenanceStatus(*req.Status) {
		http.Error(w, "invalid status: "+*req.Status, 400)
		return
	}

	type set struct {
		sql string
		val interface{}
	}
	var sets []set
	if req.Type != nil {
		sets = append(sets, set{"type", *req.Type})
	}
	if req.Description != nil {
		sets = append(sets, set{"description", *req.Description})
	}
	if req.Status != nil {
		sets = append(sets, set{"status", *req.Status})
	}
	if req.ScheduledDate != nil {
		sets = append(sets, set{"scheduled_date", *req.ScheduledDate})
	}
	if req.CompletedDate != nil {
		sets = append(sets, set{"completed_date", *req.CompletedDate})
	}
	if req.Cost != nil {
		sets = append(sets, set{"cost", *req.Cost})
	}
	if req.PerformedBy != nil {
		sets = append(sets, set{"performed_by", *req.PerformedBy})
	}

	if len(sets) == 0 {
		http.Error(w, "no fields to update", 400)
		return
	}

	clauses := make([]string, 0, len(sets)+2)
	args := make([]interface{}, 0, len(sets)+1)
	for _, c := range sets {
		args = append(args, c.val)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", c.sql, len(args)))
	}
	// Completing a job stamps the completion date if the caller didn't.
	if req.Status != nil && *req.Status == "completed" && req.CompletedDate == nil {
		clauses = append(clauses, "completed_date = now()")
	}
	clauses = append(clauses, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE maintenance_records SET %s WHERE id = $%d RETURNING `+maintenanceColumns,
		strings.Join(clauses, ", "), len(args))

	m, err := scanMaintenance(s.DB.QueryRowContext(r.Context(), query, args...))
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	// A finished or cancelled job puts the asset back in service.
	if req.Status != nil && (*req.Status == "completed" || *req.Status == "cancelled") {
		if _, err := s.DB.ExecContext(r.Context(),
			`UPDATE assets SET status = 'active', updated_at = now() WHERE id = $1 AND status = 'maintenance'`,
			m.AssetID); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
	}

	sendJSON(w, http.StatusOK, m)
}

func (s *Server) deleteMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	res, err := s.DB.ExecContext(r.Context(), `DELETE FROM maintenance_records WHERE id = $1`, id)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
