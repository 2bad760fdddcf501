package internal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"assetflow-api/internal/models"

	"github.com/go-chi/chi/v5"
)

// getMasterData returns all lookup lists in one payload so the add-asset
// form can populate its selects with a single fetch.
func (s *Server) getMasterData(w http.ResponseWriter, r *http.Request) {
	md := models.MasterData{
		Departments:   []models.Department{},
		Locations:     []models.Location{},
		Manufacturers: []models.Manufacturer{},
		Categories:    []models.CategoryRecord{},
	}

	rows, err := s.DB.QueryContext(r.Context(), `SELECT id, name, description, created_at, updated_at FROM departments ORDER BY name`)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			rows.Close()
			http.Error(w, err.Error(), 500)
			return
		}
		md.Departments = append(md.Departments, d)
	}
	rows.Close()

	rows, err = s.DB.QueryContext(r.Context(), `SELECT id, name, created_at, updated_at FROM locations ORDER BY name`)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			rows.Close()
			http.Error(w, err.Error(), 500)
			return
		}
		md.Locations = append(md.Locations, l)
	}
	rows.Close()

	rows, err = s.DB.QueryContext(r.Context(), `SELECT id, name, created_at, updated_at FROM manufacturers ORDER BY name`)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	for rows.Next() {
		var m models.Manufacturer
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			rows.Close()
			http.Error(w, err.Error(), 500)
			return
		}
		md.Manufacturers = append(md.Manufacturers, m)
	}
	rows.Close()

	rows, err = s.DB.QueryContext(r.Context(), `SELECT id, name, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	for rows.Next() {
		var c models.CategoryRecord
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			rows.Close()
			http.Error(w, err.Error(), 500)
			return
		}
		md.Categories = append(md.Categories, c)
	}
	rows.Close()

	sendJSON(w, http.StatusOK, md)
}

// generateAssetCode returns the next free code in the "1H-NNNNN" sequence.
// The category parameter is accepted for forward compatibility; today all
// categories share one sequence.
func (s *Server) generateAssetCode(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "category") == "" {
		http.Error(w, "category is required", 400)
		return
	}

	var max int
	err := s.DB.QueryRowContext(r.Context(), `
		SELECT COALESCE(MAX(CAST(SUBSTRING(asset_code FROM 4) AS INTEGER)), 0)
		FROM assets
		WHERE asset_code ~ '^1H-[0-9]+$'`).Scan(&max)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{
		"asset_code": fmt.Sprintf("1H-%05d", max+1),
	})
}

// namedEntry is the request body shared by the simple master-data tables.
type namedEntry struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (s *Server) listDepartments(w http.ResponseWriter, r *http.Request) {
	rows, err := s.DB.QueryContext(r.Context(), `SELECT id, name, description, created_at, updated_at FROM departments ORDER BY name`)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	out := []models.Department{}
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		out = append(out, d)
	}
	sendListResponse(w, out, len(out))
}

func (s *Server) createDepartment(w http.ResponseWriter, r *http.Request) {
	var req namedEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", 400)
		return
	}
	var d models.Department
	err := s.DB.QueryRowContext(r.Context(), `
		INSERT INTO departments (name, description) VALUES ($1, $2)
		RETURNING id, name, description, created_at, updated_at`,
		req.Name, req.Description,
	).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			http.Error(w, "department already exists", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusCreated, d)
}

func (s *Server) updateDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	var req namedEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", 400)
		return
	}
	var d models.Department
	err = s.DB.QueryRowContext(r.Context(), `
		UPDATE departments SET name = $1, description = $2, updated_at = now()
		WHERE id = $3
		RETURNING id, name, description, created_at, updated_at`,
		req.Name, req.Description, id,
	).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusOK, d)
}

func (s *Server) deleteDepartment(w http.ResponseWriter, r *http.Request) {
	s.deleteNamedEntry(w, r, "departments")
}

func (s *Server) listLocations(w http.ResponseWriter, r *http.Request) {
	s.listNamedEntries(w, r, "locations")
}

func (s *Server) createLocation(w http.ResponseWriter, r *http.Request) {
	s.createNamedEntry(w, r, "locations", "location")
}

func (s *Server) updateLocation(w http.ResponseWriter, r *http.Request) {
	s.updateNamedEntry(w, r, "locations")
}

func (s *Server) deleteLocation(w http.ResponseWriter, r *http.Request) {
	s.deleteNamedEntry(w, r, "locations")
}

func (s *Server) listManufacturers(w http.ResponseWriter, r *http.Request) {
	s.listNamedEntries(w, r, "manufacturers")
}

func (s *Server) createManufacturer(w http.ResponseWriter, r *http.Request) {
	s.createNamedEntry(w, r, "manufacturers", "manufacturer")
}

func (s *Server) updateManufacturer(w http.ResponseWriter, r *http.Request) {
	s.updateNamedEntry(w, r, "manufacturers")
}

func (s *Server) deleteManufacturer(w http.ResponseWriter, r *http.Request) {
	s.deleteNamedEntry(w, r, "manufacturers")
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.listNamedEntries(w, r, "categories")
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	s.createNamedEntry(w, r, "categories", "category")
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	s.updateNamedEntry(w, r, "categories")
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	s.deleteNamedEntry(w, r, "categories")
}

// nameRow is the shape shared by the locations, manufacturers and
// categories tables.
type nameRow struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Server) listNamedEntries(w http.ResponseWriter, r *http.Request, table string) {
	rows, err := s.DB.QueryContext(r.Context(), `SELECT id, name, created_at, updated_at FROM `+table+` ORDER BY name`)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	out := []nameRow{}
	for rows.Next() {
		var e nameRow
		if err := rows.Scan(&e.ID, &e.Name, &e.CreatedAt, &e.UpdatedAt); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		out = append(out, e)
	}
	sendListResponse(w, out, len(out))
}

func (s *Server) createNamedEntry(w http.ResponseWriter, r *http.Request, table, label string) {
	var req namedEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", 400)
		return
	}
	var e nameRow
	err := s.DB.QueryRowContext(r.Context(), `
		INSERT INTO `+table+` (name) VALUES ($1)
		RETURNING id, name, created_at, updated_at`,
		req.Name,
	).Scan(&e.ID, &e.Name, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			http.Error(w, label+" already exists", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusCreated, e)
}

func (s *Server) updateNamedEntry(w http.ResponseWriter, r *http.Request, table string) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	var req namedEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", 400)
		return
	}
	var e nameRow
	err = s.DB.QueryRowContext(r.Context(), `
		UPDATE `+table+` SET name = $1, updated_at = now()
		WHERE id = $2
		RETURNING id, name, created_at, updated_at`,
		req.Name, id,
	).Scan(&e.ID, &e.Name, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusOK, e)
}

func (s *Server) deleteNamedEntry(w http.ResponseWriter, r *http.Request, table string) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	res, err := s.DB.ExecContext(r.Context(), `DELETE FROM `+table+` WHERE id = $1`, id)
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
