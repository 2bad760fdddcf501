package internal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"assetflow-api/internal/auth"
	"assetflow-api/internal/models"
	"assetflow-api/internal/realtime"

	"github.com/go-chi/chi/v5"
)

const accessRequestColumns = `id, request_number, employee_first_name, employee_last_name,
	employee_id, department, department_head, email, date_of_joining, status,
	requested_by, approved_by, approved_at, rejected_at, rejection_reason,
	completed_at, created_at, updated_at`

func scanAccessRequest(row interface{ Scan(...interface{}) error }) (*models.AccessRequest, error) {
	var a models.AccessRequest
	err := row.Scan(
		&a.ID, &a.RequestNumber, &a.EmployeeFirstName, &a.EmployeeLastName,
		&a.EmployeeID, &a.Department, &a.DepartmentHead, &a.Email, &a.DateOfJoining, &a.Status,
		&a.RequestedBy, &a.ApprovedBy, &a.ApprovedAt, &a.RejectedAt, &a.RejectionReason,
		&a.CompletedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// nextRequestNumber allocates the next number in the SAR-<year>-NNNN
// sequence. The sequence resets each calendar year.
func (s *Server) nextRequestNumber(r *http.Request) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("SAR-%d-", year)

	var max int
	err := s.DB.QueryRowContext(r.Context(), `
		SELECT COALESCE(MAX(CAST(SUBSTRING(request_number FROM $1) AS INTEGER)), 0)
		FROM access_requests
		WHERE request_number LIKE $2`,
		len(prefix)+1, prefix+"%").Scan(&max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, max+1), nil
}

func (s *Server) listAccessRequests(w http.ResponseWriter, r *http.Request) {
	query := `SELECT ` + accessRequestColumns + ` FROM access_requests`
	var args []interface{}

	if v := strings.TrimSpace(r.URL.Query().Get("status")); v != "" && v != "all" {
		query += ` WHERE status = $1`
		args = append(args, v)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.DB.QueryContext(r.Context(), query, args...)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	out := []models.AccessRequest{}
	for rows.Next() {
		a, err := scanAccessRequest(rows)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		out = append(out, *a)
	}
	sendListResponse(w, out, len(out))
}

func (s *Server) getAccessRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	a, err := scanAccessRequest(s.DB.QueryRowContext(r.Context(),
		`SELECT `+accessRequestColumns+` FROM access_requests WHERE id = $1`, id))
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

func (s *Server) createAccessRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if req.EmployeeFirstName == "" || req.EmployeeLastName == "" {
		http.Error(w, "employee_first_name and employee_last_name are required", 400)
		return
	}

	number, err := s.nextRequestNumber(r)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	var requestedBy *int64
	if id := auth.UserIDFromContext(r.Context()); id > 0 {
		requestedBy = &id
	}

	a, err := scanAccessRequest(s.DB.QueryRowContext(r.Context(), `
		INSERT INTO access_requests (
			request_number, employee_first_name, employee_last_name, employee_id,
			department, department_head, email, date_of_joining, status, requested_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending', $9)
		RETURNING `+accessRequestColumns,
		number, req.EmployeeFirstName, req.EmployeeLastName, req.EmployeeID,
		req.Department, req.DepartmentHead, req.Email, req.DateOfJoining, requestedBy,
	))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	s.Hub.Publish(realtime.Event{Type: realtime.EventInsert, Table: "access_requests", New: a})
	sendJSON(w, http.StatusCreated, a)
}

// allowedTransitions maps each workflow state to the states it may move to.
var allowedTransitions = map[string][]string{
	"pending":     {"in_progress", "approved", "rejected", "cancelled"},
	"in_progress": {"approved", "rejected", "cancelled"},
	"approved":    {"completed"},
	"rejected":    {},
	"completed":   {},
	"cancelled":   {},
}

func transitionAllowed(from, to string) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func (s *Server) updateAccessRequestStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}

	var req models.UpdateAccessRequestStatus
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if _, ok := allowedTransitions[req.Status]; !ok {
		http.Error(w, "invalid status: "+req.Status, 400)
		return
	}
	if req.Status == "rejected" && (req.Reason == nil || strings.TrimSpace(*req.Reason) == "") {
		http.Error(w, "reason is required when rejecting", 400)
		return
	}

	current, err := scanAccessRequest(s.DB.QueryRowContext(r.Context(),
		`SELECT `+accessRequestColumns+` FROM access_requests WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if !transitionAllowed(current.Status, req.Status) {
		http.Error(w, fmt.Sprintf("cannot move request from %s to %s", current.Status, req.Status), http.StatusConflict)
		return
	}

	actor := auth.UserIDFromContext(r.Context())

	clauses := []string{"status = $1", "updated_at = now()"}
	args := []interface{}{req.Status}
	switch req.Status {
	case "approved":
		clauses = append(clauses, "approved_by = $2", "approved_at = now()")
		args = append(args, actor)
	case "rejected":
		clauses = append(clauses, "approved_by = $2", "rejected_at = now()", "rejection_reason = $3")
		args = append(args, actor, *req.Reason)
	case "completed":
		clauses = append(clauses, "completed_at = now()")
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE access_requests SET %s WHERE id = $%d RETURNING `+accessRequestColumns,
		strings.Join(clauses, ", "), len(args))

	a, err := scanAccessRequest(s.DB.QueryRowContext(r.Context(), query, args...))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	s.Hub.Publish(realtime.Event{Type: realtime.EventUpdate, Table: "access_requests", New: a, Old: current})
	sendJSON(w, http.StatusOK, a)
}

func (s *Server) deleteAccessRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	old, err := scanAccessRequest(s.DB.QueryRowContext(r.Context(),
		`SELECT `+accessRequestColumns+` FROM access_requests WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if _, err := s.DB.ExecContext(r.Context(), `DELETE FROM access_requests WHERE id = $1`, id); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	s.Hub.Publish(realtime.Event{Type: realtime.EventDelete, Table: "access_requests", Old: old})
	w.WriteHeader(http.StatusNoContent)
}
