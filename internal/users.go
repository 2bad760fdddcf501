package internal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"assetflow-api/internal/auth"
	"assetflow-api/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `id, email, password_hash, first_name, last_name,
	department_id, roles, is_active, created_at, updated_at, last_login_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	var roles pq.StringArray
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.DepartmentID, &roles, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return &u, nil
}

// loginUser handles POST /auth/login
func (s *Server) loginUser(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", 400)
		return
	}

	u, err := scanUser(s.DB.QueryRowContext(r.Context(),
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND is_active = true`, req.Email))
	if err == sql.ErrNoRows {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := s.JWTManager.GenerateToken(u.ID, u.Roles)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	if _, err := s.DB.ExecContext(r.Context(),
		`UPDATE users SET last_login_at = now() WHERE id = $1`, u.ID); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	sendJSON(w, http.StatusOK, models.LoginResponse{Token: token, User: u.Redacted()})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := s.DB.QueryContext(r.Context(), `SELECT `+userColumns+` FROM users ORDER BY email`)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		out = append(out, u.Redacted())
	}
	sendListResponse(w, out, len(out))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	u, err := scanUser(s.DB.QueryRowContext(r.Context(),
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusOK, u.Redacted())
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", 400)
		return
	}
	if len(req.Password) < 8 {
		http.Error(w, "password must be at least 8 characters", 400)
		return
	}
	if !models.ValidateRoles(req.Roles) {
		http.Error(w, "invalid roles", 400)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	u, err := scanUser(s.DB.QueryRowContext(r.Context(), `
		INSERT INTO users (email, password_hash, first_name, last_name, department_id, roles, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING `+userColumns,
		req.Email, string(hash), req.FirstName, req.LastName, req.DepartmentID, pq.Array(req.Roles),
	))
	if err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			http.Error(w, "user with this email already exists", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusCreated, u.Redacted())
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if req.Roles != nil && !models.ValidateRoles(req.Roles) {
		http.Error(w, "invalid roles", 400)
		return
	}

	// Demoting or deactivating the last admin would lock everyone out.
	if req.Roles != nil && !containsRole(req.Roles, "admin") {
		if last, err := s.isLastAdmin(r, id); err != nil {
			http.Error(w, err.Error(), 500)
			return
		} else if last {
			http.Error(w, "cannot remove the last admin", http.StatusConflict)
			return
		}
	}
	if req.IsActive != nil && !*req.IsActive {
		if last, err := s.isLastAdmin(r, id); err != nil {
			http.Error(w, err.Error(), 500)
			return
		} else if last {
			http.Error(w, "cannot deactivate the last admin", http.StatusConflict)
			return
		}
	}

	type set struct {
		sql string
		val interface{}
	}
	var sets []set
	if req.FirstName != nil {
		sets = append(sets, set{"first_name", *req.FirstName})
	}
	if req.LastName != nil {
		sets = append(sets, set{"last_name", *req.LastName})
	}
	if req.DepartmentID != nil {
		sets = append(sets, set{"department_id", *req.DepartmentID})
	}
	if req.Roles != nil {
		sets = append(sets, set{"roles", pq.Array(req.Roles)})
	}
	if req.IsActive != nil {
		sets = append(sets, set{"is_active", *req.IsActive})
	}

	if len(sets) == 0 {
		http.Error(w, "no fields to update", 400)
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

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		strings.Join(clauses, ", "), len(args))

	u, err := scanUser(s.DB.QueryRowContext(r.Context(), query, args...))
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusOK, u.Redacted())
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}

	if last, err := s.isLastAdmin(r, id); err != nil {
		http.Error(w, err.Error(), 500)
		return
	} else if last {
		http.Error(w, "cannot delete the last admin", http.StatusConflict)
		return
	}

	res, err := s.DB.ExecContext(r.Context(), `DELETE FROM users WHERE id = $1`, id)
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

// isLastAdmin reports whether id is the only remaining active admin.
func (s *Server) isLastAdmin(r *http.Request, id int64) (bool, error) {
	var isAdmin bool
	err := s.DB.QueryRowContext(r.Context(),
		`SELECT roles && ARRAY['admin'] FROM users WHERE id = $1 AND is_active = true`, id).Scan(&isAdmin)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !isAdmin {
		return false, nil
	}

	var others int
	err = s.DB.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM users WHERE id <> $1 AND is_active = true AND roles && ARRAY['admin']`, id).Scan(&others)
	if err != nil {
		return false, err
	}
	return others == 0, nil
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// getUserProfile handles GET /auth/profile for the authenticated user
func (s *Server) getUserProfile(w http.ResponseWriter, r *http.Request) {
	id := auth.UserIDFromContext(r.Context())
	if id == 0 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	u, err := scanUser(s.DB.QueryRowContext(r.Context(),
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusOK, u.Redacted())
}

// updateUserProfile handles PUT /auth/profile for the authenticated user
func (s *Server) updateUserProfile(w http.ResponseWriter, r *http.Request) {
	id := auth.UserIDFromContext(r.Context())
	if id == 0 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if req.FirstName == nil && req.LastName == nil {
		http.Error(w, "no fields to update", 400)
		return
	}

	u, err := scanUser(s.DB.QueryRowContext(r.Context(), `
		UPDATE users SET
			first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			updated_at = now()
		WHERE id = $3
		RETURNING `+userColumns,
		req.FirstName, req.LastName, id,
	))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	sendJSON(w, http.StatusOK, u.Redacted())
}

// changePassword handles POST /auth/change-password for the authenticated user
func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	id := auth.UserIDFromContext(r.Context())
	if id == 0 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		http.Error(w, "current_password and new_password are required", 400)
		return
	}
	if len(req.NewPassword) < 8 {
		http.Error(w, "new password must be at least 8 characters", 400)
		return
	}

	var hash string
	err := s.DB.QueryRowContext(r.Context(),
		`SELECT password_hash FROM users WHERE id = $1`, id).Scan(&hash)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.CurrentPassword)); err != nil {
		http.Error(w, "current password is incorrect", http.StatusUnauthorized)
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if _, err := s.DB.ExecContext(r.Context(),
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, string(newHash), id); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	sendJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}
