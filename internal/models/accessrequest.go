package models

import "time"

// AccessRequestStatuses lists the valid system-access request states.
var AccessRequestStatuses = []string{"pending", "in_progress", "approved", "rejected", "completed", "cancelled"}

// AccessRequest represents one system-access onboarding request.
// RequestNumber follows the "SAR-<year>-NNNN" sequence.
type AccessRequest struct {
	ID                int64      `json:"id"`
	RequestNumber     string     `json:"request_number"`
	EmployeeFirstName string     `json:"employee_first_name"`
	EmployeeLastName  string     `json:"employee_last_name"`
	EmployeeID        *string    `json:"employee_id,omitempty"`
	Department        *string    `json:"department,omitempty"`
	DepartmentHead    *string    `json:"department_head,omitempty"`
	Email             *string    `json:"email,omitempty"`
	DateOfJoining     *time.Time `json:"date_of_joining,omitempty"`
	Status            string     `json:"status"`
	RequestedBy       *int64     `json:"requested_by,omitempty"`
	ApprovedBy        *int64     `json:"approved_by,omitempty"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	RejectedAt        *time.Time `json:"rejected_at,omitempty"`
	RejectionReason   *string    `json:"rejection_reason,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// CreateAccessRequest represents the request body for submitting a new
// system-access request.
type CreateAccessRequest struct {
	EmployeeFirstName string  `json:"employee_first_name"`
	EmployeeLastName  string  `json:"employee_last_name"`
	EmployeeID        *string `json:"employee_id,omitempty"`
	Department        *string `json:"department,omitempty"`
	DepartmentHead    *string `json:"department_head,omitempty"`
	Email             *string `json:"email,omitempty"`
	DateOfJoining     *string `json:"date_of_joining,omitempty"`
}

// UpdateAccessRequestStatus moves a request through the approval workflow.
type UpdateAccessRequestStatus struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}
