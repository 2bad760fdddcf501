package models

import "time"

// MaintenanceStatuses lists the valid maintenance record states.
var MaintenanceStatuses = []string{"scheduled", "in_progress", "completed", "cancelled"}

// MaintenanceRecord represents one maintenance job against an asset.
type MaintenanceRecord struct {
	ID            int64      `json:"id"`
	AssetID       int64      `json:"asset_id"`
	Type          string     `json:"type"`
	Description   *string    `json:"description,omitempty"`
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	Cost          float64    `json:"cost"`
	PerformedBy   *string    `json:"performed_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateMaintenanceRequest represents the request body for scheduling
// maintenance. Dates travel as "2006-01-02" strings.
type CreateMaintenanceRequest struct {
	AssetID       int64   `json:"asset_id"`
	Type          string  `json:"type"`
	Description   *string `json:"description,omitempty"`
	Status        string  `json:"status"`
	ScheduledDate *string `json:"scheduled_date,omitempty"`
	Cost          float64 `json:"cost"`
	PerformedBy   *string `json:"performed_by,omitempty"`
}

// UpdateMaintenanceRequest represents a partial maintenance update.
type UpdateMaintenanceRequest struct {
	Type          *string  `json:"type,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Status        *string  `json:"status,omitempty"`
	ScheduledDate *string  `json:"scheduled_date,omitempty"`
	CompletedDate *string  `json:"completed_date,omitempty"`
	Cost          *float64 `json:"cost,omitempty"`
	PerformedBy   *string  `json:"performed_by,omitempty"`
}
