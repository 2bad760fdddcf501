package models

import "time"

// Department groups assets and users by organizational unit.
type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Location is a master-data entry for a physical site or office.
type Location struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Manufacturer is a master-data entry for a hardware vendor.
type Manufacturer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryRecord is a stored category row; the catalog in Categories is the
// fallback when the table is empty.
type CategoryRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MasterData bundles all lookup lists for a single fetch.
type MasterData struct {
	Departments   []Department     `json:"departments"`
	Locations     []Location       `json:"locations"`
	Manufacturers []Manufacturer   `json:"manufacturers"`
	Categories    []CategoryRecord `json:"categories"`
}
