package models

import "time"

// Categories is the fixed asset category catalog. "Other" is the catch-all
// for assets that don't fit a named category.
var Categories = []string{
	"Server", "Switch", "Storage", "Laptop", "Desktop", "Monitor",
	"Mobile Phone", "Walkie Talkie", "Tablet", "Printer", "IT Peripherals", "Other",
}

// Statuses lists the valid asset lifecycle states.
var Statuses = []string{"active", "in_stock", "maintenance", "retired", "disposed", "not_upgradable"}

// Conditions lists the valid asset conditions, best to worst.
var Conditions = []string{"excellent", "good", "fair", "poor"}

// Asset represents one tracked IT asset.
type Asset struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	AssetCode        *string    `json:"asset_code,omitempty"`
	Category         string     `json:"category"`
	Location         string     `json:"location"`
	InOfficeLocation *string    `json:"in_office_location,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Manufacturer     *string    `json:"manufacturer,omitempty"`
	Model            *string    `json:"model,omitempty"`
	SerialNumber     *string    `json:"serial_number,omitempty"`
	OSVersion        *string    `json:"os_version,omitempty"`
	CPUType          *string    `json:"cpu_type,omitempty"`
	Memory           *string    `json:"memory,omitempty"`
	Storage          *string    `json:"storage,omitempty"`
	IPAddress        *string    `json:"ip_address,omitempty"`
	MACAddress       *string    `json:"mac_address,omitempty"`
	ILOIP            *string    `json:"ilo_ip,omitempty"`
	AssignedTo       *string    `json:"assigned_to,omitempty"`
	DepartmentID     *int64     `json:"department_id,omitempty"`
	PreviousOwner    *string    `json:"previous_owner,omitempty"`
	Status           string     `json:"status"`
	Condition        string     `json:"condition"`
	PurchaseDate     *time.Time `json:"purchase_date,omitempty"`
	PurchaseCost     float64    `json:"purchase_cost"`
	CurrentValue     float64    `json:"current_value"`
	WarrantyExpiry   *time.Time `json:"warranty_expiry,omitempty"`
	YearOfPurchase   *int       `json:"year_of_purchase,omitempty"`
	SentinelStatus   *string    `json:"sentinel_status,omitempty"`
	NinjaStatus      *string    `json:"ninja_status,omitempty"`
	DomainStatus     *string    `json:"domain_status,omitempty"`
	Function         *string    `json:"function,omitempty"`
	PhysicalVirtual  *string    `json:"physical_virtual,omitempty"`
	IssueDate        *string    `json:"issue_date,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreateAssetRequest represents the request body for creating a new asset.
// Dates travel as strings ("2006-01-02") and are handed to the store as-is;
// imported warranty values are copied verbatim from the CSV.
type CreateAssetRequest struct {
	Name             string  `json:"name"`
	AssetCode        *string `json:"asset_code,omitempty"`
	Category         string  `json:"category"`
	Location         string  `json:"location"`
	InOfficeLocation *string `json:"in_office_location,omitempty"`
	Description      *string `json:"description,omitempty"`
	Manufacturer     *string `json:"manufacturer,omitempty"`
	Model            *string `json:"model,omitempty"`
	SerialNumber     *string `json:"serial_number,omitempty"`
	OSVersion        *string `json:"os_version,omitempty"`
	CPUType          *string `json:"cpu_type,omitempty"`
	Memory           *string `json:"memory,omitempty"`
	Storage          *string `json:"storage,omitempty"`
	IPAddress        *string `json:"ip_address,omitempty"`
	MACAddress       *string `json:"mac_address,omitempty"`
	ILOIP            *string `json:"ilo_ip,omitempty"`
	AssignedTo       *string `json:"assigned_to,omitempty"`
	DepartmentID     *int64  `json:"department_id,omitempty"`
	PreviousOwner    *string `json:"previous_owner,omitempty"`
	Status           string  `json:"status"`
	Condition        string  `json:"condition"`
	PurchaseDate     *string `json:"purchase_date,omitempty"`
	PurchaseCost     float64 `json:"purchase_cost"`
	CurrentValue     float64 `json:"current_value"`
	WarrantyExpiry   *string `json:"warranty_expiry,omitempty"`
	YearOfPurchase   *int    `json:"year_of_purchase,omitempty"`
	SentinelStatus   *string `json:"sentinel_status,omitempty"`
	NinjaStatus      *string `json:"ninja_status,omitempty"`
	DomainStatus     *string `json:"domain_status,omitempty"`
	Function         *string `json:"function,omitempty"`
	PhysicalVirtual  *string `json:"physical_virtual,omitempty"`
	IssueDate        *string `json:"issue_date,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// UpdateAssetRequest represents a partial asset update. Nil means "leave
// unchanged".
type UpdateAssetRequest struct {
	Name             *string  `json:"name,omitempty"`
	AssetCode        *string  `json:"asset_code,omitempty"`
	Category         *string  `json:"category,omitempty"`
	Location         *string  `json:"location,omitempty"`
	InOfficeLocation *string  `json:"in_office_location,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Manufacturer     *string  `json:"manufacturer,omitempty"`
	Model            *string  `json:"model,omitempty"`
	SerialNumber     *string  `json:"serial_number,omitempty"`
	OSVersion        *string  `json:"os_version,omitempty"`
	CPUType          *string  `json:"cpu_type,omitempty"`
	Memory           *string  `json:"memory,omitempty"`
	Storage          *string  `json:"storage,omitempty"`
	IPAddress        *string  `json:"ip_address,omitempty"`
	MACAddress       *string  `json:"mac_address,omitempty"`
	ILOIP            *string  `json:"ilo_ip,omitempty"`
	AssignedTo       *string  `json:"assigned_to,omitempty"`
	DepartmentID     *int64   `json:"department_id,omitempty"`
	PreviousOwner    *string  `json:"previous_owner,omitempty"`
	Status           *string  `json:"status,omitempty"`
	Condition        *string  `json:"condition,omitempty"`
	PurchaseDate     *string  `json:"purchase_date,omitempty"`
	PurchaseCost     *float64 `json:"purchase_cost,omitempty"`
	CurrentValue     *float64 `json:"current_value,omitempty"`
	WarrantyExpiry   *string  `json:"warranty_expiry,omitempty"`
	YearOfPurchase   *int     `json:"year_of_purchase,omitempty"`
	SentinelStatus   *string  `json:"sentinel_status,omitempty"`
	NinjaStatus      *string  `json:"ninja_status,omitempty"`
	DomainStatus     *string  `json:"domain_status,omitempty"`
	Function         *string  `json:"function,omitempty"`
	PhysicalVirtual  *string  `json:"physical_virtual,omitempty"`
	IssueDate        *string  `json:"issue_date,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

// BulkAssetRequest applies one new value to every asset in IDs.
// Action is one of: assign, transfer, status, condition, delete.
type BulkAssetRequest struct {
	Action string  `json:"action"`
	IDs    []int64 `json:"ids"`
	Value  string  `json:"value,omitempty"`
}

// AssetStats is the summary returned by /assets/stats/summary.
type AssetStats struct {
	TotalAssets   int            `json:"total_assets"`
	TotalValue    float64        `json:"total_value"`
	Assigned      int            `json:"assigned"`
	InMaintenance int            `json:"in_maintenance"`
	ByCategory    map[string]int `json:"by_category"`
	ByStatus      map[string]int `json:"by_status"`
}
