package assetview

// baseFields are shown for every category.
var baseFields = []string{
	"name", "asset_code", "category", "location", "description",
	"manufacturer", "model", "serial_number", "assigned_to", "department_id",
	"status", "condition", "purchase_date", "purchase_cost", "current_value",
	"warranty_expiry", "notes",
}

// categoryFields holds the category-specific additions to the base set.
var categoryFields = map[string][]string{
	"Server":         {"ip_address", "mac_address", "ilo_ip", "physical_virtual", "function"},
	"Switch":         {"ip_address", "mac_address"},
	"Storage":        {"ip_address", "mac_address"},
	"Laptop":         {"os_version", "cpu_type", "memory", "storage", "sentinel_status", "ninja_status", "domain_status", "in_office_location", "function", "issue_date", "previous_owner"},
	"Desktop":        {"os_version", "cpu_type", "memory", "storage", "sentinel_status", "ninja_status", "domain_status", "in_office_location", "function", "issue_date", "previous_owner"},
	"Monitor":        {"issue_date", "previous_owner"},
	"Mobile Phone":   {"issue_date", "previous_owner"},
	"Walkie Talkie":  {"issue_date", "previous_owner"},
	"Tablet":         {"issue_date", "previous_owner"},
	"Printer":        {"ip_address", "issue_date"},
	"IT Peripherals": {"issue_date"},
}

// VisibleFields returns the set of form/detail fields shown for a category.
// Unknown categories (including "Other") get the base set only.
func VisibleFields(category string) map[string]bool {
	out := make(map[string]bool, len(baseFields)+8)
	for _, f := range baseFields {
		out[f] = true
	}
	for _, f := range categoryFields[category] {
		out[f] = true
	}
	return out
}
