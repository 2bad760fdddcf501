package importer

import (
	"fmt"
	"strings"

	"assetflow-api/internal/models"
)

// TemplateType identifies one of the per-category import templates.
type TemplateType string

const (
	TemplateServer      TemplateType = "server"
	TemplateSwitch      TemplateType = "switch"
	TemplateStorage     TemplateType = "storage"
	TemplateLaptop      TemplateType = "laptop"
	TemplateDesktop     TemplateType = "desktop"
	TemplateMonitor     TemplateType = "monitor"
	TemplateMobile      TemplateType = "mobile"
	TemplateWalkie      TemplateType = "walkie"
	TemplateTablet      TemplateType = "tablet"
	TemplatePrinter     TemplateType = "printer"
	TemplatePeripherals TemplateType = "peripherals"
)

// notePair maps a CSV column onto a labeled fragment of the asset notes.
// Empty columns are skipped; the surviving fragments are joined " | ".
type notePair struct {
	header string
	label  string
}

type template struct {
	category string
	filename string
	notes    []notePair
	// hardwareDescription builds the description for laptop/desktop rows from
	// the hardware columns; all other templates use the Configuration
	// column verbatim.
	hardwareDescription bool
	csv                 string
}

var computePairs = []notePair{
	{"Asset Code", "Asset Code"},
	{"Transferred To", "Assigned"},
	{"Department", "Dept"},
	{"Issue Date", "Issued"},
	{"Previous Owner", "Previous"},
	{"Sentinel", "Sentinel"},
	{"Ninja", "Ninja"},
	{"Domain/Non Domain", "Domain"},
	{"In Office Location", "Office"},
	{"Function", "Function"},
}

var templates = map[TemplateType]template{
	TemplateServer: {
		category: "Server",
		filename: "server_import_template.csv",
		notes: []notePair{
			{"Asset Code", "Asset Code"},
			{"Physical/Virtual", "Type"},
			{"IP Address", "IP"},
			{"Mac Address", "MAC"},
			{"ILO IP", "ILO IP"},
		},
		csv: `Asset Name,Location,Model Name,Configuration,Serial No,Year Of Purchase,Warranty end,Asset Code,Physical/Virtual,IP Address,Mac Address,ILO IP
ONEHVMH2,Head Office,HP ProLiant DL380 Gen 10,2x Intel Xeon Silver 4210R | 64GB RAM | 4TB Storage,CZJ1020F01,2020,2025-12-15,1H-00001,Physical,192.168.1.10,00:1A:2B:3C:4D:5E,192.168.1.100
ONEHVMH1,Head Office,HP ProLiant DL380 Gen 11,2x Intel Xeon Gold 6430 | 128GB RAM | 8TB Storage,CZ2D2507J3,2023,2028-02-02,1H-00002,Physical,192.168.1.11,00:1A:2B:3C:4D:5F,192.168.1.101`,
	},
	TemplateSwitch: {
		category: "Switch",
		filename: "switch_import_template.csv",
		notes: []notePair{
			{"Asset Code", "Asset Code"},
			{"IP Address", "IP"},
			{"Mac Address", "MAC"},
		},
		csv: `Asset Name,Location,Model Name,Configuration,Serial No,Year Of Purchase,Warranty end,Asset Code,IP Address,Mac Address
SWITCH-CORE-01,Head Office,HP 2620-48 POE+,48-Port Gigabit PoE+ Switch,CN36J3N09H,2018,2023-06-15,1H-00099,192.168.1.252,B4:39:D6:3E:6F:2C
FIREWALL-01,Head Office,SonicWall NSa 2650,Next-Gen Firewall,18E81C27A026,2020,2025-01-15,1H-00100,192.168.1.253,2C:B8:ED:29:97:40`,
	},
	TemplateStorage: {
		category: "Storage",
		filename: "storage_import_template.csv",
		notes: []notePair{
			{"Asset Code", "Asset Code"},
			{"IP Address", "IP"},
			{"Mac Address", "MAC"},
		},
		csv: `Asset Name,Location,Model Name,Configuration,Serial number,Year Of Purchase,Warranty end,Asset Code,IP Address,Mac Address
ONEH-BACKUP,Head Office,Synology DS720+,2-Bay NAS | 8GB RAM | 2x4TB WD Red,2110QWR9N711R,2021,2024-08-15,1H-00103,192.168.1.94,00:11:32:6F:4A:E9
FILESERVER,Head Office,Synology RS1221+ Rackmount,8-Bay Rackmount NAS | 16GB RAM,2470RWR75W8CT,2024,2027-06-15,1H-00104,192.168.1.98,00:11:32:A3:8F:C5`,
	},
	TemplateLaptop: {
		category:            "Laptop",
		filename:            "laptop_import_template.csv",
		notes:               computePairs,
		hardwareDescription: true,
		csv: `Asset Name,Location,Model Name,OS Version,Memory,CPU Type,Storage,Serial No,Year Of Purchase,Warranty end,Transferred To,Department,Issue Date,Asset Code,Previous Owner,Sentinel,Ninja,Domain/Non Domain,In Office Location,Function
ONEH-SURESH-ALA,Spanish Villa,Lenovo ThinkPad T14s Gen 5,Windows 11 Pro,16 GB,Intel Core Ultra 7 155U,512 GB,5CD048LR8R,2024,2027-09-25,Suresh Pulivini,Housekeeping,25-Sep-24,1H-00200,,Done,Done,Non Domain,Spanish Villa,Operation
ONEH-JOHN-LAPTOP,Head Office,HP EliteBook 840 G8,Windows 11 Pro,16 GB,Intel Core i7-1165G7,512 GB,5CD0123456,2023,2026-05-15,John Doe,IT,15-May-23,1H-00201,,Done,Done,Domain,Head Office,Admin`,
	},
	TemplateDesktop: {
		category:            "Desktop",
		filename:            "desktop_import_template.csv",
		notes:               computePairs,
		hardwareDescription: true,
		csv: `Asset Name,Location,Model Name,OS Version,Memory,CPU Type,Storage,Serial No,Year Of Purchase,Warranty end,Transferred To,Department,Issue Date,Asset Code,Previous Owner,Sentinel,Ninja,Domain/Non Domain,In Office Location,Function
ONEH-RANJEET,Head Office,HP Pro Tower 290 G9 Desktop PC,Windows 11 Pro,8 GB,12th Gen Intel Core i5-12400,500 GB,4CE323CR0Q,2023,2025-10-18,Ranjeet Yadav,Finance,19-Oct-23,1H-00300,,Done,Done,Domain,Document Control Office,Admin
ONEH-SUNITA,Head Office,HP Pro Tower 290 G9 Desktop PC,Windows 11 Pro,16 GB,12th Gen Intel Core i7-12700,512 GB,4CE334D27Y,2023,2025-12-13,Sunita Ghale,Finance,14-Nov-23,1H-00301,,Done,Done,Domain,Finance Office,Admin`,
	},
	TemplateMonitor: {
		category: "Monitor",
		filename: "monitor_import_template.csv",
		notes: []notePair{
			{"Asset Code", "Asset Code"},
			{"Transferred To", "Assigned"},
			{"Department", "Dept"},
			{"Issued Date", "Issued"},
			{"Previous Owner", "Previous"},
		},
		csv: `Asset Name,Location,Model Name,Configuration,Serial No,Year Of Purchase,Warranty end,Transferred To,Department,Issued Date,Asset Code,Previous Owner
,Head Office,HP X24ih FDH Monitor,,1CR1411S15,2023,2026-01-15,Mariam Eissa,Finance,15-Jan-23,1H-00160,
,Head Office,Lenovo T27i-30 27inch Monitor,,V5TDG923,2024,2027-05-20,Sreejith Achuthan,Procurement,20-May-24,1H-00161,`,
	},
	TemplateMobile: {
		category: "Mobile Phone",
		filename: "mobile_import_template.csv",
		notes: []notePair{
			{"Asset Code", "Asset Code"},
			{"IMEI", "IMEI"},
			{"Transferred To", "Assigned"},
			{"Department", "Dept"},
			{"Issue Date", "Issued"},
			{"Previous Owner", "Previous"},
			{"Date Received", "Received"},
		},
		csv: `Asset Name,Location,Model Name,Configuration,Serial number,IMEI,Year Of Purchase,Warranty end,Transferred To,Department,Issue Date,Asset Code,Previous Owner,Date Received
ONEH-MOBILE-001,Head Office,iPhone 14 Pro,256GB,ABC123456,123456789012345,2023,2025-06-15,John Doe,IT,15-Jun-23,1H-00400,,15-Jun-23
ONEH-MOBILE-002,Head Office,Samsung Galaxy S23,128GB,DEF789012,987654321098765,2023,2025-08-20,Jane Smith,HR,20-Aug-23,1H-00401,,20-Aug-23`,
	},
	TemplateWalkie: {
		category: "Walkie Talkie",
		filename: "walkie_import_template.csv",
		notes: []notePair{
			{"Transferred To", "Assigned"},
			{"Department", "Dept"},
			{"Issued Date", "Issued"},
			{"Previous Owner", "Previous"},
		},
		csv: `Asset Name,Location,Model Name,Configuration,Serial No,Year Of Purchase,Warranty end,Transferred To,Department,Issued Date,Previous Owner,Department,Issued Date
WALKIE-001,Spanish Villa,Motorola DP4400e,UHF 403-527MHz,1234567890,2022,2025-03-15,Security Team,Security,15-Mar-22,,,
WALKIE-002,Head Office,Hytera PD785G,DMR Digital,0987654321,2023,2026-01-20,Maintenance,Maintenance,20-Jan-23,,,`,
	},
	TemplateTablet: {
		category: "Tablet",
		filename: "tablet_import_template.csv",
		notes: []notePair{
			{"Asset Code", "Asset Code"},
			{"Transferred To", "Assigned"},
			{"Department", "Dept"},
			{"Issued Date", "Issued"},
			{"Previous Owner", "Previous"},
		},
		csv: `Location,Model Name,Configuration,Serial No.,Year Of Purchase,Warranty end,Transferred To,Department,Issued Date,Asset Code,Previous Owner
Head Office,iPad Pro 12.9,256GB WiFi+Cellular,ABC123DEF456,2023,2026-04-10,Project Manager,Project,10-Apr-23,1H-00500,
Spanish Villa,Samsung Galaxy Tab S8,128GB WiFi,GHI789JKL012,2024,2027-02-15,Manager,Operations,15-Feb-24,1H-00501,`,
	},
	TemplatePrinter: {
		category: "Printer",
		filename: "printer_import_template.csv",
		notes: []notePair{
			{"Asset Code", "Asset Code"},
			{"Transferred To", "Assigned"},
			{"Department", "Dept"},
			{"Issued Date", "Issued"},
			{"IP Address/USB", "Connection"},
			{"Remarks", "Remarks"},
		},
		csv: `Model Name,Configuration,Serial No,Year Of Purchase,Warranty end,Transferred To,Department,Issued Date,Asset Code,IP Address/USB,Remarks
HP LaserJet Pro M404dn,Duplex Network Printer,VNC1A23456,2022,2025-05-10,Finance,Finance,10-May-22,1H-00600,192.168.1.50,Main office printer
Canon imageRUNNER ADVANCE DX C3826i,Multifunction Color Printer,ABC9876543,2023,2026-08-15,HR,HR,15-Aug-23,1H-00601,192.168.1.51,HR department MFP`,
	},
	TemplatePeripherals: {
		category: "IT Peripherals",
		filename: "peripherals_import_template.csv",
		notes: []notePair{
			{"Asset Code", "Asset Code"},
			{"Transferred To", "Assigned"},
			{"Department", "Dept"},
			{"Issued Date", "Issued"},
		},
		csv: `Asset Name,Location,Model Name,Configuration,Serial No.,Year Of Purchase,Warranty end,Transferred To,Department,Issued Date,Asset Code
KEYBOARD-001,Head Office,Logitech MX Keys,Wireless Bluetooth,2123ABC456,2023,2025-01-15,IT Department,IT,15-Jan-23,1H-00700
MOUSE-001,Head Office,Logitech MX Master 3,Wireless Ergonomic,2123DEF789,2023,2025-01-15,IT Department,IT,15-Jan-23,1H-00701`,
	},
}

// ValidTemplate reports whether t names a known import template.
func ValidTemplate(t TemplateType) bool {
	_, ok := templates[t]
	return ok
}

// TemplateTypes lists the known template identifiers.
func TemplateTypes() []TemplateType {
	return []TemplateType{
		TemplateServer, TemplateSwitch, TemplateStorage, TemplateLaptop,
		TemplateDesktop, TemplateMonitor, TemplateMobile, TemplateWalkie,
		TemplateTablet, TemplatePrinter, TemplatePeripherals,
	}
}

// TemplateCSV returns the downloadable example file for a template type.
func TemplateCSV(t TemplateType) (filename, content string, err error) {
	tpl, ok := templates[t]
	if !ok {
		return "", "", fmt.Errorf("unknown template type: %s", t)
	}
	return tpl.filename, tpl.csv, nil
}

// MapRow maps one parsed CSV row onto an asset create request using the
// template's column layout. Validation is the caller's job.
func MapRow(row Row, t TemplateType) (*models.CreateAssetRequest, error) {
	tpl, ok := templates[t]
	if !ok {
		return nil, fmt.Errorf("unknown template type: %s", t)
	}

	location := row["Location"]
	if location == "" {
		location = "Head Office"
	}

	// The first present serial column wins; headers vary across templates.
	serial := row["Serial No"]
	if serial == "" {
		serial = row["Serial No."]
	}
	if serial == "" {
		serial = row["Serial number"]
	}

	var fragments []string
	for _, p := range tpl.notes {
		if v := row[p.header]; v != "" {
			fragments = append(fragments, p.label+": "+v)
		}
	}
	notes := strings.Join(fragments, " | ")

	var description string
	if tpl.hardwareDescription {
		// Hardware summary keeps its four slots even when columns are blank,
		// so the field order stays readable on partially filled rows.
		description = fmt.Sprintf("%s | %s | %s | %s",
			row["OS Version"], row["Memory"], row["CPU Type"], row["Storage"])
	} else {
		description = row["Configuration"]
	}

	req := &models.CreateAssetRequest{
		Name:         row["Asset Name"],
		Category:     tpl.category,
		Location:     location,
		Status:       "active",
		Model:        optStr(row["Model Name"]),
		SerialNumber: optStr(serial),
		Notes:        optStr(notes),
		Description:  optStr(description),
	}
	if w := row["Warranty end"]; w != "" {
		req.WarrantyExpiry = &w
	}
	return req, nil
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
