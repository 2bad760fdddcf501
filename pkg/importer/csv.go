package importer

import "strings"

// Row is one parsed CSV data row, keyed by header name. Missing columns
// read as "".
type Row map[string]string

// ParseCSV splits CSV text into rows keyed by the header line.
//
// The format is deliberately simple: lines split on newline, fields split
// on comma, both trimmed. Quoted fields are not supported, so a comma
// inside a value shifts the remaining columns. The downloadable templates
// are comma-free for that reason.
func ParseCSV(text string) []Row {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	headers := splitFields(lines[0])
	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitFields(line)
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = values[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
