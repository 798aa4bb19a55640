// Package roster imports students from delimited roster files. The format
// handling is a best-effort heuristic kept compatible with the files
// departments already have: naive comma splitting, surrounding-quote
// stripping, and substring header sniffing. Malformed rows are skipped,
// never fatal; only a structurally unusable file is rejected.
package roster

import (
	"errors"
	"strconv"
	"strings"
)

// Row is one importable student line. Program is the raw program name from
// the file, resolved against existing programs at insert time.
type Row struct {
	Name      string
	RegNumber string
	Program   string
	Year      int
}

var (
	// ErrTooShort is returned when the file lacks a header plus data row.
	ErrTooShort = errors.New("CSV must have headers and at least one data row")
	// ErrMissingColumns is returned when name or registration cannot be located.
	ErrMissingColumns = errors.New(`CSV must have "name" and "registration number/id" columns`)
)

// Parse reads the whole roster text and returns the importable rows, the
// count of rows skipped for missing name/registration, and the total number
// of data rows.
func Parse(content string) (rows []Row, skipped, total int, err error) {
	var lines []string
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return nil, 0, 0, ErrTooShort
	}

	nameIdx, regIdx, progIdx, yearIdx := sniffHeaders(lines[0])
	if nameIdx == -1 || regIdx == -1 {
		return nil, 0, 0, ErrMissingColumns
	}

	total = len(lines) - 1
	for _, line := range lines[1:] {
		cols := splitFields(line)
		name := field(cols, nameIdx)
		reg := field(cols, regIdx)
		if name == "" || reg == "" {
			skipped++
			continue
		}

		row := Row{Name: name, RegNumber: reg, Year: 1}
		if progIdx != -1 {
			row.Program = field(cols, progIdx)
		}
		if yearIdx != -1 {
			if y, err := strconv.Atoi(field(cols, yearIdx)); err == nil && y > 0 {
				row.Year = y
			}
		}
		rows = append(rows, row)
	}
	return rows, skipped, total, nil
}

// sniffHeaders locates columns by case-insensitive substring match, first
// match wins. The name column must not mention "program" so a
// "program name" header cannot shadow the student name.
func sniffHeaders(header string) (nameIdx, regIdx, progIdx, yearIdx int) {
	nameIdx, regIdx, progIdx, yearIdx = -1, -1, -1, -1
	for i, h := range strings.Split(header, ",") {
		h = strings.ToLower(strings.TrimSpace(h))
		if nameIdx == -1 && strings.Contains(h, "name") && !strings.Contains(h, "program") {
			nameIdx = i
		}
		if regIdx == -1 && (strings.Contains(h, "reg") || strings.Contains(h, "id") || strings.Contains(h, "number")) {
			regIdx = i
		}
		if progIdx == -1 && strings.Contains(h, "program") {
			progIdx = i
		}
		if yearIdx == -1 && strings.Contains(h, "year") {
			yearIdx = i
		}
	}
	return
}

func splitFields(line string) []string {
	cols := strings.Split(line, ",")
	for i, c := range cols {
		c = strings.TrimSpace(c)
		c = strings.Trim(c, `"'`)
		cols[i] = c
	}
	return cols
}

func field(cols []string, idx int) string {
	if idx < 0 || idx >= len(cols) {
		return ""
	}
	return cols[idx]
}
