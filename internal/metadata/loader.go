package metadata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tnega/gosearch/internal/entity"
	"github.com/unidoc/unioffice/spreadsheet"
)

// Column headers the loader recognizes, as they appear in GO_metadata.xlsx.
const (
	colFilename   = "Filename"
	colYear       = "Year"
	colGONumber   = "GO Number"
	colDepartment = "Department"
	colAbstract   = "Abstract"
	colDate       = "Date"
)

// Load reads per-document metadata from the first sheet of an xlsx workbook.
// The first row is the header row; every following row becomes one record
// keyed by its Filename cell. Rows without a filename are skipped.
func Load(path string) (map[string]entity.MetadataRecord, error) {
	wb, err := spreadsheet.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata workbook %s: %w", path, err)
	}
	defer wb.Close()

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("metadata workbook %s has no sheets", path)
	}

	rows := sheets[0].Rows()
	if len(rows) == 0 {
		return nil, fmt.Errorf("metadata workbook %s has no header row", path)
	}

	var headers []string
	for _, cell := range rows[0].Cells() {
		headers = append(headers, strings.TrimSpace(cell.GetFormattedValue()))
	}

	records := make(map[string]entity.MetadataRecord)
	for _, row := range rows[1:] {
		record := parseRow(headers, row.Cells())
		if record.Filename == "" {
			continue
		}
		records[record.Filename] = record
	}

	return records, nil
}

func parseRow(headers []string, cells []spreadsheet.Cell) entity.MetadataRecord {
	var record entity.MetadataRecord

	for i, cell := range cells {
		if i >= len(headers) {
			break
		}

		value := strings.TrimSpace(cell.GetFormattedValue())
		if value == "" {
			continue
		}

		switch headers[i] {
		case colFilename:
			record.Filename = value
		case colYear:
			if year, ok := cellYear(cell, value); ok {
				record.Year = &year
			}
		case colGONumber:
			record.GONumber = value
		case colDepartment:
			record.Department = value
		case colAbstract:
			record.Abstract = value
		case colDate:
			record.Date = value
		}
	}

	return record
}

// cellYear reads a year from either a numeric cell or a textual one.
func cellYear(cell spreadsheet.Cell, formatted string) (int, bool) {
	if n, err := cell.GetValueAsNumber(); err == nil {
		return int(n), true
	}
	if n, err := strconv.Atoi(formatted); err == nil {
		return n, true
	}
	return 0, false
}
