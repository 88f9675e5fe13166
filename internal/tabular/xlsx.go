package tabular

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// TimestampLayout is how date/time cells are rendered when read from a workbook.
const TimestampLayout = "2006-01-02 15:04:05"

// ReadXLSX parses workbook bytes and returns all rows of the selected sheet as
// string slices. Date/time cells are rendered with TimestampLayout so they
// parse the same way as CSV exports.
func ReadXLSX(data []byte, opts Options) ([][]string, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open workbook")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		rows = append(rows, rowToStrings(row, f.Date1904))
	}
	return rows, nil
}

func getSheet(f *xlsx.File, opts Options) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row, date1904 bool) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		if cell == nil {
			continue
		}
		cells[j] = cellString(cell, date1904)
	}
	return cells
}

func cellString(cell *xlsx.Cell, date1904 bool) string {
	if cell.Type() == xlsx.CellTypeNumeric && isDateFormat(cell.GetNumberFormat()) {
		if v, err := cell.Float(); err == nil {
			return xlsx.TimeFromExcelTime(v, date1904).Round(time.Second).Format(TimestampLayout)
		}
	}
	return cell.String()
}

// isDateFormat reports whether an Excel number format renders a date or time.
// Quoted literals and bracketed sections such as colors are ignored; elapsed
// time markers ([h], [mm], [ss]) count as time.
func isDateFormat(format string) bool {
	f := strings.ToLower(format)
	if f == "" || f == "general" || f == "@" {
		return false
	}

	var b, section strings.Builder
	inQuote, inBracket := false, false
	for _, r := range f {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
			section.Reset()
		case r == ']':
			inBracket = false
			if s := section.String(); s != "" && strings.Trim(s, "hms") == "" {
				b.WriteString(s)
			}
		case inBracket:
			section.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(b.String(), "ydhms")
}
