// Package tabular reads CRM and dialer exports (XLSX or CSV) into in-memory
// tables with normalized column names.
package tabular

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options configures how an export is read.
type Options struct {
	SheetIndex int    // XLSX: default 0
	SheetName  string // XLSX: if set, overrides SheetIndex
	Encoding   string // CSV: input charset label, default utf-8
}

// Table is a header row plus data rows. Header names are lowercased, trimmed
// and single-spaced so lookups are insensitive to export formatting.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string

	index map[string]int
}

var spaceRE = regexp.MustCompile(`\s+`)

// NormalizeColumn lowercases and collapses whitespace in a column name.
func NormalizeColumn(s string) string {
	// Casers carry transform state, so one per call.
	return spaceRE.ReplaceAllString(cases.Lower(language.Und).String(strings.TrimSpace(s)), " ")
}

// NewTable builds a Table from raw records, the first being the header.
// Fully blank rows are dropped.
func NewTable(name string, records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, eris.Errorf("tabular: %s: no header row", name)
	}

	t := &Table{
		Name:   name,
		Header: make([]string, len(records[0])),
		index:  make(map[string]int, len(records[0])),
	}
	for i, col := range records[0] {
		col = NormalizeColumn(strings.TrimPrefix(col, "\ufeff"))
		t.Header[i] = col
		if _, dup := t.index[col]; !dup && col != "" {
			t.index[col] = i
		}
	}

	for _, row := range records[1:] {
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Has reports whether the table has the named column.
func (t *Table) Has(col string) bool {
	_, ok := t.index[NormalizeColumn(col)]
	return ok
}

// Missing returns the columns from cols the table lacks.
func (t *Table) Missing(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Value returns the trimmed cell of row under col, or "" when absent.
func (t *Table) Value(row []string, col string) string {
	idx, ok := t.index[NormalizeColumn(col)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Columns returns the header names matching the predicate, in header order.
func (t *Table) Columns(match func(string) bool) []string {
	var cols []string
	for _, c := range t.Header {
		if c != "" && match(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// ReadFile reads an export from disk, choosing the parser by extension.
func ReadFile(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tabular: open %s", path)
	}
	defer f.Close()

	return Read(f, filepath.Base(path), opts)
}

// Read parses an export from r. name (typically the file name) selects the
// parser: .xlsx is read as a workbook, .csv/.txt as delimited text.
func Read(r io.Reader, name string, opts Options) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xlsx", ".xlsm":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, eris.Wrapf(err, "tabular: read %s", name)
		}
		records, err := ReadXLSX(data, opts)
		if err != nil {
			return nil, eris.Wrapf(err, "tabular: %s", name)
		}
		return NewTable(name, records)
	case ".csv", ".txt":
		records, err := ReadCSV(r, opts)
		if err != nil {
			return nil, eris.Wrapf(err, "tabular: %s", name)
		}
		return NewTable(name, records)
	default:
		return nil, eris.Errorf("tabular: unsupported file type %q for %s", ext, name)
	}
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
