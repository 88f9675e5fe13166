package export

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/rotisserie/eris"
)

// NewTextTable returns a borderless, left-aligned table with headers printed
// as given.
func NewTextTable(w io.Writer, header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetBorder(false)
	t.SetHeaderLine(false)
	t.SetCenterSeparator("")
	t.SetColumnSeparator("")
	t.SetRowSeparator("")
	t.SetTablePadding("  ")
	t.SetNoWhiteSpace(true)
	return t
}

// WriteTable prints sheets as aligned text tables separated by a blank line.
func WriteTable(w io.Writer, sheets []Sheet) error {
	for i, s := range sheets {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return eris.Wrap(err, "table export: write")
			}
		}
		if _, err := fmt.Fprintf(w, "== %s (%d rows) ==\n", s.Name, len(s.Rows)); err != nil {
			return eris.Wrap(err, "table export: write")
		}

		t := NewTextTable(w, s.Header)
		for _, r := range s.Rows {
			cells := make([]string, len(s.Header))
			for j := range cells {
				if j < len(r) {
					cells[j] = cellString(r[j])
				}
			}
			t.Append(cells)
		}
		t.Render()
	}
	return nil
}
