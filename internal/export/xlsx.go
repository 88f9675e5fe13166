package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Workbook builds an XLSX file with one worksheet per sheet. Numbers are
// stored as numeric cells; nil cells are left empty.
func Workbook(sheets []Sheet) (*xlsx.File, error) {
	f := xlsx.NewFile()
	for _, s := range sheets {
		ws, err := f.AddSheet(s.Name)
		if err != nil {
			return nil, eris.Wrapf(err, "xlsx export: add sheet %s", s.Name)
		}

		header := ws.AddRow()
		for _, h := range s.Header {
			header.AddCell().SetString(h)
		}
		for _, r := range s.Rows {
			row := ws.AddRow()
			for _, v := range r {
				setCell(row.AddCell(), v)
			}
		}
	}
	return f, nil
}

func setCell(c *xlsx.Cell, v any) {
	switch x := v.(type) {
	case nil:
	case int:
		c.SetInt(x)
	case float64:
		c.SetFloat(x)
	case bool:
		c.SetBool(x)
	default:
		c.SetString(cellString(v))
	}
}

// WriteXLSX writes the workbook for sheets to w.
func WriteXLSX(w io.Writer, sheets []Sheet) error {
	f, err := Workbook(sheets)
	if err != nil {
		return err
	}
	return eris.Wrap(f.Write(w), "xlsx export: write")
}
