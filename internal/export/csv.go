package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// WriteCSV writes one sheet as CSV to w.
func WriteCSV(w io.Writer, s Sheet) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(s.Header); err != nil {
		return eris.Wrapf(err, "csv export: write %s header", s.Name)
	}
	row := make([]string, len(s.Header))
	for _, r := range s.Rows {
		for i := range row {
			row[i] = ""
			if i < len(r) {
				row[i] = cellString(r[i])
			}
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "csv export: write %s row", s.Name)
		}
	}

	cw.Flush()
	return eris.Wrapf(cw.Error(), "csv export: flush %s", s.Name)
}

// SaveCSV writes each sheet to <dir>/<prefix><sheet>.csv and returns the
// paths written.
func SaveCSV(dir, prefix string, sheets []Sheet) ([]string, error) {
	paths := make([]string, 0, len(sheets))
	for _, s := range sheets {
		path := filepath.Join(dir, prefix+s.Name+".csv")
		if err := saveFile(path, func(w io.Writer) error { return WriteCSV(w, s) }); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func saveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}
