package export

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/connectivity-cli/internal/model"
	"github.com/sells-group/connectivity-cli/internal/pipeline"
)

// Format selects an output renderer.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX, FormatJSON, FormatTable:
		return f, nil
	}
	return "", eris.Errorf("export: unknown format %q (want csv, xlsx, json or table)", s)
}

// Writer renders reports to files under Dir, or to Stdout for the table
// format.
type Writer struct {
	Format Format
	Dir    string
	// Prefix is prepended to every file name.
	Prefix string
	Stdout io.Writer
}

// Write renders r and returns the files written. Table output writes no
// files.
func (w *Writer) Write(r *pipeline.Report, details []model.CallDetail) ([]string, error) {
	sheets := Sheets(r, details)

	if w.Format == FormatTable {
		out := w.Stdout
		if out == nil {
			out = os.Stdout
		}
		return nil, WriteTable(out, sheets)
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "export: create %s", w.Dir)
	}

	var paths []string
	switch w.Format {
	case FormatCSV:
		var err error
		if paths, err = SaveCSV(w.Dir, w.Prefix, sheets); err != nil {
			return paths, err
		}
	case FormatXLSX:
		path := filepath.Join(w.Dir, w.Prefix+"report.xlsx")
		if err := saveFile(path, func(f io.Writer) error { return WriteXLSX(f, sheets) }); err != nil {
			return nil, err
		}
		paths = []string{path}
	case FormatJSON:
		path := filepath.Join(w.Dir, w.Prefix+"report.json")
		if err := saveFile(path, func(f io.Writer) error { return WriteJSON(f, r, details) }); err != nil {
			return nil, err
		}
		paths = []string{path}
	default:
		return nil, eris.Errorf("export: unknown format %q", w.Format)
	}

	zap.L().Info("report exported",
		zap.String("report_id", r.ID),
		zap.String("format", string(w.Format)),
		zap.Strings("files", paths),
	)
	return paths, nil
}
