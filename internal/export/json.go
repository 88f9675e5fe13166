package export

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/connectivity-cli/internal/model"
	"github.com/sells-group/connectivity-cli/internal/pipeline"
)

// Document is the JSON form of a report.
type Document struct {
	*pipeline.Report
	CallDetails []model.CallDetail `json:"call_details,omitempty"`
}

// WriteJSON writes the report and optional call details as indented JSON.
// Unknown rates are written as null.
func WriteJSON(w io.Writer, r *pipeline.Report, details []model.CallDetail) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(Document{Report: r, CallDetails: details}), "json export: encode")
}
