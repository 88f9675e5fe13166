// Package loader turns raw CRM and dialer tables into leads and call events.
package loader

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/connectivity-cli/internal/model"
	"github.com/sells-group/connectivity-cli/internal/phone"
	"github.com/sells-group/connectivity-cli/internal/tabular"
	"github.com/sells-group/connectivity-cli/internal/utm"
)

// CRM export columns (after header normalization).
const (
	ColPhone    = "phone"
	ColFullName = "full_name"

	DefaultAttributionColumn = "utm_hit"
)

// LeadSet is the result of loading a CRM export.
type LeadSet struct {
	Leads []model.Lead
	// HasAttribution is false when the export carries neither the attribution
	// blob column nor any utm_* column.
	HasAttribution bool
	// DecodeFailures counts attribution blobs that could not be decoded.
	DecodeFailures int
}

// CRMLoader turns CRM export rows into leads.
type CRMLoader struct {
	phones            *phone.Normalizer
	attributionColumn string
}

// NewCRMLoader returns a CRMLoader. attributionColumn names the serialized
// attribution blob column; empty means DefaultAttributionColumn.
func NewCRMLoader(phones *phone.Normalizer, attributionColumn string) *CRMLoader {
	col := tabular.NormalizeColumn(attributionColumn)
	if col == "" {
		col = DefaultAttributionColumn
	}
	return &CRMLoader{phones: phones, attributionColumn: col}
}

// Load parses every row of tbl. Rows whose phone does not normalize are kept
// with an empty canonical phone.
func (l *CRMLoader) Load(tbl *tabular.Table) (*LeadSet, error) {
	if missing := tbl.Missing(ColPhone, ColFullName); len(missing) > 0 {
		return nil, eris.Errorf("crm: %s is missing required columns: %s", tbl.Name, strings.Join(missing, ", "))
	}

	hasBlob := tbl.Has(l.attributionColumn)
	flatCols := tbl.Columns(func(c string) bool {
		return c != l.attributionColumn && strings.HasPrefix(c, "utm_")
	})

	set := &LeadSet{
		Leads:          make([]model.Lead, 0, len(tbl.Rows)),
		HasAttribution: hasBlob || len(flatCols) > 0,
	}

	for i, row := range tbl.Rows {
		raw := tbl.Value(row, ColPhone)
		fullName := tbl.Value(row, ColFullName)

		lead := model.Lead{
			Row:       i + 1,
			RawPhone:  raw,
			Phone:     l.phones.Normalize(raw),
			FullName:  fullName,
			FirstName: FirstName(fullName),
		}
		lead.Region = l.phones.Region(lead.Phone)

		attrs := utm.Attributes{}
		if hasBlob {
			decoded, ok := utm.Decode(utm.TextValue(tbl.Value(row, l.attributionColumn)))
			if !ok {
				set.DecodeFailures++
			}
			attrs = decoded
		}
		for _, col := range flatCols {
			v := tbl.Value(row, col)
			if utm.TextValue(v).Kind == utm.Missing {
				continue
			}
			attrs.Fill(utm.Attributes{utm.Key(col): v})
		}
		lead.Attribution = attrs

		set.Leads = append(set.Leads, lead)
	}

	return set, nil
}

// FirstName returns the first whitespace-delimited token of a full name.
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
