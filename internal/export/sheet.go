// Package export renders reports as CSV files, an XLSX workbook, JSON or a
// console table.
package export

import (
	"strconv"
	"time"

	"github.com/sells-group/connectivity-cli/internal/model"
	"github.com/sells-group/connectivity-cli/internal/pipeline"
	"github.com/sells-group/connectivity-cli/internal/tabular"
)

// Sheet is one report as a header and rows of cells. Cells hold string, int,
// float64, bool or nil; nil renders as an empty cell.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Sheet names, also used as CSV file stems.
const (
	SheetContacts  = "contacts"
	SheetCampaigns = "campaigns"
	SheetSources   = "sources"
	SheetQuality   = "quality"
	SheetDetails   = "call_details"
)

// Sheets lays out a report. Campaign and source sheets are omitted when the
// report has no attribution; the details sheet is omitted when details is empty.
func Sheets(r *pipeline.Report, details []model.CallDetail) []Sheet {
	sheets := []Sheet{ContactsSheet(r.Contacts)}
	if r.HasAttribution {
		sheets = append(sheets, CampaignsSheet(r.Campaigns), SourcesSheet(r.Sources))
	}
	sheets = append(sheets, QualitySheet(r.Quality))
	if len(details) > 0 {
		sheets = append(sheets, DetailsSheet(details))
	}
	return sheets
}

// ContactsSheet lays out the per-contact call summary.
func ContactsSheet(rows []model.ContactSummary) Sheet {
	s := Sheet{
		Name: SheetContacts,
		Header: []string{
			"canonical_phone", "first_name", "account", "region",
			"answered_calls", "missed_calls",
			"total_duration_seconds", "answered_duration_seconds",
			"total_duration", "answered_duration",
		},
	}
	for _, c := range rows {
		s.Rows = append(s.Rows, []any{
			c.Phone, c.FirstName, c.Account, c.Region,
			c.AnsweredCalls, c.MissedCalls,
			c.TotalDurationSeconds, c.AnsweredDurationSeconds,
			c.TotalDuration, c.AnsweredDuration,
		})
	}
	return s
}

// CampaignsSheet lays out the per-campaign funnel.
func CampaignsSheet(rows []model.CampaignEngagement) Sheet {
	s := Sheet{
		Name: SheetCampaigns,
		Header: []string{
			"utm_source", "utm_campaign", "lead_rows", "total_leads",
			"contacted_leads", "answered_leads", "missed_leads", "other_leads",
			"dialled_leads", "untouched_leads",
			"contact_rate_%", "answer_rate_%",
		},
	}
	for _, e := range rows {
		s.Rows = append(s.Rows, []any{
			e.Source, e.Campaign, e.LeadRows, e.TotalLeads,
			e.ContactedLeads, e.AnsweredLeads, e.MissedLeads, e.OtherLeads,
			e.DialledLeads, e.UntouchedLeads,
			optFloat(e.ContactRatePct), e.AnswerRatePct,
		})
	}
	return s
}

// SourcesSheet lays out per-source connectivity.
func SourcesSheet(rows []model.SourceConnectivity) Sheet {
	s := Sheet{
		Name:   SheetSources,
		Header: []string{"utm_source", "answered_calls", "missed_calls", "total_calls", "connectivity_rate"},
	}
	for _, c := range rows {
		s.Rows = append(s.Rows, []any{
			c.Source, c.AnsweredCalls, c.MissedCalls, c.TotalCalls, optFloat(c.ConnectivityRate),
		})
	}
	return s
}

// QualitySheet lays out run counters as metric/value pairs.
func QualitySheet(q model.Quality) Sheet {
	return Sheet{
		Name:   SheetQuality,
		Header: []string{"metric", "value"},
		Rows: [][]any{
			{"lead_rows", q.LeadRows},
			{"leads_with_phone", q.LeadsWithPhone},
			{"leads_without_phone", q.LeadsWithoutPhone},
			{"distinct_lead_phones", q.DistinctLeadPhones},
			{"contacted_leads", q.ContactedLeads},
			{"untouched_leads", q.UntouchedLeads},
			{"attribution_decode_failures", q.AttributionFailures},
			{"call_rows", q.CallRows},
			{"calls_without_phone", q.CallsWithoutPhone},
			{"unmatched_calls", q.UnmatchedCalls},
			{"negative_duration_calls", q.NegativeDurationCalls},
			{"unparsed_timestamp_calls", q.UnparsedTimeCalls},
		},
	}
}

// DetailsSheet lays out the call attempts of one contact.
func DetailsSheet(rows []model.CallDetail) Sheet {
	s := Sheet{
		Name: SheetDetails,
		Header: []string{
			"canonical_phone", "account", "start_time", "end_time",
			"call_status", "answer_duration", "total_duration", "negative_duration",
		},
	}
	for _, d := range rows {
		s.Rows = append(s.Rows, []any{
			d.Phone, d.Account, optTime(d.Start), optTime(d.End),
			string(d.Status), d.AnswerDuration, d.TotalDuration, d.NegativeDuration,
		})
	}
	return s
}

func optFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func optTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(tabular.TimestampLayout)
}

// cellString renders a cell for text outputs.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
