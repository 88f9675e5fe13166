package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/connectivity-cli/internal/model"
	"github.com/sells-group/connectivity-cli/internal/pipeline"
)

func testReport() *pipeline.Report {
	return &pipeline.Report{
		ID:             "r-1",
		HasAttribution: true,
		Contacts: []model.ContactSummary{{
			Phone: "919876543210", FirstName: "Asha", Account: "acct-1", Region: "IN",
			AnsweredCalls: 1, TotalDurationSeconds: 100, AnsweredDurationSeconds: 90,
			TotalDuration: "00:01:40", AnsweredDuration: "00:01:30",
		}},
		Campaigns: []model.CampaignEngagement{
			{Source: "google", Campaign: "spring", TotalLeads: 1, AnsweredLeads: 1, DialledLeads: 1,
				ContactRatePct: model.Float(100), AnswerRatePct: 100},
			{Source: "none", Campaign: "none", LeadRows: 1},
		},
		Sources: []model.SourceConnectivity{
			{Source: "google", AnsweredCalls: 1, TotalCalls: 1, ConnectivityRate: model.Float(1)},
			{Source: "none"},
		},
		Quality: model.Quality{LeadRows: 2, CallRows: 1},
	}
}

func testDetails() []model.CallDetail {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []model.CallDetail{{
		Phone: "919876543210", Account: "acct-1", Start: &start,
		Status: model.StatusAnswered, AnswerDuration: "00:01:30",
	}}
}

func TestSheets(t *testing.T) {
	sheets := Sheets(testReport(), nil)
	names := make([]string, len(sheets))
	for i, s := range sheets {
		names[i] = s.Name
	}
	assert.Equal(t, []string{SheetContacts, SheetCampaigns, SheetSources, SheetQuality}, names)

	r := testReport()
	r.HasAttribution = false
	sheets = Sheets(r, testDetails())
	require.Len(t, sheets, 3)
	assert.Equal(t, SheetDetails, sheets[2].Name)
}

func TestCampaignsSheet_NilRate(t *testing.T) {
	s := CampaignsSheet(testReport().Campaigns)
	require.Len(t, s.Rows, 2)
	assert.Len(t, s.Rows[0], len(s.Header))
	assert.Equal(t, 100.0, s.Rows[0][10])
	assert.Nil(t, s.Rows[1][10])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, SourcesSheet(testReport().Sources)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"utm_source", "answered_calls", "missed_calls", "total_calls", "connectivity_rate"}, records[0])
	assert.Equal(t, []string{"google", "1", "0", "1", "1"}, records[1])
	assert.Equal(t, []string{"none", "0", "0", "0", ""}, records[2])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Sheets(testReport(), testDetails())))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 5)

	campaigns := f.Sheet[SheetCampaigns]
	require.NotNil(t, campaigns)
	require.Len(t, campaigns.Rows, 3)
	assert.Equal(t, "utm_source", campaigns.Rows[0].Cells[0].String())

	rate, err := campaigns.Rows[1].Cells[10].Float()
	require.NoError(t, err)
	assert.Equal(t, 100.0, rate)

	details := f.Sheet[SheetDetails]
	require.NotNil(t, details)
	assert.Equal(t, "2024-03-01 10:00:00", details.Rows[1].Cells[2].String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testReport(), testDetails()))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "r-1", doc["id"])
	assert.Len(t, doc["call_details"], 1)

	sources := doc["sources"].([]any)
	require.Len(t, sources, 2)
	none := sources[1].(map[string]any)
	v, ok := none["connectivity_rate"]
	assert.True(t, ok)
	assert.Nil(t, v)

	_, hasLeads := doc["Leads"]
	assert.False(t, hasLeads)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, Sheets(testReport(), nil)))

	out := buf.String()
	assert.Contains(t, out, "== contacts (1 rows) ==")
	assert.Contains(t, out, "== quality (12 rows) ==")
	assert.Contains(t, out, "919876543210")
	assert.Contains(t, out, "00:01:40")
	assert.NotContains(t, out, "|")
	assert.NotContains(t, out, "+-")
}

func TestNewTextTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTextTable(&buf, []string{"input", "canonical"})
	tbl.Append([]string{"9876543210", "919876543210"})
	tbl.Append([]string{"x", ""})
	tbl.Render()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"input", "canonical"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"9876543210", "919876543210"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"x"}, strings.Fields(lines[2]))
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"csv", "XLSX", " json ", "table"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := (&Writer{Format: FormatCSV, Dir: dir, Prefix: "run_"}).Write(testReport(), nil)
	require.NoError(t, err)
	require.Len(t, paths, 4)
	assert.Equal(t, filepath.Join(dir, "run_contacts.csv"), paths[0])
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}

	paths, err = (&Writer{Format: FormatXLSX, Dir: dir}).Write(testReport(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "report.xlsx")}, paths)

	paths, err = (&Writer{Format: FormatJSON, Dir: dir}).Write(testReport(), testDetails())
	require.NoError(t, err)
	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"))

	var buf bytes.Buffer
	paths, err = (&Writer{Format: FormatTable, Stdout: &buf}).Write(testReport(), nil)
	require.NoError(t, err)
	assert.Empty(t, paths)
	assert.Contains(t, buf.String(), "campaigns")

	_, err = (&Writer{Format: "pdf", Dir: dir}).Write(testReport(), nil)
	assert.Error(t, err)
}
