package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCRM = `phone,full_name,utm_hit
9876543210,Asha Rao,"{'utmSource': 'google', 'utmCampaign': 'spring'}"
9876543211,Ravi Kumar,"{'utmSource': 'meta', 'utmCampaign': 'fall'}"
`

const testDialer = `Customer Number,Account,Start Time,End Time,Queue Duration,Call Status
+919876543210,acct-1,2024-03-01 10:00:00,2024-03-01 10:01:30,00:00:10,Answered
919876543211,acct-1,2024-03-01 11:00:00,2024-03-01 11:00:00,00:00:05,Missed
`

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		reportContact, reportPrefix = "", ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFixtures(t *testing.T) (crm, dialer string) {
	t.Helper()
	dir := t.TempDir()
	crm = filepath.Join(dir, "leads.csv")
	dialer = filepath.Join(dir, "calls.csv")
	require.NoError(t, os.WriteFile(crm, []byte(testCRM), 0o644))
	require.NoError(t, os.WriteFile(dialer, []byte(testDialer), 0o644))
	return crm, dialer
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"report", "normalize", "serve"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "connectivity-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestReportCommand_Flags(t *testing.T) {
	for _, name := range []string{"crm", "dialer", "out-dir", "format", "default-cc", "attribution-column", "contact", "prefix"} {
		assert.NotNil(t, reportCmd.Flags().Lookup(name), "report should have --%s flag", name)
	}
	for _, name := range []string{"crm", "dialer"} {
		flag := reportCmd.Flags().Lookup(name)
		assert.Equal(t, []string{"true"}, flag.Annotations[cobra.BashCompOneRequiredFlag], "--%s should be required", name)
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestReportCommand_JSON(t *testing.T) {
	crm, dialer := writeFixtures(t)
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := executeCommand(t, "report",
		"--crm", crm, "--dialer", dialer,
		"--out-dir", outDir, "--format", "json",
		"--contact", "+91 98765 43210",
	)
	require.NoError(t, err, out)

	path := filepath.Join(outDir, "report.json")
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Campaigns []struct {
			Source        string  `json:"utm_source"`
			AnsweredLeads int     `json:"answered_leads"`
			MissedLeads   int     `json:"missed_leads"`
			AnswerRatePct float64 `json:"answer_rate_pct"`
		} `json:"campaigns"`
		Sources []struct {
			Source           string   `json:"utm_source"`
			ConnectivityRate *float64 `json:"connectivity_rate"`
		} `json:"sources"`
		CallDetails []json.RawMessage `json:"call_details"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Campaigns, 2)
	assert.Equal(t, "google", doc.Campaigns[0].Source)
	assert.Equal(t, 1, doc.Campaigns[0].AnsweredLeads)
	assert.Equal(t, "meta", doc.Campaigns[1].Source)
	assert.Equal(t, 1, doc.Campaigns[1].MissedLeads)
	assert.Equal(t, 0.0, doc.Campaigns[1].AnswerRatePct)

	require.Len(t, doc.Sources, 2)
	assert.Equal(t, 0.0, *doc.Sources[1].ConnectivityRate)
	assert.Len(t, doc.CallDetails, 1)
}

func TestReportCommand_CSV(t *testing.T) {
	crm, dialer := writeFixtures(t)
	outDir := t.TempDir()

	out, err := executeCommand(t, "report",
		"--crm", crm, "--dialer", dialer,
		"--out-dir", outDir, "--format", "csv", "--prefix", "march_",
	)
	require.NoError(t, err, out)

	for _, name := range []string{"contacts", "campaigns", "sources", "quality"} {
		_, err := os.Stat(filepath.Join(outDir, "march_"+name+".csv"))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "march_contacts.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "919876543210,Asha,acct-1,IN,1,0,100,90,00:01:40,00:01:30")
}

func TestReportCommand_Table(t *testing.T) {
	crm, dialer := writeFixtures(t)

	out, err := executeCommand(t, "report", "--crm", crm, "--dialer", dialer, "--format", "table")
	require.NoError(t, err, out)
	assert.Contains(t, out, "== contacts (2 rows) ==")
	assert.Contains(t, out, "== sources (2 rows) ==")
}

func TestReportCommand_Errors(t *testing.T) {
	crm, dialer := writeFixtures(t)

	_, err := executeCommand(t, "report", "--crm", crm, "--dialer", filepath.Join(t.TempDir(), "nope.csv"), "--format", "json")
	assert.Error(t, err)

	_, err = executeCommand(t, "report", "--crm", crm, "--dialer", dialer, "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report.format")

	_, err = executeCommand(t, "report", "--crm", crm, "--dialer", dialer, "--format", "table", "--contact", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid phone number")
}

func TestNormalizeCommand(t *testing.T) {
	out, err := executeCommand(t, "normalize", "9876543210", "+1 (650) 253-0000", "12345")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"input", "canonical", "region"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"9876543210", "919876543210", "IN"}, strings.Fields(lines[1]))
	assert.Contains(t, lines[2], "16502530000")
	assert.Contains(t, lines[2], "US")
	assert.Equal(t, []string{"12345", "-", "-"}, strings.Fields(lines[3]))
}

func TestNormalizeCommand_RequiresArgs(t *testing.T) {
	_, err := executeCommand(t, "normalize")
	assert.Error(t, err)
}
