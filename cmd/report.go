package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/connectivity-cli/internal/export"
	"github.com/sells-group/connectivity-cli/internal/model"
)

var (
	reportCRM         string
	reportDialer      string
	reportOutDir      string
	reportFormat      string
	reportDefaultCC   string
	reportAttribution string
	reportContact     string
	reportPrefix      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build contact, campaign and source reports from a CRM and a dialer export",
	Example: `  connectivity-cli report --crm leads.xlsx --dialer calls.xlsx
  connectivity-cli report --crm leads.csv --dialer calls.csv --format table --contact 9876543210`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyReportFlags(cmd)
		if err := cfg.Validate("report"); err != nil {
			return err
		}

		format, err := export.ParseFormat(cfg.Report.Format)
		if err != nil {
			return err
		}

		builder, err := newBuilder(cfg)
		if err != nil {
			return err
		}

		report, err := builder.BuildFiles(cmd.Context(), reportCRM, reportDialer)
		if err != nil {
			return eris.Wrap(err, "report")
		}

		var details []model.CallDetail
		if reportContact != "" {
			phone := builder.Normalizer().Normalize(reportContact)
			if phone == "" {
				return eris.Errorf("report: --contact %q is not a valid phone number", reportContact)
			}
			details = report.CallDetails(phone)
			if len(details) == 0 {
				zap.L().Warn("no calls found for contact", zap.String("phone", phone))
			}
		}

		w := &export.Writer{
			Format: format,
			Dir:    cfg.Report.OutputDir,
			Prefix: reportPrefix,
			Stdout: cmd.OutOrStdout(),
		}
		paths, err := w.Write(report, details)
		if err != nil {
			return eris.Wrap(err, "report: export")
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

// applyReportFlags lets explicitly set flags override config values.
func applyReportFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("out-dir") {
		cfg.Report.OutputDir = reportOutDir
	}
	if flags.Changed("format") {
		cfg.Report.Format = strings.ToLower(reportFormat)
	}
	if flags.Changed("default-cc") {
		cfg.Phone.DefaultCountryCode = reportDefaultCC
	}
	if flags.Changed("attribution-column") {
		cfg.Input.AttributionColumn = reportAttribution
	}
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportCRM, "crm", "", "CRM lead export (.xlsx or .csv)")
	f.StringVar(&reportDialer, "dialer", "", "dialer call export (.xlsx or .csv)")
	f.StringVar(&reportOutDir, "out-dir", "", "output directory (default from config)")
	f.StringVar(&reportFormat, "format", "", "output format: csv, xlsx, json or table (default from config)")
	f.StringVar(&reportDefaultCC, "default-cc", "", "calling code or region for 10-digit numbers (default from config)")
	f.StringVar(&reportAttribution, "attribution-column", "", "CRM column holding the serialized UTM blob (default from config)")
	f.StringVar(&reportContact, "contact", "", "phone number to list individual calls for")
	f.StringVar(&reportPrefix, "prefix", "", "prefix for output file names")
	_ = reportCmd.MarkFlagRequired("crm")
	_ = reportCmd.MarkFlagRequired("dialer")
	rootCmd.AddCommand(reportCmd)
}
