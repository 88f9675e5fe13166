package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/connectivity-cli/internal/export"
)

var normalizeDefaultCC string

var normalizeCmd = &cobra.Command{
	Use:   "normalize <phone>...",
	Short: "Print the canonical form of phone numbers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("default-cc") {
			cfg.Phone.DefaultCountryCode = normalizeDefaultCC
		}
		builder, err := newBuilder(cfg)
		if err != nil {
			return err
		}
		n := builder.Normalizer()

		t := export.NewTextTable(cmd.OutOrStdout(), []string{"input", "canonical", "region"})
		for _, raw := range args {
			canonical := n.Normalize(raw)
			region := n.Region(canonical)
			if canonical == "" {
				canonical = "-"
			}
			if region == "" {
				region = "-"
			}
			t.Append([]string{raw, canonical, region})
		}
		t.Render()
		return nil
	},
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeDefaultCC, "default-cc", "", "calling code or region for 10-digit numbers (default from config)")
	rootCmd.AddCommand(normalizeCmd)
}
