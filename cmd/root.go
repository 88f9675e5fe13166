package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/connectivity-cli/internal/config"
	"github.com/sells-group/connectivity-cli/internal/pipeline"
	"github.com/sells-group/connectivity-cli/internal/tabular"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "connectivity-cli",
	Short: "Reconcile CRM leads with dialer call logs",
	Long:  "Joins a CRM lead export to a call-dialer export on canonical phone number and reports per-contact call summaries, per-campaign lead funnels and per-source connectivity.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newBuilder wires a report builder from the loaded config.
func newBuilder(c *config.Config) (*pipeline.Builder, error) {
	return pipeline.NewBuilder(pipeline.Options{
		DefaultCountryCode: c.Phone.DefaultCountryCode,
		AttributionColumn:  c.Input.AttributionColumn,
		Read: tabular.Options{
			SheetIndex: c.Input.SheetIndex,
			Encoding:   c.Input.CSVEncoding,
		},
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
