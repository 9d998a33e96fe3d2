package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbondesk/carbondesk/internal/ghg"
	"github.com/carbondesk/carbondesk/internal/report"
	"github.com/carbondesk/carbondesk/internal/validation"
)

// newMetricsCmd creates the `metrics` command: historical validation
// outcomes from the backend metrics store. A backend outage degrades to
// zeroed metrics rather than an error.
func newMetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "metrics",
		Short:   "Show historical validation metrics",
		Example: "  carbondesk metrics --from 2024-01-01 --to 2024-12-31",
		RunE:    runMetrics,
	}

	cmd.Flags().String("from", "", "range start (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "range end (YYYY-MM-DD)")
	cmd.Flags().String("format", "text", "output format: text or json")
	return cmd
}

func runMetrics(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var r validation.MetricsRange
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		if r.StartDate, err = ghg.ParseDate(from); err != nil {
			return fmt.Errorf("parsing --from: %w", err)
		}
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		if r.EndDate, err = ghg.ParseDate(to); err != nil {
			return fmt.Errorf("parsing --to: %w", err)
		}
	}

	metrics := validation.New().GetValidationMetrics(cmd.Context(), buildMetricsSource(cfg), r)

	if format, _ := cmd.Flags().GetString("format"); format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(metrics)
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Metrics(metrics))
	return nil
}
