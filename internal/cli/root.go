// Package cli wires the carbondesk command tree: request validation,
// scope calculations, factor listing, and validation metrics.
package cli

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carbondesk/carbondesk/internal/config"
	"github.com/carbondesk/carbondesk/internal/factors"
	"github.com/carbondesk/carbondesk/internal/store"
	"github.com/carbondesk/carbondesk/internal/validation"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root cobra command for the carbondesk CLI.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *loggingResult

	cmd := &cobra.Command{
		Use:     "carbondesk",
		Short:   "GHG emissions calculation and validation",
		Long:    "Carbondesk: validate activity data and calculate Scope 1/2/3 CO2e totals per the GHG Protocol",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			result, err := setupLogging(cmd)
			if err != nil {
				return err
			}
			logResult = result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file path (default ~/.carbondesk/config.yaml)")
	cmd.PersistentFlags().String("backend-url", "", "reporting backend URL (overrides config; empty = local mode)")
	cmd.PersistentFlags().String("dataset-dir", "", "factor dataset directory (overrides config)")

	cmd.AddCommand(newValidateCmd(), newCalculateCmd(), newFactorsCmd(), newMetricsCmd())
	return cmd
}

const rootCmdExample = `  # Validate a calculation request
  carbondesk validate --input scope1.json

  # Calculate Scope 1 emissions and show the audit trail
  carbondesk calculate scope1 --input scope1.json --audit

  # Calculate Scope 2 emissions against a remote factor service
  carbondesk calculate scope2 --input scope2.json --backend-url https://api.example.com

  # List the emission factors available for a fuel
  carbondesk factors list --fuel-type natural_gas

  # Show historical validation metrics
  carbondesk metrics --from 2024-01-01 --to 2024-12-31`

// loadConfig resolves the merged config for a command invocation, applying
// persistent-flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if backendURL, _ := cmd.Flags().GetString("backend-url"); backendURL != "" {
		cfg.Backend.URL = backendURL
	}
	if datasetDir, _ := cmd.Flags().GetString("dataset-dir"); datasetDir != "" {
		cfg.Factors.DatasetDir = datasetDir
	}
	return cfg, nil
}

// buildProvider selects the factor provider: the remote service when a
// backend is configured, otherwise the local dataset registry over the
// built-in table.
func buildProvider(cmd *cobra.Command, cfg *config.Config) (factors.Provider, error) {
	if cfg.Backend.URL != "" {
		return factors.NewClient(cfg.Backend.URL, &http.Client{Timeout: cfg.Backend.Timeout()}), nil
	}
	return factors.NewRegistry(cmd.Context(), cfg.Factors.DatasetDir)
}

// buildStore selects the calculation store: the backend client when one is
// configured, otherwise an in-memory store scoped to this invocation.
func buildStore(cfg *config.Config) store.Store {
	if cfg.Backend.URL != "" {
		return store.NewClient(cfg.Backend.URL, &http.Client{Timeout: cfg.Backend.Timeout()})
	}
	return store.NewMemory()
}

// buildMetricsSource returns the metrics store client, or nil in local
// mode; validation.GetValidationMetrics degrades a nil source to zeroed
// metrics.
func buildMetricsSource(cfg *config.Config) validation.MetricsSource {
	if cfg.Backend.URL == "" {
		return nil
	}
	return validation.NewMetricsClient(cfg.Backend.URL, &http.Client{Timeout: cfg.Backend.Timeout()})
}
