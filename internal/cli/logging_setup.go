package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/carbondesk/carbondesk/internal/logging"
)

// loggingResult tracks the configured logger's output for cleanup.
type loggingResult struct {
	result logging.Result
}

// setupLogging configures logging from config file, environment, and CLI
// flags, and attaches the logger and a trace ID to the command context.
func setupLogging(cmd *cobra.Command) (*loggingResult, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
		logCfg.Format = "console"
		logCfg.File = ""
	}

	// Piped output gets JSON; the console format is for humans at a terminal.
	if logCfg.Format == "" && !isTerminal(os.Stderr) {
		logCfg.Format = "json"
	}

	result := logging.New(logCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logging.ContextWithLogger(ctx, result.Logger.With().Str("trace_id", traceID).Logger())
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Str("trace_id", traceID).Msg("command started")

	return &loggingResult{result: result}, nil
}

// cleanupLogging closes any log file handle opened during setup.
func cleanupLogging(lr *loggingResult) error {
	if lr == nil {
		return nil
	}
	return lr.result.Close()
}
