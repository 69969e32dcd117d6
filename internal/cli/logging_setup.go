package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/tablequery/internal/config"
	"github.com/rshade/tablequery/internal/logging"
)

// setupLogging loads the configuration, applies environment and flag
// overrides, initializes the global logger and stores a component logger and
// trace ID on the command context.
func setupLogging(cmd *cobra.Command, lookupEnv func(string) (string, bool)) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" && lookupEnv != nil {
		path, _ = lookupEnv(config.EnvConfig)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(lookupEnv)

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = logging.FormatConsole
	}

	if err = config.InitLogger(cfg.Logging); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	config.SetGlobalConfig(cfg)

	traceID := logging.GetOrGenerateTraceID(cmd.Context())
	logger = logging.ComponentLogger(config.GetLogger(), "cli").
		With().Str("trace_id", traceID).Logger()
	ctx := logging.ContextWithTraceID(cmd.Context(), traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).
		Str("command", cmd.Name()).
		Str("config", path).
		Msg("command started")
	return nil
}
