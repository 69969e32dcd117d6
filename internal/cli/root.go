package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/tablequery/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the tablequery CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tablequery",
		Short:   "Query paginated, sortable, filterable tables",
		Long:    "tablequery pages, sorts and filters a record set through a table query controller.",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd, lookupEnv)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			config.CloseLogFile()
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "path to a YAML config file (default $"+config.EnvConfig+")")
	cmd.PersistentFlags().String("data", "", "path to a JSON or YAML record file (overrides source.file)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(NewListCmd(), NewBrowseCmd())

	return cmd
}

const rootCmdExample = `  # Print the second page of records sorted by name, newest first
  tablequery list --data people.json --page 2 --sort name:desc

  # Filter on a field and search across all fields
  tablequery list --data people.json --filter status=active --search ada

  # Emit the page as JSON
  tablequery list --data people.json --output json

  # Browse interactively with columns and filters from a config file
  tablequery browse --config tablequery.yaml`
