package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/tablequery/internal/config"
	"github.com/rshade/tablequery/internal/controller"
	"github.com/rshade/tablequery/internal/tui"
)

// ErrNotTerminal is returned by browse when stdout is not a terminal.
var ErrNotTerminal = errors.New("browse needs an interactive terminal; use list instead")

// pageSizeChoices are cycled in the browser.
var pageSizeChoices = []int{10, 20, 50, 100} //nolint:gochecknoglobals,mnd // Fixed UI choices.

// NewBrowseCmd creates the "browse" command, an interactive table browser.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse records interactively",
		Long: `Browse records in an interactive table. Page with n/p, sort with s/o,
search with /, cycle enum filters with 1-9 and reset with r.`,
		RunE: runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}

	cfg := config.GetGlobalConfig()
	// Console logs would tear the alternate screen.
	if cfg.Logging.File == "" {
		config.SetLogLevel(zerolog.Disabled.String())
		logger = logger.Level(zerolog.Disabled)
	}

	dataPath, _ := cmd.Flags().GetString("data")
	sess, err := openSession(cfg, dataPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	notice := &tui.Notice{Next: controller.LogReporter{Logger: logger}}
	ctrl, err := sess.controller(notice)
	if err != nil {
		return err
	}

	model := tui.NewTableModel(ctx, ctrl, notice, tui.Config{
		Columns:     sess.columns(),
		Filters:     sess.filters(ctx),
		InitFilters: ctrl.Filters(),
		PageSizes:   pageSizeChoices,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
