package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/itemdeck/cli/internal/cmd"
	"github.com/gravitrone/itemdeck/cli/internal/config"
	"github.com/gravitrone/itemdeck/cli/internal/ui"
)

var errNoTerminal = errors.New("itemdeck needs an interactive terminal; use 'itemdeck items' from scripts")

func main() {
	if err := newRootCmd(&cmd.Env{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(env *cmd.Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "itemdeck",
		Short: "Itemdeck - browse and curate items",
		Long:  "Itemdeck CLI: list, search, view, edit, add, and delete items on an items server.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(env)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return env.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&env.Debug, "debug", config.Debug(), "write a debug log to "+cmd.DebugLogFile)

	root.AddCommand(cmd.InitCmd())
	root.AddCommand(cmd.ItemsCmd(env))
	return root
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(env *cmd.Env) error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return errNoTerminal
	}
	cfg, err := config.Resolve()
	if err != nil {
		return err
	}

	logger := env.Logger()
	logger.Info("starting", "base_url", cfg.BaseURL, "locale", cfg.Locale)
	app := ui.NewApp(env.Gateway(cfg), cfg, logger)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
