package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/itemdeck/cli/internal/api"
	"github.com/gravitrone/itemdeck/cli/internal/config"
	"github.com/gravitrone/itemdeck/cli/internal/items"
)

// DebugLogFile is where --debug writes.
const DebugLogFile = "itemdeck-debug.log"

// Env carries process-wide dependencies into subcommands.
type Env struct {
	Debug bool
	// NewGateway overrides the backend; nil means the HTTP client.
	NewGateway func(cfg *config.Config) items.Gateway

	logger *slog.Logger
	logOut io.Closer
}

// Logger returns the debug logger, opening the log file on first use.
// Without --debug it discards everything.
func (e *Env) Logger() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	if !e.Debug {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return e.logger
	}
	f, err := tea.LogToFile(DebugLogFile, "itemdeck")
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug log disabled: %v\n", err)
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return e.logger
	}
	e.logOut = f
	e.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return e.logger
}

// Gateway builds the backend for cfg.
func (e *Env) Gateway(cfg *config.Config) items.Gateway {
	if e.NewGateway != nil {
		return e.NewGateway(cfg)
	}
	return api.NewClient(cfg.BaseURL, cfg.APIKey)
}

// Close flushes the debug log.
func (e *Env) Close() error {
	if e.logOut == nil {
		return nil
	}
	err := e.logOut.Close()
	e.logOut = nil
	return err
}
