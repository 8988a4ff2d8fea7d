package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/itemdeck/cli/internal/config"
	"github.com/gravitrone/itemdeck/cli/internal/items"
)

// RunInteractiveInit prompts for the server settings and persists config.
// Empty answers keep the current value.
func RunInteractiveInit(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	cfg, err := config.Load()
	if errors.Is(err, config.ErrNotFound) {
		cfg = config.Default()
	} else if err != nil {
		return err
	}

	prompt := func(label, current string) string {
		if current != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, current)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return current
		}
		return line
	}

	baseURL := prompt("base url", cfg.BaseURL)
	parsed, err := url.Parse(baseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("invalid base url %q (want http:// or https://)", baseURL)
	}
	cfg.BaseURL = strings.TrimRight(baseURL, "/")

	keyLabel := "api key (optional)"
	if cfg.APIKey != "" {
		keyLabel = "api key (enter keeps current)"
	}
	fmt.Fprintf(out, "%s: ", keyLabel)
	key, _ := reader.ReadString('\n')
	if key = strings.TrimSpace(key); key != "" {
		cfg.APIKey = key
	}

	locale := prompt("locale", cfg.Locale)
	if got := items.NewOrderer(locale).Locale(); !strings.EqualFold(got, strings.ReplaceAll(locale, "_", "-")) {
		fmt.Fprintf(out, "unknown locale %q, using %s\n", locale, got)
		locale = got
	}
	cfg.Locale = locale

	if cfg.Theme == "" {
		cfg.Theme = "dark"
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "server: %s\n", cfg.BaseURL)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// InitCmd returns the `itemdeck init` command.
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Configure the items server",
		RunE: func(c *cobra.Command, _ []string) error {
			return RunInteractiveInit(os.Stdin, c.OutOrStdout())
		},
	}
}
