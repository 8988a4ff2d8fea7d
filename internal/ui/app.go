package ui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/itemdeck/cli/internal/config"
	"github.com/gravitrone/itemdeck/cli/internal/items"
	"github.com/gravitrone/itemdeck/cli/internal/ui/components"
)

// --- Messages ---

type clearToastMsg struct{}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model. It owns the chrome (banner, help, quit
// confirmation, toasts) around the items screen.
type App struct {
	config      *config.Config
	log         *slog.Logger
	width       int
	height      int
	helpOpen    bool
	quitConfirm bool
	toast       *appToast

	items ItemsModel
}

// NewApp creates the root application model.
func NewApp(gw items.Gateway, cfg *config.Config, logger *slog.Logger) App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return App{
		config: cfg,
		log:    logger,
		items:  NewItemsModel(gw, cfg, logger),
	}
}

func (a App) Init() tea.Cmd {
	return a.items.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case notifyMsg:
		a.log.Debug("notify", "level", msg.level, "text", msg.text)
		return a, a.setToast(msg.level, msg.text)

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}

		// Global keys. Text fields keep printable keys for themselves.
		if isKey(msg, "ctrl+c") || (!a.items.capturesInput() && isQuit(msg)) {
			if a.items.hasUnsaved() {
				a.quitConfirm = true
				return a, nil
			}
			return a, tea.Quit
		}
		if !a.items.capturesInput() && isKey(msg, "?") {
			a.helpOpen = true
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.items, cmd = a.items.Update(msg)
	return a, cmd
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(a.width), a.width)
	location := centerBlockUniform(a.renderLocation(), a.width)

	content := centerBlockUniform(a.items.View(), a.width)
	if a.quitConfirm {
		content = centerBlockUniform(a.renderQuitConfirm(), a.width)
	} else if a.helpOpen {
		content = centerBlockUniform(a.renderHelp(), a.width)
	}

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n\n%s%s", banner, location, content, hints, feedback)
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	}
	if a.helpOpen {
		return []string{
			components.Hint("esc", "Back"),
		}
	}
	return a.items.Hints()
}

func (a App) renderLocation() string {
	server := ""
	if a.config != nil {
		server = a.config.BaseURL
	}
	line := SelectedStyle.Render(components.SanitizeOneLine(a.items.Location()))
	if server != "" {
		line += MutedStyle.Render("  @ " + components.SanitizeOneLine(server))
	}
	return line
}

func (a App) renderHelp() string {
	hints := a.items.Hints()
	lines := make([]string, 0, len(hints)+6)
	lines = append(lines, MutedStyle.Render("esc to close"))
	lines = append(lines, "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint)
	}
	lines = append(lines, "")
	lines = append(lines, MutedStyle.Render("backspace goes back through visited items."))
	if a.config != nil && a.config.VimKeys {
		lines = append(lines, MutedStyle.Render("j/k move the cursor."))
	}
	body := strings.Join(lines, "\n")
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a App) renderQuitConfirm() string {
	body := "You have unsaved changes. Quit anyway?"
	return components.Indent(components.ConfirmDialog("Quit", body), 1)
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case string(items.LevelSuccess):
		title = "Success"
	case string(items.LevelWarning):
		title = "Warning"
	case string(items.LevelError):
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
