package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const hintSeparator = " · "

var (
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 1)
	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#273540"))
	statusRuleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#273540"))
)

// StatusBar renders the hint line under a thin rule. Hints wrap onto more
// lines when they do not fit width; each line is centered.
func StatusBar(hints []string, width int) string {
	if len(hints) == 0 {
		return ""
	}
	sep := separatorStyle.Render(hintSeparator)
	if width <= 0 {
		return strings.Join(hints, sep)
	}

	rows := wrapSegments(hints, sep, width)
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, statusRuleStyle.Render(strings.Repeat("─", width)))
	for _, row := range rows {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
	}
	return strings.Join(lines, "\n")
}

// Hint formats one key binding as a key cap followed by its action.
func Hint(key, desc string) string {
	return keyCapStyle.Render(key) + " " + hintDescStyle.Render(desc)
}

// wrapSegments packs segments into rows no wider than width, joined by sep.
// A segment wider than width gets a row of its own.
func wrapSegments(segments []string, sep string, width int) []string {
	sepWidth := lipgloss.Width(sep)
	var rows []string
	var current strings.Builder
	currentWidth := 0
	for _, seg := range segments {
		segWidth := lipgloss.Width(seg)
		if currentWidth > 0 && currentWidth+sepWidth+segWidth > width {
			rows = append(rows, current.String())
			current.Reset()
			currentWidth = 0
		}
		if currentWidth > 0 {
			current.WriteString(sep)
			currentWidth += sepWidth
		}
		current.WriteString(seg)
		currentWidth += segWidth
	}
	if currentWidth > 0 {
		rows = append(rows, current.String())
	}
	return rows
}
