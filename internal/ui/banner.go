package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
██╗████████╗███████╗███╗   ███╗██████╗ ███████╗ ██████╗██╗  ██╗
██║╚══██╔══╝██╔════╝████╗ ████║██╔══██╗██╔════╝██╔════╝██║ ██╔╝
██║   ██║   █████╗  ██╔████╔██║██║  ██║█████╗  ██║     █████╔╝
██║   ██║   ██╔══╝  ██║╚██╔╝██║██║  ██║██╔══╝  ██║     ██╔═██╗
██║   ██║   ███████╗██║ ╚═╝ ██║██████╔╝███████╗╚██████╗██║  ██╗
╚═╝   ╚═╝   ╚══════╝╚═╝     ╚═╝╚═════╝ ╚══════╝ ╚═════╝╚═╝  ╚═╝`

const bannerSubtitle = "Items Browser • Command-Line Interface"

// RenderBanner returns the styled ASCII banner sized for a terminal of the
// given width. Narrow terminals get a one-line wordmark.
func RenderBanner(width int) string {
	lines := splitLines(bannerArt)

	artWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > artWidth {
			artWidth = w
		}
	}

	baseStyle := lipgloss.NewStyle().Foreground(ColorPrimary)
	if width > 0 && width < artWidth {
		return "\n" + BannerStyle.Render("itemdeck") + " " + MutedStyle.Render(bannerSubtitle) + "\n"
	}

	rendered := ""
	for _, line := range lines {
		if line == "" {
			continue
		}
		rendered += baseStyle.Render(line) + "\n"
	}

	subtitleWidth := lipgloss.Width(bannerSubtitle)
	blockWidth := artWidth
	if blockWidth < subtitleWidth {
		blockWidth = subtitleWidth
	}

	subtitle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(bannerSubtitle)

	underline := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(strings.Repeat("─", subtitleWidth))

	return "\n" + rendered + "\n" + subtitle + "\n" + underline + "\n"
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
