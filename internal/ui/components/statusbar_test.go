package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHintKeyBeforeDesc(t *testing.T) {
	out := SanitizeText(Hint("↑/↓", "Browse"))
	assert.Contains(t, out, "Browse")
	assert.Less(t, strings.Index(out, "↑/↓"), strings.Index(out, "Browse"))
}

func TestStatusBarJoinsHints(t *testing.T) {
	out := SanitizeText(StatusBar([]string{Hint("q", "Quit"), Hint("?", "Help")}, 0))
	assert.Contains(t, out, "Quit")
	assert.Contains(t, out, "·")
	assert.NotContains(t, out, "\n")
}

func TestStatusBarEmpty(t *testing.T) {
	assert.Equal(t, "", StatusBar(nil, 80))
}

func TestStatusBarWrapsUnderRule(t *testing.T) {
	hints := []string{"alpha one", "bravo two", "charlie three"}
	out := StatusBar(hints, 24)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "─")
	for _, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 24)
	}
}

func TestWrapSegments(t *testing.T) {
	rows := wrapSegments([]string{"123456", "abcdef", "ghijkl"}, " | ", 15)
	assert.Equal(t, []string{"123456 | abcdef", "ghijkl"}, rows)

	rows = wrapSegments([]string{"much-too-wide-segment", "x"}, "|", 5)
	assert.Equal(t, []string{"much-too-wide-segment", "x"}, rows)
}
