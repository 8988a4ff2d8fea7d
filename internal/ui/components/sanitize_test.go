package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeOneLineStripsOscAndNewlines(t *testing.T) {
	input := "\x1b]8;;https://evil\x07click\x1b]8;;\x07\nline\tmore"
	out := SanitizeOneLine(input)

	assert.False(t, strings.Contains(out, "\x1b"))
	assert.False(t, strings.Contains(out, "\n"))
	assert.False(t, strings.Contains(out, "\t"))
	assert.Equal(t, "click line more", out)
}

func TestSanitizeTextRemovesBidiControls(t *testing.T) {
	input := "safe‮exe.txt"
	out := SanitizeText(input)

	assert.NotContains(t, out, "‮")
}

func TestSanitizeTextKeepsNewlinesAndStripsColor(t *testing.T) {
	out := SanitizeText("\x1b[31mred\x1b[0m\nnext")
	assert.Equal(t, "red\nnext", out)
}

func TestSanitizeOneLineEmpty(t *testing.T) {
	assert.Equal(t, "", SanitizeOneLine(""))
}
