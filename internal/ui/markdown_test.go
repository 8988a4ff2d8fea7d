package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitrone/itemdeck/cli/internal/ui/components"
)

func TestMarkdownStyleFromTheme(t *testing.T) {
	assert.Equal(t, "dark", markdownStyle(""))
	assert.Equal(t, "dark", markdownStyle("dark"))
	assert.Equal(t, "light", markdownStyle(" Light "))
	assert.Equal(t, "ascii", markdownStyle("notty"))
}

func TestRenderMarkdownKeepsText(t *testing.T) {
	out := renderMarkdown("# Heading\n\nSome **bold** words.", "dark", 60)
	clean := components.SanitizeText(out)
	assert.Contains(t, clean, "Heading")
	assert.Contains(t, clean, "bold")
	assert.NotContains(t, clean, "**")
}

func TestRenderMarkdownEmpty(t *testing.T) {
	assert.Equal(t, "", renderMarkdown("   ", "dark", 60))
}

func TestRenderMarkdownCachesRenderer(t *testing.T) {
	renderMarkdown("one", "dark", 33)
	mdRendererMu.Lock()
	first := mdRenderers["dark:33"]
	mdRendererMu.Unlock()
	renderMarkdown("two", "dark", 33)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	assert.NotNil(t, first)
	assert.Same(t, first, mdRenderers["dark:33"])
}
