package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.True(t, isQuit(runeKey('q')))
	assert.False(t, isQuit(runeKey('a')))
}

func TestIsEnter(t *testing.T) {
	assert.True(t, isEnter(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.False(t, isEnter(tea.KeyMsg{Type: tea.KeySpace}))
}

func TestIsBack(t *testing.T) {
	assert.True(t, isBack(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.False(t, isBack(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestIsDownVimOptIn(t *testing.T) {
	assert.True(t, isDown(tea.KeyMsg{Type: tea.KeyDown}, false))
	assert.False(t, isDown(tea.KeyMsg{Type: tea.KeyUp}, false))
	assert.False(t, isDown(runeKey('j'), false))
	assert.True(t, isDown(runeKey('j'), true))
}

func TestIsUpVimOptIn(t *testing.T) {
	assert.True(t, isUp(tea.KeyMsg{Type: tea.KeyUp}, false))
	assert.False(t, isUp(tea.KeyMsg{Type: tea.KeyDown}, false))
	assert.False(t, isUp(runeKey('k'), false))
	assert.True(t, isUp(runeKey('k'), true))
}

func TestFormKeys(t *testing.T) {
	assert.True(t, isSave(tea.KeyMsg{Type: tea.KeyCtrlS}))
	assert.True(t, isNextField(tea.KeyMsg{Type: tea.KeyTab}))
	assert.True(t, isPrevField(tea.KeyMsg{Type: tea.KeyShiftTab}))
	assert.False(t, isNextField(tea.KeyMsg{Type: tea.KeyShiftTab}))
}

func TestIsRefreshAndHistoryBack(t *testing.T) {
	assert.True(t, isRefresh(runeKey('r')))
	assert.True(t, isRefresh(tea.KeyMsg{Type: tea.KeyCtrlR}))
	assert.True(t, isHistoryBack(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.True(t, isHistoryBack(runeKey('b')))
	assert.False(t, isHistoryBack(runeKey('x')))
}

func TestIsKey(t *testing.T) {
	assert.True(t, isKey(runeKey('s'), "s"))
	assert.True(t, isKey(tea.KeyMsg{Type: tea.KeyBackspace}, "backspace"))
	assert.True(t, isKey(tea.KeyMsg{Type: tea.KeyLeft}, "left"))
	assert.False(t, isKey(runeKey('s'), "a"))
	assert.False(t, isKey(tea.KeyMsg{Type: tea.KeyLeft}, "right"))
}
