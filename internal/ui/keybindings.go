package ui

import tea "github.com/charmbracelet/bubbletea"

// --- Key Constants ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

// isUp also accepts k when vim keys are enabled.
func isUp(msg tea.KeyMsg, vim bool) bool {
	if vim && isKey(msg, "k") {
		return true
	}
	return isKey(msg, "up")
}

// isDown also accepts j when vim keys are enabled.
func isDown(msg tea.KeyMsg, vim bool) bool {
	if vim && isKey(msg, "j") {
		return true
	}
	return isKey(msg, "down")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}

func isSave(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+s")
}

func isRefresh(msg tea.KeyMsg) bool {
	return isKey(msg, "r", "ctrl+r")
}

func isNextField(msg tea.KeyMsg) bool {
	return isKey(msg, "tab")
}

func isPrevField(msg tea.KeyMsg) bool {
	return isKey(msg, "shift+tab")
}

func isHistoryBack(msg tea.KeyMsg) bool {
	return isKey(msg, "backspace", "b")
}
