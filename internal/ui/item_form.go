package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/itemdeck/cli/internal/api"
	"github.com/gravitrone/itemdeck/cli/internal/ui/components"
)

const (
	formFieldName = iota
	formFieldDescription
	formFieldTags
	formFieldCount
)

// itemForm is the add/edit form. Tags are typed comma separated.
type itemForm struct {
	name  textinput.Model
	desc  textarea.Model
	tags  textinput.Model
	focus int
}

func newItemForm(in api.ItemInput, width int) itemForm {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Item name"
	name.CharLimit = 200
	name.SetValue(in.Name)

	desc := textarea.New()
	desc.Placeholder = "Markdown description…"
	desc.ShowLineNumbers = false
	desc.CharLimit = 0
	desc.SetValue(in.Description)

	tags := textinput.New()
	tags.Prompt = ""
	tags.Placeholder = "red, blue"
	tags.CharLimit = 500
	tags.SetValue(strings.Join(in.Tags, ", "))

	f := itemForm{name: name, desc: desc, tags: tags}
	f.resize(width)
	f.setFocus(formFieldName)
	return f
}

// Input reads the form back as an item payload.
func (f itemForm) Input() api.ItemInput {
	return api.ItemInput{
		Name:        f.name.Value(),
		Description: f.desc.Value(),
		Tags:        splitTags(f.tags.Value()),
	}
}

func (f *itemForm) resize(width int) {
	inner := components.BoxContentWidth(width) - 2
	if inner < 20 {
		inner = 40
	}
	f.name.Width = inner
	f.tags.Width = inner
	f.desc.SetWidth(inner)
	f.desc.SetHeight(6)
}

func (f *itemForm) setFocus(field int) tea.Cmd {
	f.focus = (field + formFieldCount) % formFieldCount
	f.name.Blur()
	f.desc.Blur()
	f.tags.Blur()
	switch f.focus {
	case formFieldName:
		return f.name.Focus()
	case formFieldDescription:
		return f.desc.Focus()
	default:
		return f.tags.Focus()
	}
}

func (f *itemForm) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *itemForm) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

// Update forwards msg to the focused field.
func (f itemForm) Update(msg tea.Msg) (itemForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case formFieldName:
		f.name, cmd = f.name.Update(msg)
	case formFieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	default:
		f.tags, cmd = f.tags.Update(msg)
	}
	return f, cmd
}

func (f itemForm) View(title string, width int, status string) string {
	var b strings.Builder
	field := func(idx int, label, view string) {
		if f.focus == idx {
			b.WriteString(SelectedStyle.Render("> " + label + ":"))
		} else {
			b.WriteString(MutedStyle.Render("  " + label + ":"))
		}
		b.WriteString("\n")
		b.WriteString(components.Indent(view, 2))
	}

	field(formFieldName, "Name", f.name.View())
	b.WriteString("\n\n")
	field(formFieldDescription, "Description", f.desc.View())
	b.WriteString("\n\n")
	field(formFieldTags, "Tags", f.tags.View())

	if status != "" {
		b.WriteString("\n\n" + MutedStyle.Render(status))
	}
	return components.TitledBox(title, b.String(), width)
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
