package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/itemdeck/cli/internal/api"
	"github.com/gravitrone/itemdeck/cli/internal/config"
	"github.com/gravitrone/itemdeck/cli/internal/items"
	"github.com/gravitrone/itemdeck/cli/internal/ui/components"
)

// --- Messages ---

// itemEventMsg carries a finished request back into the screen.
type itemEventMsg struct{ ev items.Event }

// notifyMsg asks the app to show a toast.
type notifyMsg struct {
	level string
	text  string
}

// --- Items Model ---

// ItemsModel renders the items screen and feeds key presses and request
// completions into an items.Screen.
type ItemsModel struct {
	gw      items.Gateway
	screen  *items.Screen
	history *items.History
	list    *components.List
	theme   string
	vim     bool
	width   int
	height  int

	searching bool
	search    textinput.Model
	kind      api.SearchKind

	form       itemForm
	formActive bool

	confirmDelete bool

	spinner  spinner.Model
	spinning bool

	initCmd tea.Cmd
}

// NewItemsModel starts a screen at the mount root and issues the first load.
func NewItemsModel(gw items.Gateway, cfg *config.Config, logger *slog.Logger) ItemsModel {
	locale := config.DefaultLocale
	m := ItemsModel{gw: gw}
	if cfg != nil {
		locale = cfg.Locale
		m.theme = cfg.Theme
		m.vim = cfg.VimKeys
	}

	m.history = items.NewHistory(items.DefaultMount)
	m.screen = items.NewScreen(m.history, items.WithLocale(locale), items.WithLogger(logger))
	m.list = components.NewList(listPageSize(0))

	m.search = textinput.New()
	m.search.Placeholder = "search text (empty shows everything)"
	m.search.CharLimit = 200

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.spinner.Style = AccentStyle

	m.initCmd = m.dispatch(items.Init{})
	return m
}

func (m ItemsModel) Init() tea.Cmd {
	return m.initCmd
}

func (m ItemsModel) Update(msg tea.Msg) (ItemsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.Resize(listPageSize(msg.Height))
		if m.formActive {
			m.form.resize(msg.Width)
		}
		m.syncList()
		return m, nil

	case itemEventMsg:
		cmd := m.dispatch(msg.ev)
		return m, cmd

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case m.formActive:
			return m.handleFormKeys(msg)
		case m.confirmDelete:
			return m.handleConfirmKeys(msg)
		case m.searching:
			return m.handleSearchKeys(msg)
		case m.screen.Mode() == items.ModeViewing:
			return m.handleDetailKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}

	var cmd tea.Cmd
	switch {
	case m.formActive:
		m.form, cmd = m.form.Update(msg)
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m ItemsModel) View() string {
	if m.formActive {
		return components.Indent(m.form.View(m.formTitle(), m.width, m.formStatus()), 1)
	}
	if m.confirmDelete {
		body := fmt.Sprintf("Delete %q? This cannot be undone.", components.SanitizeOneLine(m.selectedName()))
		return components.Indent(components.ConfirmDialog("Delete Item", body), 1)
	}

	var body string
	if m.screen.Mode() == items.ModeViewing {
		body = m.renderDetail()
	} else {
		body = m.renderList()
	}
	if m.searching {
		prompt := components.InputDialog("Search by "+m.kind.String(), m.search.View(), "tab: by "+m.kind.Next().String())
		body = prompt + "\n\n" + body
	}
	return components.Indent(body, 1)
}

// Location is the current navigator path.
func (m ItemsModel) Location() string {
	return m.screen.Location()
}

// capturesInput reports whether printable keys belong to a text field.
func (m ItemsModel) capturesInput() bool {
	return m.formActive || m.searching
}

// hasUnsaved reports an open form.
func (m ItemsModel) hasUnsaved() bool {
	return m.formActive
}

// Hints lists the keys that apply in the current state.
func (m ItemsModel) Hints() []string {
	switch {
	case m.formActive:
		return []string{
			components.Hint("tab", "Next Field"),
			components.Hint("ctrl+s", "Save"),
			components.Hint("esc", "Cancel"),
		}
	case m.confirmDelete:
		return []string{
			components.Hint("y", "Delete"),
			components.Hint("n", "Keep"),
		}
	case m.searching:
		return []string{
			components.Hint("enter", "Search"),
			components.Hint("tab", "Field"),
			components.Hint("esc", "Close"),
		}
	case m.screen.Mode() == items.ModeViewing:
		return []string{
			components.Hint("↑/↓", "Browse"),
			components.Hint("e", "Edit"),
			components.Hint("d", "Delete"),
			components.Hint("a", "Add"),
			components.Hint("/", "Search"),
			components.Hint("esc", "Close"),
			components.Hint("?", "Help"),
		}
	}
	hints := []string{
		components.Hint("↑/↓", "Scroll"),
		components.Hint("enter", "Open"),
		components.Hint("d", "Delete"),
		components.Hint("a", "Add"),
		components.Hint("/", "Search"),
		components.Hint("r", "Refresh"),
	}
	if _, ok := m.screen.Searching(); ok {
		hints = append(hints, components.Hint("x", "Clear Search"))
	}
	return append(hints, components.Hint("?", "Help"), components.Hint("q", "Quit"))
}

// --- Dispatch ---

// dispatch feeds ev to the screen, turns requests into commands and
// notifications into toasts, then realigns the view state.
func (m *ItemsModel) dispatch(ev items.Event) tea.Cmd {
	effects := m.screen.Dispatch(ev)

	cmds := make([]tea.Cmd, 0, len(effects)+1)
	for _, req := range items.Requests(effects) {
		cmds = append(cmds, performCmd(m.gw, req))
	}
	for _, n := range items.Notifications(effects) {
		cmds = append(cmds, notifyCmd(n))
	}

	m.sync()
	if m.busy() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func performCmd(gw items.Gateway, req items.Request) tea.Cmd {
	return func() tea.Msg {
		return itemEventMsg{ev: items.Perform(gw, req)}
	}
}

func notifyCmd(n items.Notify) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg{level: string(n.Level), text: n.Text}
	}
}

func (m *ItemsModel) sync() {
	open := m.screen.FormOpen()
	if open && !m.formActive {
		m.form = newItemForm(m.screen.Draft(), m.width)
		m.searching = false
		m.search.Blur()
	}
	m.formActive = open
	if m.screen.Mode() != items.ModeViewing {
		m.confirmDelete = false
	}
	m.syncList()
}

// syncList rebuilds the cursor list, keeping it on the selected item or
// else on the item it pointed at before.
func (m *ItemsModel) syncList() {
	keep, _ := m.list.Current()
	if id, ok := m.screen.Selection(); ok {
		keep = id
	}

	rows := m.screen.Items()
	keys := make([]string, len(rows))
	for i, item := range rows {
		keys[i] = item.ID
	}
	m.list.SetKeys(keys, keep)
}

func (m ItemsModel) busy() bool {
	return m.screen.Loading() || m.screen.Saving() || m.screen.Deleting() ||
		m.screen.DetailStatus() == items.DetailLoading
}

func (m ItemsModel) cursorID() (string, bool) {
	return m.list.Current()
}

// selectedName names the selected item, from the list row while the detail
// is still loading.
func (m ItemsModel) selectedName() string {
	if d := m.screen.Detail(); d != nil {
		return d.Name
	}
	id, ok := m.screen.Selection()
	if !ok {
		return ""
	}
	for _, item := range m.screen.Items() {
		if item.ID == id {
			return item.Name
		}
	}
	return ""
}

// --- Keys ---

func (m ItemsModel) handleListKeys(msg tea.KeyMsg) (ItemsModel, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case isUp(msg, m.vim):
		m.list.Up()
	case isDown(msg, m.vim):
		m.list.Down()
	case isEnter(msg):
		if id, ok := m.cursorID(); ok {
			cmd = m.dispatch(items.Select{ID: id})
		}
	case isKey(msg, "/"):
		cmd = m.openSearch()
	case isKey(msg, "a"):
		cmd = m.dispatch(items.StartAdd{})
	case isKey(msg, "d"):
		if id, ok := m.cursorID(); ok {
			cmd = m.dispatch(items.Select{ID: id})
			m.confirmDelete = m.screen.Mode() == items.ModeViewing
		}
	case isRefresh(msg):
		cmd = m.dispatch(items.Refresh{})
	case isKey(msg, "x"), isBack(msg):
		if _, ok := m.screen.Searching(); ok {
			cmd = m.dispatch(items.ResetSearch{})
		}
	case isHistoryBack(msg):
		cmd = m.back()
	}
	return m, cmd
}

func (m ItemsModel) handleDetailKeys(msg tea.KeyMsg) (ItemsModel, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case isBack(msg):
		cmd = m.dispatch(items.Deselect{})
	case isUp(msg, m.vim):
		m.list.Up()
		cmd = m.selectCursor()
	case isDown(msg, m.vim):
		m.list.Down()
		cmd = m.selectCursor()
	case isKey(msg, "e"):
		cmd = m.dispatch(items.StartEdit{})
	case isKey(msg, "d"):
		m.confirmDelete = true
	case isKey(msg, "a"):
		cmd = m.dispatch(items.StartAdd{})
	case isKey(msg, "/"):
		cmd = m.openSearch()
	case isRefresh(msg):
		cmd = m.dispatch(items.Refresh{})
	case isHistoryBack(msg):
		cmd = m.back()
	}
	return m, cmd
}

func (m ItemsModel) handleConfirmKeys(msg tea.KeyMsg) (ItemsModel, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		m.confirmDelete = false
		cmd := m.dispatch(items.Delete{})
		return m, cmd
	case isKey(msg, "n"), isBack(msg):
		m.confirmDelete = false
	}
	return m, nil
}

func (m ItemsModel) handleSearchKeys(msg tea.KeyMsg) (ItemsModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.searching = false
		m.search.Blur()
		return m, nil
	case isNextField(msg):
		m.kind = m.kind.Next()
		return m, nil
	case isEnter(msg):
		m.searching = false
		m.search.Blur()
		cmd := m.dispatch(items.Search{Kind: m.kind, Text: m.search.Value()})
		return m, cmd
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m ItemsModel) handleFormKeys(msg tea.KeyMsg) (ItemsModel, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case isBack(msg):
		cmd = m.dispatch(items.Cancel{})
	case isSave(msg):
		cmd = m.dispatch(items.Save{Input: m.form.Input()})
	case isNextField(msg):
		cmd = m.form.next()
	case isPrevField(msg):
		cmd = m.form.prev()
	case isEnter(msg) && m.form.focus == formFieldTags:
		cmd = m.dispatch(items.Save{Input: m.form.Input()})
	case isEnter(msg) && m.form.focus == formFieldName:
		cmd = m.form.next()
	default:
		before := m.form.Input()
		var fieldCmd tea.Cmd
		m.form, fieldCmd = m.form.Update(msg)
		if after := m.form.Input(); !sameInput(before, after) {
			cmd = tea.Batch(fieldCmd, m.dispatch(items.EditDraft{Input: after}))
		} else {
			cmd = fieldCmd
		}
	}
	return m, cmd
}

func (m *ItemsModel) openSearch() tea.Cmd {
	m.searching = true
	m.search.SetValue("")
	if q, ok := m.screen.Searching(); ok {
		m.kind = q.Kind
		m.search.SetValue(q.Text)
	}
	m.search.CursorEnd()
	return m.search.Focus()
}

func (m *ItemsModel) selectCursor() tea.Cmd {
	id, ok := m.cursorID()
	if !ok {
		return nil
	}
	if cur, selected := m.screen.Selection(); selected && cur == id {
		return nil
	}
	return m.dispatch(items.Select{ID: id})
}

func (m *ItemsModel) back() tea.Cmd {
	if !m.history.Back() {
		return nil
	}
	return m.dispatch(items.Navigate{Path: m.history.Location()})
}

// --- Rendering ---

func (m ItemsModel) renderList() string {
	rows := m.screen.Items()

	countLine := fmt.Sprintf("%d total", len(rows))
	if q, ok := m.screen.Searching(); ok {
		countLine = fmt.Sprintf("%s · %s: %s", countLine, q.Kind, components.SanitizeOneLine(q.Text))
	}
	if m.screen.Loading() {
		countLine = fmt.Sprintf("%s · %s loading", countLine, m.spinner.View())
	}
	countLine = MutedStyle.Render(countLine)

	if len(rows) == 0 {
		empty := "No items yet. Press a to add one."
		if _, ok := m.screen.Searching(); ok {
			empty = "No items match the search."
		} else if m.screen.Loading() {
			empty = "Loading items..."
		}
		return components.TitledBox("Items", countLine+"\n\n"+MutedStyle.Render(empty), m.width)
	}

	tableWidth := m.contentWidth()
	cols := []components.GridColumn{
		{Header: "Name"},
		{Header: "Tags", Width: 6, Align: lipgloss.Right},
	}
	start, end := m.list.Window()
	data := make([][]string, 0, end-start)
	active := -1
	for i := start; i < end && i < len(rows); i++ {
		data = append(data, []string{rows[i].Name, strconv.Itoa(rows[i].NumTags)})
		if m.list.IsSelected(i) {
			active = len(data) - 1
		}
	}
	grid := components.Grid(cols, data, tableWidth, active)
	return components.TitledBox("Items", countLine+"\n\n"+grid, m.width)
}

func (m ItemsModel) renderDetail() string {
	d := m.screen.Detail()
	switch m.screen.DetailStatus() {
	case items.DetailInvalid:
		body := WarningStyle.Render("Invalid item: it no longer exists.") + "\n\n" +
			MutedStyle.Render("It may have been deleted elsewhere. Press esc to go back.")
		return components.TitledBox("Item", body, m.width)
	case items.DetailFailed:
		msg := "unknown error"
		if err := m.screen.DetailErr(); err != nil {
			msg = err.Error()
		}
		return components.ErrorBox("Could not load item", components.SanitizeText(msg)+"\n\nPress esc to go back.", m.width)
	}
	if d == nil {
		return components.TitledBox("Item", m.spinner.View()+" "+MutedStyle.Render("Loading item..."), m.width)
	}

	rows := []components.TableRow{
		{Label: "ID", Value: d.ID},
		{Label: "Name", Value: d.Name},
	}
	if m.screen.DetailStatus() == items.DetailLoading {
		rows = append(rows, components.TableRow{Label: "Status", Value: "refreshing"})
	}
	sections := []string{components.Table("Item", rows, m.width)}

	tagNames := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		tagNames = append(tagNames, t.Name)
	}
	sections = append(sections, components.TitledBox("Tags", components.Badges(tagNames, m.contentWidth(), "No tags."), m.width))

	desc := renderMarkdown(components.SanitizeText(d.Description), m.theme, m.contentWidth())
	if desc == "" {
		desc = MutedStyle.Render("No description.")
	}
	sections = append(sections, components.TitledBox("Description", desc, m.width))

	return strings.Join(sections, "\n\n")
}

func (m ItemsModel) formTitle() string {
	if m.screen.Mode() == items.ModeAdding {
		return "Add Item"
	}
	if d := m.screen.Detail(); d != nil {
		return "Edit " + components.SanitizeOneLine(d.Name)
	}
	return "Edit Item"
}

func (m ItemsModel) formStatus() string {
	if m.screen.Saving() {
		return m.spinner.View() + " Saving..."
	}
	return ""
}

func (m ItemsModel) contentWidth() int {
	w := components.BoxContentWidth(m.width)
	if w <= 0 {
		return 60
	}
	return w
}

func listPageSize(height int) int {
	// banner, location, hints and box chrome
	size := height - 24
	if size < 8 {
		return 8
	}
	return size
}

func sameInput(a, b api.ItemInput) bool {
	if a.Name != b.Name || a.Description != b.Description || len(a.Tags) != len(b.Tags) {
		return false
	}
	for i := range a.Tags {
		if a.Tags[i] != b.Tags[i] {
			return false
		}
	}
	return true
}
