package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GridColumn is one column of a Grid. A zero Width takes the space the fixed
// columns leave over, split evenly between all such columns.
type GridColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

const (
	gridMarker    = "› "
	gridSeparator = " │ "
)

var (
	gridLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#273540"))

	gridMarkerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7f57b4")).
			Bold(true)

	gridActiveRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#d7d9da")).
				Background(lipgloss.Color("#1f2530")).
				Bold(true)
)

// Grid renders a header, a rule and one line per row. Every line is exactly
// width cells wide. Row active (-1 for none) is marked and highlighted.
func Grid(columns []GridColumn, rows [][]string, width, active int) string {
	if width <= 0 {
		return ""
	}
	if len(columns) == 0 {
		return padRight("", width)
	}

	markerWidth := lipgloss.Width(gridMarker)
	widths := gridWidths(columns, width-markerWidth)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}

	out := make([]string, 0, len(rows)+2)
	out = append(out, padRight(strings.Repeat(" ", markerWidth)+
		boxLabelStyle.Render(gridCells(header, columns, widths, gridLineStyle.Render(gridSeparator))), width))
	out = append(out, gridLineStyle.Render(padRight(strings.Repeat(" ", markerWidth)+gridRule(widths), width)))

	for i, row := range rows {
		if i == active {
			line := gridActiveRowStyle.Render(gridCells(row, columns, widths, gridSeparator))
			out = append(out, padRight(gridMarkerStyle.Render(gridMarker)+line, width))
			continue
		}
		line := gridCells(row, columns, widths, gridLineStyle.Render(gridSeparator))
		out = append(out, padRight(strings.Repeat(" ", markerWidth)+line, width))
	}
	return strings.Join(out, "\n")
}

// gridWidths resolves column widths so that cells plus separators fill budget.
// When fixed columns overflow, the last column shrinks down to one cell.
func gridWidths(columns []GridColumn, budget int) []int {
	sepWidth := lipgloss.Width(gridSeparator)
	avail := budget - sepWidth*(len(columns)-1)

	fixed, flex := 0, 0
	for _, col := range columns {
		if col.Width > 0 {
			fixed += col.Width
		} else {
			flex++
		}
	}

	widths := make([]int, len(columns))
	rest := avail - fixed
	for i, col := range columns {
		if col.Width > 0 {
			widths[i] = col.Width
			continue
		}
		share := rest / flex
		if share < 1 {
			share = 1
		}
		widths[i] = share
		rest -= share
		flex--
	}

	total := 0
	for _, w := range widths {
		total += w
	}
	if over := total - avail; over > 0 {
		last := len(widths) - 1
		widths[last] = maxInt(1, widths[last]-over)
	}
	return widths
}

func gridCells(cells []string, columns []GridColumn, widths []int, sep string) string {
	var b strings.Builder
	for i := range columns {
		if i > 0 {
			b.WriteString(sep)
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		b.WriteString(alignCell(text, widths[i], columns[i].Align))
	}
	return b.String()
}

func gridRule(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	return strings.Join(parts, "─┼─")
}

func alignCell(text string, width int, align lipgloss.Position) string {
	if width <= 0 {
		return ""
	}
	clamped := ClampTextWidth(text, width)
	pad := width - lipgloss.Width(clamped)
	if pad <= 0 {
		return truncateRunes(clamped, width)
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + clamped
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + clamped + strings.Repeat(" ", pad-left)
	default:
		return clamped + strings.Repeat(" ", pad)
	}
}
