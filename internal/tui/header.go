package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderModel is the top bar: title and version, the mask descriptor and
// the write-back strategy.
type HeaderModel struct {
	title  string
	items  [][2]string
	styles Styles
	width  int
}

// NewHeaderModel creates a header. A "dev" or empty version is not shown.
func NewHeaderModel(version, descriptor, strategy string, styles Styles) HeaderModel {
	title := "Moneymask"
	if version != "" && version != "dev" {
		title += " " + version
	}
	return HeaderModel{
		title:  title,
		items:  [][2]string{{"mask", descriptor}, {"write-back", strategy}},
		styles: styles,
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// View renders the header padded to the full width.
func (h HeaderModel) View() string {
	var b strings.Builder
	b.WriteString(h.styles.Title.Render(h.title))
	for _, it := range h.items {
		b.WriteString(h.styles.Muted.Render(" | " + it[0] + " "))
		b.WriteString(h.styles.Value.Render(it[1]))
	}
	row := b.String()
	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return h.styles.Header.Width(h.width).Render(row)
}
