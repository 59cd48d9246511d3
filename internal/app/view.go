package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View draws the full UI (left pane + divider + right pane + footer).
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	layout := m.calculateLayout()
	var row string
	if m.showHelp {
		row = m.renderHelp(m.width, layout.ContentHeight)
	} else {
		row = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderPane(paneLeft, layout.LeftWidth, layout.ContentHeight),
			m.renderDivider(layout),
			m.renderPane(paneRight, layout.RightWidth, layout.ContentHeight),
		)
	}
	// Clamp the pane row so the footer rows are always reserved.
	row = padBlock(row, m.width, layout.ContentHeight)

	view := row + "\n" + m.renderFooter(m.width)
	return padBlock(view, m.width, m.height)
}

// renderPane draws a title row above the pane's viewport.
func (m *Model) renderPane(id paneID, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	p := &m.panes[id]
	title := truncatePlain(" "+p.title, width)
	if p.loading {
		title = truncatePlain(" "+p.title+" (rendering)", width)
	}
	style := titleStyle
	if id == m.focus {
		style = focusedTitleStyle
	}
	header := style.Render(title)
	body := padBlock(p.viewport.View(), width, max(0, height-PaneTitleRows))
	return padBlock(header+"\n"+body, width, height)
}

// renderDivider draws the divider column with the grab handle at the
// controller's vertical position.
func (m *Model) renderDivider(layout LayoutDimensions) string {
	if layout.DividerWidth <= 0 || layout.ContentHeight <= 0 {
		return ""
	}
	line := dividerStyle.Render(strings.Repeat(dividerGlyph, layout.DividerWidth))
	handleGlyphs := strings.Repeat(handleGlyph, layout.DividerWidth)
	handle := handleStyle.Render(handleGlyphs)
	if m.drag.active {
		handle = activeHandleStyle.Render(handleGlyphs)
	}

	rows := make([]string, layout.ContentHeight)
	for y := range rows {
		if y >= layout.HandleTop && y < layout.HandleTop+layout.HandleHeight {
			rows[y] = handle
			continue
		}
		rows[y] = line
	}
	return strings.Join(rows, "\n")
}

// renderFooter draws the status row and the short key help row.
func (m *Model) renderFooter(width int) string {
	if width <= 0 {
		return ""
	}
	status := statusAccentStyle.Render(m.ratioLabel())
	if m.drag.active {
		status += statusStyle.Render("  dragging")
	}
	if msg := strings.TrimSpace(m.status); msg != "" {
		status += statusStyle.Render("  " + msg)
	}
	rows := []string{
		" " + truncate(status, max(0, width-1)),
		" " + truncate(m.help.ShortHelpView(m.keys.ShortHelp()), max(0, width-1)),
	}
	return padBlock(strings.Join(rows, "\n"), width, FooterRows)
}

// renderHelp draws the full key reference in place of the panes.
func (m *Model) renderHelp(width, height int) string {
	lines := []string{
		titleStyle.Render("Keyboard Shortcuts"),
		"",
		m.help.FullHelpView(m.keys.FullHelp()),
		"",
		titleStyle.Render("Mouse"),
		"",
		"  Drag the divider            Resize panes",
		"  Double-click the divider    Reset to an even split",
		"  Wheel over a pane           Scroll it",
		"  Click a pane                Focus it",
		"",
		mutedStyle.Render("Press ? or Esc to close"),
	}
	return padBlock(strings.Join(lines, "\n"), width, height)
}
