package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/truncate"

	"worklog/internal/platform/timefmt"
	"worklog/internal/ui/components"
	"worklog/internal/ui/theme"
)

const (
	minWidth  = 60
	minHeight = 20

	companionWidth = 16
	panelHeight    = 5

	// title, totals, two table borders, header and header separator
	historyChrome = 6
)

func (m Model) View() string {
	if m.width < minWidth || m.height < minHeight {
		msg := fmt.Sprintf("Terminal too small\n%dx%d, need at least %dx%d", m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Hot.Render(msg))
	}

	kind := m.snap.Active.Kind
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		components.Companion(kind, m.snap.Frame, companionWidth, panelHeight),
		m.renderDashboard(m.width-companionWidth-4),
	)
	note := m.renderNote()
	footer := m.renderFooter()
	rest := m.height - lipgloss.Height(top) - lipgloss.Height(note) - lipgloss.Height(footer)
	history := m.renderHistory(rest)

	return lipgloss.JoinVertical(lipgloss.Left, top, note, history, footer)
}

func (m Model) renderDashboard(width int) string {
	kind := m.snap.Active.Kind
	label := theme.Kind(kind).Render("● " + m.snap.Active.Label)
	if !m.snap.HasActive {
		label = theme.Muted.Render("no active session")
	}
	timer := lipgloss.NewStyle().Bold(true).Render(timefmt.Clock(m.snap.Active.Duration))

	ratio := fmt.Sprintf(" %3.0f%% Work", m.snap.Ratio*100)
	gauge := m.gauge
	gauge.Width = max(width-lipgloss.Width(ratio)-2, 10)
	bar := gauge.ViewAs(m.snap.Ratio) + theme.Muted.Render(ratio)

	body := strings.Join([]string{label, "", timer, "", bar}, "\n")
	return theme.Pane.
		BorderForeground(theme.KindColor(kind)).
		Width(width).
		Height(panelHeight).
		Render(body)
}

func (m Model) renderNote() string {
	text := theme.Muted.Render(" (No note for current session)")
	if note := flatten(m.snap.Active.Note); note != "" {
		text = theme.Title.Render(" NOTE: ") + truncate.StringWithTail(note, uint(max(m.width-11, 1)), "…")
	}
	return theme.Pane.Width(m.width - 2).Render(text)
}

func (m Model) renderHistory(height int) string {
	visible := max(height-historyChrome, 1)
	rows := m.snap.Rows
	offset := 0
	if m.snap.Selected >= visible {
		offset = m.snap.Selected - visible + 1
	}
	end := min(offset+visible, len(rows))
	window := rows[min(offset, end):end]

	noteWidth := max(m.width-48, 8)
	cells := make([][]string, 0, len(window))
	for _, row := range window {
		stop := "Active"
		if row.End != nil && !row.Active {
			stop = row.End.Format("15:04:05")
		}
		cells = append(cells, []string{
			row.Start.Format("15:04"),
			stop,
			row.Kind,
			timefmt.Clock(row.Duration),
			truncate.StringWithTail(flatten(row.Note), uint(noteWidth), "…"),
		})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Surface1)).
		Headers("Start", "End", "Type", "Time", "Note").
		Rows(cells...).
		Width(m.width).
		StyleFunc(func(r, c int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if r == table.HeaderRow {
				return style.Inherit(theme.Title)
			}
			if r < 0 || r >= len(window) {
				return style
			}
			row := window[r]
			if row.Selected {
				return style.Inherit(theme.Selected)
			}
			if c == 2 {
				return style.Foreground(theme.KindColor(row.Kind))
			}
			return style
		})

	title := theme.Title.Render(" Log: " + m.snap.Date + " ")
	if m.snap.IsToday {
		title += theme.Muted.Render("(today)")
	}
	totals := theme.Muted.Render(fmt.Sprintf(" Daily Total | Work: %s | Break: %s ",
		timefmt.Clock(m.snap.Work), timefmt.Clock(m.snap.Break)))
	return lipgloss.JoinVertical(lipgloss.Left, title, tbl.Render(), totals)
}

func (m Model) renderFooter() string {
	if !m.snap.Editing {
		return m.help.View(m.keys)
	}
	title := " Edit Current "
	if m.snap.EditingPast {
		title = " Edit Past Log "
	}
	// Long buffers scroll so the cursor stays visible.
	input := []rune(m.snap.Buffer + "█")
	input = input[max(len(input)-(m.width-4), 0):]
	box := theme.PaneActive.Width(m.width - 2).Render(string(input))
	return lipgloss.JoinVertical(lipgloss.Left, theme.Hot.Render(title), box, m.help.ShortHelpView(m.editKeys.ShortHelp()))
}

func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
