package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleSubtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
	styleWelcome = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Padding(1, 1)
	styleDialog  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("14")).
			Padding(1, 3)
	styleButton       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("7")).Background(lipgloss.Color("8"))
	styleConfirmFocus = styleButton.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Bold(true)
	styleCancelFocus  = styleButton.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9")).Bold(true)
	stylePane         = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("8"))
	stylePaneFocus    = stylePane.BorderForeground(lipgloss.Color("14"))
)

const (
	defaultTableHeight = 12
	maxColumnWidth     = 32
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("8")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("14")).
		Bold(false)
	return s
}

func newTable(columns []table.Column) table.Model {
	return table.New(
		table.WithColumns(columns),
		table.WithHeight(defaultTableHeight),
		table.WithFocused(true),
		table.WithStyles(tableStyles()),
	)
}

// fitColumns sizes each column to its widest cell, within maxColumnWidth.
func fitColumns(titles []string, rows []table.Row) []table.Column {
	cols := make([]table.Column, len(titles))
	for i, title := range titles {
		cols[i] = table.Column{Title: title, Width: lipgloss.Width(title)}
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				cols[i].Width = max(cols[i].Width, lipgloss.Width(row[i]))
			}
		}
	}
	for i := range cols {
		cols[i].Width = min(cols[i].Width, maxColumnWidth)
	}
	return cols
}

func tableHeight(windowHeight, reserved int) int {
	if windowHeight <= 0 {
		return defaultTableHeight
	}
	return max(windowHeight-reserved, 3)
}
