package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

type confirmButton int

const (
	buttonConfirm confirmButton = iota
	buttonCancel
)

// confirmModal asks whether to manage one club.
type confirmModal struct {
	club   usecase.ClubSummary
	button confirmButton
}

func newConfirmModal(club usecase.ClubSummary) *confirmModal {
	return &confirmModal{club: club}
}

func (m *confirmModal) Init() tea.Cmd {
	return nil
}

func (m *confirmModal) Update(msg tea.Msg) (screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "left", "right", "tab", "shift+tab", "h", "l":
		if m.button == buttonConfirm {
			m.button = buttonCancel
		} else {
			m.button = buttonConfirm
		}
	case "y":
		return m, m.close(true)
	case "n", "esc":
		return m, m.close(false)
	case "enter":
		return m, m.close(m.button == buttonConfirm)
	}
	return m, nil
}

func (m *confirmModal) close(confirmed bool) tea.Cmd {
	if !confirmed {
		return func() tea.Msg { return closeModalMsg{} }
	}
	club := m.club
	return func() tea.Msg { return closeModalMsg{chosen: &club} }
}

func (m *confirmModal) View() string {
	confirm, cancel := styleButton, styleButton
	if m.button == buttonConfirm {
		confirm = styleConfirmFocus
	} else {
		cancel = styleCancelFocus
	}

	question := fmt.Sprintf("❓ Manage %s?", lipgloss.NewStyle().Bold(true).Render(m.club.Team.Name))
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, confirm.Render("Confirm"), "  ", cancel.Render("Cancel"))
	return styleDialog.Render(lipgloss.JoinVertical(lipgloss.Center, question, "", buttons))
}
