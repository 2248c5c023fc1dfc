package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

type squadLoadedMsg struct {
	squad usecase.Squad
	err   error
}

// managerView greets the manager and lists the chosen club's squad.
type managerView struct {
	deps    deps
	club    usecase.ClubSummary
	squad   table.Model
	players int
	loading bool
	err     error
}

func newManagerView(d deps, club usecase.ClubSummary) *managerView {
	return &managerView{
		deps:    d,
		club:    club,
		squad:   newTable(fitColumns([]string{player.NameColumn}, nil)),
		loading: true,
	}
}

func (s *managerView) Init() tea.Cmd {
	d, teamID := s.deps, s.club.Team.ID
	return func() tea.Msg {
		squad, err := d.reader.GetSquad(d.ctx, teamID)
		if err != nil {
			d.logger.WarnContext(d.ctx, "get squad failed", "team_id", teamID, "error", err)
		}
		return squadLoadedMsg{squad: squad, err: err}
	}
}

func squadRows(squad usecase.Squad) []table.Row {
	rows := make([]table.Row, 0, len(squad.Players))
	for _, p := range squad.Players {
		row := make(table.Row, len(squad.Columns))
		for i, column := range squad.Columns {
			if v, ok := p.Attribute(column); ok {
				row[i] = player.FormatValue(v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *managerView) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case squadLoadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err != nil {
			return s, nil
		}
		rows := squadRows(msg.squad)
		s.squad.SetRows(nil)
		s.squad.SetColumns(fitColumns(msg.squad.Columns, rows))
		s.squad.SetRows(rows)
		s.squad.SetCursor(0)
		s.players = len(rows)
		return s, nil
	case tea.WindowSizeMsg:
		s.squad.SetHeight(tableHeight(msg.Height, 9))
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, tea.Quit
		case "esc":
			return s, pop
		}
	}

	var cmd tea.Cmd
	s.squad, cmd = s.squad.Update(msg)
	return s, cmd
}

func (s *managerView) View() string {
	var b strings.Builder
	b.WriteString(styleWelcome.Render(fmt.Sprintf("🏟️ Welcome to %s!\nYour journey begins now...", s.club.Team.Name)))
	b.WriteString("\n")
	switch {
	case s.loading:
		b.WriteString(styleSubtle.Render("Loading squad..."))
	case s.err != nil:
		b.WriteString(styleError.Render("Could not load squad: " + s.err.Error()))
	case s.players == 0:
		b.WriteString(styleSubtle.Render("This club has no registered players."))
	default:
		b.WriteString(styleSubtle.Render(fmt.Sprintf("%s • %d players", s.club.League.Name, s.players)))
		b.WriteString("\n")
		b.WriteString(s.squad.View())
	}
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("esc: back • q: quit"))
	return b.String()
}
