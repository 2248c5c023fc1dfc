package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

const introText = "⚽ Get ready for your managerial adventure!\n\nTo begin, choose the club you want to manage:"

var clubColumnTitles = []string{"Club", "League", "Squad size"}

type clubsLoadedMsg struct {
	clubs []usecase.ClubSummary
	err   error
}

func loadClubs(d deps) tea.Cmd {
	return func() tea.Msg {
		clubs, err := d.reader.ListClubs(d.ctx)
		if err != nil {
			d.logger.WarnContext(d.ctx, "list clubs failed", "error", err)
		}
		return clubsLoadedMsg{clubs: clubs, err: err}
	}
}

func clubRows(clubs []usecase.ClubSummary) []table.Row {
	rows := make([]table.Row, 0, len(clubs))
	for _, c := range clubs {
		rows = append(rows, table.Row{c.Team.Name, c.League.Name, strconv.Itoa(c.SquadSize)})
	}
	return rows
}

// clubSelection lists every club. It is the root screen.
type clubSelection struct {
	deps    deps
	table   table.Model
	clubs   []usecase.ClubSummary
	loading bool
	err     error
}

func newClubSelection(d deps) *clubSelection {
	return &clubSelection{
		deps:    d,
		table:   newTable(fitColumns(clubColumnTitles, nil)),
		loading: true,
	}
}

func (s *clubSelection) Init() tea.Cmd {
	return loadClubs(s.deps)
}

func (s *clubSelection) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case clubsLoadedMsg:
		s.loading = false
		s.err = msg.err
		s.clubs = msg.clubs
		rows := clubRows(msg.clubs)
		s.table.SetColumns(fitColumns(clubColumnTitles, rows))
		s.table.SetRows(rows)
		s.table.SetCursor(0)
		return s, nil
	case tea.WindowSizeMsg:
		s.table.SetHeight(tableHeight(msg.Height, 8))
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, tea.Quit
		case "b":
			return s, push(newLeagueBrowser(s.deps))
		case "enter":
			if club, ok := s.selected(); ok {
				return s, push(newConfirmModal(club))
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *clubSelection) selected() (usecase.ClubSummary, bool) {
	idx := s.table.Cursor()
	if idx < 0 || idx >= len(s.clubs) {
		return usecase.ClubSummary{}, false
	}
	return s.clubs[idx], true
}

func (s *clubSelection) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(introText))
	b.WriteString("\n\n")
	switch {
	case s.loading:
		b.WriteString(styleSubtle.Render("Loading clubs..."))
	case s.err != nil:
		b.WriteString(styleError.Render("Could not load clubs: " + s.err.Error()))
	case len(s.clubs) == 0:
		b.WriteString(styleSubtle.Render("No clubs found. Run the migration first."))
	default:
		b.WriteString(s.table.View())
	}
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("enter: choose • b: browse leagues • q: quit"))
	return b.String()
}
