package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riskibarqy/club-manager/internal/domain/league"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

var leagueColumnTitles = []string{"League"}

type leaguesLoadedMsg struct {
	leagues []league.League
	err     error
}

type leagueClubsLoadedMsg struct {
	leagueID int64
	clubs    []usecase.ClubSummary
	err      error
}

type browserPane int

const (
	paneLeagues browserPane = iota
	paneClubs
)

// leagueBrowser shows leagues and the clubs of the highlighted league side by side.
type leagueBrowser struct {
	deps    deps
	leagues table.Model
	clubs   table.Model

	leagueList []league.League
	shown      int64
	byLeague   map[int64][]usecase.ClubSummary
	focus      browserPane
	loading    bool
	err        error
}

func newLeagueBrowser(d deps) *leagueBrowser {
	clubs := newTable(fitColumns(clubColumnTitles, nil))
	clubs.Blur()
	return &leagueBrowser{
		deps:     d,
		leagues:  newTable(fitColumns(leagueColumnTitles, nil)),
		clubs:    clubs,
		byLeague: make(map[int64][]usecase.ClubSummary),
		loading:  true,
	}
}

func (s *leagueBrowser) Init() tea.Cmd {
	d := s.deps
	return func() tea.Msg {
		leagues, err := d.reader.ListLeagues(d.ctx)
		if err != nil {
			d.logger.WarnContext(d.ctx, "list leagues failed", "error", err)
		}
		return leaguesLoadedMsg{leagues: leagues, err: err}
	}
}

func (s *leagueBrowser) loadClubs(leagueID int64) tea.Cmd {
	if clubs, ok := s.byLeague[leagueID]; ok {
		s.showClubs(leagueID, clubs)
		return nil
	}
	d := s.deps
	return func() tea.Msg {
		clubs, err := d.reader.ListClubsByLeague(d.ctx, leagueID)
		if err != nil {
			d.logger.WarnContext(d.ctx, "list clubs by league failed", "league_id", leagueID, "error", err)
		}
		return leagueClubsLoadedMsg{leagueID: leagueID, clubs: clubs, err: err}
	}
}

func (s *leagueBrowser) showClubs(leagueID int64, clubs []usecase.ClubSummary) {
	s.shown = leagueID
	rows := clubRows(clubs)
	s.clubs.SetRows(nil)
	s.clubs.SetColumns(fitColumns(clubColumnTitles, rows))
	s.clubs.SetRows(rows)
	s.clubs.SetCursor(0)
}

func (s *leagueBrowser) selectedLeague() (league.League, bool) {
	idx := s.leagues.Cursor()
	if idx < 0 || idx >= len(s.leagueList) {
		return league.League{}, false
	}
	return s.leagueList[idx], true
}

func (s *leagueBrowser) selectedClub() (usecase.ClubSummary, bool) {
	clubs := s.byLeague[s.shown]
	idx := s.clubs.Cursor()
	if idx < 0 || idx >= len(clubs) {
		return usecase.ClubSummary{}, false
	}
	return clubs[idx], true
}

func (s *leagueBrowser) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case leaguesLoadedMsg:
		s.loading = false
		s.err = msg.err
		s.leagueList = msg.leagues
		rows := make([]table.Row, 0, len(msg.leagues))
		for _, l := range msg.leagues {
			rows = append(rows, table.Row{l.Name})
		}
		s.leagues.SetColumns(fitColumns(leagueColumnTitles, rows))
		s.leagues.SetRows(rows)
		s.leagues.SetCursor(0)
		if l, ok := s.selectedLeague(); ok {
			return s, s.loadClubs(l.ID)
		}
		return s, nil
	case leagueClubsLoadedMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.byLeague[msg.leagueID] = msg.clubs
		// Drop answers for a league the cursor already left.
		if l, ok := s.selectedLeague(); ok && l.ID == msg.leagueID {
			s.err = nil
			s.showClubs(msg.leagueID, msg.clubs)
		}
		return s, nil
	case tea.WindowSizeMsg:
		h := tableHeight(msg.Height, 8)
		s.leagues.SetHeight(h)
		s.clubs.SetHeight(h)
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, pop
		case "tab", "shift+tab":
			s.toggleFocus()
			return s, nil
		case "enter":
			if s.focus != paneClubs {
				s.toggleFocus()
				return s, nil
			}
			if club, ok := s.selectedClub(); ok {
				return s, push(newConfirmModal(club))
			}
			return s, nil
		}
	}

	if s.focus == paneClubs {
		var cmd tea.Cmd
		s.clubs, cmd = s.clubs.Update(msg)
		return s, cmd
	}

	before := s.leagues.Cursor()
	var cmd tea.Cmd
	s.leagues, cmd = s.leagues.Update(msg)
	if s.leagues.Cursor() != before {
		if l, ok := s.selectedLeague(); ok {
			return s, tea.Batch(cmd, s.loadClubs(l.ID))
		}
	}
	return s, cmd
}

func (s *leagueBrowser) toggleFocus() {
	if s.focus == paneLeagues {
		s.focus = paneClubs
		s.leagues.Blur()
		s.clubs.Focus()
		return
	}
	s.focus = paneLeagues
	s.clubs.Blur()
	s.leagues.Focus()
}

func (s *leagueBrowser) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Browse leagues"))
	b.WriteString("\n\n")
	switch {
	case s.loading:
		b.WriteString(styleSubtle.Render("Loading leagues..."))
	case s.err != nil:
		b.WriteString(styleError.Render("Could not load leagues: " + s.err.Error()))
	case len(s.leagueList) == 0:
		b.WriteString(styleSubtle.Render("No leagues found."))
	default:
		left, right := stylePane, stylePane
		if s.focus == paneLeagues {
			left = stylePaneFocus
		} else {
			right = stylePaneFocus
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			left.Render(s.leagues.View()),
			" ",
			right.Render(s.clubs.View()),
		))
	}
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("tab: switch pane • enter: choose • esc: back"))
	return b.String()
}
