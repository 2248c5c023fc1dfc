package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riskibarqy/club-manager/internal/domain/league"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

// ClubReader is the read side the screens need.
type ClubReader interface {
	ListClubs(ctx context.Context) ([]usecase.ClubSummary, error)
	ListLeagues(ctx context.Context) ([]league.League, error)
	ListClubsByLeague(ctx context.Context, leagueID int64) ([]usecase.ClubSummary, error)
	GetSquad(ctx context.Context, teamID int64) (usecase.Squad, error)
}

// ClubChosenMsg is emitted when the user confirms the club to manage.
type ClubChosenMsg struct {
	Club usecase.ClubSummary
}

type pushScreenMsg struct {
	screen screen
}

type popScreenMsg struct{}

// closeModalMsg closes the confirmation modal. chosen is nil on cancel.
type closeModalMsg struct {
	chosen *usecase.ClubSummary
}

type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
}

type deps struct {
	ctx    context.Context
	reader ClubReader
	logger *logging.Logger
}

// App is the root model. It owns a stack of screens; only the top one receives
// input and is drawn.
type App struct {
	deps   deps
	stack  []screen
	width  int
	height int
}

func New(ctx context.Context, reader ClubReader, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.Default()
	}
	d := deps{ctx: ctx, reader: reader, logger: logger}
	return &App{
		deps:  d,
		stack: []screen{newClubSelection(d)},
	}
}

func push(s screen) tea.Cmd {
	return func() tea.Msg { return pushScreenMsg{screen: s} }
}

func pop() tea.Msg {
	return popScreenMsg{}
}

func (a *App) Init() tea.Cmd {
	return a.top().Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, a.broadcast(msg)
	case pushScreenMsg:
		return a, a.push(msg.screen)
	case popScreenMsg:
		a.pop()
		return a, nil
	case closeModalMsg:
		a.pop()
		if msg.chosen == nil {
			return a, nil
		}
		chosen := *msg.chosen
		return a, func() tea.Msg { return ClubChosenMsg{Club: chosen} }
	case ClubChosenMsg:
		a.deps.logger.InfoContext(a.deps.ctx, "club chosen", "team_id", msg.Club.Team.ID, "team", msg.Club.Team.Name)
		return a, a.push(newManagerView(a.deps, msg.Club))
	}

	next, cmd := a.top().Update(msg)
	a.stack[len(a.stack)-1] = next
	return a, cmd
}

func (a *App) View() string {
	view := a.top().View()
	if _, ok := a.top().(*confirmModal); ok && a.width > 0 && a.height > 0 {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

func (a *App) top() screen {
	return a.stack[len(a.stack)-1]
}

func (a *App) push(s screen) tea.Cmd {
	a.stack = append(a.stack, s)
	cmds := []tea.Cmd{s.Init()}
	if a.width > 0 {
		next, cmd := s.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		a.stack[len(a.stack)-1] = next
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// pop never removes the root screen.
func (a *App) pop() {
	if len(a.stack) > 1 {
		a.stack = a.stack[:len(a.stack)-1]
	}
}

// broadcast resizes every screen so covered ones are laid out when revealed.
func (a *App) broadcast(msg tea.WindowSizeMsg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.stack))
	for i, s := range a.stack {
		next, cmd := s.Update(msg)
		a.stack[i] = next
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, reader ClubReader, logger *logging.Logger) error {
	_, err := tea.NewProgram(New(ctx, reader, logger), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
