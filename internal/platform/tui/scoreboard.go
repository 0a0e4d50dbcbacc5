package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-survivors/internal/registry"
	"github.com/vovakirdan/tui-survivors/internal/storage"
)

const (
	minWidthForCard = 96 // narrower terminals drop the run card
	cardWidth       = 26
	maxBoardRuns    = 100
)

// Leaderboard is the ranking side of run storage.
type Leaderboard interface {
	TopRuns(gameID string, limit int) ([]storage.RunRecord, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextGame, k.PrevGame}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "better run")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "worse run")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev game")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel ranks the recorded runs of each game by score and shows
// the highlighted run next to the table.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	board      Leaderboard
	runs       []storage.RunRecord
	stats      *storage.GameStats
	err        error
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates the scoreboard. board may be nil.
func NewScoreboardModel(board Leaderboard, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		board:  board,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m ScoreboardModel) showCard() bool {
	return m.width >= minWidthForCard
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Lvl", Width: 4},
		{Title: "Kills", Width: 6},
		{Title: "Boss", Width: 5},
		{Title: "Survived", Width: 9},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// load fetches the ranking and stats of the selected game.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.err = nil, nil, nil
	if m.board != nil && len(m.games) > 0 {
		m.runs, m.err = m.board.TopRuns(m.gameID(), maxBoardRuns)
		if stats, err := m.board.GetGameStats(m.gameID()); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Kills),
			fmt.Sprintf("%d", r.BossKills),
			formatSurvived(r.Survived),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selected is the highlighted run, or nil for an empty board.
func (m ScoreboardModel) selected() *storage.RunRecord {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return nil
	}
	return &m.runs[i]
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 1 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 1 {
				m.gameCursor = (m.gameCursor + len(m.games) - 1) % len(m.games)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.load()
		m.table.SetCursor(cursor)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	title := "BEST RUNS"
	if len(m.games) > 0 {
		title = "BEST RUNS - " + m.games[m.gameCursor].Title
	}
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	if tabs := m.renderGameTabs(); tabs != "" {
		b.WriteString(tabs)
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var body string
	switch {
	case m.err != nil:
		body = boxStyle.Render("Could not load runs: " + m.err.Error())
	case len(m.runs) == 0:
		body = boxStyle.Render(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
			Padding(1, 3).Render("No runs recorded yet.\nSurvive a while to set a high score!"))
	case m.showCard():
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			boxStyle.Render(m.table.View()), "  ", boxStyle.Width(cardWidth).Render(m.renderCard()))
	default:
		body = boxStyle.Render(m.table.View())
	}
	b.WriteString(body)

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderGameTabs lists the registered games when there is more than one.
func (m ScoreboardModel) renderGameTabs() string {
	if len(m.games) < 2 {
		return ""
	}
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = active.Render(g.Title)
		} else {
			tabs[i] = idle.Render(g.Title)
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.games[m.gameCursor].Title)
	}
	return centerText(line, m.width)
}

// statsLine sums up every recorded run of the game, not just the ranked ones.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil {
		return ""
	}
	var longest time.Duration
	bosses := 0
	for _, r := range m.runs {
		longest = max(longest, r.Survived)
		bosses += r.BossKills
	}
	return fmt.Sprintf("%d runs  |  best %d  |  avg %.0f  |  longest %s  |  bosses %d",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, formatSurvived(longest), bosses)
}

func (m ScoreboardModel) renderCard() string {
	r := m.selected()
	if r == nil {
		return ""
	}
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	row := func(name, value string) string {
		return label.Render(fmt.Sprintf("%-9s", name)) + value
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Rank #%d", m.table.Cursor()+1)),
		"",
		row("Score", fmt.Sprintf("%d", r.Score)),
		row("Level", fmt.Sprintf("%d", r.Level)),
		row("Kills", fmt.Sprintf("%d", r.Kills)),
		row("Bosses", fmt.Sprintf("%d", r.BossKills)),
		row("Survived", formatSurvived(r.Survived)),
	}
	if secs := r.Survived.Seconds(); secs >= 1 {
		lines = append(lines, row("Kill/min", fmt.Sprintf("%.1f", float64(r.Kills)*60/secs)))
	}
	lines = append(lines, "",
		row("Seed", fmt.Sprintf("%d", r.Seed)),
		row("Run", shortID(r.RunID)),
		row("Played", r.CreatedAt.Format("Jan 02 15:04")),
	)
	return strings.Join(lines, "\n")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(board Leaderboard, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(board, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
