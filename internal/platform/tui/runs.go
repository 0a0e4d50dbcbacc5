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

	"github.com/vovakirdan/tui-survivors/internal/storage"
)

const maxRuns = 50

// RunHistory is the read side of run storage.
type RunHistory interface {
	RecentRuns(limit int) ([]storage.RunRecord, error)
	RunDetails(runID string) (*storage.RunDetail, error)
}

// RunsKeyMap defines the key bindings for the run history screen.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Detail key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Detail, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Detail}, {k.Back, k.Quit}}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "prev run")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "next run")),
		Detail: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// RunsModel lists recent runs with a per-skill and per-enemy breakdown of
// the highlighted one.
type RunsModel struct {
	history    RunHistory
	runs       []storage.RunRecord
	detail     *storage.RunDetail
	showDetail bool
	err        error
	table      table.Model
	help       help.Model
	keys       RunsKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewRunsModel creates the run history screen. history may be nil.
func NewRunsModel(history RunHistory, width, height int) RunsModel {
	m := RunsModel{
		history: history,
		help:    help.New(),
		keys:    DefaultRunsKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 13},
		{Title: "Score", Width: 7},
		{Title: "Lvl", Width: 4},
		{Title: "Kills", Width: 6},
		{Title: "Boss", Width: 5},
		{Title: "Time", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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

func (m *RunsModel) load() {
	m.runs, m.err = nil, nil
	if m.history != nil {
		m.runs, m.err = m.history.RecentRuns(maxRuns)
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Kills),
			fmt.Sprintf("%d", r.BossKills),
			formatSurvived(r.Survived),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.loadDetail()
}

func (m *RunsModel) loadDetail() {
	m.detail = nil
	if m.history == nil || len(m.runs) == 0 {
		return
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return
	}
	if d, err := m.history.RunDetails(m.runs[i].RunID); err == nil {
		m.detail = d
	}
}

func formatSurvived(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Init initializes the model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run history.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			if m.showDetail {
				m.showDetail = false
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Detail):
			m.showDetail = !m.showDetail
			return m, nil
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadDetail()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.load()
		m.table.SetCursor(cursor)
		m.loadDetail()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run history.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("RUN HISTORY", m.width)))
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
			Render("No runs recorded yet."))
	case m.showDetail && m.detail != nil:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			boxStyle.Render(m.table.View()), "  ", boxStyle.Render(m.renderDetail()))
	default:
		body = boxStyle.Render(m.table.View())
	}
	b.WriteString(body)

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

func (m RunsModel) renderDetail() string {
	d := m.detail
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", shortID(d.RunID))
	fmt.Fprintf(&b, "Seed %d\n\n", d.Seed)

	b.WriteString("Damage by skill\n")
	for _, sd := range d.SkillDamage {
		fmt.Fprintf(&b, "  %-14s %8d\n", sd.SkillID, sd.Damage)
	}
	b.WriteString("\nKills by enemy\n")
	for _, tk := range d.KillsByType {
		fmt.Fprintf(&b, "  %-14s %8d\n", tk.EnemyType, tk.Kills)
	}
	return strings.TrimRight(b.String(), "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRuns runs the run history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunRuns(history RunHistory, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewRunsModel(history, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
