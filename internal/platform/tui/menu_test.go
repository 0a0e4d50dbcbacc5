package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/storage"
)

func menuKey(m MenuModel, msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(MenuModel), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMenuCyclesDifficulty(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	if m.Config().Difficulty != "" {
		t.Fatalf("initial difficulty = %q", m.Config().Difficulty)
	}

	m, _ = menuKey(m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Config().Difficulty; got != "easy" {
		t.Errorf("after right = %q, expected easy", got)
	}
	m, _ = menuKey(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = menuKey(m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.Config().Difficulty; got != "fixed" {
		t.Errorf("wrapping left = %q, expected fixed", got)
	}
	if !strings.Contains(m.View(), "Difficulty: fixed") {
		t.Error("view should show the chosen difficulty")
	}
}

func TestMenuKeepsConfiguredDifficulty(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 100, ScreenH: 30, Difficulty: "hard"})
	if !strings.Contains(m.View(), "Difficulty: hard") {
		t.Error("menu should start on the configured difficulty")
	}
}

func TestMenuRequests(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	m, cmd := menuKey(m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() || cmd == nil {
		t.Error("tab should request the scoreboard and end the program")
	}

	embedded := NewMenuModel(core.RuntimeConfig{ScreenW: 100, ScreenH: 30}).embed()
	embedded, cmd = menuKey(embedded, runes("h"))
	if !embedded.WantsRuns() {
		t.Error("h should request run history")
	}
	if cmd != nil {
		t.Error("an embedded menu must not quit the program")
	}
}

type fakeHistory struct {
	runs    []storage.RunRecord
	details map[string]*storage.RunDetail
	err     error
}

func (f *fakeHistory) RecentRuns(limit int) ([]storage.RunRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.runs) > limit {
		return f.runs[:limit], nil
	}
	return f.runs, nil
}

func (f *fakeHistory) RunDetails(runID string) (*storage.RunDetail, error) {
	d, ok := f.details[runID]
	if !ok {
		return nil, storage.ErrRunNotFound
	}
	return d, nil
}

func sampleHistory() *fakeHistory {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []storage.RunRecord{
		{RunID: "aaaaaaaa-1111", GameID: "survivors", Score: 900, Level: 7, Kills: 80, Survived: 125 * time.Second, CreatedAt: now},
		{RunID: "bbbbbbbb-2222", GameID: "survivors", Score: 300, Level: 3, Kills: 25, Survived: 40 * time.Second, CreatedAt: now.Add(-time.Hour)},
	}
	details := map[string]*storage.RunDetail{}
	for _, r := range runs {
		details[r.RunID] = &storage.RunDetail{
			RunRecord:   r,
			SkillDamage: []storage.SkillDamage{{SkillID: "fireball", Damage: 1200}},
			KillsByType: []storage.TypeKills{{EnemyType: "goblin", Kills: r.Kills}},
		}
	}
	return &fakeHistory{runs: runs, details: details}
}

func runsKey(m RunsModel, msg tea.KeyMsg) RunsModel {
	next, _ := m.Update(msg)
	return next.(RunsModel)
}

func TestRunsViewListsRuns(t *testing.T) {
	m := NewRunsModel(sampleHistory(), 120, 30)
	view := m.View()
	if !strings.Contains(view, "RUN HISTORY") || !strings.Contains(view, "900") {
		t.Errorf("view missing runs:\n%s", view)
	}
	if !strings.Contains(view, "02:05") {
		t.Error("survival time should render as mm:ss")
	}
}

func TestRunsViewDetailFollowsCursor(t *testing.T) {
	m := NewRunsModel(sampleHistory(), 120, 30)
	if m.detail == nil || m.detail.RunID != "aaaaaaaa-1111" {
		t.Fatalf("detail = %+v, expected the newest run", m.detail)
	}

	m = runsKey(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.detail == nil || m.detail.RunID != "bbbbbbbb-2222" {
		t.Fatalf("detail after down = %+v", m.detail)
	}

	m = runsKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	if !strings.Contains(view, "fireball") || !strings.Contains(view, "goblin") {
		t.Errorf("detail pane missing breakdown:\n%s", view)
	}

	// Back closes the detail pane before leaving.
	m = runsKey(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.IsGoingBack() || m.showDetail {
		t.Fatal("first esc should only close the detail pane")
	}
	m = runsKey(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() {
		t.Error("second esc should leave")
	}
}

func TestRunsViewEmptyAndError(t *testing.T) {
	if v := NewRunsModel(nil, 80, 24).View(); !strings.Contains(v, "No runs recorded") {
		t.Errorf("nil history view:\n%s", v)
	}
	failing := &fakeHistory{err: errors.New("locked")}
	if v := NewRunsModel(failing, 80, 24).View(); !strings.Contains(v, "locked") {
		t.Errorf("error view:\n%s", v)
	}
}

func TestSessionRoutesBetweenViews(t *testing.T) {
	s := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}, "tester")

	next, cmd := s.Update(runes("h"))
	s = next.(SessionModel)
	if s.view != viewRuns {
		t.Fatalf("view = %v, expected runs", s.view)
	}
	if cmd != nil {
		t.Error("opening run history must not quit the session")
	}

	next, cmd = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.view != viewMenu {
		t.Fatalf("view = %v, expected menu after back", s.view)
	}
	if cmd != nil {
		t.Error("leaving run history must not quit the session")
	}

	next, _ = s.Update(runes("q"))
	s = next.(SessionModel)
	if !s.quitting || s.View() != "" {
		t.Error("q on the menu should end the session")
	}
}
