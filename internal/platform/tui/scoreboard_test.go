package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-survivors/internal/registry"
	"github.com/vovakirdan/tui-survivors/internal/storage"
)

type fakeBoard struct {
	runs map[string][]storage.RunRecord
	err  error
}

func (f *fakeBoard) TopRuns(gameID string, limit int) ([]storage.RunRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	runs := f.runs[gameID]
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (f *fakeBoard) GetGameStats(gameID string) (*storage.GameStats, error) {
	runs := f.runs[gameID]
	stats := &storage.GameStats{GameID: gameID, GamesCount: len(runs)}
	for _, r := range runs {
		stats.HighScore = max(stats.HighScore, r.Score)
		stats.TotalScore += int64(r.Score)
	}
	if len(runs) > 0 {
		stats.AvgScore = float64(stats.TotalScore) / float64(len(runs))
	}
	return stats, nil
}

func sampleBoard() *fakeBoard {
	played := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &fakeBoard{runs: map[string][]storage.RunRecord{
		"survivors": {
			{RunID: "best-run-1", Seed: 7, Score: 1800, Level: 12, Kills: 240, BossKills: 2, Survived: 8 * time.Minute, CreatedAt: played},
			{RunID: "next-run-2", Seed: 9, Score: 600, Level: 5, Kills: 60, Survived: 150 * time.Second, CreatedAt: played},
		},
		"practice": {
			{RunID: "practice-1", Score: 50, Level: 1, Kills: 3, Survived: 20 * time.Second, CreatedAt: played},
		},
	}}
}

// boardFor builds a scoreboard over two games without touching the global registry.
func boardFor(board Leaderboard, width int) ScoreboardModel {
	m := NewScoreboardModel(board, width, 30)
	m.games = []registry.GameInfo{{ID: "survivors", Title: "Survivors"}, {ID: "practice", Title: "Practice"}}
	m.load()
	return m
}

func boardKey(m ScoreboardModel, msg tea.KeyMsg) ScoreboardModel {
	next, _ := m.Update(msg)
	return next.(ScoreboardModel)
}

func TestScoreboardShowsRunColumns(t *testing.T) {
	m := boardFor(sampleBoard(), 120)
	view := m.View()

	for _, want := range []string{"BEST RUNS - Survivors", "Lvl", "Boss", "Survived", "1800", "08:00", "2 runs", "bosses 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if !strings.Contains(view, "Kill/min") || !strings.Contains(view, "30.0") {
		t.Errorf("run card should show the kill rate of the top run:\n%s", view)
	}
}

func TestScoreboardCardFollowsCursor(t *testing.T) {
	m := boardFor(sampleBoard(), 120)
	if r := m.selected(); r == nil || r.RunID != "best-run-1" {
		t.Fatalf("selected = %+v, expected the best run", r)
	}

	m = boardKey(m, tea.KeyMsg{Type: tea.KeyDown})
	if r := m.selected(); r == nil || r.RunID != "next-run-2" {
		t.Fatalf("selected after down = %+v", r)
	}
	if !strings.Contains(m.View(), "Rank #2") {
		t.Error("card should show the second rank")
	}

	if narrow := boardFor(sampleBoard(), 80).View(); strings.Contains(narrow, "Kill/min") {
		t.Error("narrow terminals should drop the run card")
	}
}

func TestScoreboardSwitchesGames(t *testing.T) {
	m := boardFor(sampleBoard(), 120)
	m = boardKey(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.gameID() != "practice" || len(m.runs) != 1 {
		t.Fatalf("after tab: game %s with %d runs", m.gameID(), len(m.runs))
	}
	m = boardKey(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.gameID() != "survivors" || m.runs[0].Score != 1800 {
		t.Error("shift+tab should return to the first game")
	}
}

func TestScoreboardEmptyAndError(t *testing.T) {
	if v := NewScoreboardModel(nil, 80, 24).View(); !strings.Contains(v, "No runs recorded") {
		t.Errorf("nil board view:\n%s", v)
	}
	failing := boardFor(&fakeBoard{err: errors.New("disk gone")}, 100)
	if v := failing.View(); !strings.Contains(v, "disk gone") {
		t.Errorf("error view:\n%s", v)
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := boardKey(boardFor(sampleBoard(), 100), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.View() != "" {
		t.Error("esc should leave the scoreboard")
	}
	m = boardKey(boardFor(sampleBoard(), 100), runes("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
