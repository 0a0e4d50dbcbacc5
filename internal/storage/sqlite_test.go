package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("survivors", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("survivors", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("survivors", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("practice", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for survivors
	scores, err := store.TopScores("survivors", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for practice
	practiceScores, err := store.TopScores("practice", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(practiceScores) != 1 {
		t.Errorf("Expected 1 practice score, got %d", len(practiceScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("survivors")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("survivors", 100)
	store.SaveScore("survivors", 300)
	store.SaveScore("survivors", 200)

	high, err = store.HighScore("survivors")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("survivors", 100)
	store.SaveScore("survivors", 200)
	store.SaveScore("practice", 300)

	// Clear only survivors scores
	err = store.ClearScores("survivors")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Survivors should be empty
	survivorScores, _ := store.TopScores("survivors", 10)
	if len(survivorScores) != 0 {
		t.Errorf("Expected 0 survivors scores after clear, got %d", len(survivorScores))
	}

	// Practice should still have scores
	practiceScores, _ := store.TopScores("practice", 10)
	if len(practiceScores) != 1 {
		t.Errorf("Practice scores should not be affected by clearing survivors")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(id string, score int) core.RunSummary {
	return core.RunSummary{
		RunID:       id,
		GameID:      "survivors",
		Seed:        42,
		Score:       score,
		Level:       7,
		Kills:       31,
		BossKills:   1,
		Survived:    95*time.Second + 500*time.Millisecond,
		SkillDamage: map[string]int{"arc": 900, "frost_bolt": 1400},
		KillsByType: map[string]int{"zombie": 20, "bat": 10, "boss_valos": 1},
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveRun(sampleRun("run-1", 405)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	d, err := store.RunDetails("run-1")
	if err != nil {
		t.Fatalf("RunDetails() failed: %v", err)
	}
	if d.Score != 405 || d.Level != 7 || d.Kills != 31 || d.BossKills != 1 || d.Seed != 42 {
		t.Errorf("run record = %+v", d.RunRecord)
	}
	if d.Survived != 95500*time.Millisecond {
		t.Errorf("Survived = %v", d.Survived)
	}
	if len(d.SkillDamage) != 2 || d.SkillDamage[0].SkillID != "frost_bolt" {
		t.Errorf("skill damage = %+v, expected frost_bolt first", d.SkillDamage)
	}
	if len(d.KillsByType) != 3 || d.KillsByType[0] != (TypeKills{"zombie", 20}) {
		t.Errorf("kills = %+v", d.KillsByType)
	}

	high, err := store.HighScore("survivors")
	if err != nil || high != 405 {
		t.Errorf("HighScore() = %d, %v; SaveRun should record the score", high, err)
	}
}

func TestStoreSaveRunDuplicateIsAtomic(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveRun(sampleRun("dup", 100)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if err := store.SaveRun(sampleRun("dup", 999)); err == nil {
		t.Fatal("saving the same run twice should fail")
	}

	scores, _ := store.AllScores("survivors")
	if len(scores) != 1 || scores[0].Score != 100 {
		t.Errorf("scores = %+v, the failed save must roll back", scores)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i, id := range []string{"a", "b", "c"} {
		if err := store.SaveRun(sampleRun(id, i*10)); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", id, err)
		}
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].RunID != "c" || runs[1].RunID != "b" {
		t.Errorf("order = %s, %s; expected newest first", runs[0].RunID, runs[1].RunID)
	}
}

func TestStoreRunDetailsNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.RunDetails("missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("err = %v, expected ErrRunNotFound", err)
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	short := sampleRun("short", 500)
	short.Survived = 30 * time.Second
	long := sampleRun("long", 500)
	long.Survived = 90 * time.Second
	other := sampleRun("other-game", 9999)
	other.GameID = "practice"
	for _, r := range []core.RunSummary{sampleRun("low", 100), short, long, other} {
		if err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", r.RunID, err)
		}
	}

	runs, err := store.TopRuns("survivors", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.RunID)
	}
	if len(ids) != 3 || ids[0] != "long" || ids[1] != "short" || ids[2] != "low" {
		t.Errorf("order = %v, expected [long short low]", ids)
	}
	if runs[0].Level != 7 || runs[0].BossKills != 1 {
		t.Errorf("top run = %+v, expected the stored level and boss kills", runs[0])
	}

	runs, _ = store.TopRuns("survivors", 1)
	if len(runs) != 1 {
		t.Errorf("limit 1 returned %d runs", len(runs))
	}
}
