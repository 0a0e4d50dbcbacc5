// Package storage provides SQLite-based persistence for scores and run summaries.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-survivors/internal/core"
)

// ErrRunNotFound is returned by RunDetails for an unknown run ID.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// RunRecord is a stored run summary.
type RunRecord struct {
	RunID     string
	GameID    string
	Seed      int64
	Score     int
	Level     int
	Kills     int
	BossKills int
	Survived  time.Duration
	CreatedAt time.Time
}

// SkillDamage is one row of a run's per-skill damage breakdown.
type SkillDamage struct {
	SkillID string
	Damage  int
}

// TypeKills is one row of a run's per-enemy-type kill breakdown.
type TypeKills struct {
	EnemyType string
	Kills     int
}

// RunDetail is a run with its breakdowns, largest first.
type RunDetail struct {
	RunRecord
	SkillDamage []SkillDamage
	KillsByType []TypeKills
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			kills INTEGER NOT NULL,
			boss_kills INTEGER NOT NULL DEFAULT 0,
			survived_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS run_skill_damage (
			run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
			skill_id TEXT NOT NULL,
			damage INTEGER NOT NULL,
			PRIMARY KEY (run_id, skill_id)
		);

		CREATE TABLE IF NOT EXISTS run_kills (
			run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
			enemy_type TEXT NOT NULL,
			kills INTEGER NOT NULL,
			PRIMARY KEY (run_id, enemy_type)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime handles both time.Time and the SQLite text format.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a new score for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		gameID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.queryScores(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC`,
		gameID,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveRun stores a run summary, its breakdowns and its score in one
// transaction. Saving the same run ID twice fails and changes nothing.
func (s *Store) SaveRun(sum core.RunSummary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, game_id, seed, score, level, kills, boss_kills, survived_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.RunID, sum.GameID, sum.Seed, sum.Score, sum.Level, sum.Kills, sum.BossKills,
		sum.Survived.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run %s: %w", sum.RunID, err)
	}

	for skill, dmg := range sum.SkillDamage {
		if _, err := tx.Exec(
			"INSERT INTO run_skill_damage (run_id, skill_id, damage) VALUES (?, ?, ?)",
			sum.RunID, skill, dmg,
		); err != nil {
			return fmt.Errorf("storage: cannot save skill damage: %w", err)
		}
	}
	for typ, n := range sum.KillsByType {
		if _, err := tx.Exec(
			"INSERT INTO run_kills (run_id, enemy_type, kills) VALUES (?, ?, ?)",
			sum.RunID, typ, n,
		); err != nil {
			return fmt.Errorf("storage: cannot save kills: %w", err)
		}
	}
	if _, err := tx.Exec("INSERT INTO scores (game_id, score) VALUES (?, ?)", sum.GameID, sum.Score); err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return nil
}

const runColumns = `run_id, game_id, seed, score, level, kills, boss_kills, survived_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var r RunRecord
	var survivedMS int64
	var createdAt any
	err := row.Scan(&r.RunID, &r.GameID, &r.Seed, &r.Score, &r.Level, &r.Kills, &r.BossKills, &survivedMS, &createdAt)
	r.Survived = time.Duration(survivedMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, err
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// TopRuns returns the best runs of a game. Ties go to the longer survival,
// then to the earlier run.
func (s *Store) TopRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, survived_ms DESC, rowid ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunDetails loads one run with its breakdowns.
func (s *Store) RunDetails(runID string) (*RunDetail, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	d := &RunDetail{RunRecord: r}

	rows, err := s.db.Query("SELECT skill_id, damage FROM run_skill_damage WHERE run_id = ?", runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query skill damage: %w", err)
	}
	for rows.Next() {
		var sd SkillDamage
		if err := rows.Scan(&sd.SkillID, &sd.Damage); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan skill damage: %w", err)
		}
		d.SkillDamage = append(d.SkillDamage, sd)
	}
	rows.Close()

	rows, err = s.db.Query("SELECT enemy_type, kills FROM run_kills WHERE run_id = ?", runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query kills: %w", err)
	}
	for rows.Next() {
		var tk TypeKills
		if err := rows.Scan(&tk.EnemyType, &tk.Kills); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan kills: %w", err)
		}
		d.KillsByType = append(d.KillsByType, tk)
	}
	rows.Close()

	sort.Slice(d.SkillDamage, func(i, j int) bool {
		if d.SkillDamage[i].Damage != d.SkillDamage[j].Damage {
			return d.SkillDamage[i].Damage > d.SkillDamage[j].Damage
		}
		return d.SkillDamage[i].SkillID < d.SkillDamage[j].SkillID
	})
	sort.Slice(d.KillsByType, func(i, j int) bool {
		if d.KillsByType[i].Kills != d.KillsByType[j].Kills {
			return d.KillsByType[i].Kills > d.KillsByType[j].Kills
		}
		return d.KillsByType[i].EnemyType < d.KillsByType[j].EnemyType
	})
	return d, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var s GameStats
		var lastPlayed any
		if err := rows.Scan(&s.GameID, &s.GamesCount, &s.HighScore, &s.AvgScore, &s.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		s.LastPlayed = parseTime(lastPlayed)
		stats[s.GameID] = &s
	}

	return stats, nil
}
