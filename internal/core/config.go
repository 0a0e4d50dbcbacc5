package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// Difficulty names a tuning preset; empty keeps the game's default.
	Difficulty string
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
	// Status is a transient one-line message for the platform to show.
	Status string
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// RunSummary is the end-of-run report a game hands to the platform for storage.
type RunSummary struct {
	RunID       string
	GameID      string
	Seed        int64
	Score       int
	Level       int
	Kills       int
	BossKills   int
	Survived    time.Duration
	SkillDamage map[string]int
	KillsByType map[string]int
}
