package config

import "math"

// DifficultyManager scales spawn rate and enemy toughness with run progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0, 1),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) from kills and frames.
// A disabled manager reports level 0 so that every multiplier is neutral.
func (d *DifficultyManager) Level(kills, frames int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "kills":
		progress = float64(kills) / maxAt
	case "time":
		progress = float64(frames) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0, 1)
	return d.initialLevel + progress*(1-d.initialLevel)
}

// SpawnInterval shortens a base spawn interval as difficulty rises, never below floor.
func (d *DifficultyManager) SpawnInterval(base, floor, kills, frames int) int {
	rate := 1 + d.Level(kills, frames)*d.cfg.Scaling.SpawnRateMultiplier
	interval := int(math.Round(float64(base) / rate))
	if interval < floor {
		return floor
	}
	return interval
}

// HPFactor returns the enemy HP multiplier for the current difficulty.
func (d *DifficultyManager) HPFactor(kills, frames int) float64 {
	return 1 + d.Level(kills, frames)*d.cfg.Scaling.HPMultiplier
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
