package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := decode(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	def := DefaultSurvivorsConfig()

	if cfg.Player != def.Player {
		t.Errorf("player config mismatch:\n yaml %+v\n code %+v", cfg.Player, def.Player)
	}
	if cfg.Boss != def.Boss {
		t.Errorf("boss config mismatch:\n yaml %+v\n code %+v", cfg.Boss, def.Boss)
	}
	if cfg.Status != def.Status || cfg.Spawning != def.Spawning || cfg.Kinetic != def.Kinetic {
		t.Error("status, spawning or kinetic config differs from hardcoded defaults")
	}
	if len(cfg.Leveling.Milestones) != 4 || cfg.Leveling.Milestones[3] != 20 {
		t.Errorf("milestones = %v", cfg.Leveling.Milestones)
	}
}

func TestLoadSurvivorsCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("player:\n  max_hp: 300\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSurvivors(path)
	if err != nil {
		t.Fatalf("LoadSurvivors() failed: %v", err)
	}
	if cfg.Player.MaxHP != 300 {
		t.Errorf("MaxHP = %v, expected 300", cfg.Player.MaxHP)
	}
	if cfg.Player.Speed != 3.5 {
		t.Errorf("unset Speed = %v, expected default 3.5", cfg.Player.Speed)
	}
}

func TestLoadSurvivorsErrors(t *testing.T) {
	if _, err := LoadSurvivors(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("player: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSurvivors(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
	}{
		{DifficultyEasy, true, 0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.3},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSurvivorsConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled || cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("got enabled=%v level=%v", cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel)
			}
		})
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 1000},
		Scaling:      ScalingConfig{SpawnRateMultiplier: 1, HPMultiplier: 0.5},
	}
	dm := NewDifficultyManager(cfg)

	if got := dm.SpawnInterval(60, 20, 0, 0); got != 60 {
		t.Errorf("SpawnInterval at start = %d, expected 60", got)
	}
	if got := dm.SpawnInterval(60, 20, 0, 1000); got != 30 {
		t.Errorf("SpawnInterval at max = %d, expected 30", got)
	}
	if got := dm.SpawnInterval(30, 20, 0, 5000); got != 20 {
		t.Errorf("SpawnInterval should floor at 20, got %d", got)
	}
	if got := dm.HPFactor(0, 500); got != 1.25 {
		t.Errorf("HPFactor halfway = %v, expected 1.25", got)
	}

	cfg.Enabled = false
	if got := NewDifficultyManager(cfg).HPFactor(0, 1000); got != 1 {
		t.Errorf("disabled HPFactor = %v, expected 1", got)
	}
}
