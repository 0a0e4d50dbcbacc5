package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
)

// quietConfig disables regular spawning and difficulty scaling so tests
// control every enemy on the field.
func quietConfig() config.SurvivorsConfig {
	cfg := config.DefaultSurvivorsConfig()
	cfg.Spawning.BaseInterval = 0
	cfg.Difficulty.Enabled = false
	return cfg
}

func newQuietWorld(t *testing.T) *World {
	t.Helper()
	return New(quietConfig(), content.MustDefault(), core.NewRNG(7))
}

// placeEnemy adds a stationary enemy of the given type.
func placeEnemy(t *testing.T, w *World, typeID string, pos core.Vec2, hp float64) *Enemy {
	t.Helper()
	et, ok := w.tables.Enemy(typeID)
	if !ok {
		t.Fatalf("unknown enemy type %q", typeID)
	}
	e := w.newEnemy(et, pos)
	e.HP, e.MaxHP = hp, hp
	e.Speed = 0
	w.enemies = append(w.enemies, e)
	return e
}

// onlySkill replaces the owned skills with a single rank 1 skill.
func onlySkill(t *testing.T, w *World, id string) *OwnedSkill {
	t.Helper()
	tmpl, ok := w.tables.Skill(id)
	if !ok {
		t.Fatalf("unknown skill %q", id)
	}
	w.skills = nil
	return w.learn(tmpl)
}

func stepN(w *World, n int, in Input) []Event {
	var events []Event
	for i := 0; i < n; i++ {
		events = append(events, w.Step(in)...)
	}
	return events
}

func TestNewWorld(t *testing.T) {
	w := newQuietWorld(t)

	if w.stats.HP != 150 || w.stats.MaxHP != 150 {
		t.Errorf("HP = %v/%v, expected 150/150", w.stats.HP, w.stats.MaxHP)
	}
	if len(w.skills) != 1 || w.skills[0].ID() != "basic_attack" {
		t.Errorf("starting skills = %v, expected basic_attack", w.skills)
	}
	if len(w.inventory.Items) != 1 {
		t.Errorf("starting inventory = %d items, expected 1", len(w.inventory.Items))
	}
	if w.progress.Level != 1 || w.progress.XPToNext != 100 {
		t.Errorf("progress = %+v", w.progress)
	}
}

func TestModalGateBlocksStep(t *testing.T) {
	gates := []struct {
		name string
		in   Input
	}{
		{"paused", Input{Paused: true}},
		{"inventory", Input{InventoryOpen: true}},
		{"settings", Input{SettingsOpen: true}},
		{"skill tree", Input{SkillTreeOpen: true}},
	}
	for _, g := range gates {
		t.Run(g.name, func(t *testing.T) {
			w := newQuietWorld(t)
			g.in.Intent = core.V(1, 0)
			before := w.Snapshot().Hash()
			if events := w.Step(g.in); events != nil {
				t.Errorf("blocked step emitted %v", events)
			}
			if w.progress.Frame != 0 || w.Snapshot().Hash() != before {
				t.Error("blocked step changed the world")
			}
		})
	}

	w := newQuietWorld(t)
	w.pending = [][]string{{"icebolt"}}
	w.Step(Input{Intent: core.V(1, 0)})
	if w.progress.Frame != 0 {
		t.Error("pending choice should block the simulation")
	}
}

func TestMovementAccelerationAndFriction(t *testing.T) {
	w := newQuietWorld(t)
	stepN(w, 30, Input{Intent: core.V(1, 0)})

	if v := w.player.Vel.Len(); math.Abs(v-3.5) > 1e-9 {
		t.Errorf("speed after 30 frames = %v, expected capped at 3.5", v)
	}
	if !w.player.FacingRight {
		t.Error("moving right should face right")
	}

	w.Step(Input{})
	if v := w.player.Vel.X; math.Abs(v-3.5*0.85) > 1e-9 {
		t.Errorf("velocity after one idle frame = %v, expected %v", v, 3.5*0.85)
	}
}

func TestScoreAndDeath(t *testing.T) {
	w := newQuietWorld(t)
	w.progress.KillCount = 4
	w.progress.Frame = 600
	if got := w.Score(); got != 50 {
		t.Errorf("Score() = %d, expected 50", got)
	}

	w.stats.HP = 0
	events := w.Step(Input{})
	if !w.GameOver() {
		t.Fatal("expected game over at 0 HP")
	}
	found := false
	for _, e := range events {
		if _, ok := e.(RunEnded); ok {
			found = true
		}
	}
	if !found {
		t.Error("expected RunEnded event")
	}
	if events := w.Step(Input{}); len(events) != 0 {
		t.Error("step after game over should be blocked")
	}
}

func TestResetDiscardsState(t *testing.T) {
	w := newQuietWorld(t)
	placeEnemy(t, w, "zombie", core.V(500, 0), 10)
	w.progress.KillCount = 12
	w.schedule(5, beamSplit{prismID: 1})

	w.Reset(core.NewRNG(7))
	if len(w.enemies) != 0 || len(w.timers) != 0 || w.progress.KillCount != 0 {
		t.Error("Reset should discard enemies, timers and progress")
	}
	if w.cfg.Player.MaxHP != 150 {
		t.Error("Reset should keep the config")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	w := newQuietWorld(t)
	e := placeEnemy(t, w, "zombie", core.V(500, 0), 100)
	e.Affixes = []string{"Fast"}
	w.progress.DamageBySkill["basic_attack"] = 10

	s := w.Snapshot()
	s.Enemies[0].HP = 1
	s.Enemies[0].Affixes[0] = "Slow"
	s.Progress.DamageBySkill["basic_attack"] = 99
	s.Inventory[0].Name = "changed"

	if e.HP != 100 || e.Affixes[0] != "Fast" {
		t.Error("snapshot enemy aliases the world")
	}
	if w.progress.DamageBySkill["basic_attack"] != 10 {
		t.Error("snapshot progress aliases the world")
	}
	if w.inventory.Items[0].Name == "changed" {
		t.Error("snapshot inventory aliases the world")
	}
}

// scriptedIntent walks the player in a slow circle with pauses.
func scriptedIntent(frame int) core.Vec2 {
	if (frame/90)%3 == 2 {
		return core.Vec2{}
	}
	return core.FromAngle(float64(frame) / 120)
}

func runSeeded(seed int64, frames int) []uint64 {
	w := New(config.DefaultSurvivorsConfig(), content.MustDefault(), core.NewRNG(seed))
	var hashes []uint64
	for f := 0; f < frames; f++ {
		if choice := w.PendingChoice(); len(choice) > 0 {
			_ = w.ChooseSkill(choice[0])
		}
		w.Step(Input{Intent: scriptedIntent(f)})
		if f%100 == 0 {
			hashes = append(hashes, w.Snapshot().Hash())
		}
	}
	return hashes
}

func TestDeterministicRuns(t *testing.T) {
	a := runSeeded(42, 2000)
	b := runSeeded(42, 2000)

	if len(a) != len(b) {
		t.Fatalf("hash counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("hash %d differs: %x vs %x", i, a[i], b[i])
		}
	}
}
