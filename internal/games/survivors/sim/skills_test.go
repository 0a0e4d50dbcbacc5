package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
)

func orbiters(w *World, skillID string) []*Projectile {
	var out []*Projectile
	for _, p := range w.projectiles {
		if p.Orbit && p.SkillID == skillID {
			out = append(out, p)
		}
	}
	return out
}

func TestOrbitCapAndSpacing(t *testing.T) {
	w := newQuietWorld(t)
	s := onlySkill(t, w, "aura")

	w.Step(Input{})
	blades := orbiters(w, "aura")
	if len(blades) != 2 {
		t.Fatalf("blades = %d, expected 2", len(blades))
	}

	s.Points["dur_1"] = 1
	s.Points["count_1"] = 1
	for i := 0; i < 200; i++ {
		w.Step(Input{})
		if n := len(orbiters(w, "aura")); n > 3 {
			t.Fatalf("frame %d: %d blades exceeds cap", i, n)
		}
	}
	blades = orbiters(w, "aura")
	if len(blades) != 3 {
		t.Fatalf("blades = %d, expected 3", len(blades))
	}

	want := 2 * math.Pi / 3
	for i := 1; i < len(blades); i++ {
		if d := blades[i].Angle - blades[i-1].Angle; math.Abs(d-want) > 1e-9 {
			t.Errorf("spacing %d = %v, expected %v", i, d, want)
		}
	}
	radius := orbitBaseRadius + float64(s.Rank)*5
	for _, b := range blades {
		if d := b.Pos.Dist(w.player.Pos); math.Abs(d-radius) > 1e-9 {
			t.Errorf("blade radius = %v, expected %v", d, radius)
		}
	}
}

func TestOrbitTrimsExtras(t *testing.T) {
	w := newQuietWorld(t)
	s := onlySkill(t, w, "aura")
	s.Points["count_1"] = 3
	w.Step(Input{})
	if n := len(orbiters(w, "aura")); n != 5 {
		t.Fatalf("blades = %d, expected 5", n)
	}

	s.Points["count_1"] = 0
	w.Step(Input{})
	if n := len(orbiters(w, "aura")); n != 2 {
		t.Errorf("blades after trim = %d, expected 2", n)
	}
}

func TestImmunityThrottlesLingeringHits(t *testing.T) {
	w := newQuietWorld(t)
	w.skills = nil
	e := placeEnemy(t, w, "zombie", core.V(1000, 0), 1e6)
	w.projectiles = append(w.projectiles, &Projectile{
		ID:          w.newID(),
		Pos:         e.Pos,
		Radius:      40,
		Damage:      10,
		Element:     content.Physical,
		SkillID:     "aura",
		Life:        1000,
		Lingering:   true,
		ImmunityKey: "aura",
	})

	stepN(w, 40, Input{})
	if got := w.progress.DamageBySkill["aura"]; got != 20 {
		t.Errorf("damage over 40 frames = %v, expected 2 hits of 10", got)
	}
}

// freshWindow reports whether source opened its window on e this frame.
func freshWindow(w *World, e *Enemy, source string) bool {
	for _, slot := range e.Immunity.slots {
		if slot.source == source && slot.frames == w.cfg.Combat.ImmunityWindow {
			return true
		}
	}
	return false
}

func TestImmunityThrottlesOrbitBlades(t *testing.T) {
	w := newQuietWorld(t)
	w.stats.MaxHP, w.stats.HP = 1e9, 1e9
	onlySkill(t, w, "aura")
	// A body this large touches every blade at once.
	e := placeEnemy(t, w, "zombie", w.player.Pos, 1e6)
	e.Size = 400

	window := w.cfg.Combat.ImmunityWindow
	var hits []int
	for frame := 0; frame < 6*window; frame++ {
		w.Step(Input{})
		if len(orbiters(w, "aura")) < 2 {
			t.Fatalf("frame %d: blades = %d, expected 2", frame, len(orbiters(w, "aura")))
		}
		if freshWindow(w, e, "aura") {
			hits = append(hits, frame)
		}
	}

	if len(hits) < 5 {
		t.Fatalf("hits = %v, expected one per window", hits)
	}
	for i := 1; i < len(hits); i++ {
		if gap := hits[i] - hits[i-1]; gap < window {
			t.Errorf("hits at frames %d and %d are %d apart, window is %d", hits[i-1], hits[i], gap, window)
		}
	}
}

func TestKineticScenario(t *testing.T) {
	w := newQuietWorld(t)
	onlySkill(t, w, "kinetic")

	events := stepN(w, 100, Input{Intent: core.V(1, 0)})
	if len(events) != 0 {
		t.Fatalf("unexpected events while charging: %v", events)
	}
	charge := w.kinetic.charge
	if charge <= 0.2*w.cfg.Kinetic.MaxCharge {
		t.Fatalf("charge after 100 frames = %v, expected above discharge threshold", charge)
	}

	events = w.Step(Input{})
	var discharges []KineticDischarge
	for _, e := range events {
		if d, ok := e.(KineticDischarge); ok {
			discharges = append(discharges, d)
		}
	}
	if len(discharges) != 1 {
		t.Fatalf("discharges = %d, expected 1", len(discharges))
	}
	d := discharges[0]
	pct := charge / w.cfg.Kinetic.MaxCharge
	if want := 60 * (0.8 + pct*1.2); math.Abs(d.Damage-want) > 1e-9 {
		t.Errorf("discharge damage = %v, expected %v", d.Damage, want)
	}
	if d.Strikes != int(3+pct*6) {
		t.Errorf("strikes = %d, expected %d", d.Strikes, int(3+pct*6))
	}
	if w.kinetic.charge != 0 {
		t.Errorf("charge after discharge = %v, expected 0", w.kinetic.charge)
	}

	if events := stepN(w, 30, Input{}); len(events) != 0 {
		t.Errorf("standing still should not discharge again: %v", events)
	}
}

func TestKineticBelowThresholdKeepsCharge(t *testing.T) {
	w := newQuietWorld(t)
	onlySkill(t, w, "kinetic")

	stepN(w, 10, Input{Intent: core.V(0, 1)})
	charge := w.kinetic.charge
	if events := w.Step(Input{}); len(events) != 0 {
		t.Errorf("short move should not discharge: %v", events)
	}
	if w.kinetic.charge != charge {
		t.Error("charge below threshold should be kept")
	}
}

func TestChainHops(t *testing.T) {
	w := newQuietWorld(t)
	onlySkill(t, w, "lightning")
	w.stats.CritChance = 0
	var line []*Enemy
	for i := 1; i <= 4; i++ {
		line = append(line, placeEnemy(t, w, "zombie", core.V(float64(i)*100, 0), 1000))
	}

	stepN(w, 80, Input{})

	if line[0].HP != 945 {
		t.Errorf("first target HP = %v, expected 945", line[0].HP)
	}
	if line[1].HP != 956 {
		t.Errorf("second target HP = %v, expected 956", line[1].HP)
	}
	if line[2].HP != 1000 || line[3].HP != 1000 {
		t.Error("rank 1 arc should hop once")
	}
	if line[0].Status.Shocked == 0 {
		t.Error("arc should shock")
	}
}

func TestIceBoltFreezesAndSplashes(t *testing.T) {
	w := newQuietWorld(t)
	onlySkill(t, w, "icebolt")
	w.stats.CritChance = 0
	target := placeEnemy(t, w, "zombie", core.V(100, 0), 1000)
	beside := placeEnemy(t, w, "zombie", core.V(100, 60), 1000)

	stepN(w, 80, Input{})

	if target.HP != 955 {
		t.Errorf("target HP = %v, expected 955", target.HP)
	}
	if beside.HP != 977.5 {
		t.Errorf("splash HP = %v, expected 977.5", beside.HP)
	}
	if target.Status.Frozen == 0 || beside.Status.Frozen == 0 {
		t.Error("bolt and splash should freeze")
	}
}

func TestMeleeArcAndBleed(t *testing.T) {
	w := newQuietWorld(t)
	w.stats.CritChance = 0
	front := placeEnemy(t, w, "zombie", core.V(80, 0), 1000)
	behind := placeEnemy(t, w, "zombie", core.V(-80, 0), 1000)

	stepN(w, 35, Input{})

	if front.HP != 940 {
		t.Errorf("front HP = %v, expected 940", front.HP)
	}
	if behind.HP != 1000 {
		t.Error("enemy behind the swing should not be hit")
	}
	if !front.Status.Bleeding() {
		t.Error("melee hit should apply bleed")
	}
}

func TestCooldownScalesWithAttackSpeed(t *testing.T) {
	w := newQuietWorld(t)
	w.progress.Frame = 35
	if !w.cooldownReady(35) {
		t.Error("cooldown 35 should fire on frame 35")
	}
	w.stats.AttackSpeedMult = 2
	w.progress.Frame = 18
	if !w.cooldownReady(35) {
		t.Error("double attack speed should fire every 18 frames")
	}
	w.stats.AttackSpeedMult = 1
	w.progress.Frame = 5
	if !w.cooldownReady(1) {
		t.Error("cooldown is floored at 5 frames")
	}
}
