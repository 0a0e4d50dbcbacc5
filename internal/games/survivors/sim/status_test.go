package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
)

func TestStatusRefreshTakesMax(t *testing.T) {
	var s Statuses
	s.ApplyFreeze(90)
	for i := 0; i < 10; i++ {
		s.Tick(30)
	}
	if s.Frozen != 80 {
		t.Fatalf("Frozen = %d, expected 80", s.Frozen)
	}

	s.ApplyFreeze(30)
	if s.Frozen != 80 {
		t.Errorf("shorter freeze changed duration to %d", s.Frozen)
	}
	s.ApplyFreeze(120)
	if s.Frozen != 120 {
		t.Errorf("longer freeze = %d, expected 120", s.Frozen)
	}

	s.ApplyShock(50)
	s.ApplyShock(20)
	if s.Shocked != 50 {
		t.Errorf("Shocked = %d, expected 50", s.Shocked)
	}
}

func TestBleedTicks(t *testing.T) {
	var s Statuses
	s.ApplyBleed(90, 5, "aura")
	s.ApplyBleed(60, 3, "basic_attack")

	var total float64
	for i := 0; i < 120; i++ {
		dmg, src := s.Tick(30)
		if dmg > 0 && src != "aura" {
			t.Errorf("bleed attributed to %q, expected aura", src)
		}
		total += dmg
	}
	if total != 15 {
		t.Errorf("total bleed = %v, expected 15", total)
	}
	if s.Bleeding() {
		t.Error("bleed should have expired")
	}
}

func TestImmunityTableEvictsClosestToExpiry(t *testing.T) {
	tbl := newImmunityTable(2)
	tbl.Grant("a", 5)
	tbl.Grant("b", 10)
	if !tbl.Immune("a") || !tbl.Immune("b") {
		t.Fatal("granted sources should be immune")
	}

	tbl.Grant("c", 20)
	if tbl.Immune("a") {
		t.Error("a should have been evicted")
	}
	if !tbl.Immune("b") || !tbl.Immune("c") {
		t.Error("b and c should remain")
	}
	if tbl.Active() != 2 {
		t.Errorf("Active() = %d, expected 2", tbl.Active())
	}

	for i := 0; i < 10; i++ {
		tbl.Tick()
	}
	if tbl.Immune("b") || !tbl.Immune("c") {
		t.Error("b should expire after 10 ticks, c should not")
	}
}

func TestShatter(t *testing.T) {
	w := newQuietWorld(t)
	e := placeEnemy(t, w, "zombie", core.V(500, 0), 1000)
	e.Status.ApplyFreeze(50)

	w.hitEnemy(e, hit{skillID: "basic_attack", base: 10, element: content.Physical})

	if e.HP != 960 {
		t.Errorf("HP = %v, expected 960 (10 + 3x10 shatter)", e.HP)
	}
	if e.Status.Frozen != 0 {
		t.Errorf("Frozen = %d, expected 0 after shatter", e.Status.Frozen)
	}
	if got := w.progress.DamageBySkill["basic_attack"]; got != 40 {
		t.Errorf("attributed damage = %v, expected 40", got)
	}
	if n := w.numbers[len(w.numbers)-1]; n.Label != "SHATTER!" {
		t.Errorf("damage number label = %q", n.Label)
	}
}

func TestThermalShock(t *testing.T) {
	w := newQuietWorld(t)
	e := placeEnemy(t, w, "zombie", core.V(500, 0), 1000)
	e.Status.ApplyShock(100)

	w.hitEnemy(e, hit{skillID: "icebolt", base: 10, element: content.Cold, freeze: 90})

	if e.HP != 970 {
		t.Errorf("HP = %v, expected 970", e.HP)
	}
	if e.Status.Shocked != 100 {
		t.Error("thermal shock should not consume the shock")
	}
	if e.Status.Frozen != 90 {
		t.Errorf("Frozen = %d, expected 90", e.Status.Frozen)
	}
}

func TestSuperconduct(t *testing.T) {
	w := newQuietWorld(t)
	target := placeEnemy(t, w, "zombie", core.V(500, 0), 1000)
	target.Status.ApplyBleed(100, 1, "aura")
	near1 := placeEnemy(t, w, "zombie", core.V(550, 0), 1000)
	near2 := placeEnemy(t, w, "zombie", core.V(500, 80), 1000)
	far := placeEnemy(t, w, "zombie", core.V(900, 0), 1000)

	w.hitEnemy(target, hit{skillID: "lightning", base: 100, element: content.Lightning, aoe: true})

	if target.HP != 900 {
		t.Errorf("target HP = %v, expected 900", target.HP)
	}
	for _, e := range []*Enemy{near1, near2} {
		if e.HP != 950 {
			t.Errorf("neighbour HP = %v, expected 950", e.HP)
		}
	}
	if far.HP != 1000 {
		t.Error("enemy outside radius should be untouched")
	}
	if got := w.progress.DamageBySkill["lightning"]; got != 200 {
		t.Errorf("attributed damage = %v, expected 200", got)
	}
}

func TestSuperconductNeedsAoE(t *testing.T) {
	w := newQuietWorld(t)
	target := placeEnemy(t, w, "zombie", core.V(500, 0), 1000)
	target.Status.ApplyBleed(100, 1, "aura")
	near := placeEnemy(t, w, "zombie", core.V(550, 0), 1000)

	w.hitEnemy(target, hit{skillID: "kinetic", base: 100, element: content.Lightning})

	if near.HP != 1000 {
		t.Error("single-target lightning should not superconduct")
	}
	if target.Status.Shocked == 0 {
		t.Error("lightning hit should shock")
	}
}

func TestBleedDamageAttributedOverTime(t *testing.T) {
	w := newQuietWorld(t)
	e := placeEnemy(t, w, "zombie", core.V(5000, 0), 1000)
	w.skills = nil

	w.hitEnemy(e, hit{skillID: "aura", base: 50, element: content.Physical, bleedFrames: 180})
	stepN(w, 180, Input{})

	// 50 direct plus six ticks of 0.2 x 50.
	if got := w.progress.DamageBySkill["aura"]; math.Abs(got-110) > 1e-9 {
		t.Errorf("aura damage = %v, expected 110", got)
	}
}
