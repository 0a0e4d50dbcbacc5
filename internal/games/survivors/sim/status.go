package sim

import (
	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
)

// Bleed is a damage-over-time status.
type Bleed struct {
	Duration      int
	DamagePerTick float64
	Source        string
	ticker        int
}

// Statuses holds the timed elemental statuses of an enemy. Every status
// refreshes to the larger of its remaining and incoming duration and
// never stacks.
type Statuses struct {
	Frozen  int
	Shocked int
	Bleed   Bleed
}

func (s *Statuses) ApplyFreeze(frames int) {
	s.Frozen = max(s.Frozen, frames)
}

func (s *Statuses) ApplyShock(frames int) {
	s.Shocked = max(s.Shocked, frames)
}

// ApplyBleed refreshes the bleed. The stronger per-tick damage wins, and
// the source follows it.
func (s *Statuses) ApplyBleed(frames int, perTick float64, source string) {
	if frames <= 0 || perTick <= 0 {
		return
	}
	if s.Bleed.Duration <= 0 {
		s.Bleed = Bleed{}
	}
	s.Bleed.Duration = max(s.Bleed.Duration, frames)
	if perTick >= s.Bleed.DamagePerTick {
		s.Bleed.DamagePerTick = perTick
		s.Bleed.Source = source
	}
}

// Tick advances every status by one frame. It returns the bleed damage due
// this frame and the skill it belongs to.
func (s *Statuses) Tick(bleedInterval int) (float64, string) {
	if s.Frozen > 0 {
		s.Frozen--
	}
	if s.Shocked > 0 {
		s.Shocked--
	}
	if s.Bleed.Duration <= 0 {
		return 0, ""
	}
	var dmg float64
	src := s.Bleed.Source
	s.Bleed.ticker++
	if bleedInterval > 0 && s.Bleed.ticker%bleedInterval == 0 {
		dmg = s.Bleed.DamagePerTick
	}
	s.Bleed.Duration--
	if s.Bleed.Duration == 0 {
		s.Bleed = Bleed{}
	}
	return dmg, src
}

func (s Statuses) Bleeding() bool { return s.Bleed.Duration > 0 }

type immunityEntry struct {
	source string
	frames int
}

// ImmunityTable throttles repeat hits from persistent sources such as
// orbiting blades. Capacity is fixed when the enemy spawns; a full table
// evicts the entry closest to expiry.
type ImmunityTable struct {
	slots []immunityEntry
}

func newImmunityTable(capacity int) ImmunityTable {
	return ImmunityTable{slots: make([]immunityEntry, max(1, capacity))}
}

// Immune reports whether source is still inside its window.
func (t *ImmunityTable) Immune(source string) bool {
	for _, e := range t.slots {
		if e.frames > 0 && e.source == source {
			return true
		}
	}
	return false
}

// Grant starts (or restarts) a window for source.
func (t *ImmunityTable) Grant(source string, frames int) {
	slot := -1
	for i, e := range t.slots {
		if e.frames > 0 && e.source == source {
			slot = i
			break
		}
	}
	if slot < 0 {
		for i, e := range t.slots {
			if e.frames <= 0 {
				slot = i
				break
			}
		}
	}
	if slot < 0 {
		slot = 0
		for i, e := range t.slots {
			if e.frames < t.slots[slot].frames {
				slot = i
			}
		}
	}
	t.slots[slot] = immunityEntry{source: source, frames: frames}
}

// Tick counts every window down by one frame.
func (t *ImmunityTable) Tick() {
	for i := range t.slots {
		if t.slots[i].frames > 0 {
			t.slots[i].frames--
		}
	}
}

// Active returns the number of live windows.
func (t *ImmunityTable) Active() int {
	n := 0
	for _, e := range t.slots {
		if e.frames > 0 {
			n++
		}
	}
	return n
}

func (t ImmunityTable) clone() ImmunityTable {
	return ImmunityTable{slots: append([]immunityEntry(nil), t.slots...)}
}

// tickStatuses runs the status phase for every live enemy.
func (w *World) tickStatuses() {
	for _, e := range w.enemies {
		if e.HP <= 0 {
			continue
		}
		e.Immunity.Tick()
		if e.Slow > 0 {
			e.Slow--
		}
		if e.HitFlash > 0 {
			e.HitFlash--
		}
		if dmg, src := e.Status.Tick(w.cfg.Status.BleedInterval); dmg > 0 {
			w.damageEnemy(e, dmg, src, false, "")
		}
	}
}

// hit describes one damage application from a skill.
type hit struct {
	skillID    string
	base       float64
	element    content.Element
	critChance float64
	// aoe marks hits from area skills, which can trigger Superconduct.
	aoe         bool
	freeze      int
	bleedFrames int
	// exclude lists enemies Superconduct must not split onto.
	exclude map[int]bool
}

// hitEnemy applies a skill hit: crit roll, reactions against the
// target's current statuses, damage, then the hit's own status.
func (w *World) hitEnemy(e *Enemy, h hit) (float64, bool) {
	if e.HP <= 0 || h.base <= 0 {
		return 0, false
	}
	sc := w.cfg.Status
	crit := w.rng.Float64() < h.critChance
	dmg := h.base
	if crit {
		dmg *= w.stats.CritMultiplier
	}

	label := ""
	superconduct := false
	switch {
	case h.element == content.Physical && e.Status.Frozen > 0:
		dmg += h.base * sc.ShatterMultiplier
		e.Status.Frozen = 0
		label = "SHATTER!"
	case h.element == content.Cold && e.Status.Shocked > 0:
		dmg += h.base * sc.ThermalMultiplier
		label = "THERMAL!"
	case h.element == content.Lightning && h.aoe && e.Status.Bleeding():
		superconduct = true
		label = "ZAP!"
	}
	if label != "" {
		w.addEffect(30, ReactionLabel{Pos: e.Pos, Label: label})
	}

	w.damageEnemy(e, dmg, h.skillID, crit, label)
	if superconduct {
		w.superconduct(e, dmg*sc.SuperconductFraction, h)
	}

	switch h.element {
	case content.Cold:
		if h.freeze > 0 {
			e.Status.ApplyFreeze(h.freeze)
			w.addEffect(20, StatusIcon{Pos: e.Pos, Status: "frozen"})
		}
	case content.Lightning:
		e.Status.ApplyShock(sc.ShockFrames)
	case content.Physical:
		e.Status.ApplyBleed(h.bleedFrames, h.base*sc.BleedFraction, h.skillID)
	}
	return dmg, crit
}

// superconduct splits damage from a bleeding target onto nearby enemies
// that were not part of the originating hit.
func (w *World) superconduct(from *Enemy, amount float64, h hit) {
	sc := w.cfg.Status
	targets := w.nearestEnemies(from.Pos, sc.SuperconductRadius, sc.SuperconductTargets, func(e *Enemy) bool {
		return e.ID != from.ID && !h.exclude[e.ID]
	})
	for _, t := range targets {
		w.addEffect(10, Lightning{From: from.Pos, To: t.Pos})
		w.damageEnemy(t, amount, h.skillID, false, "")
	}
}

// nearestEnemies returns up to n live enemies within radius of p, nearest
// first, that pass keep.
func (w *World) nearestEnemies(p core.Vec2, radius float64, n int, keep func(*Enemy) bool) []*Enemy {
	var out []*Enemy
	var dists []float64
	for _, e := range w.enemies {
		if e.HP <= 0 || (keep != nil && !keep(e)) {
			continue
		}
		d := e.Pos.Dist(p)
		if d > radius {
			continue
		}
		i := len(out)
		out = append(out, e)
		dists = append(dists, d)
		for i > 0 && dists[i-1] > d {
			out[i], out[i-1] = out[i-1], out[i]
			dists[i], dists[i-1] = dists[i-1], dists[i]
			i--
		}
	}
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
