package sim

import (
	"math"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
)

const slowFactor = 0.5

// direct is the enemy phase: invulnerability countdown, spawning or the
// boss trigger, pursuit and regeneration.
func (w *World) direct() {
	if w.player.Invuln > 0 {
		w.player.Invuln--
	}
	if !w.boss.active {
		if w.progress.KillCount >= w.progress.BossThreshold {
			w.spawnBoss()
		} else {
			w.spawnTick()
		}
	}
	w.moveEnemies()
	w.regenerate()
	if w.boss.active {
		w.runBoss()
	}
}

func (w *World) spawnTick() {
	sc := w.cfg.Spawning
	if sc.BaseInterval <= 0 {
		return
	}
	interval := max(sc.MinInterval, sc.BaseInterval-w.progress.Level*sc.IntervalPerLevel)
	interval = w.difficulty.SpawnInterval(interval, sc.MinInterval, w.progress.KillCount, w.progress.Frame)
	if w.progress.Frame-w.lastSpawn < interval {
		return
	}
	w.lastSpawn = w.progress.Frame
	w.spawnBasic()
}

// spawnBasic places one regular enemy on a ring around the player.
func (w *World) spawnBasic() {
	types := w.tables.Spawnable(w.progress.Level)
	if len(types) == 0 {
		return
	}
	sc := w.cfg.Spawning
	t := types[w.rng.Intn(len(types))]
	angle := w.rng.Float64() * 2 * math.Pi
	dist := w.cfg.World.ViewWidth/1.5 + w.rng.Float64()*sc.RingJitter
	pos := w.player.Pos.Add(core.FromAngle(angle).Scale(dist))

	minutes := w.progress.Seconds() / 60
	timeScale := 1 + minutes*sc.TimeScalePerMinute
	level := float64(w.progress.Level)

	e := w.newEnemy(t, pos)
	e.HP = (t.HP + level*sc.HPPerLevel) * timeScale * w.difficulty.HPFactor(w.progress.KillCount, w.progress.Frame)
	e.Damage = (t.Damage + level) * timeScale
	e.Speed = t.Speed * (0.8 + w.rng.Float64()*0.4)

	if w.rng.Float64() < sc.EliteChance {
		e.Elite = true
		e.HP *= sc.EliteHP
		e.Damage *= sc.EliteDamage
		e.Size *= sc.EliteSize
		e.Speed *= sc.EliteSpeed
	}
	if w.progress.Seconds() >= float64(sc.AffixStartSeconds) {
		w.rollMonsterAffixes(e, min(sc.MaxAffixes, int(minutes)))
	}
	e.MaxHP = e.HP
	w.enemies = append(w.enemies, e)
}

// rollMonsterAffixes draws n affixes without replacement.
func (w *World) rollMonsterAffixes(e *Enemy, n int) {
	pool := w.tables.MonsterAffixes
	n = min(n, len(pool))
	if n <= 0 {
		return
	}
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + w.rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		a := pool[idx[i]]
		e.Affixes = append(e.Affixes, a.Name)
		e.HP *= nonZero(a.HP)
		e.Damage *= nonZero(a.Damage)
		e.Speed *= nonZero(a.Speed)
		e.Size *= nonZero(a.Size)
		e.Regen = math.Max(e.Regen, a.Regen)
	}
}

func nonZero(mult float64) float64 {
	if mult == 0 {
		return 1
	}
	return mult
}

func (w *World) newEnemy(t *content.EnemyType, pos core.Vec2) *Enemy {
	return &Enemy{
		ID:       w.newID(),
		Type:     t.ID,
		Name:     t.Name,
		Glyph:    t.Glyph,
		Role:     t.Role,
		Pos:      pos,
		Size:     t.Size,
		HP:       t.HP,
		MaxHP:    t.HP,
		Speed:    t.Speed,
		Damage:   t.Damage,
		Immunity: newImmunityTable(w.cfg.Combat.ImmunitySlots),
	}
}

// moveEnemies is straight pursuit. Frozen enemies and prisms hold still.
func (w *World) moveEnemies() {
	for _, e := range w.enemies {
		if e.HP <= 0 || e.Role == content.RolePrism || e.Status.Frozen > 0 {
			continue
		}
		speed := e.Speed
		if e.Slow > 0 {
			speed *= slowFactor
		}
		dir := w.player.Pos.Sub(e.Pos).Norm()
		e.Pos = e.Pos.Add(dir.Scale(speed))
		if e.IsBoss() && w.boss.active {
			e.Pos, _ = w.boss.arena.Inset(w.cfg.Boss.ArenaPadding).ClampPoint(e.Pos)
		}
	}
}

func (w *World) regenerate() {
	interval := w.cfg.Spawning.RegenInterval
	if interval <= 0 || w.progress.Frame%interval != 0 {
		return
	}
	for _, e := range w.enemies {
		if e.HP > 0 && e.Regen > 0 {
			e.HP = math.Min(e.MaxHP, e.HP+e.MaxHP*e.Regen)
		}
	}
}
