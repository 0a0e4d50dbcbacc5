package sim

import (
	"math"
	"sort"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/loot"
)

const (
	doppelgangerOffset = 100.0
	mimicSlashReach    = 100.0
	mimicSlashVisual   = 150.0
	mimicSlashDamage   = 20.0
	mimicBoltSpeed     = 5.0
	mimicBoltDamage    = 15.0
	mimicBoltLife      = 120
	enemyBoltRadius    = 10.0
	rewardScatter      = 40.0
)

// spawnBoss starts the encounter: the arena locks to the current view,
// living enemies are cleared without payout and the boss appears. Enemies
// already killed this frame stay for the dead sweep.
func (w *World) spawnBoss() {
	bc := w.cfg.Boss
	t, ok := w.tables.EnemyByRole(content.RoleBoss)
	if !ok {
		w.progress.BossThreshold = w.progress.KillCount + bc.RespawnKills
		return
	}
	hw, hh := w.cfg.World.ViewWidth/2, w.cfg.World.ViewHeight/2
	arena := core.Bounds{
		MinX: w.player.Pos.X - hw, MinY: w.player.Pos.Y - hh,
		MaxX: w.player.Pos.X + hw, MaxY: w.player.Pos.Y + hh,
	}
	angle := w.rng.Float64() * 2 * math.Pi
	pos, _ := arena.Inset(bc.ArenaPadding).ClampPoint(w.player.Pos.Add(core.FromAngle(angle).Scale(bc.SpawnDistance)))

	kept := w.enemies[:0]
	for _, e := range w.enemies {
		if e.HP <= 0 {
			kept = append(kept, e)
		}
	}
	w.enemies = kept
	boss := w.newEnemy(t, pos)
	boss.Phase = 1
	boss.AttackTimer = bc.BeamInterval
	w.enemies = append(w.enemies, boss)
	w.boss = bossState{active: true, id: boss.ID, arena: arena}
	w.emit(BossAppeared{Name: t.Name, Arena: arena})
}

// phaseFor maps remaining HP to a phase number.
func (w *World) phaseFor(frac float64) int {
	switch {
	case frac < w.cfg.Boss.Phase3HP:
		return 3
	case frac < w.cfg.Boss.Phase2HP:
		return 2
	}
	return 1
}

func (w *World) runBoss() {
	boss := w.enemyByID(w.boss.id)
	if boss == nil || boss.HP <= 0 {
		return
	}
	next := max(boss.Phase, w.phaseFor(boss.HP/boss.MaxHP))
	for boss.Phase < next {
		boss.Phase++
		if boss.Phase == 3 {
			w.enterFinalPhase(boss)
		}
	}

	switch boss.Phase {
	case 1:
		w.spawnPrisms()
		w.beamAttack(boss)
	case 2:
		w.spawnPrisms()
		w.cageAttack()
	case 3:
		w.mimicAttacks()
	}
}

func (w *World) byRole(role content.EnemyRole) []*Enemy {
	var out []*Enemy
	for _, e := range w.enemies {
		if e.HP > 0 && e.Role == role {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) spawnPrisms() {
	bc := w.cfg.Boss
	if len(w.byRole(content.RolePrism)) >= bc.MaxPrisms || w.rng.Float64() >= bc.PrismChance {
		return
	}
	t, ok := w.tables.EnemyByRole(content.RolePrism)
	if !ok {
		return
	}
	offset := core.V((w.rng.Float64()-0.5)*2*bc.PrismSpread, (w.rng.Float64()-0.5)*2*bc.PrismSpread)
	pos, _ := w.boss.arena.Inset(bc.ArenaPadding).ClampPoint(w.player.Pos.Add(offset))
	w.enemies = append(w.enemies, w.newEnemy(t, pos))
}

// beamAttack telegraphs a beam at a random prism. The split happens later
// through the deferred queue.
func (w *World) beamAttack(boss *Enemy) {
	bc := w.cfg.Boss
	boss.AttackTimer--
	if boss.AttackTimer > 0 {
		return
	}
	prisms := w.byRole(content.RolePrism)
	if len(prisms) == 0 {
		return
	}
	boss.AttackTimer = bc.BeamInterval
	target := prisms[w.rng.Intn(len(prisms))]
	w.addEffect(bc.BeamDelay, Beam{From: boss.Pos, To: target.Pos})
	w.schedule(bc.BeamDelay, beamSplit{prismID: target.ID})
}

// cagePolygon orders prism positions by angle around their centroid.
func cagePolygon(prisms []*Enemy) []core.Vec2 {
	pts := make([]core.Vec2, len(prisms))
	var c core.Vec2
	for i, p := range prisms {
		pts[i] = p.Pos
		c = c.Add(p.Pos)
	}
	c = c.Scale(1 / float64(len(pts)))
	sort.SliceStable(pts, func(i, j int) bool {
		return pts[i].Sub(c).Angle() < pts[j].Sub(c).Angle()
	})
	return pts
}

func (w *World) cageAttack() {
	bc := w.cfg.Boss
	prisms := w.byRole(content.RolePrism)
	if len(prisms) < bc.CageMinPrisms || bc.CageInterval <= 0 || w.progress.Frame%bc.CageInterval != 0 {
		return
	}
	poly := cagePolygon(prisms)
	w.addEffect(bc.CageInterval, Cage{Points: poly})
	if !core.PointInPolygon(w.player.Pos, poly) {
		return
	}
	for _, p := range prisms {
		if p.Pos.Dist(w.player.Pos) <= bc.CageSafeRadius {
			return
		}
	}
	w.damagePlayerDirect(bc.CageDamage)
}

// enterFinalPhase shatters the prisms and splits off the doppelgangers.
func (w *World) enterFinalPhase(boss *Enemy) {
	for _, p := range w.byRole(content.RolePrism) {
		p.HP = 0
		w.addEffect(20, DeathPoof{Pos: p.Pos})
	}
	t, ok := w.tables.EnemyByRole(content.RoleDoppelganger)
	if !ok {
		return
	}
	bc := w.cfg.Boss
	for i := 0; i < bc.Doppelgangers; i++ {
		side := float64(2*(i%2) - 1)
		d := w.newEnemy(t, boss.Pos.Add(core.V(side*doppelgangerOffset*float64(i/2+1), 0)))
		d.AttackTimer = bc.MimicInterval
		w.enemies = append(w.enemies, d)
	}
}

// mimicAttacks has each doppelganger copy a random owned melee or
// projectile skill on its own timer.
func (w *World) mimicAttacks() {
	var pool []*OwnedSkill
	for _, s := range w.skills {
		if k := s.Template.Kind; k == content.KindMelee || k == content.KindProjectile {
			pool = append(pool, s)
		}
	}
	for _, d := range w.byRole(content.RoleDoppelganger) {
		d.AttackTimer--
		if d.AttackTimer > 0 {
			continue
		}
		d.AttackTimer = w.cfg.Boss.MimicInterval
		if len(pool) == 0 {
			continue
		}
		s := pool[w.rng.Intn(len(pool))]
		toPlayer := w.player.Pos.Sub(d.Pos)
		switch s.Template.Kind {
		case content.KindMelee:
			if toPlayer.Len() < mimicSlashVisual {
				w.addEffect(10, Slash{Pos: d.Pos, Angle: toPlayer.Angle(), Range: mimicSlashReach})
			}
			if toPlayer.Len() < mimicSlashReach {
				w.damagePlayer(mimicSlashDamage, w.cfg.Combat.ProjectileInvulnFrames)
			}
		case content.KindProjectile:
			w.spawnEnemyProjectile(d.Pos, toPlayer.Angle(), mimicBoltSpeed, mimicBoltDamage, mimicBoltLife, s.Template.Element)
		}
	}
}

func (w *World) spawnEnemyProjectile(pos core.Vec2, angle, speed, damage float64, life int, element content.Element) {
	w.projectiles = append(w.projectiles, &Projectile{
		ID:      w.newID(),
		Pos:     pos,
		Vel:     core.FromAngle(angle).Scale(speed),
		Radius:  enemyBoltRadius,
		Damage:  damage,
		Element: element,
		Enemy:   true,
		Life:    life,
		Angle:   angle,
	})
}

// carapaceHit counts a player projectile hit on the boss and releases
// shards on every threshold.
func (w *World) carapaceHit(boss *Enemy) {
	bc := w.cfg.Boss
	boss.CarapaceStacks++
	if boss.CarapaceStacks < bc.CarapaceHits {
		return
	}
	boss.CarapaceStacks = 0
	for i := 0; i < bc.CarapaceShards; i++ {
		angle := 2*math.Pi/float64(bc.CarapaceShards)*float64(i) + w.rng.Float64()
		w.spawnEnemyProjectile(boss.Pos, angle, bc.ShardSpeed, bc.ShardDamage, bc.ShardLife, content.Physical)
	}
}

// bossDefeated pays out the boss rewards and ends the encounter.
func (w *World) bossDefeated(boss *Enemy) {
	bc := w.cfg.Boss
	for i := 0; i < bc.RewardGems; i++ {
		offset := core.V((w.rng.Float64()-0.5)*2*rewardScatter, (w.rng.Float64()-0.5)*2*rewardScatter)
		w.gems = append(w.gems, Gem{ID: w.newID(), Pos: boss.Pos.Add(offset), XP: bc.RewardGemXP, Tier: GemPurple})
	}
	w.dropItem(boss.Pos, w.items.GenerateRarity(w.progress.Level, loot.Unique))
	w.dropItem(boss.Pos, w.items.GenerateRarity(w.progress.Level, loot.Rare))

	for _, e := range w.enemies {
		if e.Role == content.RolePrism || e.Role == content.RoleDoppelganger {
			e.HP = 0
		}
	}
	w.boss = bossState{}
	w.progress.BossThreshold = w.progress.KillCount + bc.RespawnKills
	w.progress.BossKills++
	w.emit(BossDefeated{Name: boss.Name, BossKills: w.progress.BossKills})
}
