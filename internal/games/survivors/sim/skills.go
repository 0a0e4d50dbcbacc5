package sim

import (
	"math"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
)

const (
	meleeAcquireRange = 300.0
	meleeBaseRange    = 130.0
	meleeArc          = 2 * math.Pi / 3
	boltSpread        = 0.3
	boltRadius        = 25.0
	boltLife          = 120
	boltSlowRank      = 5
	masteryBolts      = 16
	orbitBaseRadius   = 70.0
	orbitBladeRadius  = 20.0
	orbitBaseSpeed    = 0.02
	chainHopRange     = 200.0
	chainFalloff      = 0.8
	stormLife         = 60
	stormRadius       = 40.0
	minCooldown       = 5.0
)

// learn adds a skill at rank 1.
func (w *World) learn(t *content.SkillTemplate) *OwnedSkill {
	s := &OwnedSkill{Template: t, Rank: 1, Points: make(map[string]int)}
	w.skills = append(w.skills, s)
	return s
}

// cooldownReady gates a skill on the global frame counter.
func (w *World) cooldownReady(cooldown float64) bool {
	atk := math.Max(0.1, w.stats.AttackSpeedMult)
	period := int(math.Ceil(math.Max(minCooldown, cooldown) / atk))
	if period < 1 {
		period = 1
	}
	return w.progress.Frame%period == 0
}

// augmentOwner returns the owned skill whose tree unlocked augment.
func (w *World) augmentOwner(augment string) (*OwnedSkill, bool) {
	for _, s := range w.skills {
		if _, augs := s.Effective(); augs[augment] {
			return s, true
		}
	}
	return nil, false
}

func (w *World) skillDamage(st content.SkillStats, element content.Element) float64 {
	return math.Max(0, st.Damage) * w.stats.DamageMult * w.stats.ElementMult(element)
}

func (w *World) critChance(st content.SkillStats) float64 {
	return w.stats.CritChance + st.CritChance
}

// runSkills is the skill phase: every owned skill gets one chance to act.
func (w *World) runSkills(moving bool) {
	for _, s := range w.skills {
		st, augs := s.Effective()
		switch s.Template.Kind {
		case content.KindKinetic:
			w.runKinetic(s, st, moving)
		case content.KindOrbit:
			w.maintainOrbit(s, st)
		case content.KindMelee:
			if w.cooldownReady(st.Cooldown) {
				w.castMelee(s, st, augs, moving)
			}
		case content.KindProjectile:
			if w.cooldownReady(st.Cooldown) {
				w.castProjectile(s, st, moving)
			}
		case content.KindAoE:
			if w.cooldownReady(st.Cooldown) {
				w.castChain(s, st)
			}
		}
	}
}

// aimAngle picks the nearest enemy within acquire, else the movement
// heading, else the facing direction.
func (w *World) aimAngle(acquire float64, moving bool) float64 {
	if t := w.nearestEnemies(w.player.Pos, acquire, 1, nil); len(t) > 0 {
		return t[0].Pos.Sub(w.player.Pos).Angle()
	}
	if moving && !w.player.Heading.IsZero() {
		return w.player.Heading.Angle()
	}
	if w.player.FacingRight {
		return 0
	}
	return math.Pi
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	return math.Abs(d)
}

func (w *World) castMelee(s *OwnedSkill, st content.SkillStats, augs map[string]bool, moving bool) {
	angle := w.aimAngle(meleeAcquireRange, moving)
	reach := meleeBaseRange * (1 + math.Max(0, st.Area))
	if s.Mastered() {
		reach *= 2
	}
	w.addEffect(10, Slash{Pos: w.player.Pos, Angle: angle, Range: reach})

	h := hit{
		skillID:     s.ID(),
		base:        w.skillDamage(st, s.Template.Element),
		element:     s.Template.Element,
		critChance:  w.critChance(st),
		bleedFrames: w.cfg.Status.BleedFrames + int(math.Max(0, st.Duration)),
	}
	castOnCrit := augs[content.AugCastOnCrit]
	for _, e := range w.enemies {
		if e.HP <= 0 {
			continue
		}
		d := e.Pos.Sub(w.player.Pos)
		if d.Len() >= reach || angleDiff(d.Angle(), angle) >= meleeArc/2 {
			continue
		}
		_, crit := w.hitEnemy(e, h)
		if crit && castOnCrit {
			castOnCrit = false
			w.castOnCrit(s, e)
		}
	}
}

// castOnCrit fires a single bolt from the first projectile skill at
// target. The bolt's damage belongs to the augment's owner.
func (w *World) castOnCrit(owner *OwnedSkill, target *Enemy) {
	tmpl, ok := w.tables.FirstOfKind(content.KindProjectile)
	if !ok {
		return
	}
	rank := 1
	points := map[string]int(nil)
	if own := w.skill(tmpl.ID); own != nil {
		rank, points = own.Rank, own.Points
	}
	st, _ := tmpl.Effective(rank, points)
	angle := target.Pos.Sub(w.player.Pos).Angle()
	w.spawnBolt(tmpl, owner.ID(), st, angle, rank)
}

func (w *World) castProjectile(s *OwnedSkill, st content.SkillStats, moving bool) {
	angle := w.aimAngle(math.Inf(1), moving)
	if s.Mastered() && s.Template.FullCircle {
		for i := 0; i < masteryBolts; i++ {
			w.spawnBolt(s.Template, s.ID(), st, angle+2*math.Pi*float64(i)/masteryBolts, s.Rank)
		}
		return
	}
	count := max(1, int(st.ProjectileCount))
	for i := 0; i < count; i++ {
		offset := (float64(i) - float64(count-1)/2) * boltSpread
		w.spawnBolt(s.Template, s.ID(), st, angle+offset, s.Rank)
	}
}

func (w *World) spawnBolt(tmpl *content.SkillTemplate, skillID string, st content.SkillStats, angle float64, rank int) {
	w.projectiles = append(w.projectiles, &Projectile{
		ID:         w.newID(),
		Pos:        w.player.Pos,
		Vel:        core.FromAngle(angle).Scale(math.Max(0, st.ProjectileSpeed)),
		Radius:     boltRadius,
		Damage:     w.skillDamage(st, tmpl.Element),
		Element:    tmpl.Element,
		SkillID:    skillID,
		CritChance: w.critChance(st),
		Life:       boltLife,
		Pierce:     1,
		Angle:      angle,
		Splash:     math.Max(0, st.Area),
		Freeze:     w.cfg.Status.FreezeFrames + int(math.Max(0, st.Duration)),
		Slow:       rank >= boltSlowRank,
	})
}

// spawnStormBlade leaves a stationary blade where a bolt struck.
func (w *World) spawnStormBlade(owner string, pos core.Vec2, damage float64) {
	w.projectiles = append(w.projectiles, &Projectile{
		ID:          w.newID(),
		Pos:         pos,
		Radius:      stormRadius,
		Damage:      damage,
		Element:     content.Physical,
		SkillID:     owner,
		CritChance:  w.stats.CritChance,
		Life:        stormLife,
		Lingering:   true,
		Bleed:       w.cfg.Status.BleedFrames,
		ImmunityKey: owner + "/storm",
	})
}

// maintainOrbit keeps exactly projectileCount blades circling the player.
func (w *World) maintainOrbit(s *OwnedSkill, st content.SkillStats) {
	want := max(0, int(st.ProjectileCount))
	var blades []*Projectile
	for _, p := range w.projectiles {
		if p.Orbit && !p.dead && p.SkillID == s.ID() {
			if len(blades) < want {
				blades = append(blades, p)
			} else {
				p.dead = true
			}
		}
	}
	for len(blades) < want {
		p := &Projectile{
			ID:          w.newID(),
			Radius:      orbitBladeRadius,
			Element:     s.Template.Element,
			SkillID:     s.ID(),
			Orbit:       true,
			ImmunityKey: s.ID(),
		}
		w.projectiles = append(w.projectiles, p)
		blades = append(blades, p)
	}
	if want == 0 {
		return
	}

	spin := 1 + float64(s.Rank)*0.1
	if s.Mastered() {
		spin = 3
	}
	w.orbit[s.ID()] += orbitBaseSpeed * w.stats.AttackSpeedMult * spin * (1 + st.ProjectileSpeed)
	radius := orbitBaseRadius + float64(s.Rank)*5 + math.Max(0, st.Range)
	dmg := w.skillDamage(st, s.Template.Element)
	for i, p := range blades {
		p.Angle = w.orbit[s.ID()] + 2*math.Pi*float64(i)/float64(len(blades))
		p.Pos = w.player.Pos.Add(core.FromAngle(p.Angle).Scale(radius))
		p.Damage = dmg
		p.CritChance = w.critChance(st)
		p.Bleed = w.cfg.Status.BleedFrames + int(math.Max(0, st.Duration))
	}
}

func (w *World) castChain(s *OwnedSkill, st content.SkillStats) {
	first := w.nearestEnemies(w.player.Pos, math.Max(0, st.Range), 1, nil)
	if len(first) == 0 {
		return
	}
	w.chainFrom(s, st, first[0])
}

// chainFrom strikes start, then hops to the nearest unvisited enemy with
// falling damage.
func (w *World) chainFrom(s *OwnedSkill, st content.SkillStats, start *Enemy) {
	hops := 1 + s.Rank/2
	if s.Mastered() {
		hops = 99
	}
	visited := map[int]bool{}
	dmg := w.skillDamage(st, s.Template.Element)
	from := w.player.Pos
	cur := start
	for i := 0; cur != nil; i++ {
		visited[cur.ID] = true
		w.addEffect(12, Lightning{From: from, To: cur.Pos})
		w.hitEnemy(cur, hit{
			skillID:    s.ID(),
			base:       dmg,
			element:    s.Template.Element,
			critChance: w.critChance(st),
			aoe:        true,
			exclude:    visited,
		})
		if i >= hops {
			break
		}
		from = cur.Pos
		next := w.nearestEnemies(from, chainHopRange, 1, func(e *Enemy) bool { return !visited[e.ID] })
		cur = nil
		if len(next) > 0 {
			cur = next[0]
		}
		dmg *= chainFalloff
	}
}

// runKinetic charges while moving and discharges on the stop transition.
func (w *World) runKinetic(s *OwnedSkill, st content.SkillStats, moving bool) {
	kc := w.cfg.Kinetic
	k := &w.kinetic
	if moving {
		rate := kc.ChargePerPixel * (1 + st.ChargeRate)
		if s.Mastered() {
			rate *= kc.MasteryRate
		}
		k.charge = math.Min(kc.MaxCharge, k.charge+w.moved*rate)
	} else if k.wasMoving {
		if owner, ok := w.augmentOwner(content.AugStatic); ok {
			w.staticArcs(owner, st.Range)
		}
		if k.charge > kc.MaxCharge*kc.MinDischarge {
			w.discharge(s, st)
		}
	}
	k.wasMoving = moving
}

func (w *World) discharge(s *OwnedSkill, st content.SkillStats) {
	kc := w.cfg.Kinetic
	pct := w.kinetic.charge / kc.MaxCharge
	strikes := int(3 + pct*6)
	dmg := math.Max(0, st.Damage) * w.stats.DamageMult * w.stats.LightningDamageMult * (0.8 + pct*1.2)
	reach := math.Max(0, st.Range)
	area := math.Max(0, st.Area)

	for i := 0; i < strikes; i++ {
		candidates := w.nearestEnemies(w.player.Pos, reach, -1, func(e *Enemy) bool { return !e.IsBoss() })
		var point core.Vec2
		if len(candidates) > 0 && w.rng.Float64() > 0.3 {
			point = candidates[w.rng.Intn(len(candidates))].Pos
		} else {
			angle := w.rng.Float64() * 2 * math.Pi
			dist := w.rng.Float64() * reach * 0.8
			point = w.player.Pos.Add(core.FromAngle(angle).Scale(dist))
		}
		for _, e := range w.nearestEnemies(point, area, -1, nil) {
			w.hitEnemy(e, hit{
				skillID:    s.ID(),
				base:       dmg,
				element:    content.Lightning,
				critChance: w.critChance(st),
			})
		}
		w.schedule(w.rng.Intn(13), strikeVisual{from: point.Add(core.V(0, -200)), to: point, radius: area})
	}
	if pct > 0.8 {
		w.addEffect(15, ScreenDim{})
	}
	w.emit(KineticDischarge{Charge: w.kinetic.charge, MaxCharge: kc.MaxCharge, Damage: dmg, Strikes: strikes})
	w.kinetic.charge = 0
}

// staticArcs fires instant chain arcs from the augment owner at random
// enemies near the player.
func (w *World) staticArcs(owner *OwnedSkill, reach float64) {
	st, _ := owner.Effective()
	for i := 0; i < w.cfg.Kinetic.StaticArcs; i++ {
		near := w.nearestEnemies(w.player.Pos, reach, -1, nil)
		if len(near) == 0 {
			return
		}
		w.chainFrom(owner, st, near[w.rng.Intn(len(near))])
	}
}
