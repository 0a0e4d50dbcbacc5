package sim

import (
	"math"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/loot"
)

const (
	splashFraction = 0.5
	stormFraction  = 0.5
	hitFlashFrames = 5
)

// resolveCombat is the combat phase.
func (w *World) resolveCombat() {
	w.moveProjectiles()
	w.collideProjectiles()
	w.resolveContacts()
	w.sweepProjectiles()
	w.sweepDead()
}

func (w *World) moveProjectiles() {
	for _, p := range w.projectiles {
		if p.Orbit || p.dead {
			continue
		}
		if !p.Lingering {
			p.Pos = p.Pos.Add(p.Vel)
		}
		p.Life--
		if p.Life <= 0 {
			p.dead = true
		}
	}
}

func (w *World) collideProjectiles() {
	// Hits can spawn projectiles; those wait for the next frame.
	live := w.projectiles
	for _, p := range live {
		if p.dead {
			continue
		}
		if p.Enemy {
			if p.Pos.Dist(w.player.Pos) < p.Radius+w.player.Size/2 {
				w.damagePlayer(p.Damage, w.cfg.Combat.ProjectileInvulnFrames)
				p.dead = true
			}
			continue
		}
		for _, e := range w.enemies {
			if e.HP <= 0 || p.Pos.Dist(e.Pos) >= p.Radius+e.Size/2 {
				continue
			}
			if p.Orbit || p.Lingering {
				if e.Immunity.Immune(p.ImmunityKey) {
					continue
				}
				e.Immunity.Grant(p.ImmunityKey, w.cfg.Combat.ImmunityWindow)
				w.hitEnemy(e, hit{
					skillID:     p.SkillID,
					base:        p.Damage,
					element:     p.Element,
					critChance:  p.CritChance,
					bleedFrames: p.Bleed,
				})
				if e.IsBoss() {
					w.carapaceHit(e)
				}
				continue
			}
			if p.hasHit(e.ID) {
				continue
			}
			p.hit = append(p.hit, e.ID)
			w.projectileHit(p, e)
			p.Pierce--
			if p.Pierce <= 0 {
				p.dead = true
				break
			}
		}
	}
}

// projectileHit resolves a moving bolt striking e: the hit, splash, the
// legacy slow and the blade storm augment.
func (w *World) projectileHit(p *Projectile, e *Enemy) {
	w.hitEnemy(e, hit{
		skillID:     p.SkillID,
		base:        p.Damage,
		element:     p.Element,
		critChance:  p.CritChance,
		freeze:      p.Freeze,
		bleedFrames: p.Bleed,
	})
	if p.Slow {
		e.Slow = max(e.Slow, w.cfg.Status.SlowFrames)
	}
	if e.IsBoss() {
		w.carapaceHit(e)
	}
	if p.Splash > 0 {
		w.addEffect(10, Explosion{Pos: e.Pos, Radius: p.Splash})
		for _, o := range w.nearestEnemies(e.Pos, p.Splash, -1, func(o *Enemy) bool { return o.ID != e.ID }) {
			w.hitEnemy(o, hit{
				skillID: p.SkillID,
				base:    p.Damage * splashFraction,
				element: p.Element,
				freeze:  p.Freeze,
			})
		}
	}
	if owner := w.skill(p.SkillID); owner != nil {
		if _, augs := owner.Effective(); augs[content.AugBladeStorm] {
			w.spawnStormBlade(p.SkillID, e.Pos, p.Damage*stormFraction)
		}
	}
}

// resolveContacts applies contact damage from every touching enemy.
func (w *World) resolveContacts() {
	for _, e := range w.enemies {
		if e.HP <= 0 || e.Damage <= 0 {
			continue
		}
		if e.Pos.Dist(w.player.Pos) < (w.player.Size+e.Size)/2 {
			w.damagePlayer(e.Damage, w.cfg.Combat.ContactInvulnFrames)
		}
	}
}

// mitigate applies armor: damage * (1 - armor/(armor+K)), at least 1.
func mitigate(raw, armor, constant float64) float64 {
	armor = math.Max(0, armor)
	dmg := raw
	if armor+constant > 0 {
		dmg = raw * (1 - armor/(armor+constant))
	}
	return math.Max(1, dmg)
}

// damagePlayer applies armor-mitigated damage and opens an invulnerability
// window. It reports whether the damage landed.
func (w *World) damagePlayer(raw float64, invuln int) bool {
	if w.gameOver || w.player.Invuln > 0 || raw <= 0 {
		return false
	}
	dmg := mitigate(raw, w.stats.Armor, w.cfg.Combat.ArmorConstant)
	w.stats.HP = math.Max(0, w.stats.HP-dmg)
	w.player.Invuln = invuln
	w.addEffect(hitFlashFrames, HitFlash{Pos: w.player.Pos})
	return true
}

// damagePlayerDirect ignores armor and invulnerability.
func (w *World) damagePlayerDirect(amount float64) {
	if w.gameOver || amount <= 0 {
		return
	}
	w.stats.HP = math.Max(0, w.stats.HP-amount)
	w.addEffect(hitFlashFrames, HitFlash{Pos: w.player.Pos})
}

// damageEnemy removes HP, attributes the damage to skillID and spawns a
// damage number.
func (w *World) damageEnemy(e *Enemy, amount float64, skillID string, crit bool, label string) {
	if e.HP <= 0 || amount <= 0 {
		return
	}
	dealt := math.Min(amount, e.HP)
	e.HP -= dealt
	if e.HP < 0 {
		e.HP = 0
	}
	e.HitFlash = hitFlashFrames
	if skillID != "" {
		w.progress.DamageBySkill[skillID] += dealt
	}
	w.addNumber(e.Pos, amount, crit, label)
}

func (w *World) sweepProjectiles() {
	live := w.projectiles[:0]
	for _, p := range w.projectiles {
		if !p.dead {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(w.projectiles); i++ {
		w.projectiles[i] = nil
	}
	w.projectiles = live
}

// sweepDead removes dead enemies and pays out kills.
func (w *World) sweepDead() {
	var dead []*Enemy
	alive := make([]*Enemy, 0, len(w.enemies))
	for _, e := range w.enemies {
		if e.HP > 0 {
			alive = append(alive, e)
		} else {
			dead = append(dead, e)
		}
	}
	w.enemies = alive

	for _, e := range dead {
		w.addEffect(15, DeathPoof{Pos: e.Pos})
		if e.Role == content.RolePrism {
			continue
		}
		w.progress.KillCount++
		w.progress.KillsByType[e.Type]++
		if e.IsBoss() {
			w.bossDefeated(e)
			continue
		}
		w.dropGem(e)
		w.rollLoot(e)
	}

	if len(dead) > 0 {
		// Boss death can take its adds down with it.
		alive = w.enemies[:0]
		for _, e := range w.enemies {
			if e.HP > 0 {
				alive = append(alive, e)
			}
		}
		w.enemies = alive
	}
}

// dropGem leaves an XP gem whose tier odds improve with time survived.
func (w *World) dropGem(e *Enemy) {
	minutes := w.progress.Seconds() / 60
	var purple, gold float64
	switch {
	case minutes < 1:
		gold = 0.05
	case minutes < 3:
		purple, gold = 0.02, 0.20
	default:
		purple, gold = 0.15, 0.50
	}
	tier := GemBlue
	r := w.rng.Float64()
	switch {
	case r < purple:
		tier = GemPurple
	case r < purple+gold:
		tier = GemGold
	}
	lc := w.cfg.Leveling
	xp := lc.GemBaseXP * tier.multiplier() * (1 + float64(len(e.Affixes))*lc.AffixXPBonus)
	w.gems = append(w.gems, Gem{ID: w.newID(), Pos: e.Pos, XP: xp, Tier: tier})
}

func (w *World) rollLoot(e *Enemy) {
	lc := w.cfg.Loot
	chance := lc.DropChance
	if e.Size > lc.LargeWidth {
		chance = lc.LargeDropChance
	}
	if w.rng.Float64() < chance {
		w.dropItem(e.Pos, w.items.Generate(w.progress.Level))
	}
}

func (w *World) dropItem(pos core.Vec2, it *loot.Item) {
	if it == nil {
		return
	}
	w.worldItems = append(w.worldItems, WorldItem{ID: w.newID(), Pos: pos, Item: it})
}
