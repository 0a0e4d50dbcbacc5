// Package content holds the static tables a run is built from: skill
// templates and their trees, enemy types, monster affixes, item bases,
// affix templates and unique items. Tables are immutable once loaded.
package content

// Slot is an equipment slot an item base belongs to.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotHelm   Slot = "helm"
	SlotBody   Slot = "body"
	SlotGloves Slot = "gloves"
	SlotBoots  Slot = "boots"
	SlotRing   Slot = "ring"
)

// Stat names a player stat an item modifier can touch.
type Stat string

const (
	StatMaxHP            Stat = "max_hp"
	StatSpeed            Stat = "speed"
	StatArmor            Stat = "armor"
	StatPickupRange      Stat = "pickup_range"
	StatDamageMult       Stat = "damage_mult"
	StatAttackSpeedMult  Stat = "attack_speed_mult"
	StatCritChance       Stat = "crit_chance"
	StatCritMultiplier   Stat = "crit_multiplier"
	StatPhysDamageMult   Stat = "phys_damage_mult"
	StatColdDamageMult   Stat = "cold_damage_mult"
	StatLightningDamMult Stat = "lightning_damage_mult"
)

// IsRatio reports whether the stat is already a multiplier or a chance.
// Percentage modifiers on ratio stats add directly to the value.
func (s Stat) IsRatio() bool {
	switch s {
	case StatDamageMult, StatAttackSpeedMult, StatCritChance, StatCritMultiplier,
		StatPhysDamageMult, StatColdDamageMult, StatLightningDamMult:
		return true
	}
	return false
}

// Modifier is a single stat change.
type Modifier struct {
	Stat    Stat    `yaml:"stat"`
	Value   float64 `yaml:"value"`
	Percent bool    `yaml:"percent"`
	Text    string  `yaml:"text,omitempty"`
}

// Element is the damage element of a hit.
type Element string

const (
	Physical  Element = "physical"
	Cold      Element = "cold"
	Lightning Element = "lightning"
)

// SkillKind selects how a skill fires.
type SkillKind string

const (
	KindMelee      SkillKind = "melee"
	KindProjectile SkillKind = "projectile"
	KindAoE        SkillKind = "aoe"
	KindOrbit      SkillKind = "orbit"
	KindKinetic    SkillKind = "kinetic"
)

// Augment identifiers unlocked by tree nodes.
const (
	AugCastOnCrit = "aug_coc"
	AugBladeStorm = "aug_bladestorm"
	AugStatic     = "aug_static"
)

// SkillStats is the set of numbers a skill fires with. Tree nodes carry a
// per-point SkillStats delta that is added onto the template base.
type SkillStats struct {
	Damage          float64 `yaml:"damage,omitempty"`
	Cooldown        float64 `yaml:"cooldown,omitempty"`
	ProjectileCount float64 `yaml:"projectile_count,omitempty"`
	Duration        float64 `yaml:"duration,omitempty"`
	Range           float64 `yaml:"range,omitempty"`
	Area            float64 `yaml:"area,omitempty"`
	ProjectileSpeed float64 `yaml:"projectile_speed,omitempty"`
	CritChance      float64 `yaml:"crit_chance,omitempty"`
	ChargeRate      float64 `yaml:"charge_rate,omitempty"`
}

// Add returns the field-wise sum of s and o.
func (s SkillStats) Add(o SkillStats) SkillStats {
	return SkillStats{
		Damage:          s.Damage + o.Damage,
		Cooldown:        s.Cooldown + o.Cooldown,
		ProjectileCount: s.ProjectileCount + o.ProjectileCount,
		Duration:        s.Duration + o.Duration,
		Range:           s.Range + o.Range,
		Area:            s.Area + o.Area,
		ProjectileSpeed: s.ProjectileSpeed + o.ProjectileSpeed,
		CritChance:      s.CritChance + o.CritChance,
		ChargeRate:      s.ChargeRate + o.ChargeRate,
	}
}

// Scale returns s with every field multiplied by k.
func (s SkillStats) Scale(k float64) SkillStats {
	return SkillStats{
		Damage:          s.Damage * k,
		Cooldown:        s.Cooldown * k,
		ProjectileCount: s.ProjectileCount * k,
		Duration:        s.Duration * k,
		Range:           s.Range * k,
		Area:            s.Area * k,
		ProjectileSpeed: s.ProjectileSpeed * k,
		CritChance:      s.CritChance * k,
		ChargeRate:      s.ChargeRate * k,
	}
}

// Node is one skill-tree node. Prerequisites name sibling nodes of the same tree.
type Node struct {
	ID            string     `yaml:"id"`
	Name          string     `yaml:"name"`
	Description   string     `yaml:"description"`
	MaxPoints     int        `yaml:"max_points"`
	Prerequisites []string   `yaml:"prerequisites,omitempty"`
	PerPoint      SkillStats `yaml:"per_point,omitempty"`
	Augment       string     `yaml:"augment,omitempty"`
}

// SkillTemplate is the immutable definition of a skill.
type SkillTemplate struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Kind        SkillKind  `yaml:"kind"`
	Element     Element    `yaml:"element"`
	Base        SkillStats `yaml:"base"`
	PerRank     SkillStats `yaml:"per_rank,omitempty"` // added per rank above 1
	MaxRank     int        `yaml:"max_rank"`
	// FullCircle makes a projectile skill fire a ring at mastery rank.
	FullCircle bool   `yaml:"full_circle,omitempty"`
	Tree       []Node `yaml:"tree"`
}

// Node returns the tree node with the given ID.
func (s *SkillTemplate) Node(id string) (*Node, bool) {
	for i := range s.Tree {
		if s.Tree[i].ID == id {
			return &s.Tree[i], true
		}
	}
	return nil, false
}

// Effective folds rank growth and allocated points into the base stats and
// collects the augments unlocked by nodes holding at least one point.
// The template is not modified.
func (s *SkillTemplate) Effective(rank int, points map[string]int) (SkillStats, map[string]bool) {
	stats := s.Base
	if rank > 1 {
		stats = stats.Add(s.PerRank.Scale(float64(rank - 1)))
	}
	augments := make(map[string]bool)
	for _, n := range s.Tree {
		p := points[n.ID]
		if p <= 0 {
			continue
		}
		stats = stats.Add(n.PerPoint.Scale(float64(p)))
		if n.Augment != "" {
			augments[n.Augment] = true
		}
	}
	return stats, augments
}

// EnemyRole separates regular mobs from boss-encounter entities.
type EnemyRole string

const (
	RoleBasic        EnemyRole = "basic"
	RoleBoss         EnemyRole = "boss"
	RolePrism        EnemyRole = "prism"
	RoleDoppelganger EnemyRole = "doppelganger"
)

// EnemyType is the template for a spawned enemy.
type EnemyType struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Role     EnemyRole `yaml:"role"`
	HP       float64   `yaml:"hp"`
	Speed    float64   `yaml:"speed"`
	Size     float64   `yaml:"size"`
	Damage   float64   `yaml:"damage"`
	MinLevel int       `yaml:"min_level,omitempty"`
	Glyph    string    `yaml:"glyph"`
}

// MonsterAffix multiplies spawned enemy stats. Zero multipliers mean unchanged.
type MonsterAffix struct {
	Name   string  `yaml:"name"`
	HP     float64 `yaml:"hp,omitempty"`
	Damage float64 `yaml:"damage,omitempty"`
	Speed  float64 `yaml:"speed,omitempty"`
	Size   float64 `yaml:"size,omitempty"`
	// Regen is the fraction of max HP healed every regen interval.
	Regen float64 `yaml:"regen,omitempty"`
}

// Tier is one strength band of an affix template. Tier 1 is strongest.
type Tier struct {
	Tier int     `yaml:"tier"`
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// AffixTemplate describes a rollable prefix or suffix.
type AffixTemplate struct {
	Stat         Stat   `yaml:"stat"`
	Percent      bool   `yaml:"percent"`
	Text         string `yaml:"text"`
	AllowedSlots []Slot `yaml:"allowed_slots,omitempty"`
	Tiers        []Tier `yaml:"tiers"`
}

// Allows reports whether the template may roll on an item in slot.
func (a *AffixTemplate) Allows(slot Slot) bool {
	if len(a.AllowedSlots) == 0 {
		return true
	}
	for _, s := range a.AllowedSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// TierByNumber returns the band for tier n.
func (a *AffixTemplate) TierByNumber(n int) (Tier, bool) {
	for _, t := range a.Tiers {
		if t.Tier == n {
			return t, true
		}
	}
	return Tier{}, false
}

// ItemBase is a non-unique item base.
type ItemBase struct {
	Name     string    `yaml:"name"`
	Slot     Slot      `yaml:"slot"`
	Implicit *Modifier `yaml:"implicit,omitempty"`
}

// UniqueItem is a fixed catalog item.
type UniqueItem struct {
	Name      string     `yaml:"name"`
	BaseName  string     `yaml:"base_name"`
	Slot      Slot       `yaml:"slot"`
	Effect    string     `yaml:"effect"`
	Modifiers []Modifier `yaml:"modifiers"`
}
