package loot

import (
	"math"

	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
)

// PlayerStats is the derived stat block of the player.
type PlayerStats struct {
	MaxHP               float64
	HP                  float64
	Speed               float64
	Armor               float64
	DamageMult          float64
	AttackSpeedMult     float64
	CritChance          float64
	CritMultiplier      float64
	PickupRange         float64
	PhysDamageMult      float64
	ColdDamageMult      float64
	LightningDamageMult float64
}

// ElementMult returns the damage multiplier for an element.
func (s PlayerStats) ElementMult(e content.Element) float64 {
	switch e {
	case content.Cold:
		return s.ColdDamageMult
	case content.Lightning:
		return s.LightningDamageMult
	default:
		return s.PhysDamageMult
	}
}

func (s *PlayerStats) field(stat content.Stat) *float64 {
	switch stat {
	case content.StatMaxHP:
		return &s.MaxHP
	case content.StatSpeed:
		return &s.Speed
	case content.StatArmor:
		return &s.Armor
	case content.StatPickupRange:
		return &s.PickupRange
	case content.StatDamageMult:
		return &s.DamageMult
	case content.StatAttackSpeedMult:
		return &s.AttackSpeedMult
	case content.StatCritChance:
		return &s.CritChance
	case content.StatCritMultiplier:
		return &s.CritMultiplier
	case content.StatPhysDamageMult:
		return &s.PhysDamageMult
	case content.StatColdDamageMult:
		return &s.ColdDamageMult
	case content.StatLightningDamMult:
		return &s.LightningDamageMult
	}
	return nil
}

// Aggregate recomputes player stats from base stats and the equipped items.
// Per stat, flat and percent contributions are summed separately and combined
// as (base + flat) * (1 + percent). Percentages on ratio stats add to flat.
// Current HP is carried over and clamped down to the new max, never raised.
func Aggregate(base PlayerStats, equipped []*Item, currentHP float64) PlayerStats {
	flat := make(map[content.Stat]float64)
	pct := make(map[content.Stat]float64)
	for _, it := range equipped {
		if it == nil {
			continue
		}
		for _, m := range it.AllModifiers() {
			if m.Percent && !m.Stat.IsRatio() {
				pct[m.Stat] += m.Value
			} else {
				flat[m.Stat] += m.Value
			}
		}
	}

	out := base
	for stat, v := range flat {
		if f := out.field(stat); f != nil {
			*f += v
		}
	}
	for stat, v := range pct {
		if f := out.field(stat); f != nil {
			*f *= 1 + v
		}
	}

	out.MaxHP = math.Max(1, out.MaxHP)
	out.Speed = math.Max(0, out.Speed)
	out.Armor = math.Max(0, out.Armor)
	out.AttackSpeedMult = math.Max(0.1, out.AttackSpeedMult)
	out.HP = math.Max(0, math.Min(currentHP, out.MaxHP))
	return out
}
