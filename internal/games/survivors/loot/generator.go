package loot

import (
	"math"
	"strings"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
)

const maxAffixAttempts = 10

// Generator rolls items from the content tables. All randomness comes from rng.
type Generator struct {
	tables *content.Tables
	rng    core.RNG
	nextID int
}

// NewGenerator creates a generator over tables.
func NewGenerator(tables *content.Tables, rng core.RNG) *Generator {
	return &Generator{tables: tables, rng: rng}
}

// Generate rolls an item with a random rarity: 1% Unique, 19% Rare, otherwise Magic.
func (g *Generator) Generate(level int) *Item {
	return g.GenerateRarity(level, g.rollRarity())
}

func (g *Generator) rollRarity() Rarity {
	roll := g.rng.Float64()
	switch {
	case roll < 0.01:
		return Unique
	case roll < 0.20:
		return Rare
	default:
		return Magic
	}
}

// GenerateRarity rolls an item of a forced rarity.
// A Unique request with an empty unique catalog degrades to Rare.
func (g *Generator) GenerateRarity(level int, rarity Rarity) *Item {
	if rarity == Unique {
		if len(g.tables.Uniques) > 0 {
			return g.unique()
		}
		rarity = Rare
	}

	base := g.tables.ItemBases[g.rng.Intn(len(g.tables.ItemBases))]
	it := &Item{
		ID:       g.id(),
		Name:     base.Name,
		BaseName: base.Name,
		Slot:     base.Slot,
		Rarity:   rarity,
		LevelReq: max(1, level),
	}
	if base.Implicit != nil {
		m := *base.Implicit
		it.Implicit = &m
	}

	var prefixCount, suffixCount int
	switch rarity {
	case Magic:
		if g.rng.Float64() > 0.5 {
			prefixCount = 1
		}
		if g.rng.Float64() > 0.5 || prefixCount == 0 {
			suffixCount = 1
		}
	case Rare:
		prefixCount = 1 + g.rng.Intn(3)
		suffixCount = 1 + g.rng.Intn(3)
	}

	used := make(map[content.Stat]bool)
	for i := 0; i < prefixCount; i++ {
		if a, ok := g.rollAffix(g.tables.Prefixes, base.Slot, used); ok {
			it.Prefixes = append(it.Prefixes, a)
		}
	}
	for i := 0; i < suffixCount; i++ {
		if a, ok := g.rollAffix(g.tables.Suffixes, base.Slot, used); ok {
			it.Suffixes = append(it.Suffixes, a)
		}
	}

	switch rarity {
	case Magic:
		var pre, suf string
		if len(it.Prefixes) > 0 {
			pre = it.Prefixes[0].Name
		}
		if len(it.Suffixes) > 0 {
			suf = it.Suffixes[0].Name
		}
		it.Name = strings.Join(strings.Fields(pre+" "+base.Name+" "+suf), " ")
	case Rare:
		if len(g.tables.RareNames) > 0 && len(g.tables.RareSuffixes) > 0 {
			it.Name = g.tables.RareNames[g.rng.Intn(len(g.tables.RareNames))] + " " +
				g.tables.RareSuffixes[g.rng.Intn(len(g.tables.RareSuffixes))]
		}
	}
	return it
}

func (g *Generator) unique() *Item {
	u := g.tables.Uniques[g.rng.Intn(len(g.tables.Uniques))]
	return &Item{
		ID:        g.id(),
		Name:      u.Name,
		BaseName:  u.BaseName,
		Slot:      u.Slot,
		Rarity:    Unique,
		LevelReq:  1,
		Modifiers: append([]content.Modifier(nil), u.Modifiers...),
		Effect:    u.Effect,
	}
}

// rollAffix draws a template allowed on slot whose stat is unused, then a
// tier and a value. It gives up after maxAffixAttempts.
func (g *Generator) rollAffix(pool []content.AffixTemplate, slot content.Slot, used map[content.Stat]bool) (Affix, bool) {
	if len(pool) == 0 {
		return Affix{}, false
	}
	for attempt := 0; attempt < maxAffixAttempts; attempt++ {
		tmpl := &pool[g.rng.Intn(len(pool))]
		if !tmpl.Allows(slot) || used[tmpl.Stat] {
			continue
		}

		tier, ok := tmpl.TierByNumber(rollTier(g.rng.Float64()))
		if !ok {
			if len(tmpl.Tiers) == 0 {
				continue
			}
			tier = tmpl.Tiers[len(tmpl.Tiers)-1]
		}

		val := tier.Min + g.rng.Float64()*(tier.Max-tier.Min)
		fractional := tmpl.Percent || tmpl.Stat == content.StatSpeed
		if fractional {
			val = math.Round(val*100) / 100
		} else {
			val = math.Floor(val)
			if val <= 0 && tier.Min > 0 {
				continue
			}
		}

		used[tmpl.Stat] = true
		return Affix{
			Name: tier.Name,
			Tier: tier.Tier,
			Modifiers: []content.Modifier{{
				Stat:    tmpl.Stat,
				Value:   val,
				Percent: tmpl.Percent,
				Text:    tmpl.Text,
			}},
		}, true
	}
	return Affix{}, false
}

// rollTier maps a uniform roll to a tier: 10% T1, 15% T2, 20% T3, 25% T4, 30% T5.
func rollTier(roll float64) int {
	switch {
	case roll > 0.90:
		return 1
	case roll > 0.75:
		return 2
	case roll > 0.55:
		return 3
	case roll > 0.30:
		return 4
	default:
		return 5
	}
}

func (g *Generator) id() int {
	g.nextID++
	return g.nextID
}
