package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-survivors/internal/games/survivors/loot"
)

var (
	ErrNoSkillPoints = errors.New("no skill points")
	ErrUnknownSkill  = errors.New("unknown skill")
	ErrNotOwned      = errors.New("skill not owned")
	ErrUnknownNode   = errors.New("unknown node")
	ErrNodeCapped    = errors.New("node at max points")
	ErrPrerequisite  = errors.New("prerequisite not met")
	ErrNoChoice      = errors.New("no pending choice")
	ErrInvalidChoice = errors.New("skill not offered")
	ErrInventoryFull = errors.New("inventory full")
	ErrEmptySlot     = errors.New("slot empty")
	ErrNoItem        = errors.New("no item at index")
)

// collectPickups pulls gems in, consumes the ones that reach the player and
// moves nearby ground items into the inventory.
func (w *World) collectPickups() {
	lc := w.cfg.Leveling
	gems := w.gems[:0]
	for _, g := range w.gems {
		d := g.Pos.Dist(w.player.Pos)
		if d < lc.GemSnap {
			w.progress.XP += g.XP
			continue
		}
		if d < w.stats.PickupRange {
			g.Pos = g.Pos.Lerp(w.player.Pos, lc.GemPull)
		}
		gems = append(gems, g)
	}
	w.gems = gems

	items := w.worldItems[:0]
	for _, wi := range w.worldItems {
		if wi.Pos.Dist(w.player.Pos) < w.cfg.Loot.PickupRadius && w.inventory.Add(wi.Item) {
			w.emit(ItemPickedUp{Item: wi.Item.Clone()})
			continue
		}
		items = append(items, wi)
	}
	w.worldItems = items
}

// GrantXP adds experience directly. Level-ups resolve on the next step.
func (w *World) GrantXP(xp float64) {
	if xp > 0 {
		w.progress.XP += xp
	}
}

// checkLevelUp resolves every level the current XP pays for.
func (w *World) checkLevelUp() {
	lc := w.cfg.Leveling
	for w.progress.XPToNext > 0 && w.progress.XP >= w.progress.XPToNext {
		w.progress.XP -= w.progress.XPToNext
		w.progress.Level++
		w.progress.XPToNext = math.Floor(w.progress.XPToNext * lc.Scaling)

		if w.isMilestone(w.progress.Level) {
			if choices := w.skillChoices(); len(choices) > 0 {
				w.pending = append(w.pending, choices)
				w.emit(LevelUp{Level: w.progress.Level, Choices: append([]string(nil), choices...)})
				continue
			}
		}
		w.progress.SkillPoints++
		w.emit(SkillPointGranted{Level: w.progress.Level})
	}
}

func (w *World) isMilestone(level int) bool {
	for _, m := range w.cfg.Leveling.Milestones {
		if m == level {
			return true
		}
	}
	return false
}

// skillChoices draws unowned skills first, then pads with rank-ups for
// owned skills below max rank.
func (w *World) skillChoices() []string {
	var fresh, rankUps []string
	for i := range w.tables.Skills {
		t := &w.tables.Skills[i]
		s := w.skill(t.ID)
		switch {
		case s == nil:
			fresh = append(fresh, t.ID)
		case !s.Mastered():
			rankUps = append(rankUps, t.ID)
		}
	}
	w.shuffle(fresh)
	w.shuffle(rankUps)
	n := w.cfg.Leveling.ChoiceCount
	out := fresh
	if len(out) > n {
		out = out[:n]
	}
	for _, id := range rankUps {
		if len(out) >= n {
			break
		}
		out = append(out, id)
	}
	return out
}

func (w *World) shuffle(ids []string) {
	for i := len(ids) - 1; i > 0; i-- {
		j := w.rng.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// ChooseSkill resolves the oldest pending choice. An owned skill ranks up,
// a new one is learned. Either way the player is fully healed.
func (w *World) ChooseSkill(id string) error {
	if len(w.pending) == 0 {
		return ErrNoChoice
	}
	offered := false
	for _, c := range w.pending[0] {
		if c == id {
			offered = true
			break
		}
	}
	if !offered {
		return fmt.Errorf("choose %s: %w", id, ErrInvalidChoice)
	}
	t, ok := w.tables.Skill(id)
	if !ok {
		return fmt.Errorf("choose %s: %w", id, ErrUnknownSkill)
	}
	if s := w.skill(id); s != nil {
		s.Rank = min(s.Template.MaxRank, s.Rank+1)
	} else {
		w.learn(t)
	}
	w.pending = w.pending[1:]
	w.stats.HP = w.stats.MaxHP
	return nil
}

// AllocatePoint spends a skill point on a tree node.
func (w *World) AllocatePoint(skillID, nodeID string) error {
	if w.progress.SkillPoints <= 0 {
		return ErrNoSkillPoints
	}
	s := w.skill(skillID)
	if s == nil {
		if _, ok := w.tables.Skill(skillID); ok {
			return fmt.Errorf("allocate %s: %w", skillID, ErrNotOwned)
		}
		return fmt.Errorf("allocate %s: %w", skillID, ErrUnknownSkill)
	}
	node, ok := s.Template.Node(nodeID)
	if !ok {
		return fmt.Errorf("allocate %s/%s: %w", skillID, nodeID, ErrUnknownNode)
	}
	if s.Points[node.ID] >= node.MaxPoints {
		return fmt.Errorf("allocate %s/%s: %w", skillID, nodeID, ErrNodeCapped)
	}
	for _, pre := range node.Prerequisites {
		if s.Points[pre] == 0 {
			return fmt.Errorf("allocate %s/%s: needs %s: %w", skillID, nodeID, pre, ErrPrerequisite)
		}
	}
	s.Points[node.ID]++
	s.Rank = min(s.Template.MaxRank, s.Rank+1)
	w.progress.SkillPoints--
	return nil
}

// recomputeStats re-derives player stats after an equipment change.
func (w *World) recomputeStats() {
	w.stats = loot.Aggregate(w.base, w.equipment.Items(), w.stats.HP)
}

// Equip moves inventory item i into its slot. A displaced item goes back
// into the inventory.
func (w *World) Equip(i int) error {
	it, ok := w.inventory.Take(i)
	if !ok {
		return fmt.Errorf("equip %d: %w", i, ErrNoItem)
	}
	if _, old := w.equipment.Equip(it); old != nil {
		w.inventory.Add(old)
	}
	w.recomputeStats()
	return nil
}

// Unequip moves the item in slot back into the inventory.
func (w *World) Unequip(slot loot.EquipSlot) error {
	if slot < 0 || int(slot) >= len(w.equipment) || w.equipment[slot] == nil {
		return fmt.Errorf("unequip %s: %w", slot, ErrEmptySlot)
	}
	if w.inventory.Full() {
		return fmt.Errorf("unequip %s: %w", slot, ErrInventoryFull)
	}
	w.inventory.Add(w.equipment.Unequip(slot))
	w.recomputeStats()
	return nil
}

// Discard destroys inventory item i.
func (w *World) Discard(i int) error {
	if _, ok := w.inventory.Take(i); !ok {
		return fmt.Errorf("discard %d: %w", i, ErrNoItem)
	}
	return nil
}

// SortInventory orders the inventory by rarity.
func (w *World) SortInventory() {
	w.inventory.SortByRarity()
}
