// Package loot rolls items and folds equipped items into player stats.
package loot

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
)

// Rarity is the item quality band.
type Rarity int

const (
	Normal Rarity = iota
	Magic
	Rare
	Unique
)

func (r Rarity) String() string {
	switch r {
	case Normal:
		return "Normal"
	case Magic:
		return "Magic"
	case Rare:
		return "Rare"
	case Unique:
		return "Unique"
	default:
		return "Unknown"
	}
}

// Affix is a rolled prefix or suffix.
type Affix struct {
	Name      string
	Tier      int
	Modifiers []content.Modifier
}

// Item is a generated piece of equipment.
type Item struct {
	ID       int
	Name     string
	BaseName string
	Slot     content.Slot
	Rarity   Rarity
	LevelReq int
	Implicit *content.Modifier
	Prefixes []Affix
	Suffixes []Affix
	// Modifiers and Effect are set on uniques only.
	Modifiers []content.Modifier
	Effect    string
}

// AllModifiers returns the implicit, affix and fixed modifiers of the item.
func (it *Item) AllModifiers() []content.Modifier {
	var mods []content.Modifier
	if it.Implicit != nil {
		mods = append(mods, *it.Implicit)
	}
	for _, a := range it.Prefixes {
		mods = append(mods, a.Modifiers...)
	}
	for _, a := range it.Suffixes {
		mods = append(mods, a.Modifiers...)
	}
	return append(mods, it.Modifiers...)
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	c := *it
	if it.Implicit != nil {
		m := *it.Implicit
		c.Implicit = &m
	}
	c.Prefixes = cloneAffixes(it.Prefixes)
	c.Suffixes = cloneAffixes(it.Suffixes)
	c.Modifiers = append([]content.Modifier(nil), it.Modifiers...)
	return &c
}

func cloneAffixes(in []Affix) []Affix {
	if in == nil {
		return nil
	}
	out := make([]Affix, len(in))
	for i, a := range in {
		out[i] = Affix{Name: a.Name, Tier: a.Tier, Modifiers: append([]content.Modifier(nil), a.Modifiers...)}
	}
	return out
}

// DescribeModifier renders a modifier as tooltip text, e.g. "+12% Increased Attack Speed".
func DescribeModifier(m content.Modifier) string {
	if m.Percent {
		return fmt.Sprintf("%+d%% %s", int(math.Round(m.Value*100)), m.Text)
	}
	if m.Value == math.Trunc(m.Value) {
		return fmt.Sprintf("%+d %s", int(m.Value), m.Text)
	}
	return fmt.Sprintf("%+.2f %s", m.Value, m.Text)
}

// EquipSlot is a position on the paper doll. Rings have two.
type EquipSlot int

const (
	EquipWeapon EquipSlot = iota
	EquipHelm
	EquipBody
	EquipGloves
	EquipBoots
	EquipRing1
	EquipRing2
	numEquipSlots
)

var equipSlotNames = [numEquipSlots]string{"Weapon", "Helm", "Body", "Gloves", "Boots", "Ring 1", "Ring 2"}

func (s EquipSlot) String() string {
	if s < 0 || s >= numEquipSlots {
		return "Unknown"
	}
	return equipSlotNames[s]
}

// AllEquipSlots lists every slot in display order.
func AllEquipSlots() []EquipSlot {
	out := make([]EquipSlot, numEquipSlots)
	for i := range out {
		out[i] = EquipSlot(i)
	}
	return out
}

// Equipment holds the equipped item per slot.
type Equipment [numEquipSlots]*Item

// Equip places it into the matching slot and returns what it displaced.
// A ring fills the first empty ring slot, otherwise replaces Ring 1.
func (e *Equipment) Equip(it *Item) (EquipSlot, *Item) {
	var slot EquipSlot
	switch it.Slot {
	case content.SlotWeapon:
		slot = EquipWeapon
	case content.SlotHelm:
		slot = EquipHelm
	case content.SlotBody:
		slot = EquipBody
	case content.SlotGloves:
		slot = EquipGloves
	case content.SlotBoots:
		slot = EquipBoots
	case content.SlotRing:
		slot = EquipRing1
		if e[EquipRing1] != nil && e[EquipRing2] == nil {
			slot = EquipRing2
		}
	}
	old := e[slot]
	e[slot] = it
	return slot, old
}

// Unequip clears slot and returns the item that was there.
func (e *Equipment) Unequip(slot EquipSlot) *Item {
	if slot < 0 || slot >= numEquipSlots {
		return nil
	}
	old := e[slot]
	e[slot] = nil
	return old
}

// Items returns the equipped items in slot order.
func (e *Equipment) Items() []*Item {
	var out []*Item
	for _, it := range e {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

// Inventory is a bounded bag of unequipped items.
type Inventory struct {
	Items    []*Item
	Capacity int
}

// NewInventory creates an empty inventory.
func NewInventory(capacity int) *Inventory {
	return &Inventory{Capacity: capacity}
}

// Full reports whether no more items fit.
func (inv *Inventory) Full() bool {
	return len(inv.Items) >= inv.Capacity
}

// Add appends it if there is room.
func (inv *Inventory) Add(it *Item) bool {
	if inv.Full() {
		return false
	}
	inv.Items = append(inv.Items, it)
	return true
}

// Take removes and returns the item at index i.
func (inv *Inventory) Take(i int) (*Item, bool) {
	if i < 0 || i >= len(inv.Items) {
		return nil, false
	}
	it := inv.Items[i]
	inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
	return it, true
}

// SortByRarity orders items best rarity first, then by name.
func (inv *Inventory) SortByRarity() {
	sort.SliceStable(inv.Items, func(a, b int) bool {
		if inv.Items[a].Rarity != inv.Items[b].Rarity {
			return inv.Items[a].Rarity > inv.Items[b].Rarity
		}
		return inv.Items[a].Name < inv.Items[b].Name
	})
}
