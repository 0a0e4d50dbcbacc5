package sim

import (
	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/loot"
)

// Event is something the host should react to. The set is closed.
type Event interface {
	isEvent()
}

// LevelUp is emitted when a milestone level queues a skill choice.
type LevelUp struct {
	Level   int
	Choices []string
}

// SkillPointGranted is emitted for every level-up that grants a tree point.
type SkillPointGranted struct {
	Level int
}

// RunEnded is emitted once, on the frame the player dies.
type RunEnded struct {
	Progress Progress
}

// BossAppeared is emitted when the boss encounter starts.
type BossAppeared struct {
	Name  string
	Arena core.Bounds
}

// BossDefeated is emitted when the boss dies.
type BossDefeated struct {
	Name      string
	BossKills int
}

// KineticDischarge is emitted when stored movement charge is released.
type KineticDischarge struct {
	Charge    float64
	MaxCharge float64
	Damage    float64
	Strikes   int
}

// ItemPickedUp is emitted when a ground item moves into the inventory.
type ItemPickedUp struct {
	Item *loot.Item
}

func (LevelUp) isEvent()           {}
func (SkillPointGranted) isEvent() {}
func (RunEnded) isEvent()          {}
func (BossAppeared) isEvent()      {}
func (BossDefeated) isEvent()      {}
func (KineticDischarge) isEvent()  {}
func (ItemPickedUp) isEvent()      {}
