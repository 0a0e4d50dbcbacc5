package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

// Terminals report key presses and auto-repeats but never releases, so a
// movement key counts as held for a number of ticks after its last event.
// The first press covers the keyboard's initial repeat delay.
const (
	DefaultInitialHold = 24
	DefaultRepeatHold  = 8
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "enter", " ":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "i":
		return core.ActionInventory, false
	case "t", "tab":
		return core.ActionSkillTree, false
	case "1":
		return core.ActionChoice1, false
	case "2":
		return core.ActionChoice2, false
	case "3":
		return core.ActionChoice3, false
	case "x":
		return core.ActionDiscard, false
	case "o":
		return core.ActionSort, false
	case "m":
		return core.ActionSettings, false
	case "c":
		return core.ActionCodex, false
	}

	return core.ActionNone, false
}

func isMovement(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// HeldInput accumulates key events between ticks. Movement keys stay held
// for a countdown; every other action lasts exactly one frame.
type HeldInput struct {
	initial int
	repeat  int
	held    map[core.Action]int
	pending core.InputFrame
}

// NewHeldInput creates an input accumulator with the given hold lengths in ticks.
func NewHeldInput(initial, repeat int) *HeldInput {
	return &HeldInput{
		initial: max(initial, 1),
		repeat:  max(repeat, 1),
		held:    make(map[core.Action]int),
		pending: core.NewInputFrame(),
	}
}

// Press records a key event for action a. Pressing a direction releases
// its opposite immediately.
func (h *HeldInput) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if !isMovement(a) {
		h.pending.Set(a)
		return
	}
	delete(h.held, opposite(a))
	if h.held[a] > 0 {
		h.held[a] = max(h.held[a], h.repeat)
	} else {
		h.held[a] = h.initial
	}
}

// Frame returns the input for the current tick.
func (h *HeldInput) Frame() core.InputFrame {
	f := h.pending.Clone()
	for a, n := range h.held {
		if n > 0 {
			f.Set(a)
		}
	}
	return f
}

// Advance ends the tick: one-shot actions clear and hold countdowns tick down.
func (h *HeldInput) Advance() {
	h.pending.Clear()
	for a := range h.held {
		h.held[a]--
		if h.held[a] <= 0 {
			delete(h.held, a)
		}
	}
}

// Reset drops every held and pending action.
func (h *HeldInput) Reset() {
	h.pending.Clear()
	clear(h.held)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionRuns
	MenuActionLeft
	MenuActionRight
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "h":
		return MenuActionRuns
	}

	return MenuActionNone
}
