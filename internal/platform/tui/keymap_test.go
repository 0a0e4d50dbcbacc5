package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"w", core.ActionUp, false},
		{"a", core.ActionLeft, false},
		{"s", core.ActionDown, false},
		{"d", core.ActionRight, false},
		{"i", core.ActionInventory, false},
		{"t", core.ActionSkillTree, false},
		{"2", core.ActionChoice2, false},
		{"x", core.ActionDiscard, false},
		{"o", core.ActionSort, false},
		{"m", core.ActionSettings, false},
		{"c", core.ActionCodex, false},
		{"p", core.ActionPause, false},
		{"q", core.ActionQuit, true},
		{"z", core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, quit := km.MapKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)})
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.key, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func heldTicks(h *HeldInput, a core.Action, limit int) int {
	n := 0
	for i := 0; i < limit && h.Frame().Has(a); i++ {
		n++
		h.Advance()
	}
	return n
}

func TestHeldInputInitialHold(t *testing.T) {
	h := NewHeldInput(10, 3)
	h.Press(core.ActionLeft)

	if got := heldTicks(h, core.ActionLeft, 100); got != 10 {
		t.Errorf("held for %d ticks, expected 10", got)
	}
}

func TestHeldInputRepeatExtends(t *testing.T) {
	h := NewHeldInput(10, 3)
	h.Press(core.ActionUp)
	for i := 0; i < 9; i++ {
		h.Advance()
	}
	// One tick left; an auto-repeat tops it up to the repeat hold.
	h.Press(core.ActionUp)
	if got := heldTicks(h, core.ActionUp, 100); got != 3 {
		t.Errorf("held for %d ticks after repeat, expected 3", got)
	}
}

func TestHeldInputOppositeReleases(t *testing.T) {
	h := NewHeldInput(10, 3)
	h.Press(core.ActionLeft)
	h.Press(core.ActionRight)

	f := h.Frame()
	if f.Has(core.ActionLeft) || !f.Has(core.ActionRight) {
		t.Errorf("frame = %v, expected only Right", f.Actions)
	}
	if v := f.Intent(); v.X != 1 || v.Y != 0 {
		t.Errorf("intent = %+v", v)
	}
}

func TestHeldInputDiagonal(t *testing.T) {
	h := NewHeldInput(10, 3)
	h.Press(core.ActionUp)
	h.Press(core.ActionRight)

	v := h.Frame().Intent()
	if v.X <= 0 || v.Y >= 0 || v.Len() < 0.999 || v.Len() > 1.001 {
		t.Errorf("diagonal intent = %+v, expected unit up-right", v)
	}
}

func TestHeldInputOneShotActions(t *testing.T) {
	h := NewHeldInput(10, 3)
	h.Press(core.ActionConfirm)

	if !h.Frame().Has(core.ActionConfirm) {
		t.Fatal("confirm missing from its frame")
	}
	h.Advance()
	if h.Frame().Has(core.ActionConfirm) {
		t.Error("confirm should last one frame")
	}
}

func TestHeldInputReset(t *testing.T) {
	h := NewHeldInput(10, 3)
	h.Press(core.ActionDown)
	h.Press(core.ActionPause)
	h.Reset()

	if len(h.Frame().Actions) != 0 {
		t.Errorf("frame after Reset = %v", h.Frame().Actions)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionScoreboard {
		t.Errorf("tab = %v", got)
	}
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")}); got != MenuActionRuns {
		t.Errorf("h = %v", got)
	}
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}); got != MenuActionSelect {
		t.Errorf("enter = %v", got)
	}
}
