package core

import "math"

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow
	ActionDown             // S, Down arrow
	ActionLeft             // A, Left arrow
	ActionRight            // D, Right arrow
	ActionConfirm          // Enter, Space
	ActionBack             // Escape
	ActionRestart          // R
	ActionQuit             // Q, Ctrl+C
	ActionPause            // P
	ActionInventory        // I
	ActionSkillTree        // T
	ActionChoice1          // 1
	ActionChoice2          // 2
	ActionChoice3          // 3
	ActionDiscard          // X
	ActionSort             // O
	ActionSettings         // M
	ActionCodex            // C
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
	ActionInventory: "Inventory",
	ActionSkillTree: "SkillTree",
	ActionChoice1:   "Choice1",
	ActionChoice2:   "Choice2",
	ActionChoice3:   "Choice3",
	ActionDiscard:   "Discard",
	ActionSort:      "Sort",
	ActionSettings:  "Settings",
	ActionCodex:     "Codex",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame is the input state for one simulation tick.
// Movement actions are held states; everything else is an edge trigger.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Intent returns the normalized movement vector for the held direction keys.
// Opposing keys cancel out. Diagonals have unit length.
func (f InputFrame) Intent() Vec2 {
	var v Vec2
	if f.Has(ActionLeft) {
		v.X--
	}
	if f.Has(ActionRight) {
		v.X++
	}
	if f.Has(ActionUp) {
		v.Y--
	}
	if f.Has(ActionDown) {
		v.Y++
	}
	if v.IsZero() {
		return v
	}
	return v.Scale(1 / math.Hypot(v.X, v.Y))
}
