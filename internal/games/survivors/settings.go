package survivors

import (
	"fmt"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

// displayOptions are player toggles that only change how the arena is
// drawn. They survive restarts. The zero value shows everything.
type displayOptions struct {
	hideNumbers   bool
	hideReactions bool
	noDim         bool
}

// setting is one row of the settings panel; off points at the flag that
// switches the feature off.
type setting struct {
	label string
	off   func(*displayOptions) *bool
}

var settingRows = []setting{
	{"Damage numbers", func(o *displayOptions) *bool { return &o.hideNumbers }},
	{"Status labels", func(o *displayOptions) *bool { return &o.hideReactions }},
	{"Arena dimming", func(o *displayOptions) *bool { return &o.noDim }},
}

func (s setting) enabled(o *displayOptions) bool {
	return !*s.off(o)
}

func (s setting) toggle(o *displayOptions) {
	v := s.off(o)
	*v = !*v
}

func (g *Game) handleSettings(pressed func(core.Action) bool) {
	n := len(settingRows)
	switch {
	case pressed(core.ActionUp):
		g.settingCursor = (g.settingCursor + n - 1) % n
	case pressed(core.ActionDown):
		g.settingCursor = (g.settingCursor + 1) % n
	case pressed(core.ActionConfirm), pressed(core.ActionLeft), pressed(core.ActionRight):
		row := settingRows[core.Clamp(g.settingCursor, 0, n-1)]
		row.toggle(&g.display)
		g.setStatus(row.label + " " + onOff(row.enabled(&g.display)))
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (g *Game) drawSettings(dst *core.Screen) {
	lines := []string{"Settings", ""}
	for i, row := range settingRows {
		cursor := "  "
		if i == g.settingCursor {
			cursor = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-16s %s", cursor, row.label, onOff(row.enabled(&g.display))))
	}

	difficulty := g.runtime.Difficulty
	if difficulty == "" {
		difficulty = "default"
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Difficulty  %s", difficulty),
		fmt.Sprintf("Seed        %d", g.runtime.Seed),
		"",
		"↑/↓ select  enter toggle  m close",
	)
	drawCentered(dst, lines, core.ColorBrightWhite)
}
