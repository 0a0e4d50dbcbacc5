package tui

import (
	"testing"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

func TestPaletteCoversEveryColor(t *testing.T) {
	for c := core.ColorDefault; c.Valid(); c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("color %d has no style", c)
		}
	}
}

func TestRenderScreenKeepsLayout(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorGold)
	s.SetWithColor(3, 0, ' ', core.ColorCrimson)
	s.SetWithColor(5, 1, 'z', core.ColorPurple)

	// Styles collapse to plain text without a color terminal, so the
	// output must match the buffer cell for cell.
	if got, want := RenderScreen(s), s.String(); got != want {
		t.Errorf("RenderScreen =\n%q\nexpected\n%q", got, want)
	}
}
