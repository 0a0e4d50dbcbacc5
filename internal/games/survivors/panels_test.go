package survivors

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/sim"
)

func render(g *Game) string {
	scr := core.NewScreen(80, 24)
	g.Render(scr)
	return scr.String()
}

func TestSettingsPanelFreezesAndToggles(t *testing.T) {
	g := newTestGame(t, 1)
	g.Step(frame())
	before := g.Snapshot().Frame

	press(g, core.ActionSettings)
	if g.panel != panelSettings {
		t.Fatalf("panel = %v, expected settings", g.panel)
	}
	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionRight))
		g.Step(frame())
	}
	if got := g.Snapshot().Frame; got != before {
		t.Fatalf("frame advanced with settings open: %d -> %d", before, got)
	}

	view := render(g)
	if !strings.Contains(view, "Settings") || !strings.Contains(view, "Damage numbers   on") {
		t.Errorf("settings panel missing:\n%s", view)
	}

	// The ten right presses above toggled the first row an even number of times.
	if g.display.hideNumbers {
		t.Fatal("even toggles should leave damage numbers on")
	}
	press(g, core.ActionConfirm)
	if !g.display.hideNumbers || g.status != "Damage numbers off" {
		t.Errorf("after toggle: hideNumbers=%v status=%q", g.display.hideNumbers, g.status)
	}
	press(g, core.ActionDown)
	press(g, core.ActionConfirm)
	if !g.display.hideReactions {
		t.Error("second row should toggle status labels")
	}

	press(g, core.ActionSettings)
	g.Step(frame())
	if g.Snapshot().Frame <= before {
		t.Error("frame should advance after closing settings")
	}

	g.Reset(g.runtime)
	if !g.display.hideNumbers || !g.display.hideReactions {
		t.Error("display options should survive a restart")
	}
}

func TestHiddenDamageNumbersAreNotDrawn(t *testing.T) {
	g := newTestGame(t, 1)
	above := g.snap.Player.Pos.Add(core.V(0, -3*cellH))
	g.snap.Numbers = []sim.DamageNumber{
		{Pos: above, Value: 4321},
		{Pos: above.Add(core.V(0, -2*cellH)), Label: "SHATTER!"},
	}

	if view := render(g); !strings.Contains(view, "4321") || !strings.Contains(view, "SHATTER!") {
		t.Fatalf("numbers missing:\n%s", view)
	}

	g.display.hideNumbers = true
	view := render(g)
	if strings.Contains(view, "4321") {
		t.Error("damage number drawn while hidden")
	}
	if !strings.Contains(view, "SHATTER!") {
		t.Error("reaction labels follow their own toggle")
	}

	g.display.hideReactions = true
	if strings.Contains(render(g), "SHATTER!") {
		t.Error("reaction label drawn while hidden")
	}
}

func TestCodexPagesThroughContent(t *testing.T) {
	g := newTestGame(t, 1)
	g.Step(frame())
	before := g.Snapshot().Frame

	press(g, core.ActionCodex)
	if g.panel != panelCodex {
		t.Fatalf("panel = %v, expected codex", g.panel)
	}
	view := render(g)
	if !strings.Contains(view, "[Skills]") || !strings.Contains(view, "Moon Blade  (") {
		t.Errorf("skills page missing:\n%s", view)
	}

	press(g, core.ActionDown)
	if strings.Contains(render(g), "Moon Blade  (") {
		t.Error("scrolling should move past the first line")
	}
	for i := 0; i < 60; i++ {
		press(g, core.ActionDown)
	}
	if want := len(codexLines(g.tables, codexSkills)) - codexRows(24); g.codexScroll != want {
		t.Errorf("scroll = %d, expected it to stop at %d", g.codexScroll, want)
	}

	press(g, core.ActionRight)
	view = render(g)
	if g.codexScroll != 0 || !strings.Contains(view, "[Enemies]") || !strings.Contains(view, "Golem") {
		t.Errorf("enemies page:\n%s", view)
	}
	if strings.Contains(view, "Valos") {
		t.Error("encounter entities are not listed with regular enemies")
	}

	press(g, core.ActionRight)
	view = render(g)
	if !strings.Contains(view, "Regenerating") || !strings.Contains(view, "regen 5%") ||
		!strings.Contains(view, "damage x1.2  speed x1.3") {
		t.Errorf("affixes page:\n%s", view)
	}
	press(g, core.ActionRight)
	if g.codexTab != codexSkills {
		t.Error("paging right from the last tab should wrap")
	}

	if g.Snapshot().Frame != before {
		t.Error("the codex should freeze the run")
	}
	press(g, core.ActionCodex)
	if g.panel != panelNone {
		t.Error("c should close the codex")
	}
}

func TestDescribeStats(t *testing.T) {
	tables := content.MustDefault()
	cases := []struct {
		skill  string
		perRnk bool
		want   string
	}{
		{"aura", false, "damage 15  cooldown 1.00s  projectiles 2"},
		{"aura", true, "damage +1.5"},
		{"kinetic", false, "damage 60  cooldown movement  range 350  area 40"},
	}
	for _, c := range cases {
		s, ok := tables.Skill(c.skill)
		if !ok {
			t.Fatalf("unknown skill %q", c.skill)
		}
		st := s.Base
		if c.perRnk {
			st = s.PerRank
		}
		if got := describeStats(st, s.Kind, c.perRnk); got != c.want {
			t.Errorf("%s (per rank %v) = %q, expected %q", c.skill, c.perRnk, got, c.want)
		}
	}
}
