package survivors

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/sim"
)

// codexTab is a page of the read-only content reference.
type codexTab int

const (
	codexSkills codexTab = iota
	codexEnemies
	codexAffixes
	codexTabCount
)

func (t codexTab) String() string {
	switch t {
	case codexEnemies:
		return "Enemies"
	case codexAffixes:
		return "Monster affixes"
	}
	return "Skills"
}

// seconds formats a frame count.
func seconds(frames float64) string {
	return fmt.Sprintf("%.2fs", frames/sim.FPS)
}

// describeStats lists the non-zero fields of st. With signed set every
// value carries its sign, as rank and node deltas do.
func describeStats(st content.SkillStats, kind content.SkillKind, signed bool) string {
	num := func(v float64) string {
		if signed && v > 0 {
			return fmt.Sprintf("+%g", v)
		}
		return fmt.Sprintf("%g", v)
	}
	secs := func(v float64) string {
		if signed && v > 0 {
			return "+" + seconds(v)
		}
		return seconds(v)
	}
	pct := func(v float64) string {
		if signed && v > 0 {
			return fmt.Sprintf("+%.0f%%", v*100)
		}
		return fmt.Sprintf("%.0f%%", v*100)
	}

	var parts []string
	add := func(name, v string) { parts = append(parts, name+" "+v) }
	if st.Damage != 0 {
		add("damage", num(st.Damage))
	}
	switch {
	case kind == content.KindKinetic && !signed:
		add("cooldown", "movement")
	case st.Cooldown != 0:
		add("cooldown", secs(st.Cooldown))
	}
	if st.ProjectileCount != 0 {
		add("projectiles", num(st.ProjectileCount))
	}
	if st.Duration != 0 {
		add("duration", secs(st.Duration))
	}
	if st.Range != 0 {
		add("range", num(st.Range))
	}
	if st.Area != 0 {
		add("area", num(st.Area))
	}
	if st.ProjectileSpeed != 0 {
		add("speed", num(st.ProjectileSpeed))
	}
	if st.CritChance != 0 {
		add("crit", pct(st.CritChance))
	}
	if st.ChargeRate != 0 {
		add("charge", num(st.ChargeRate))
	}
	return strings.Join(parts, "  ")
}

func codexLines(t *content.Tables, tab codexTab) []string {
	var lines []string
	switch tab {
	case codexSkills:
		for _, s := range t.Skills {
			lines = append(lines,
				fmt.Sprintf("%s  (%s, %s, max rank %d)", s.Name, s.Kind, s.Element, s.MaxRank),
				"  "+s.Description,
				"  base      "+describeStats(s.Base, s.Kind, false),
			)
			if per := describeStats(s.PerRank, s.Kind, true); per != "" {
				lines = append(lines, "  per rank  "+per)
			}
			var nodes []string
			for _, n := range s.Tree {
				nodes = append(nodes, fmt.Sprintf("%s %d", n.Name, n.MaxPoints))
			}
			if len(nodes) > 0 {
				lines = append(lines, "  tree      "+strings.Join(nodes, ", "))
			}
			lines = append(lines, "")
		}
	case codexEnemies:
		lines = append(lines, fmt.Sprintf("%-18s %6s %6s %6s %6s", "", "hp", "speed", "damage", "level"))
		for _, e := range t.Enemies {
			if e.Role != content.RoleBasic {
				continue
			}
			lines = append(lines, fmt.Sprintf("%-18s %6g %6g %6g %6d", e.Name, e.HP, e.Speed, e.Damage, max(e.MinLevel, 1)))
		}
	case codexAffixes:
		for _, a := range t.MonsterAffixes {
			var mods []string
			for _, m := range []struct {
				name string
				v    float64
			}{{"hp", a.HP}, {"damage", a.Damage}, {"speed", a.Speed}, {"size", a.Size}} {
				if m.v != 0 && m.v != 1 {
					mods = append(mods, fmt.Sprintf("%s x%g", m.name, m.v))
				}
			}
			if a.Regen > 0 {
				mods = append(mods, fmt.Sprintf("regen %.0f%%", a.Regen*100))
			}
			lines = append(lines, fmt.Sprintf("%-14s %s", a.Name, strings.Join(mods, "  ")))
		}
	}
	return strings.Split(strings.TrimRight(strings.Join(lines, "\n"), "\n"), "\n")
}

// codexRows is how many body lines fit on a screen of height h.
func codexRows(h int) int {
	return max(h-8, 1)
}

func (g *Game) handleCodex(pressed func(core.Action) bool) {
	switch {
	case pressed(core.ActionLeft):
		g.codexTab = (g.codexTab + codexTabCount - 1) % codexTabCount
		g.codexScroll = 0
	case pressed(core.ActionRight):
		g.codexTab = (g.codexTab + 1) % codexTabCount
		g.codexScroll = 0
	case pressed(core.ActionUp):
		g.codexScroll = max(0, g.codexScroll-1)
	case pressed(core.ActionDown):
		last := len(codexLines(g.tables, g.codexTab)) - codexRows(g.runtime.ScreenH)
		g.codexScroll = min(g.codexScroll+1, max(last, 0))
	}
}

func (g *Game) drawCodex(dst *core.Screen) {
	var tabs []string
	for t := codexTab(0); t < codexTabCount; t++ {
		if t == g.codexTab {
			tabs = append(tabs, "["+t.String()+"]")
		} else {
			tabs = append(tabs, t.String())
		}
	}

	body := codexLines(g.tables, g.codexTab)
	visible := codexRows(dst.Height())
	start := min(g.codexScroll, max(0, len(body)-visible))
	end := min(start+visible, len(body))

	lines := []string{strings.Join(tabs, "  "), ""}
	lines = append(lines, body[start:end]...)
	lines = append(lines, "", fmt.Sprintf("←/→ page  ↑/↓ scroll  %d/%d  c close", end, len(body)))
	drawCentered(dst, lines, core.ColorBrightCyan)
}
