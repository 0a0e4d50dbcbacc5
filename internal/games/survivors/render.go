package survivors

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/loot"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/sim"
)

// World pixels per terminal cell. Cells are roughly twice as tall as wide.
const (
	cellW = 16.0
	cellH = 32.0
)

// Rows reserved above and below the arena.
const (
	hudRows    = 2
	footerRows = 1
)

const (
	PlayerChar     = '@'
	GemChar        = '◆'
	ItemChar       = '?'
	BoltChar       = '•'
	OrbitChar      = '✦'
	EnemyShotChar  = '*'
	BeamChar       = '═'
	LightningChar  = '≈'
	CageChar       = '#'
	ExplosionChar  = 'o'
	SlashChar      = '~'
	DeathPoofChar  = '°'
	ArenaWallColor = core.ColorBrightMagenta
)

// camera maps world positions onto the arena rows of the screen.
type camera struct {
	center core.Vec2
	w, h   int
	top    int
}

func newCamera(center core.Vec2, screenW, screenH int) camera {
	return camera{center: center, w: screenW, h: max(screenH-hudRows-footerRows, 1), top: hudRows}
}

func (c camera) cell(p core.Vec2) (int, int, bool) {
	x := int(math.Floor((p.X-c.center.X)/cellW)) + c.w/2
	y := int(math.Floor((p.Y-c.center.Y)/cellH)) + c.h/2
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return 0, 0, false
	}
	return x, y + c.top, true
}

func (c camera) plot(dst *core.Screen, p core.Vec2, r rune, col core.Color) {
	if x, y, ok := c.cell(p); ok {
		dst.SetWithColor(x, y, r, col)
	}
}

func (c camera) text(dst *core.Screen, p core.Vec2, s string, col core.Color) {
	if x, y, ok := c.cell(p); ok {
		dst.DrawTextColor(x-len([]rune(s))/2, y, s, col)
	}
}

// line samples the segment at half-cell steps.
func (c camera) line(dst *core.Screen, from, to core.Vec2, r rune, col core.Color) {
	n := int(from.Dist(to)/(cellW/2)) + 1
	for i := 0; i <= n; i++ {
		c.plot(dst, from.Lerp(to, float64(i)/float64(n)), r, col)
	}
}

func (c camera) ring(dst *core.Screen, center core.Vec2, radius float64, r rune, col core.Color) {
	const samples = 24
	for i := 0; i < samples; i++ {
		c.plot(dst, center.Add(core.FromAngle(2*math.Pi*float64(i)/samples).Scale(radius)), r, col)
	}
}

// Render draws the last snapshot into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	s := g.snap
	cam := newCamera(s.Player.Pos, dst.Width(), dst.Height())

	if s.Boss != nil {
		drawArena(dst, cam, s.Boss.Arena)
	}
	for _, gem := range s.Gems {
		cam.plot(dst, gem.Pos, GemChar, gemColor(gem.Tier))
	}
	for _, it := range s.Items {
		cam.plot(dst, it.Pos, ItemChar, rarityColor(it.Item.Rarity))
	}
	dim := drawEffects(dst, cam, s.Effects, g.display)
	for _, e := range s.Enemies {
		cam.plot(dst, e.Pos, enemyGlyph(e), enemyColor(e))
	}
	for _, p := range s.Projectiles {
		cam.plot(dst, p.Pos, projectileGlyph(p), projectileColor(p))
	}

	pc := core.ColorBrightGreen
	if s.Player.Invuln > 0 && (s.Frame/4)%2 == 0 {
		pc = core.ColorGreen
	}
	cam.plot(dst, s.Player.Pos, PlayerChar, pc)

	for _, n := range s.Numbers {
		if (n.Label == "" && g.display.hideNumbers) || (n.Label != "" && g.display.hideReactions) {
			continue
		}
		txt, col := fmt.Sprintf("%.0f", n.Value), core.ColorWhite
		if n.Crit {
			txt, col = txt+"!", core.ColorBrightYellow
		}
		if n.Label != "" {
			txt, col = n.Label, core.ColorOrange
		}
		cam.text(dst, n.Pos, txt, col)
	}
	if dim && !g.display.noDim {
		dimArena(dst, cam)
	}

	g.drawHUD(dst, s)
	g.drawFooter(dst, s)

	switch {
	case s.GameOver:
		drawGameOver(dst, s)
	case len(s.PendingChoice) > 0:
		g.drawChoice(dst, s)
	case g.panel == panelInventory:
		g.drawInventory(dst, s)
	case g.panel == panelSkills:
		g.drawSkillTree(dst, s)
	case g.panel == panelSettings:
		g.drawSettings(dst)
	case g.panel == panelCodex:
		g.drawCodex(dst)
	case g.paused:
		drawCentered(dst, []string{"PAUSED", "", "p resume  q quit"}, core.ColorBrightWhite)
	}
}

func drawArena(dst *core.Screen, cam camera, b core.Bounds) {
	corners := []core.Vec2{{X: b.MinX, Y: b.MinY}, {X: b.MaxX, Y: b.MinY}, {X: b.MaxX, Y: b.MaxY}, {X: b.MinX, Y: b.MaxY}}
	for i := range corners {
		cam.line(dst, corners[i], corners[(i+1)%len(corners)], '·', ArenaWallColor)
	}
}

// drawEffects draws every effect and reports whether the arena should be dimmed.
func drawEffects(dst *core.Screen, cam camera, effects []sim.Effect, opts displayOptions) bool {
	dim := false
	for _, fx := range effects {
		switch k := fx.Kind.(type) {
		case sim.HitFlash:
			cam.plot(dst, k.Pos, '*', core.ColorBrightWhite)
		case sim.Explosion:
			cam.ring(dst, k.Pos, k.Radius*(0.5+0.5*fx.Fraction()), ExplosionChar, core.ColorOrange)
		case sim.Lightning:
			cam.line(dst, k.From, k.To, LightningChar, core.ColorBrightYellow)
		case sim.Beam:
			cam.line(dst, k.From, k.To, BeamChar, core.ColorMagenta)
		case sim.Slash:
			for i := -4; i <= 4; i++ {
				a := k.Angle + float64(i)*math.Pi/12
				cam.plot(dst, k.Pos.Add(core.FromAngle(a).Scale(k.Range*0.8)), SlashChar, core.ColorBrightWhite)
			}
		case sim.DeathPoof:
			cam.plot(dst, k.Pos, DeathPoofChar, core.ColorGray)
		case sim.ScreenDim:
			dim = true
		case sim.Cage:
			for i := range k.Points {
				cam.line(dst, k.Points[i], k.Points[(i+1)%len(k.Points)], CageChar, core.ColorBrightMagenta)
			}
		case sim.StatusIcon:
			if opts.hideReactions {
				continue
			}
			cam.plot(dst, k.Pos.Add(core.V(0, -cellH)), statusRune(k.Status), core.ColorBrightCyan)
		case sim.ReactionLabel:
			if opts.hideReactions {
				continue
			}
			cam.text(dst, k.Pos.Add(core.V(0, -cellH)), k.Label, core.ColorBrightMagenta)
		}
	}
	return dim
}

func dimArena(dst *core.Screen, cam camera) {
	for y := cam.top; y < cam.top+cam.h; y++ {
		for x := 0; x < cam.w; x++ {
			c := dst.GetCell(x, y)
			if c.Rune != PlayerChar {
				dst.SetWithColor(x, y, c.Rune, core.ColorGray)
			}
		}
	}
}

func statusRune(status string) rune {
	switch status {
	case "frozen":
		return '❄'
	case "shocked":
		return '⚡'
	case "bleeding":
		return '♦'
	}
	return '!'
}

func enemyGlyph(e sim.Enemy) rune {
	for _, r := range e.Glyph {
		return r
	}
	return 'e'
}

func enemyColor(e sim.Enemy) core.Color {
	switch {
	case e.HitFlash > 0:
		return core.ColorBrightWhite
	case e.Status.Frozen > 0:
		return core.ColorBrightCyan
	case e.Status.Shocked > 0:
		return core.ColorBrightYellow
	case e.Status.Bleeding():
		return core.ColorCrimson
	}
	switch e.Role {
	case content.RoleBoss:
		return core.ColorBrightMagenta
	case content.RolePrism:
		return core.ColorMagenta
	case content.RoleDoppelganger:
		return core.ColorBrightBlue
	}
	if e.Elite {
		return core.ColorBrightRed
	}
	return core.ColorYellow
}

func projectileGlyph(p sim.Projectile) rune {
	switch {
	case p.Enemy:
		return EnemyShotChar
	case p.Orbit:
		return OrbitChar
	}
	return BoltChar
}

func projectileColor(p sim.Projectile) core.Color {
	if p.Enemy {
		return core.ColorBrightRed
	}
	return elementColor(p.Element)
}

func elementColor(e content.Element) core.Color {
	switch e {
	case content.Cold:
		return core.ColorBrightCyan
	case content.Lightning:
		return core.ColorBrightYellow
	}
	return core.ColorBrightWhite
}

func gemColor(t sim.GemTier) core.Color {
	switch t {
	case sim.GemGold:
		return core.ColorGold
	case sim.GemPurple:
		return core.ColorPurple
	}
	return core.ColorBlue
}

func rarityColor(r loot.Rarity) core.Color {
	switch r {
	case loot.Magic:
		return core.ColorBrightBlue
	case loot.Rare:
		return core.ColorBrightYellow
	case loot.Unique:
		return core.ColorGold
	}
	return core.ColorWhite
}

func clock(frames int) string {
	secs := frames / sim.FPS
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (g *Game) drawHUD(dst *core.Screen, s sim.Snapshot) {
	x := 0
	dst.DrawTextColor(x, 0, "HP ", core.ColorWhite)
	x += 3
	dst.DrawBar(x, 0, 16, s.Stats.HP/math.Max(s.Stats.MaxHP, 1), core.ColorRed, core.ColorGray)
	x += 17
	hp := fmt.Sprintf("%.0f/%.0f  Lv %d ", s.Stats.HP, s.Stats.MaxHP, s.Progress.Level)
	dst.DrawTextColor(x, 0, hp, core.ColorWhite)
	x += len(hp)
	dst.DrawBar(x, 0, 12, s.Progress.XP/math.Max(s.Progress.XPToNext, 1), core.ColorBrightBlue, core.ColorGray)
	x += 13
	dst.DrawTextColor(x, 0, fmt.Sprintf("Kills %d  %s  Score %d", s.Progress.KillCount, clock(s.Frame), s.Score), core.ColorWhite)

	var parts []string
	kinetic := false
	for _, sk := range s.Skills {
		parts = append(parts, fmt.Sprintf("%s %d", sk.Name, sk.Rank))
		kinetic = kinetic || sk.Kind == content.KindKinetic
	}
	line := strings.Join(parts, " · ")
	if s.Progress.SkillPoints > 0 {
		line += fmt.Sprintf("  SP %d", s.Progress.SkillPoints)
	}
	dst.DrawTextColor(0, 1, line, core.ColorCyan)
	x = len([]rune(line)) + 2

	if kinetic && s.MaxCharge > 0 {
		dst.DrawTextColor(x, 1, "Charge ", core.ColorBrightYellow)
		dst.DrawBar(x+7, 1, 10, s.KineticCharge/s.MaxCharge, core.ColorBrightYellow, core.ColorGray)
		x += 19
	}
	if s.Boss != nil {
		label := fmt.Sprintf("%s P%d ", s.Boss.Name, s.Boss.Phase)
		bx := max(x, dst.Width()-len([]rune(label))-20)
		dst.DrawTextColor(bx, 1, label, core.ColorBrightMagenta)
		dst.DrawBar(bx+len([]rune(label)), 1, 20, s.Boss.HP/math.Max(s.Boss.MaxHP, 1), core.ColorMagenta, core.ColorGray)
	}
}

func (g *Game) drawFooter(dst *core.Screen, s sim.Snapshot) {
	y := dst.Height() - 1
	if g.status != "" {
		dst.DrawTextColor(0, y, g.status, core.ColorBrightYellow)
		return
	}
	dst.DrawTextColor(0, y, "wasd move  i inventory  t skills  c codex  m settings  p pause  q quit", core.ColorGray)
}

// drawCentered draws lines inside a box in the middle of the screen.
func drawCentered(dst *core.Screen, lines []string, c core.Color) core.Rect {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w = min(w+4, dst.Width())
	h := min(len(lines)+2, dst.Height())
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, c)
	for i, l := range lines {
		dst.DrawTextColor(r.X+2, r.Y+1+i, l, c)
	}
	return r
}

func drawGameOver(dst *core.Screen, s sim.Snapshot) {
	drawCentered(dst, []string{
		"GAME OVER",
		"",
		fmt.Sprintf("Score     %d", s.Score),
		fmt.Sprintf("Level     %d", s.Progress.Level),
		fmt.Sprintf("Kills     %d", s.Progress.KillCount),
		fmt.Sprintf("Bosses    %d", s.Progress.BossKills),
		fmt.Sprintf("Survived  %s", clock(s.Frame)),
		"",
		"r restart  q quit",
	}, core.ColorBrightRed)
}

func (g *Game) drawChoice(dst *core.Screen, s sim.Snapshot) {
	lines := []string{fmt.Sprintf("Level %d - choose a skill", s.Progress.Level), ""}
	for i, id := range s.PendingChoice {
		name, desc := id, ""
		if t, ok := g.tables.Skill(id); ok {
			name, desc = t.Name, t.Description
		}
		tag := "new"
		for _, sk := range s.Skills {
			if sk.ID == id {
				tag = fmt.Sprintf("rank %d→%d", sk.Rank, sk.Rank+1)
			}
		}
		cursor := "  "
		if i == g.choice {
			cursor = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%d) %s (%s)", cursor, i+1, name, tag))
		if desc != "" {
			lines = append(lines, "      "+desc)
		}
	}
	lines = append(lines, "", "1-3 or enter to choose")
	drawCentered(dst, lines, core.ColorBrightCyan)
}

func (g *Game) drawInventory(dst *core.Screen, s sim.Snapshot) {
	lines := []string{fmt.Sprintf("Inventory %d/%d", len(s.Inventory), s.Capacity)}
	colors := []core.Color{core.ColorBrightWhite}
	row := 0
	add := func(text string, c core.Color) {
		cursor := "  "
		if row == g.invCursor {
			cursor = "> "
		}
		lines = append(lines, cursor+text)
		colors = append(colors, c)
		row++
	}

	for _, it := range s.Inventory {
		add(fmt.Sprintf("%-26s %s", it.Name, it.Slot), rarityColor(it.Rarity))
	}
	lines, colors = append(lines, "Equipped"), append(colors, core.ColorBrightWhite)
	for _, slot := range loot.AllEquipSlots() {
		if it := s.Equipment[slot]; it != nil {
			add(fmt.Sprintf("%-7s %s", slot, it.Name), rarityColor(it.Rarity))
		} else {
			add(fmt.Sprintf("%-7s -", slot), core.ColorGray)
		}
	}

	if it := g.selectedItem(s); it != nil {
		lines, colors = append(lines, ""), append(colors, core.ColorDefault)
		for _, m := range it.AllModifiers() {
			lines, colors = append(lines, "  "+loot.DescribeModifier(m)), append(colors, core.ColorCyan)
		}
		if it.Effect != "" {
			lines, colors = append(lines, "  "+it.Effect), append(colors, core.ColorOrange)
		}
	}
	lines, colors = append(lines, "", "enter equip  x discard  o sort  i close"), append(colors, core.ColorDefault, core.ColorGray)

	r := drawCentered(dst, lines, core.ColorWhite)
	for i, c := range colors {
		y := r.Y + 1 + i
		for x := r.X + 1; x < r.Right()-1; x++ {
			if cell := dst.GetCell(x, y); cell.Rune != ' ' {
				dst.SetWithColor(x, y, cell.Rune, c)
			}
		}
	}
}

func (g *Game) selectedItem(s sim.Snapshot) *loot.Item {
	if g.invCursor < len(s.Inventory) {
		return s.Inventory[g.invCursor]
	}
	slot := g.invCursor - len(s.Inventory)
	if slot >= 0 && slot < len(s.Equipment) {
		return s.Equipment[slot]
	}
	return nil
}

func (g *Game) drawSkillTree(dst *core.Screen, s sim.Snapshot) {
	if len(s.Skills) == 0 {
		drawCentered(dst, []string{"No skills yet"}, core.ColorWhite)
		return
	}
	cur := core.Clamp(g.skillCursor, 0, len(s.Skills)-1)
	var tabs []string
	for i, sk := range s.Skills {
		if i == cur {
			tabs = append(tabs, "["+sk.Name+"]")
		} else {
			tabs = append(tabs, sk.Name)
		}
	}
	sk := s.Skills[cur]
	lines := []string{
		strings.Join(tabs, "  "),
		fmt.Sprintf("Rank %d/%d  Skill points %d", sk.Rank, sk.MaxRank, s.Progress.SkillPoints),
		"",
	}
	if t, ok := g.tables.Skill(sk.ID); ok {
		for i, n := range t.Tree {
			cursor := "  "
			if i == g.nodeCursor {
				cursor = "> "
			}
			line := fmt.Sprintf("%s%-18s %d/%d  %s", cursor, n.Name, sk.Points[n.ID], n.MaxPoints, n.Description)
			if len(n.Prerequisites) > 0 {
				line += "  (needs " + strings.Join(n.Prerequisites, ", ") + ")"
			}
			lines = append(lines, line)
		}
	}
	if len(sk.Augments) > 0 {
		lines = append(lines, "", "Augments: "+strings.Join(sk.Augments, ", "))
	}
	lines = append(lines, "", "←/→ skill  ↑/↓ node  enter allocate  t close")
	drawCentered(dst, lines, core.ColorBrightCyan)
}
