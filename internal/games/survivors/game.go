// Package survivors adapts the survivors simulation to the platform's
// Game interface: input mapping, modal panels, rendering and run reports.
package survivors

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/loot"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/sim"
	"github.com/vovakirdan/tui-survivors/internal/registry"
)

// GameID is the registry identifier.
const GameID = "survivors"

// statusFrames is how long a status line message stays visible.
const statusFrames = 2 * sim.FPS

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

func parsePreset(preset string) config.DifficultyPreset {
	switch preset {
	case "easy":
		return config.DifficultyEasy
	case "normal":
		return config.DifficultyNormal
	case "hard":
		return config.DifficultyHard
	case "fixed":
		return config.DifficultyFixed
	default:
		return ""
	}
}

// panel is the modal window currently covering the arena.
type panel int

const (
	panelNone panel = iota
	panelInventory
	panelSkills
	panelSettings
	panelCodex
)

// Game wraps a sim.World for the platform.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.SurvivorsConfig
	tables  *content.Tables
	world   *sim.World
	snap    sim.Snapshot

	runID  string
	paused bool
	panel  panel
	prev   core.InputFrame

	invCursor     int
	skillCursor   int
	nodeCursor    int
	settingCursor int
	codexTab      codexTab
	codexScroll   int
	choice        int

	display displayOptions

	status    string
	statusTTL int

	summary  core.RunSummary
	finished bool
}

// New creates a new survivors game.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return GameID }
func (g *Game) Title() string { return "Survivors" }

// Reset loads configuration and content and starts a fresh run.
// Unreadable files fall back to the embedded defaults.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg

	sc, err := config.LoadSurvivors(configPath)
	if err != nil {
		log.Warn("using default config", "err", err)
	}
	preset := parsePreset(cfg.Difficulty)
	if preset != "" {
		config.ApplyPreset(&sc, preset)
	}
	g.cfg = sc

	tables, err := loadTables(sc.ContentPath)
	if err != nil {
		log.Warn("using default content", "err", err)
		tables = content.MustDefault()
	}
	g.tables = tables

	g.world = sim.New(sc, tables, core.NewRNG(cfg.Seed))
	g.snap = g.world.Snapshot()
	g.runID = uuid.NewString()
	g.paused = false
	g.panel = panelNone
	g.prev = core.NewInputFrame()
	g.invCursor, g.skillCursor, g.nodeCursor, g.choice = 0, 0, 0, 0
	g.settingCursor, g.codexTab, g.codexScroll = 0, codexSkills, 0
	g.status, g.statusTTL = "", 0
	g.summary = core.RunSummary{}
	g.finished = false

	log.Debug("run started", "run", g.runID, "seed", cfg.Seed, "preset", string(preset))
}

func loadTables(path string) (*content.Tables, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	pressed := func(a core.Action) bool { return in.Has(a) && !g.prev.Has(a) }
	defer func() { g.prev = in.Clone() }()

	if g.world.GameOver() {
		if pressed(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}

	if choices := g.world.PendingChoice(); len(choices) > 0 {
		g.handleChoice(choices, pressed)
	} else {
		g.handleModals(pressed)
	}

	events := g.world.Step(sim.Input{
		Intent:        in.Intent(),
		Paused:        g.paused || g.panel == panelCodex,
		InventoryOpen: g.panel == panelInventory,
		SettingsOpen:  g.panel == panelSettings,
		SkillTreeOpen: g.panel == panelSkills,
	})
	g.handleEvents(events)
	g.snap = g.world.Snapshot()

	if g.statusTTL > 0 {
		g.statusTTL--
		if g.statusTTL == 0 {
			g.status = ""
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) handleChoice(choices []string, pressed func(core.Action) bool) {
	g.choice = core.Clamp(g.choice, 0, len(choices)-1)
	pick := -1
	switch {
	case pressed(core.ActionChoice1):
		pick = 0
	case pressed(core.ActionChoice2):
		pick = 1
	case pressed(core.ActionChoice3):
		pick = 2
	case pressed(core.ActionUp):
		g.choice = (g.choice + len(choices) - 1) % len(choices)
	case pressed(core.ActionDown):
		g.choice = (g.choice + 1) % len(choices)
	case pressed(core.ActionConfirm):
		pick = g.choice
	}
	if pick < 0 || pick >= len(choices) {
		return
	}
	if err := g.world.ChooseSkill(choices[pick]); err != nil {
		g.setStatus(err.Error())
		return
	}
	g.choice = 0
	if t, ok := g.tables.Skill(choices[pick]); ok {
		g.setStatus("Learned " + t.Name)
	}
}

func (g *Game) handleModals(pressed func(core.Action) bool) {
	switch {
	case pressed(core.ActionPause):
		if g.panel != panelNone {
			g.panel = panelNone
		} else {
			g.paused = !g.paused
		}
		return
	case pressed(core.ActionBack):
		g.panel = panelNone
		g.paused = false
		return
	case pressed(core.ActionInventory):
		g.togglePanel(panelInventory)
		return
	case pressed(core.ActionSkillTree):
		g.togglePanel(panelSkills)
		return
	case pressed(core.ActionSettings):
		g.togglePanel(panelSettings)
		return
	case pressed(core.ActionCodex):
		g.togglePanel(panelCodex)
		return
	}

	switch g.panel {
	case panelInventory:
		g.handleInventory(pressed)
	case panelSkills:
		g.handleSkillTree(pressed)
	case panelSettings:
		g.handleSettings(pressed)
	case panelCodex:
		g.handleCodex(pressed)
	}
}

func (g *Game) togglePanel(p panel) {
	if g.panel == p {
		g.panel = panelNone
		return
	}
	g.panel = p
	g.paused = false
}

// inventoryRows is the inventory followed by every equipment slot.
func (g *Game) inventoryRows() int {
	return len(g.snap.Inventory) + len(loot.AllEquipSlots())
}

func (g *Game) handleInventory(pressed func(core.Action) bool) {
	rows := g.inventoryRows()
	switch {
	case pressed(core.ActionUp):
		g.invCursor = (g.invCursor + rows - 1) % rows
	case pressed(core.ActionDown):
		g.invCursor = (g.invCursor + 1) % rows
	case pressed(core.ActionConfirm):
		var err error
		if g.invCursor < len(g.snap.Inventory) {
			err = g.world.Equip(g.invCursor)
		} else {
			err = g.world.Unequip(loot.EquipSlot(g.invCursor - len(g.snap.Inventory)))
		}
		if err != nil {
			g.setStatus(err.Error())
		}
	case pressed(core.ActionDiscard):
		if g.invCursor < len(g.snap.Inventory) {
			if err := g.world.Discard(g.invCursor); err != nil {
				g.setStatus(err.Error())
			}
		}
	case pressed(core.ActionSort):
		g.world.SortInventory()
	}
	g.snap = g.world.Snapshot()
	g.invCursor = core.Clamp(g.invCursor, 0, g.inventoryRows()-1)
}

func (g *Game) handleSkillTree(pressed func(core.Action) bool) {
	skills := g.snap.Skills
	if len(skills) == 0 {
		return
	}
	g.skillCursor = core.Clamp(g.skillCursor, 0, len(skills)-1)
	tmpl, ok := g.tables.Skill(skills[g.skillCursor].ID)
	if !ok {
		return
	}
	nodes := len(tmpl.Tree)

	switch {
	case pressed(core.ActionLeft):
		g.skillCursor = (g.skillCursor + len(skills) - 1) % len(skills)
		g.nodeCursor = 0
	case pressed(core.ActionRight):
		g.skillCursor = (g.skillCursor + 1) % len(skills)
		g.nodeCursor = 0
	case pressed(core.ActionUp) && nodes > 0:
		g.nodeCursor = (g.nodeCursor + nodes - 1) % nodes
	case pressed(core.ActionDown) && nodes > 0:
		g.nodeCursor = (g.nodeCursor + 1) % nodes
	case pressed(core.ActionConfirm) && nodes > 0:
		node := tmpl.Tree[core.Clamp(g.nodeCursor, 0, nodes-1)]
		if err := g.world.AllocatePoint(tmpl.ID, node.ID); err != nil {
			g.setStatus(err.Error())
		} else {
			g.setStatus(node.Name + " improved")
		}
		g.snap = g.world.Snapshot()
	}
}

func (g *Game) handleEvents(events []sim.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case sim.LevelUp:
			log.Debug("level up", "run", g.runID, "level", e.Level, "choices", e.Choices)
			g.choice = 0
		case sim.SkillPointGranted:
			log.Debug("skill point", "run", g.runID, "level", e.Level)
			g.setStatus("Skill point available (t)")
		case sim.BossAppeared:
			log.Info("boss appeared", "run", g.runID, "boss", e.Name)
			g.setStatus(e.Name + " appears!")
		case sim.BossDefeated:
			log.Info("boss defeated", "run", g.runID, "boss", e.Name, "boss_kills", e.BossKills)
			g.setStatus(e.Name + " defeated")
		case sim.KineticDischarge:
			log.Debug("kinetic discharge", "run", g.runID, "charge", e.Charge, "damage", e.Damage, "strikes", e.Strikes)
		case sim.ItemPickedUp:
			log.Debug("item picked up", "run", g.runID, "item", e.Item.Name, "rarity", e.Item.Rarity)
			g.setStatus("Picked up " + e.Item.Name)
		case sim.RunEnded:
			g.finishRun(e.Progress)
		}
	}
}

func (g *Game) finishRun(p sim.Progress) {
	dmg := make(map[string]int, len(p.DamageBySkill))
	for id, v := range p.DamageBySkill {
		dmg[id] = int(math.Round(v))
	}
	kills := make(map[string]int, len(p.KillsByType))
	for id, n := range p.KillsByType {
		kills[id] = n
	}
	g.summary = core.RunSummary{
		RunID:       g.runID,
		GameID:      GameID,
		Seed:        g.runtime.Seed,
		Score:       g.world.Score(),
		Level:       p.Level,
		Kills:       p.KillCount,
		BossKills:   p.BossKills,
		Survived:    time.Duration(p.Frame) * time.Second / sim.FPS,
		SkillDamage: dmg,
		KillsByType: kills,
	}
	g.finished = true
	log.Info("run ended", "run", g.runID, "score", g.summary.Score, "level", p.Level,
		"kills", p.KillCount, "survived", g.summary.Survived)
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTTL = statusFrames
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.world.Score(),
		GameOver: g.world.GameOver(),
		Paused:   g.paused,
		Status:   g.status,
	}
}

// RunSummary returns the report of the finished run.
func (g *Game) RunSummary() (core.RunSummary, bool) {
	return g.summary, g.finished
}

// Snapshot returns the state as of the last step.
func (g *Game) Snapshot() sim.Snapshot {
	return g.snap
}

// Point is a world position in spectator frames.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SpectatorEnemy is one enemy in a spectator frame.
type SpectatorEnemy struct {
	ID    int     `json:"id"`
	Type  string  `json:"type"`
	Pos   Point   `json:"pos"`
	HP    float64 `json:"hp"`
	MaxHP float64 `json:"max_hp"`
	Elite bool    `json:"elite,omitempty"`
}

// SpectatorFrame is the read-only view broadcast to spectators.
type SpectatorFrame struct {
	RunID       string           `json:"run_id"`
	Frame       int              `json:"frame"`
	Score       int              `json:"score"`
	Level       int              `json:"level"`
	Kills       int              `json:"kills"`
	HP          float64          `json:"hp"`
	MaxHP       float64          `json:"max_hp"`
	Player      Point            `json:"player"`
	Enemies     []SpectatorEnemy `json:"enemies"`
	Projectiles []Point          `json:"projectiles"`
	Boss        string           `json:"boss,omitempty"`
	BossPhase   int              `json:"boss_phase,omitempty"`
	GameOver    bool             `json:"game_over"`
}

// SpectatorFrame builds the spectator view of the last step.
func (g *Game) SpectatorFrame() any {
	s := g.snap
	f := SpectatorFrame{
		RunID:       g.runID,
		Frame:       s.Frame,
		Score:       s.Score,
		Level:       s.Progress.Level,
		Kills:       s.Progress.KillCount,
		HP:          s.Stats.HP,
		MaxHP:       s.Stats.MaxHP,
		Player:      Point{s.Player.Pos.X, s.Player.Pos.Y},
		Enemies:     make([]SpectatorEnemy, 0, len(s.Enemies)),
		Projectiles: make([]Point, 0, len(s.Projectiles)),
		GameOver:    s.GameOver,
	}
	for _, e := range s.Enemies {
		f.Enemies = append(f.Enemies, SpectatorEnemy{
			ID: e.ID, Type: e.Type, Pos: Point{e.Pos.X, e.Pos.Y},
			HP: e.HP, MaxHP: e.MaxHP, Elite: e.Elite,
		})
	}
	for _, p := range s.Projectiles {
		f.Projectiles = append(f.Projectiles, Point{p.Pos.X, p.Pos.Y})
	}
	if s.Boss != nil {
		f.Boss = s.Boss.Name
		f.BossPhase = s.Boss.Phase
	}
	return f
}

// Ensure Game implements the platform interfaces.
var (
	_ registry.Game        = (*Game)(nil)
	_ registry.RunReporter = (*Game)(nil)
	_ registry.Spectatable = (*Game)(nil)
)

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
