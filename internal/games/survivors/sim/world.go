// Package sim is the deterministic fixed-step simulation of a survivors
// run. A World owns all mutable state; Step advances it by one frame and
// never blocks or returns errors. Hosts read state through Snapshot.
package sim

import (
	"math"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/loot"
)

// FPS is the fixed simulation rate. Durations in frames assume it.
const FPS = 60

// Input is everything the simulation reads from the host for one frame.
type Input struct {
	Intent        core.Vec2
	Paused        bool
	InventoryOpen bool
	SettingsOpen  bool
	SkillTreeOpen bool
}

// Player is the player entity.
type Player struct {
	Pos         core.Vec2
	Vel         core.Vec2
	Size        float64
	Heading     core.Vec2
	FacingRight bool
	Invuln      int
}

// Enemy is a live enemy, boss, prism or doppelganger.
type Enemy struct {
	ID       int
	Type     string
	Name     string
	Glyph    string
	Role     content.EnemyRole
	Pos      core.Vec2
	Size     float64
	HP       float64
	MaxHP    float64
	Speed    float64
	Damage   float64
	Elite    bool
	Affixes  []string
	Regen    float64
	Status   Statuses
	Immunity ImmunityTable
	Slow     int
	HitFlash int

	Phase          int
	AttackTimer    int
	CarapaceStacks int
}

func (e *Enemy) IsBoss() bool { return e.Role == content.RoleBoss }

// Projectile is a player or enemy projectile. Orbit and lingering
// projectiles never move on their own and hit through immunity windows.
type Projectile struct {
	ID         int
	Pos        core.Vec2
	Vel        core.Vec2
	Radius     float64
	Damage     float64
	Element    content.Element
	SkillID    string
	CritChance float64
	Enemy      bool
	Life       int
	Pierce     int
	Orbit      bool
	Lingering  bool
	Angle      float64
	Splash     float64
	Freeze     int
	Bleed      int
	Slow       bool
	// ImmunityKey names the window orbit and lingering hits open on an enemy.
	ImmunityKey string

	hit  []int
	dead bool
}

func (p *Projectile) hasHit(id int) bool {
	for _, h := range p.hit {
		if h == id {
			return true
		}
	}
	return false
}

// GemTier is the color class of an XP gem.
type GemTier int

const (
	GemBlue GemTier = iota
	GemGold
	GemPurple
)

func (t GemTier) multiplier() float64 {
	switch t {
	case GemGold:
		return 2
	case GemPurple:
		return 5
	}
	return 1
}

// Gem is an XP pickup.
type Gem struct {
	ID   int
	Pos  core.Vec2
	XP   float64
	Tier GemTier
}

// WorldItem is an item lying on the ground.
type WorldItem struct {
	ID   int
	Pos  core.Vec2
	Item *loot.Item
}

// OwnedSkill is a skill the player has learned. Effective stats are
// derived from the template on demand.
type OwnedSkill struct {
	Template *content.SkillTemplate
	Rank     int
	Points   map[string]int
}

func (s *OwnedSkill) ID() string { return s.Template.ID }

func (s *OwnedSkill) Effective() (content.SkillStats, map[string]bool) {
	return s.Template.Effective(s.Rank, s.Points)
}

func (s *OwnedSkill) Mastered() bool { return s.Rank >= s.Template.MaxRank }

// Progress is the run's progression state.
type Progress struct {
	Level         int
	XP            float64
	XPToNext      float64
	KillCount     int
	Frame         int
	SkillPoints   int
	DamageBySkill map[string]float64
	KillsByType   map[string]int
	BossThreshold int
	BossKills     int
}

// Seconds is the survived time.
func (p Progress) Seconds() float64 { return float64(p.Frame) / FPS }

func (p Progress) clone() Progress {
	c := p
	c.DamageBySkill = make(map[string]float64, len(p.DamageBySkill))
	for k, v := range p.DamageBySkill {
		c.DamageBySkill[k] = v
	}
	c.KillsByType = make(map[string]int, len(p.KillsByType))
	for k, v := range p.KillsByType {
		c.KillsByType[k] = v
	}
	return c
}

type kineticState struct {
	charge    float64
	wasMoving bool
}

type bossState struct {
	active bool
	id     int
	arena  core.Bounds
}

// World is the simulation context.
type World struct {
	cfg        config.SurvivorsConfig
	tables     *content.Tables
	rng        core.RNG
	items      *loot.Generator
	difficulty *config.DifficultyManager

	player    Player
	base      loot.PlayerStats
	stats     loot.PlayerStats
	equipment loot.Equipment
	inventory *loot.Inventory
	skills    []*OwnedSkill

	enemies     []*Enemy
	projectiles []*Projectile
	gems        []Gem
	worldItems  []WorldItem
	numbers     []DamageNumber
	effects     []Effect
	timers      []deferred

	progress Progress
	pending  [][]string
	kinetic  kineticState
	orbit    map[string]float64
	boss     bossState
	moved    float64

	lastSpawn int
	nextID    int
	gameOver  bool
	events    []Event
}

// New creates a world and resets it for a fresh run.
func New(cfg config.SurvivorsConfig, tables *content.Tables, rng core.RNG) *World {
	w := &World{cfg: cfg, tables: tables}
	w.Reset(rng)
	return w
}

// Reset discards all run state and starts over with rng.
func (w *World) Reset(rng core.RNG) {
	cfg := w.cfg
	*w = World{cfg: cfg, tables: w.tables, rng: rng}
	w.items = loot.NewGenerator(w.tables, rng)
	w.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	pc := cfg.Player
	w.base = loot.PlayerStats{
		MaxHP:               pc.MaxHP,
		HP:                  pc.MaxHP,
		Speed:               pc.Speed,
		Armor:               pc.Armor,
		DamageMult:          1,
		AttackSpeedMult:     1,
		CritChance:          pc.CritChance,
		CritMultiplier:      pc.CritMultiplier,
		PickupRange:         pc.PickupRange,
		PhysDamageMult:      1,
		ColdDamageMult:      1,
		LightningDamageMult: 1,
	}
	w.stats = loot.Aggregate(w.base, nil, pc.MaxHP)
	w.player = Player{Size: pc.Size, FacingRight: true}
	w.inventory = loot.NewInventory(cfg.Loot.InventorySize)
	w.inventory.Add(w.items.GenerateRarity(1, loot.Magic))
	w.orbit = make(map[string]float64)

	w.progress = Progress{
		Level:         1,
		XPToNext:      cfg.Leveling.FirstThreshold,
		DamageBySkill: make(map[string]float64),
		KillsByType:   make(map[string]int),
		BossThreshold: cfg.Boss.KillThreshold,
	}
	if t, ok := w.tables.Skill(w.tables.StartingSkill); ok {
		w.learn(t)
	}
}

// Blocked reports whether the modal gate holds the simulation this frame.
func (w *World) Blocked(in Input) bool {
	return w.gameOver || in.Paused || in.InventoryOpen || in.SettingsOpen ||
		in.SkillTreeOpen || len(w.pending) > 0
}

// Step advances the simulation by one frame and returns the events it
// produced. A blocked frame changes nothing.
func (w *World) Step(in Input) []Event {
	w.events = nil
	if w.Blocked(in) {
		return nil
	}
	w.progress.Frame++

	moving := w.integrateMovement(in.Intent)
	w.tickStatuses()
	w.fireDueTimers()
	w.runSkills(moving)
	w.direct()
	w.resolveCombat()
	w.decayEffects()
	w.collectPickups()
	w.checkLevelUp()
	w.checkDeath()

	return w.events
}

func (w *World) emit(e Event) { w.events = append(w.events, e) }

func (w *World) newID() int {
	w.nextID++
	return w.nextID
}

// integrateMovement accelerates toward the intent, applies friction when
// idle, and keeps the player inside the boss arena. It reports whether the
// player is moving this frame.
func (w *World) integrateMovement(intent core.Vec2) bool {
	pc := w.cfg.Player
	speed := math.Max(0, w.stats.Speed)
	moving := !intent.IsZero()
	p := &w.player

	if moving {
		intent = intent.Norm()
		p.Vel = p.Vel.Add(intent.Scale(speed * pc.Acceleration))
		if l := p.Vel.Len(); l > speed {
			p.Vel = p.Vel.Norm().Scale(speed)
		}
		p.Heading = intent
		if intent.X > 0 {
			p.FacingRight = true
		} else if intent.X < 0 {
			p.FacingRight = false
		}
	} else {
		p.Vel = p.Vel.Scale(pc.Friction)
	}

	next := p.Pos.Add(p.Vel)
	if w.boss.active {
		clamped, _ := w.boss.arena.Inset(w.cfg.Boss.PlayerPadding).ClampPoint(next)
		if clamped.X != next.X {
			p.Vel.X = 0
		}
		if clamped.Y != next.Y {
			p.Vel.Y = 0
		}
		next = clamped
	}
	w.moved = next.Dist(p.Pos)
	p.Pos = next
	return moving
}

func (w *World) checkDeath() {
	if w.gameOver || w.stats.HP > 0 {
		return
	}
	w.gameOver = true
	w.emit(RunEnded{Progress: w.progress.clone()})
}

func (w *World) enemyByID(id int) *Enemy {
	for _, e := range w.enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (w *World) skill(id string) *OwnedSkill {
	for _, s := range w.skills {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

// GameOver reports whether the run has ended.
func (w *World) GameOver() bool { return w.gameOver }

// Progress returns a copy of the progression state.
func (w *World) Progress() Progress { return w.progress.clone() }

// Stats returns the derived player stats.
func (w *World) Stats() loot.PlayerStats { return w.stats }

// PendingChoice returns the choice the player must resolve next, if any.
func (w *World) PendingChoice() []string {
	if len(w.pending) == 0 {
		return nil
	}
	return append([]string(nil), w.pending[0]...)
}

// Score is kills weighted by ten plus whole seconds survived.
func (w *World) Score() int {
	return w.progress.KillCount*10 + int(w.progress.Seconds())
}
