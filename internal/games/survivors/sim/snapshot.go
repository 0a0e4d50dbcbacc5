package sim

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/loot"
)

// SkillView is an owned skill with its effective stats resolved.
type SkillView struct {
	ID       string
	Name     string
	Kind     content.SkillKind
	Element  content.Element
	Rank     int
	MaxRank  int
	Points   map[string]int
	Stats    content.SkillStats
	Augments []string
}

// BossView summarizes the active boss encounter.
type BossView struct {
	Name  string
	HP    float64
	MaxHP float64
	Phase int
	Arena core.Bounds
}

// Snapshot is a deep copy of everything a renderer needs for one frame.
// Mutating it never affects the World.
type Snapshot struct {
	Frame         int
	Player        Player
	Stats         loot.PlayerStats
	Enemies       []Enemy
	Projectiles   []Projectile
	Gems          []Gem
	Items         []WorldItem
	Numbers       []DamageNumber
	Effects       []Effect
	Progress      Progress
	Skills        []SkillView
	Inventory     []*loot.Item
	Equipment     loot.Equipment
	Capacity      int
	PendingChoice []string
	KineticCharge float64
	MaxCharge     float64
	Boss          *BossView
	GameOver      bool
	Score         int
}

// Snapshot copies the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Frame:         w.progress.Frame,
		Player:        w.player,
		Stats:         w.stats,
		Progress:      w.progress.clone(),
		PendingChoice: w.PendingChoice(),
		KineticCharge: w.kinetic.charge,
		MaxCharge:     w.cfg.Kinetic.MaxCharge,
		GameOver:      w.gameOver,
		Score:         w.Score(),
		Capacity:      w.inventory.Capacity,
		Gems:          append([]Gem(nil), w.gems...),
		Numbers:       append([]DamageNumber(nil), w.numbers...),
	}

	s.Enemies = make([]Enemy, len(w.enemies))
	for i, e := range w.enemies {
		c := *e
		c.Affixes = append([]string(nil), e.Affixes...)
		c.Immunity = e.Immunity.clone()
		s.Enemies[i] = c
		if e.IsBoss() && w.boss.active && e.ID == w.boss.id {
			s.Boss = &BossView{Name: e.Name, HP: e.HP, MaxHP: e.MaxHP, Phase: e.Phase, Arena: w.boss.arena}
		}
	}

	s.Projectiles = make([]Projectile, len(w.projectiles))
	for i, p := range w.projectiles {
		c := *p
		c.hit = nil
		s.Projectiles[i] = c
	}

	s.Items = make([]WorldItem, len(w.worldItems))
	for i, wi := range w.worldItems {
		s.Items[i] = WorldItem{ID: wi.ID, Pos: wi.Pos, Item: wi.Item.Clone()}
	}

	s.Effects = make([]Effect, len(w.effects))
	for i, e := range w.effects {
		if c, ok := e.Kind.(Cage); ok {
			e.Kind = Cage{Points: append([]core.Vec2(nil), c.Points...)}
		}
		s.Effects[i] = e
	}

	for _, sk := range w.skills {
		st, augs := sk.Effective()
		v := SkillView{
			ID:      sk.ID(),
			Name:    sk.Template.Name,
			Kind:    sk.Template.Kind,
			Element: sk.Template.Element,
			Rank:    sk.Rank,
			MaxRank: sk.Template.MaxRank,
			Points:  make(map[string]int, len(sk.Points)),
			Stats:   st,
		}
		for k, n := range sk.Points {
			v.Points[k] = n
		}
		for a := range augs {
			v.Augments = append(v.Augments, a)
		}
		sort.Strings(v.Augments)
		s.Skills = append(s.Skills, v)
	}

	for _, it := range w.inventory.Items {
		s.Inventory = append(s.Inventory, it.Clone())
	}
	for i, it := range w.equipment {
		if it != nil {
			s.Equipment[i] = it.Clone()
		}
	}
	return s
}

// Hash folds the gameplay-relevant parts of the snapshot into a single
// value. Two runs with the same seed and inputs hash equal frame by frame.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putF := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	putI := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v))) //#nosec G115 -- bit pattern only
		h.Write(buf[:])
	}
	putS := func(v string) {
		h.Write([]byte(v))
		h.Write([]byte{0})
	}

	putI(s.Frame)
	putF(s.Player.Pos.X)
	putF(s.Player.Pos.Y)
	putF(s.Stats.HP)
	putF(s.Stats.MaxHP)
	putI(s.Progress.Level)
	putF(s.Progress.XP)
	putI(s.Progress.KillCount)
	putI(s.Progress.SkillPoints)
	putF(s.KineticCharge)
	for _, e := range s.Enemies {
		putI(e.ID)
		putS(e.Type)
		putF(e.Pos.X)
		putF(e.Pos.Y)
		putF(e.HP)
		putI(e.Status.Frozen)
		putI(e.Status.Shocked)
		putI(e.Status.Bleed.Duration)
	}
	for _, p := range s.Projectiles {
		putI(p.ID)
		putF(p.Pos.X)
		putF(p.Pos.Y)
	}
	for _, g := range s.Gems {
		putF(g.XP)
		putF(g.Pos.X)
		putF(g.Pos.Y)
	}
	for _, it := range s.Items {
		putS(it.Item.Name)
	}
	for _, it := range s.Inventory {
		putS(it.Name)
	}
	skills := make([]string, 0, len(s.Progress.DamageBySkill))
	for id := range s.Progress.DamageBySkill {
		skills = append(skills, id)
	}
	sort.Strings(skills)
	for _, id := range skills {
		putS(id)
		putF(s.Progress.DamageBySkill[id])
	}
	return h.Sum64()
}
