package sim

import (
	"github.com/vovakirdan/tui-survivors/internal/core"
)

// Effect is a short-lived visual request. The simulation never reads
// effects back; they only decay.
type Effect struct {
	ID     int
	TTL    int
	MaxTTL int
	Kind   EffectKind
}

// Fraction returns how far through its life the effect is, from 0 to 1.
func (e Effect) Fraction() float64 {
	if e.MaxTTL <= 0 {
		return 1
	}
	return 1 - float64(e.TTL)/float64(e.MaxTTL)
}

// EffectKind is the closed set of effect payloads.
type EffectKind interface {
	isEffect()
}

type HitFlash struct{ Pos core.Vec2 }

type Explosion struct {
	Pos    core.Vec2
	Radius float64
}

type Lightning struct{ From, To core.Vec2 }

// Beam is the telegraph line from the boss to a prism.
type Beam struct{ From, To core.Vec2 }

type Slash struct {
	Pos   core.Vec2
	Angle float64
	Range float64
}

type DeathPoof struct{ Pos core.Vec2 }

// ScreenDim darkens the whole view for a big discharge.
type ScreenDim struct{}

// Cage outlines the prism polygon during the second boss phase.
type Cage struct{ Points []core.Vec2 }

type StatusIcon struct {
	Pos    core.Vec2
	Status string
}

type ReactionLabel struct {
	Pos   core.Vec2
	Label string
}

func (HitFlash) isEffect()      {}
func (Explosion) isEffect()     {}
func (Lightning) isEffect()     {}
func (Beam) isEffect()          {}
func (Slash) isEffect()         {}
func (DeathPoof) isEffect()     {}
func (ScreenDim) isEffect()     {}
func (Cage) isEffect()          {}
func (StatusIcon) isEffect()    {}
func (ReactionLabel) isEffect() {}

// DamageNumber is a floating combat number.
type DamageNumber struct {
	Pos   core.Vec2
	Value float64
	Crit  bool
	Label string
	Life  int
}

const damageNumberRise = 0.5

func (w *World) addEffect(ttl int, kind EffectKind) {
	if ttl <= 0 {
		return
	}
	w.effects = append(w.effects, Effect{ID: w.newID(), TTL: ttl, MaxTTL: ttl, Kind: kind})
}

func (w *World) addNumber(pos core.Vec2, value float64, crit bool, label string) {
	w.numbers = append(w.numbers, DamageNumber{
		Pos:   pos,
		Value: value,
		Crit:  crit,
		Label: label,
		Life:  w.cfg.Combat.DamageNumberLife,
	})
}

// decayEffects ages effects and damage numbers, dropping expired ones.
func (w *World) decayEffects() {
	effects := w.effects[:0]
	for _, e := range w.effects {
		e.TTL--
		if e.TTL > 0 {
			effects = append(effects, e)
		}
	}
	w.effects = effects

	numbers := w.numbers[:0]
	for _, n := range w.numbers {
		n.Life--
		n.Pos.Y -= damageNumberRise
		if n.Life > 0 {
			numbers = append(numbers, n)
		}
	}
	w.numbers = numbers
}
