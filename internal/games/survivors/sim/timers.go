package sim

import (
	"math"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
)

// deferredAction is a delayed sub-effect. Actions hold entity IDs, never
// pointers, and must re-check that their targets still exist when they fire.
type deferredAction interface {
	fire(w *World)
}

type deferred struct {
	at     int
	action deferredAction
}

// schedule queues action to fire delay frames from now.
func (w *World) schedule(delay int, action deferredAction) {
	if delay < 0 {
		delay = 0
	}
	w.timers = append(w.timers, deferred{at: w.progress.Frame + delay, action: action})
}

// fireDueTimers runs every action whose frame has come, in queue order.
// Actions scheduled while firing wait for a later pass.
func (w *World) fireDueTimers() {
	if len(w.timers) == 0 {
		return
	}
	due := make([]deferredAction, 0, len(w.timers))
	pending := w.timers[:0]
	for _, t := range w.timers {
		if t.at <= w.progress.Frame {
			due = append(due, t.action)
		} else {
			pending = append(pending, t)
		}
	}
	w.timers = pending
	for _, a := range due {
		a.fire(w)
	}
}

// beamSplit breaks a boss beam into shards at the targeted prism.
type beamSplit struct {
	prismID int
}

func (b beamSplit) fire(w *World) {
	prism := w.enemyByID(b.prismID)
	if prism == nil || prism.HP <= 0 || prism.Role != content.RolePrism {
		return
	}
	bc := w.cfg.Boss
	for i := 0; i < bc.BeamShards; i++ {
		angle := 2*math.Pi/float64(bc.BeamShards)*float64(i) + w.rng.Float64()
		w.spawnEnemyProjectile(prism.Pos, angle, bc.BeamSpeed, bc.BeamDamage, bc.BeamLife, content.Physical)
	}
	w.addEffect(10, Explosion{Pos: prism.Pos, Radius: 40})
}

// strikeVisual draws one kinetic strike after its stagger delay.
type strikeVisual struct {
	from, to core.Vec2
	radius   float64
}

func (s strikeVisual) fire(w *World) {
	w.addEffect(12, Lightning{From: s.from, To: s.to})
	w.addEffect(10, Explosion{Pos: s.to, Radius: s.radius})
}
