package world

import (
	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Phase is derived from the session counters after every tick.
type Phase int

const (
	PhasePlaying         Phase = iota
	PhaseRespawning            // Ship destroyed, waiting for its explosion to finish
	PhaseLevelTransition       // Arena cleared, waiting for explosions to finish
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseRespawning:
		return "respawning"
	case PhaseLevelTransition:
		return "level transition"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// HUD holds the counters shown to the player.
type HUD struct {
	Level int
	Lives int
	Score int
}

// Frame is a read-only snapshot of the arena after a tick. Its slices are
// freshly allocated and safe to keep.
type Frame struct {
	Tick      uint64
	Asteroids []object.Shape
	Shots     []object.Shape
	Player    *object.Shape // Nil while destroyed or blinked off
	Particles []physics.Vec2
	HUD       HUD
	Phase     Phase
}

func (w *World) compose() Frame {
	f := Frame{
		Tick:      w.tick,
		Asteroids: make([]object.Shape, 0, len(w.asteroids)),
		Shots:     make([]object.Shape, 0, len(w.shots)),
		HUD:       HUD{Level: w.level, Lives: w.lives, Score: w.score},
		Phase:     w.Phase(),
	}

	for i := range w.asteroids {
		f.Asteroids = append(f.Asteroids, w.asteroids[i].Shape())
	}
	for i := range w.shots {
		f.Shots = append(f.Shots, w.shots[i].Shape())
	}
	for i := range w.explosions {
		f.Particles = append(f.Particles, w.explosions[i].Points()...)
	}
	if !w.over && w.player.Visible() {
		s := w.player.Shape()
		f.Player = &s
	}
	return f
}
