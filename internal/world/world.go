// Package world runs one game session: it owns every object in the arena,
// advances them once per tick, resolves collisions and applies the
// life and level rules.
//
// A World is not safe for concurrent use. The host drives it from a
// single goroutine and renders only the Frame returned by Tick.
package world

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/input"
	"github.com/tomz197/asteroids-classic/internal/logging"
	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Result is the outcome of a finished session.
type Result struct {
	Score int
	Level int
	Ticks uint64
}

// World is the state of one game session.
type World struct {
	rules   config.Rules
	arena   object.Arena
	rng     *rand.Rand
	spawner *object.AsteroidSpawner
	grid    *physics.SpatialGrid
	logger  *log.Logger

	score int
	lives int
	level int
	over  bool
	tick  uint64

	player     *object.Player
	asteroids  []object.Asteroid
	shots      []object.Shot
	explosions []object.Explosion

	controls input.Controls
	report   Report
	frame    Frame
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for session events.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// New starts a session at rules.StartLevel with a fresh ship and the level's
// opening wave. A nil rng is replaced by one seeded from rules.Seed, or from
// the clock when the seed is zero.
func New(rules config.Rules, rng *rand.Rand, opts ...Option) (*World, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		seed := rules.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	arena := rules.Arena()
	w := &World{
		rules:   rules,
		arena:   arena,
		rng:     rng,
		spawner: object.NewAsteroidSpawner(rules.LevelCycle),
		grid:    physics.NewSpatialGrid(arena.Width, arena.Height, 0),
		logger:  logging.Discard(),
		lives:   rules.InitialLives,
		level:   rules.StartLevel,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.player = object.NewPlayer(arena, rules.InvincibleTicks)
	w.player.RotateStep = rules.RotateStep
	w.player.ThrustStep = rules.ThrustStep

	wave, err := w.spawner.Spawn(w.level, arena, rng)
	if err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	w.asteroids = wave
	w.frame = w.compose()

	w.logger.Debug("session started", "level", w.level, "asteroids", len(w.asteroids))
	return w, nil
}

// Tick advances the session by one step and returns the post-tick frame.
// The fire command is cleared in ctrl once a shot has been spawned for it,
// so holding fire does not shoot every tick. Tick is a no-op once the
// session is over.
func (w *World) Tick(ctrl *input.Controls) Frame {
	if w.over {
		return w.frame
	}
	w.tick++
	w.report = Report{}

	if ctrl != nil {
		w.controls = *ctrl
	} else {
		w.controls = input.Controls{}
	}

	if w.controls.Active(input.Quit) {
		w.gameOver("quit")
		w.frame = w.compose()
		return w.frame
	}

	w.update(ctrl)
	w.report = w.resolveCollisions()
	w.purge()
	w.checkLife()
	w.checkLevel()

	w.frame = w.compose()
	return w.frame
}

func (w *World) update(ctrl *input.Controls) {
	for i := range w.asteroids {
		w.asteroids[i].Update(w.arena)
	}
	for i := range w.shots {
		w.shots[i].Update()
	}
	for i := range w.explosions {
		w.explosions[i].Update()
	}

	if w.player.Dead {
		return
	}
	w.player.Update(&w.controls, w.arena)

	if w.controls.Active(input.Fire) && w.liveShots() < w.rules.MaxShots {
		shot, err := w.player.Fire(w.rules.ShotSpeed, w.rules.ShotTTL)
		if err != nil {
			w.logger.Warn("fire", "err", err)
			return
		}
		w.shots = append(w.shots, shot)
		if ctrl != nil {
			ctrl.Clear(input.Fire)
		}
	}
}

func (w *World) liveShots() int {
	n := 0
	for i := range w.shots {
		if !w.shots[i].Dead {
			n++
		}
	}
	return n
}

// purge drops every object flagged dead during this tick.
func (w *World) purge() {
	w.asteroids = compact(w.asteroids, func(a *object.Asteroid) bool { return a.Dead })
	w.shots = compact(w.shots, func(s *object.Shot) bool { return s.Dead })
	w.explosions = compact(w.explosions, func(e *object.Explosion) bool { return e.Dead })
}

// compact keeps the live elements in place and zeroes the tail.
func compact[T any](objs []T, dead func(*T) bool) []T {
	kept := objs[:0]
	for i := range objs {
		if !dead(&objs[i]) {
			kept = append(kept, objs[i])
		}
	}
	clear(objs[len(kept):])
	return kept
}

// checkLife handles a destroyed ship once its explosion has finished.
func (w *World) checkLife() {
	if !w.player.Dead || len(w.explosions) > 0 {
		return
	}
	w.lives--
	if w.lives <= 0 {
		w.lives = 0
		w.gameOver("no lives left")
		return
	}
	w.player.Reset(w.arena)
	w.logger.Info("ship lost", "lives", w.lives, "score", w.score)
}

// checkLevel starts the next level once the arena is clear and quiet.
func (w *World) checkLevel() {
	if w.over || len(w.asteroids) > 0 || len(w.explosions) > 0 {
		return
	}
	w.level++
	wave, err := w.spawner.Spawn(w.level, w.arena, w.rng)
	if err != nil {
		w.logger.Error("level spawn", "level", w.level, "err", err)
		return
	}
	w.asteroids = append(w.asteroids, wave...)
	w.player.Reset(w.arena)
	w.logger.Info("level up", "level", w.level, "asteroids", len(wave), "score", w.score)
}

func (w *World) gameOver(reason string) {
	w.over = true
	w.logger.Info("game over", "reason", reason, "score", w.score, "level", w.level, "ticks", w.tick)
}

func (w *World) explode(b object.Burst, at physics.Vec2) {
	e, err := b.At(at)
	if err != nil {
		w.logger.Warn("explosion", "err", err)
		return
	}
	w.explosions = append(w.explosions, e)
}

// Phase reports where the session is in its life cycle.
func (w *World) Phase() Phase {
	switch {
	case w.over:
		return PhaseGameOver
	case w.player.Dead:
		return PhaseRespawning
	case len(w.asteroids) == 0:
		return PhaseLevelTransition
	default:
		return PhasePlaying
	}
}

// Over reports whether the session has ended.
func (w *World) Over() bool { return w.over }

// Score returns the points earned so far.
func (w *World) Score() int { return w.score }

// Lives returns the remaining lives, including the one in play.
func (w *World) Lives() int { return w.lives }

// Level returns the current level number.
func (w *World) Level() int { return w.level }

// Ticks returns how many ticks have been simulated.
func (w *World) Ticks() uint64 { return w.tick }

// Frame returns the snapshot composed at the end of the last tick.
func (w *World) Frame() Frame { return w.frame }

// LastReport returns what the collision passes found during the last tick.
func (w *World) LastReport() Report { return w.report }

// Rules returns the rule set the session runs with.
func (w *World) Rules() config.Rules { return w.rules }

// Result returns the session outcome so far.
func (w *World) Result() Result {
	return Result{Score: w.score, Level: w.level, Ticks: w.tick}
}
