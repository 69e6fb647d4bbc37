package world

import (
	"math"

	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Report summarizes one tick of collision resolution.
type Report struct {
	Hits         int  // Asteroids destroyed by shots
	ScoreDelta   int  // Points awarded
	PlayerKilled bool // Ship destroyed this tick
}

// resolveCollisions runs the shot pass then the ship pass. Objects are only
// flagged dead here; removal happens in purge.
func (w *World) resolveCollisions() Report {
	var rep Report
	w.resolveShots(&rep)
	w.resolvePlayer(&rep)
	return rep
}

// resolveShots lets each live shot destroy at most one asteroid: the
// lowest-index live asteroid whose box overlaps the shot's. Fragments are
// appended after the pass, so they cannot be hit in the tick they appear.
func (w *World) resolveShots(rep *Report) {
	if len(w.shots) == 0 || len(w.asteroids) == 0 {
		return
	}

	boxes := make([]physics.Box, len(w.asteroids))
	remaining := 0
	var maxW, maxH float64
	for i := range w.asteroids {
		if w.asteroids[i].Dead {
			continue
		}
		boxes[i] = w.asteroids[i].Bounds()
		maxW = math.Max(maxW, boxes[i].Width())
		maxH = math.Max(maxH, boxes[i].Height())
		remaining++
	}
	if remaining == 0 {
		return
	}

	shotBoxes := make([]physics.Box, len(w.shots))
	var shotW, shotH float64
	for i := range w.shots {
		shotBoxes[i] = w.shots[i].Bounds()
		shotW = math.Max(shotW, shotBoxes[i].Width())
		shotH = math.Max(shotH, shotBoxes[i].Height())
	}

	// Overlapping boxes have centers at most half their summed extents apart,
	// so a cell that size keeps every candidate in the 3x3 neighborhood.
	w.grid.Reset(math.Max(maxW+shotW, maxH+shotH) / 2)
	for i := range w.asteroids {
		if !w.asteroids[i].Dead {
			w.grid.Insert(boxes[i].Center(), i)
		}
	}

	var fragments []object.Asteroid
	for si := range w.shots {
		shot := &w.shots[si]
		if shot.Dead {
			continue
		}

		hit := -1
		w.grid.QueryAround(shotBoxes[si].Center(), func(ai int) bool {
			if w.asteroids[ai].Dead || (hit >= 0 && ai > hit) {
				return false
			}
			if boxes[ai].Overlaps(shotBoxes[si]) {
				hit = ai
			}
			return false
		})
		if hit < 0 {
			continue
		}

		a := &w.asteroids[hit]
		a.Dead = true
		shot.Dead = true
		w.score += w.rules.ScorePerAsteroid
		rep.Hits++
		rep.ScoreDelta += w.rules.ScorePerAsteroid

		children := a.Split(w.rules.SplitAngle)
		for i := range children {
			children[i].Roughen(w.rng)
		}
		fragments = append(fragments, children...)
		remaining += len(children) - 1

		burst := w.rules.HitBurst
		if remaining == 0 {
			burst = w.rules.ClearBurst
		}
		w.explode(burst, a.Pos)
	}

	w.asteroids = append(w.asteroids, fragments...)
}

// resolvePlayer destroys the ship on its first overlap with a live asteroid.
// Invincible or already destroyed ships are skipped, so a ship dies at most once.
func (w *World) resolvePlayer(rep *Report) {
	p := w.player
	if p.Dead || p.IsInvincible() {
		return
	}

	box := p.Bounds()
	for i := range w.asteroids {
		a := &w.asteroids[i]
		if a.Dead || !a.Bounds().Overlaps(box) {
			continue
		}
		p.Dead = true
		rep.PlayerKilled = true
		w.explode(w.rules.DeathBurst, p.Pos)
		return
	}
}
