// Package object holds the simulated things in the arena: the player ship,
// asteroids, shots and explosions.
package object

import (
	"errors"
	"math"

	"github.com/tomz197/asteroids-classic/internal/physics"
)

// ErrInvalidArgument is returned by constructors given values that can only
// come from a caller bug (unknown stage, empty explosion, ...).
var ErrInvalidArgument = errors.New("invalid argument")

// Vec2 is an alias for the physics package's vector type.
type Vec2 = physics.Vec2

// Arena is the playfield size in logical units. Objects wrap around its edges.
type Arena struct {
	Width  float64
	Height float64
}

// Center returns the middle of the arena.
func (a Arena) Center() Vec2 {
	return Vec2{X: a.Width / 2, Y: a.Height / 2}
}

// Kind identifies what an object is when it is handed to the renderer.
type Kind int

const (
	KindPlayer Kind = iota
	KindAsteroid
	KindShot
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindAsteroid:
		return "asteroid"
	case KindShot:
		return "shot"
	default:
		return "unknown"
	}
}

// Shape is a read-only render description of an object.
type Shape struct {
	Kind     Kind
	Pos      Vec2
	Rotation float64 // Degrees
	Points   []Vec2  // Outline in arena coordinates
	Bounds   physics.Box
}

// Body is the movable part shared by the player, asteroids and shots.
// Outline is in local coordinates, unrotated, centered on Pos.
type Body struct {
	Pos      Vec2
	Vel      Vec2
	Rotation float64 // Degrees; 0 points right, positive turns clockwise on screen
	Dead     bool
	Outline  []Vec2
}

// Bounds returns the axis-aligned box around the rotated outline.
func (b *Body) Bounds() physics.Box {
	return physics.BoxAround(b.Pos, b.rotated())
}

// HalfExtent returns half the width and height of the rotated outline's
// box. It is measured around the origin, so it does not depend on Pos.
func (b *Body) HalfExtent() (hx, hy float64) {
	box := physics.BoxAround(Vec2{}, b.rotated())
	return box.Width() / 2, box.Height() / 2
}

func (b *Body) rotated() []Vec2 {
	pts := make([]Vec2, len(b.Outline))
	for i, p := range b.Outline {
		pts[i] = p.Rotate(b.Rotation)
	}
	return pts
}

// Move applies velocity to position without any boundary handling.
func (b *Body) Move() {
	b.Pos = b.Pos.Add(b.Vel)
}

// Advance moves the body one tick and wraps it around the arena.
func (b *Body) Advance(a Arena) {
	b.Move()
	b.Wrap(a)
}

// Wrap re-enters a body on the opposite edge once it is fully off the arena.
// The margin is half the body's bounding box, so a body disappears only when
// completely outside and reappears just outside the opposite edge.
func (b *Body) Wrap(a Arena) {
	hx, hy := b.HalfExtent()

	if b.Pos.X+hx < 0 {
		b.Pos.X = a.Width + hx
	} else if b.Pos.X-hx > a.Width {
		b.Pos.X = -hx
	}

	if b.Pos.Y+hy < 0 {
		b.Pos.Y = a.Height + hy
	} else if b.Pos.Y-hy > a.Height {
		b.Pos.Y = -hy
	}
}

// Speed returns the magnitude of the velocity.
func (b *Body) Speed() float64 {
	return b.Vel.Len()
}

// Heading returns the direction of travel in degrees.
func (b *Body) Heading() float64 {
	return b.Vel.Heading()
}

// Describe builds the render description of the body.
func (b *Body) Describe(kind Kind) Shape {
	pts := make([]Vec2, len(b.Outline))
	for i, p := range b.Outline {
		pts[i] = p.Rotate(b.Rotation).Add(b.Pos)
	}
	return Shape{
		Kind:     kind,
		Pos:      b.Pos,
		Rotation: b.Rotation,
		Points:   pts,
		Bounds:   physics.BoxAround(Vec2{}, pts),
	}
}

// normalizeDegrees maps an angle into (-180, 180].
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
