// Package object implements the game entities and their per-frame motion.
package object

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/input"
)

// Spawner allows objects to spawn new objects during update.
// Spawned objects are queued and only become active after the current pass.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   Input
	Screen  Screen
	Spawner Spawner
	Rand    *rand.Rand
}

// Renderer is the drawing capability objects render through.
// Points form an open polyline; callers close shapes by repeating the first vertex.
type Renderer interface {
	DrawPolyline(points []geom.Vec2, thickness float64, c color.Color)
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by ctx.Delta. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw emits the object's outline through r.
	Draw(r Renderer)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Outline colors.
var (
	ColorShape = color.White
	ColorDebug = color.NRGBA{R: 80, G: 140, B: 255, A: 255}
)

// Screen is the drawable viewport in logical units.
type Screen struct {
	Width  int
	Height int
}

// Center returns the middle of the viewport.
func (s Screen) Center() geom.Vec2 {
	return geom.V(float64(s.Width)/2, float64(s.Height)/2)
}

// Wrap teleports p to the opposite edge once it is more than exit units past
// a bound, placing it enter units beyond the other side. enter must be
// smaller than exit so the point does not immediately wrap back.
func (s Screen) Wrap(p geom.Vec2, exit, enter float64) geom.Vec2 {
	w := float64(s.Width)
	h := float64(s.Height)

	if p.X+exit < 0 {
		p.X = w + enter
	} else if p.X-exit > w {
		p.X = -enter
	}
	if p.Y+exit < 0 {
		p.Y = h + enter
	} else if p.Y-exit > h {
		p.Y = -enter
	}
	return p
}

// Inside reports whether p lies strictly within the viewport grown by margin.
func (s Screen) Inside(p geom.Vec2, margin float64) bool {
	return p.X > -margin && p.Y > -margin &&
		p.X < float64(s.Width)+margin && p.Y < float64(s.Height)+margin
}

// uniform returns a value in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
