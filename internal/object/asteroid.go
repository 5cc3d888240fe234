package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/physics"
)

// AsteroidSize represents the size category of an asteroid.
type AsteroidSize int

const (
	AsteroidSmall  AsteroidSize = 1
	AsteroidMedium AsteroidSize = 2
	AsteroidLarge  AsteroidSize = 3
)

// Scale factor applied to the unit shape for each size.
var asteroidScales = map[AsteroidSize]float64{
	AsteroidSmall:  2,
	AsteroidMedium: 5,
	AsteroidLarge:  10,
}

// Child fragments spawned when an asteroid of this size is destroyed.
var asteroidChildren = map[AsteroidSize]struct {
	size  AsteroidSize
	count int
}{
	AsteroidLarge:  {AsteroidMedium, 2},
	AsteroidMedium: {AsteroidSmall, 2},
}

const (
	asteroidSides  = 10
	asteroidRadius = 10.0
	asteroidJitter = 3.0

	asteroidMinSpeed = 50.0
	asteroidMaxSpeed = 100.0
	asteroidMaxSpin  = 1.0

	// Wrap margins in units of the asteroid's scale.
	asteroidExitMargin  = 15.0
	asteroidEnterMargin = 13.0
)

// Scale returns the render and collision scale of the size.
func (s AsteroidSize) Scale() float64 {
	return asteroidScales[s]
}

// MaxAsteroidReach returns the farthest an outline vertex of any asteroid
// can lie from its center.
func MaxAsteroidReach() float64 {
	return AsteroidLarge.Scale() * (asteroidRadius + asteroidJitter)
}

// Children returns the fragment size and count produced on destruction.
// ok is false for the smallest size.
func (s AsteroidSize) Children() (size AsteroidSize, count int, ok bool) {
	c, ok := asteroidChildren[s]
	return c.size, c.count, ok
}

func (s AsteroidSize) String() string {
	switch s {
	case AsteroidSmall:
		return "small"
	case AsteroidMedium:
		return "medium"
	case AsteroidLarge:
		return "large"
	}
	return "unknown"
}

// Asteroid is a destructible space rock.
type Asteroid struct {
	Pos           geom.Vec2
	Vel           geom.Vec2
	Rotation      float64 // Radians
	RotationSpeed float64 // Radians per second
	Size          AsteroidSize
	Shape         []geom.Vec2 // Unit-scale outline, immutable after creation

	points []geom.Vec2 // Draw buffer
	fan    []physics.Triangle
}

// NewAsteroid creates an asteroid of the given size at pos with a fresh
// random outline, heading and spin.
func NewAsteroid(rng *rand.Rand, size AsteroidSize, pos geom.Vec2) *Asteroid {
	heading := rng.Float64() * 2 * math.Pi
	speed := uniform(rng, asteroidMinSpeed, asteroidMaxSpeed)
	spin := uniform(rng, -asteroidMaxSpin, asteroidMaxSpin)

	return &Asteroid{
		Pos:           pos,
		Vel:           geom.FromAngle(heading).Scale(speed),
		RotationSpeed: spin,
		Size:          size,
		Shape:         GenerateShape(rng),
	}
}

// GenerateShape builds an irregular ten-sided outline around the origin.
// Each step appends a jittered point on the +X axis and then turns the
// whole set by one tenth of a revolution.
func GenerateShape(rng *rand.Rand) []geom.Vec2 {
	step := 2 * math.Pi / asteroidSides
	points := make([]geom.Vec2, 0, asteroidSides)
	for range asteroidSides {
		points = append(points, geom.V(asteroidRadius+uniform(rng, -asteroidJitter, asteroidJitter), 0))
		for i := range points {
			points[i] = points[i].Rotate(step)
		}
	}
	return points
}

// Transform returns the asteroid's local-to-world transform.
func (a *Asteroid) Transform() geom.Transform {
	return geom.Transform{Translation: a.Pos, Rotation: a.Rotation, Scale: a.Size.Scale()}
}

// Contains reports whether p lies inside the asteroid's current outline.
func (a *Asteroid) Contains(p geom.Vec2) bool {
	return physics.FanContains(a.Shape, a.Transform(), p)
}

// Reach returns the farthest distance of the outline from the center.
func (a *Asteroid) Reach() float64 {
	return physics.Reach(a.Shape, a.Size.Scale())
}

// Update moves and spins the asteroid and wraps it around the screen.
// Asteroids are only removed when destroyed, never by Update.
func (a *Asteroid) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()

	a.Pos = a.Pos.Add(a.Vel.Scale(dt))
	a.Rotation += a.RotationSpeed * dt

	scale := a.Size.Scale()
	a.Pos = ctx.Screen.Wrap(a.Pos, scale*asteroidExitMargin, scale*asteroidEnterMargin)

	return false
}

// Split returns the fragments produced when the asteroid is destroyed.
// Fragments start at the asteroid's position with independent random motion.
func (a *Asteroid) Split(rng *rand.Rand) []*Asteroid {
	size, count, ok := a.Size.Children()
	if !ok {
		return nil
	}
	children := make([]*Asteroid, 0, count)
	for range count {
		children = append(children, NewAsteroid(rng, size, a.Pos))
	}
	return children
}

// Draw renders the asteroid outline.
func (a *Asteroid) Draw(r Renderer) {
	a.points = a.Transform().ApplyAll(a.points, a.Shape)
	r.DrawPolyline(geom.Closed(a.points), 1, ColorShape)
}

// DrawFan renders the triangles used for hit testing.
func (a *Asteroid) DrawFan(r Renderer) {
	a.fan = physics.Fan(a.fan[:0], a.Shape, a.Transform())
	for _, t := range a.fan {
		r.DrawPolyline([]geom.Vec2{t.A, t.B, t.C, t.A}, 1, ColorDebug)
	}
}
