package object

import (
	"image/color"
	"math"
	"sync"

	"github.com/tomz197/vectoroids/internal/geom"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

const (
	particleStartSize = 0.0
	particleGrowth    = 10.0 // Size units per second
	particleLifetime  = 1.0  // Initial fade
	particleSegments  = 12
)

// Particle is a short-lived exhaust puff.
type Particle struct {
	Pos  geom.Vec2
	Vel  geom.Vec2
	Size float64 // Radius
	Fade float64 // 1 when fresh, removed once it reaches 0
}

// NewParticle creates a particle from the pool.
func NewParticle(pos, vel geom.Vec2) *Particle {
	p := particlePool.Get().(*Particle)
	p.Pos = pos
	p.Vel = vel
	p.Size = particleStartSize
	p.Fade = particleLifetime
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Update drifts, grows and fades the particle.
func (p *Particle) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()

	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Size += particleGrowth * dt
	p.Fade -= dt

	return p.Fade <= 0
}

// Color returns the outline color with alpha following the fade.
func (p *Particle) Color() color.Color {
	a := math.Max(0, math.Min(1, p.Fade))
	return color.NRGBA{R: 255, G: 255, B: 255, A: uint8(a * 255)}
}

// Draw renders the particle as a circle outline.
func (p *Particle) Draw(r Renderer) {
	points := make([]geom.Vec2, 0, particleSegments+1)
	step := 2 * math.Pi / particleSegments
	for i := range particleSegments {
		points = append(points, p.Pos.Add(geom.FromAngle(float64(i)*step).Scale(p.Size)))
	}
	r.DrawPolyline(geom.Closed(points), 1, p.Color())
}
