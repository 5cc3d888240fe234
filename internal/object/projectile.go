package object

import (
	"math"

	"github.com/tomz197/vectoroids/internal/geom"
)

// ProjectileMargin is how far past the screen bounds a projectile survives.
const ProjectileMargin = 10.0

// Dart outline with the nose pointing up.
var projectileShape = []geom.Vec2{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 5},
	{X: -1, Y: 0},
}

// Projectile is a missile fired by the player.
// Projectiles fly straight and never wrap.
type Projectile struct {
	Pos geom.Vec2
	Vel geom.Vec2

	hit bool // Consumed by an asteroid this frame
}

// NewProjectile creates a projectile at pos traveling with vel.
func NewProjectile(pos, vel geom.Vec2) *Projectile {
	return &Projectile{
		Pos: pos,
		Vel: vel,
	}
}

// MarkHit flags the projectile as consumed.
func (p *Projectile) MarkHit() {
	p.hit = true
}

// IsHit returns true if the projectile has already destroyed an asteroid.
func (p *Projectile) IsHit() bool {
	return p.hit
}

// Update moves the projectile. Returns true once it has left the screen
// by more than ProjectileMargin.
func (p *Projectile) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	return !ctx.Screen.Inside(p.Pos, ProjectileMargin)
}

// Heading returns the rotation that turns the up-pointing dart along Vel.
func (p *Projectile) Heading() float64 {
	return math.Atan2(p.Vel.X, -p.Vel.Y)
}

// Draw renders the projectile as a dart aligned with its velocity.
func (p *Projectile) Draw(r Renderer) {
	t := geom.Transform{Translation: p.Pos, Rotation: p.Heading(), Scale: 1}
	points := t.ApplyAll(make([]geom.Vec2, 0, len(projectileShape)+1), projectileShape)
	r.DrawPolyline(geom.Closed(points), 1, ColorShape)
}
