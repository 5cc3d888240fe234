package object

import (
	"math"

	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/physics"
)

const (
	playerTurnRate = 5.0   // Radians per second
	playerThrust   = 100.0 // Acceleration along facing
	playerBrake    = 0.99  // Velocity factor per braking frame

	// brakeReferenceFPS is the frame rate the brake factor was tuned for.
	brakeReferenceFPS = 60.0

	jetInterval = 0.1 // Seconds between exhaust particles
	jetSpeed    = 50.0
	jetSpread   = 0.1 // Radians either side of straight back

	missileCooldown = 0.3
	missileSpeed    = 240.0

	playerExitMargin  = 20.0
	playerEnterMargin = 18.0
)

// Arrowhead outline with the nose pointing up.
var playerShape = []geom.Vec2{
	{X: 0, Y: -10},
	{X: 6, Y: 10},
	{X: 0, Y: 2},
	{X: -6, Y: 10},
}

// Player is the ship steered by the input state.
type Player struct {
	Pos      geom.Vec2
	Vel      geom.Vec2
	Rotation float64 // Radians, 0 points up, positive turns clockwise on screen

	JetTimer     float64 // Seconds until the next exhaust particle while thrusting
	MissileTimer float64 // Seconds until firing is allowed again

	// FrameRateIndependentBrake scales the brake factor by the frame time
	// instead of applying it once per frame.
	FrameRateIndependentBrake bool

	points []geom.Vec2 // Draw buffer
}

// NewPlayer creates a stationary ship at pos facing up.
func NewPlayer(pos geom.Vec2) *Player {
	return &Player{
		Pos:      pos,
		JetTimer: jetInterval,
	}
}

// Facing returns the unit vector the nose points along.
func (p *Player) Facing() geom.Vec2 {
	return geom.Up.Rotate(p.Rotation)
}

// Transform returns the ship's local-to-world transform.
func (p *Player) Transform() geom.Transform {
	return geom.Transform{Translation: p.Pos, Rotation: p.Rotation, Scale: 1}
}

// Contains reports whether pt lies inside the ship outline.
func (p *Player) Contains(pt geom.Vec2) bool {
	return physics.FanContains(playerShape, p.Transform(), pt)
}

// Update handles turning, thrust, braking and firing, then integrates
// position and wraps around the screen.
func (p *Player) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()

	if ctx.Input.Left {
		p.Rotation -= playerTurnRate * dt
	}
	if ctx.Input.Right {
		p.Rotation += playerTurnRate * dt
	}

	if ctx.Input.Thrust {
		p.Vel = p.Vel.Add(p.Facing().Scale(playerThrust * dt))
		p.JetTimer -= dt
		if p.JetTimer < 0 {
			p.JetTimer = jetInterval
			p.spawnJet(ctx)
		}
	}

	if ctx.Input.Brake {
		p.Vel = p.Vel.Scale(p.brakeFactor(dt))
	}

	p.MissileTimer -= dt
	if ctx.Input.Fire && p.MissileTimer < 0 {
		p.MissileTimer = missileCooldown
		if ctx.Spawner != nil {
			vel := p.Vel.Add(p.Facing().Scale(missileSpeed))
			ctx.Spawner.Spawn(NewProjectile(p.Pos, vel))
		}
	}

	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Pos = ctx.Screen.Wrap(p.Pos, playerExitMargin, playerEnterMargin)

	return false
}

func (p *Player) brakeFactor(dt float64) float64 {
	if p.FrameRateIndependentBrake {
		return math.Pow(playerBrake, dt*brakeReferenceFPS)
	}
	return playerBrake
}

// spawnJet emits an exhaust particle pushed out behind the ship.
func (p *Player) spawnJet(ctx UpdateContext) {
	if ctx.Spawner == nil || ctx.Rand == nil {
		return
	}
	angle := math.Pi + uniform(ctx.Rand, -jetSpread, jetSpread)
	vel := p.Facing().Rotate(angle).Scale(jetSpeed).Add(p.Vel)
	ctx.Spawner.Spawn(NewParticle(p.Pos, vel))
}

// Draw renders the ship outline.
func (p *Player) Draw(r Renderer) {
	p.points = p.Transform().ApplyAll(p.points, playerShape)
	r.DrawPolyline(geom.Closed(p.points), 1, ColorShape)
}
