package session

import (
	"github.com/tomz197/vectoroids/internal/object"
)

// Snapshot is a detached copy of the session state.
// Entities are values and may be inspected or drawn without touching the
// live session. Asteroid shapes are shared and must not be modified.
type Snapshot struct {
	Player      object.Player
	Asteroids   []object.Asteroid
	Projectiles []object.Projectile
	Particles   []object.Particle

	Score int
	Wave  int
	Ended bool
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Player: object.Player{
			Pos:                       s.player.Pos,
			Vel:                       s.player.Vel,
			Rotation:                  s.player.Rotation,
			JetTimer:                  s.player.JetTimer,
			MissileTimer:              s.player.MissileTimer,
			FrameRateIndependentBrake: s.player.FrameRateIndependentBrake,
		},
		Asteroids:   make([]object.Asteroid, 0, len(s.asteroids)),
		Projectiles: make([]object.Projectile, 0, len(s.projectiles)),
		Particles:   make([]object.Particle, 0, len(s.particles)),
		Score:       s.score,
		Wave:        s.spawner.Waves(),
		Ended:       s.ended,
	}

	for _, a := range s.asteroids {
		snap.Asteroids = append(snap.Asteroids, object.Asteroid{
			Pos:           a.Pos,
			Vel:           a.Vel,
			Rotation:      a.Rotation,
			RotationSpeed: a.RotationSpeed,
			Size:          a.Size,
			Shape:         a.Shape,
		})
	}
	for _, p := range s.projectiles {
		snap.Projectiles = append(snap.Projectiles, object.Projectile{Pos: p.Pos, Vel: p.Vel})
	}
	for _, p := range s.particles {
		snap.Particles = append(snap.Particles, *p)
	}
	return snap
}

// Draw renders the snapshot through r in the same order as Session.Draw.
func (snap *Snapshot) Draw(r object.Renderer) {
	snap.Player.Draw(r)
	for i := range snap.Asteroids {
		snap.Asteroids[i].Draw(r)
	}
	for i := range snap.Particles {
		snap.Particles[i].Draw(r)
	}
	for i := range snap.Projectiles {
		snap.Projectiles[i].Draw(r)
	}
}
