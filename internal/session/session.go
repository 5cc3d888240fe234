// Package session runs a single game from the first wave to the player's
// death. It owns every entity and advances them one frame per Step.
package session

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vectoroids/internal/input"
	"github.com/tomz197/vectoroids/internal/object"
	"github.com/tomz197/vectoroids/internal/physics"
)

// Options configures a new session.
type Options struct {
	Screen object.Screen

	// Seed for the session's random generator. Zero picks a time-based seed.
	Seed int64
	// Rand overrides Seed when set.
	Rand *rand.Rand

	// InitialWave is the number of large asteroids in the first wave.
	InitialWave int

	// FrameRateIndependentBrake scales the brake by frame time.
	FrameRateIndependentBrake bool

	Logger *log.Logger
}

// Result reports the state after a Step.
type Result struct {
	Ended   bool // The player collided with an asteroid
	Score   int  // Asteroids destroyed so far
	Wave    int  // Waves spawned so far
	Spawned int  // Asteroids spawned by a new wave this frame
}

// Session holds all entities of one game.
type Session struct {
	screen object.Screen
	rng    *rand.Rand
	seed   int64
	logger *log.Logger

	player      *object.Player
	asteroids   []*object.Asteroid
	projectiles []*object.Projectile
	particles   []*object.Particle

	// Objects emitted during the player update, merged afterwards.
	pendingAsteroids   []*object.Asteroid
	pendingProjectiles []*object.Projectile
	pendingParticles   []*object.Particle

	spawner  *object.AsteroidSpawner
	grid     *physics.SpatialGrid
	children []*object.Asteroid // Split buffer reused between frames

	score int
	ended bool
	debug bool
}

// New creates a session with the player at the center of the screen.
func New(opts Options) *Session {
	seed := opts.Seed
	rng := opts.Rand
	if rng == nil {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	player := object.NewPlayer(opts.Screen.Center())
	player.FrameRateIndependentBrake = opts.FrameRateIndependentBrake

	return &Session{
		screen:  opts.Screen,
		rng:     rng,
		seed:    seed,
		logger:  logger,
		player:  player,
		spawner: object.NewAsteroidSpawner(opts.InitialWave),
		grid: physics.NewSpatialGrid(
			float64(opts.Screen.Width),
			float64(opts.Screen.Height),
			object.MaxAsteroidReach(),
		),
	}
}

// Seed returns the seed the session's generator was created with.
// Zero when the generator was injected through Options.Rand.
func (s *Session) Seed() int64 {
	return s.seed
}

// Spawn queues an object to be merged after the current update pass.
// Implements object.Spawner.
func (s *Session) Spawn(obj object.Object) {
	switch o := obj.(type) {
	case *object.Particle:
		s.pendingParticles = append(s.pendingParticles, o)
	case *object.Projectile:
		s.pendingProjectiles = append(s.pendingProjectiles, o)
	case *object.Asteroid:
		s.pendingAsteroids = append(s.pendingAsteroids, o)
	}
}

// flushSpawned merges queued objects into the live collections.
func (s *Session) flushSpawned() {
	s.particles = append(s.particles, s.pendingParticles...)
	s.projectiles = append(s.projectiles, s.pendingProjectiles...)
	s.asteroids = append(s.asteroids, s.pendingAsteroids...)

	clear(s.pendingParticles)
	clear(s.pendingProjectiles)
	clear(s.pendingAsteroids)
	s.pendingParticles = s.pendingParticles[:0]
	s.pendingProjectiles = s.pendingProjectiles[:0]
	s.pendingAsteroids = s.pendingAsteroids[:0]
}

// Step advances the session by dt using the given input.
// Once the session has ended Step does nothing and returns the final result.
func (s *Session) Step(dt time.Duration, in input.Input) Result {
	if s.ended {
		return s.result(0)
	}
	if in.Debug {
		s.debug = !s.debug
	}

	ctx := object.UpdateContext{
		Delta:   dt,
		Input:   in,
		Screen:  s.screen,
		Spawner: s,
		Rand:    s.rng,
	}

	s.player.Update(ctx)
	s.flushSpawned()

	s.updateParticles(ctx)
	s.updateProjectiles(ctx)

	spawned := 0
	if len(s.asteroids) == 0 {
		wave := s.spawner.SpawnWave(s.rng, s.screen)
		s.asteroids = append(s.asteroids, wave...)
		spawned = len(wave)
		s.logger.Debug("wave spawned", "wave", s.spawner.Waves(), "asteroids", spawned)
	}

	for _, a := range s.asteroids {
		a.Update(ctx)
		if a.Contains(s.player.Pos) {
			s.ended = true
		}
	}

	s.resolveHits()

	return s.result(spawned)
}

func (s *Session) result(spawned int) Result {
	return Result{
		Ended:   s.ended,
		Score:   s.score,
		Wave:    s.spawner.Waves(),
		Spawned: spawned,
	}
}

func (s *Session) updateParticles(ctx object.UpdateContext) {
	kept := s.particles[:0]
	for _, p := range s.particles {
		if p.Update(ctx) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(s.particles[len(kept):])
	s.particles = kept
}

func (s *Session) updateProjectiles(ctx object.UpdateContext) {
	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.Update(ctx) || p.IsHit() {
			continue
		}
		kept = append(kept, p)
	}
	clear(s.projectiles[len(kept):])
	s.projectiles = kept
}

// Score returns the number of asteroids destroyed.
func (s *Session) Score() int {
	return s.score
}

// Ended reports whether the player has collided with an asteroid.
func (s *Session) Ended() bool {
	return s.ended
}

// Debug reports whether the collision overlay is drawn.
func (s *Session) Debug() bool {
	return s.debug
}

// Draw renders every entity through r.
func (s *Session) Draw(r object.Renderer) {
	s.player.Draw(r)
	for _, a := range s.asteroids {
		a.Draw(r)
	}
	for _, p := range s.particles {
		p.Draw(r)
	}
	for _, p := range s.projectiles {
		p.Draw(r)
	}
	if s.debug {
		for _, a := range s.asteroids {
			a.DrawFan(r)
		}
	}
}
