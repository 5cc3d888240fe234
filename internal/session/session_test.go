package session

import (
	"image/color"
	"io"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/input"
	"github.com/tomz197/vectoroids/internal/object"
)

const frame = time.Second / 60

var screen = object.Screen{Width: 800, Height: 600}

func newTestSession(seed int64) *Session {
	return New(Options{
		Screen: screen,
		Seed:   seed,
		Logger: log.New(io.Discard),
	})
}

// still returns a stationary, non-spinning asteroid.
func still(s *Session, size object.AsteroidSize, pos geom.Vec2) *object.Asteroid {
	return &object.Asteroid{Pos: pos, Size: size, Shape: object.GenerateShape(s.rng)}
}

type counter struct {
	lines int
	debug int
}

func (c *counter) DrawPolyline(_ []geom.Vec2, _ float64, col color.Color) {
	c.lines++
	if col == object.ColorDebug {
		c.debug++
	}
}

func TestNewSession(t *testing.T) {
	s := newTestSession(1)
	if s.player.Pos != screen.Center() {
		t.Errorf("player at %v, want screen center", s.player.Pos)
	}
	if s.Seed() != 1 {
		t.Errorf("Seed = %d", s.Seed())
	}
	if len(s.asteroids) != 0 || s.Score() != 0 || s.Ended() {
		t.Error("new session should start empty")
	}

	if seeded := newTestSession(0); seeded.Seed() == 0 {
		t.Error("zero seed should be replaced with a time-based one")
	}

	braking := New(Options{Screen: screen, FrameRateIndependentBrake: true, Logger: log.New(io.Discard)})
	if !braking.player.FrameRateIndependentBrake {
		t.Error("brake option not passed to the player")
	}
}

func TestWavesDouble(t *testing.T) {
	s := newTestSession(5)

	for i, want := range []int{2, 4, 8, 16} {
		res := s.Step(frame, input.Input{})
		if res.Spawned != want || len(s.asteroids) != want {
			t.Fatalf("wave %d spawned %d (live %d), want %d", i+1, res.Spawned, len(s.asteroids), want)
		}
		if res.Wave != i+1 {
			t.Errorf("Wave = %d, want %d", res.Wave, i+1)
		}
		if res.Ended {
			t.Fatal("player hit by a freshly spawned wave")
		}

		// Next frame with asteroids alive spawns nothing.
		if res := s.Step(frame, input.Input{}); res.Spawned != 0 {
			t.Errorf("spawned %d while asteroids remain", res.Spawned)
		}
		s.asteroids = nil
	}
}

func TestCustomInitialWave(t *testing.T) {
	s := New(Options{Screen: screen, Seed: 3, InitialWave: 5, Logger: log.New(io.Discard)})
	if res := s.Step(frame, input.Input{}); res.Spawned != 5 {
		t.Errorf("first wave = %d, want 5", res.Spawned)
	}
}

func TestLargeAsteroidDestroyed(t *testing.T) {
	s := newTestSession(2)
	s.asteroids = []*object.Asteroid{still(s, object.AsteroidLarge, geom.V(100, 100))}
	s.projectiles = []*object.Projectile{object.NewProjectile(geom.V(100, 100), geom.V(30, 0))}

	res := s.Step(frame, input.Input{})

	if res.Score != 1 {
		t.Errorf("Score = %d, want 1", res.Score)
	}
	if len(s.projectiles) != 0 {
		t.Errorf("%d projectiles left, want the hit one removed", len(s.projectiles))
	}
	if len(s.asteroids) != 2 {
		t.Fatalf("%d asteroids, want 2 fragments", len(s.asteroids))
	}
	for _, a := range s.asteroids {
		if a.Size != object.AsteroidMedium || a.Pos != geom.V(100, 100) {
			t.Errorf("fragment %v at %v, want medium at (100,100)", a.Size, a.Pos)
		}
	}
	if res.Ended {
		t.Error("distant hit should not end the session")
	}
}

func TestSplitCounts(t *testing.T) {
	tests := []struct {
		size      object.AsteroidSize
		fragments int
	}{
		{object.AsteroidLarge, 2},
		{object.AsteroidMedium, 2},
		{object.AsteroidSmall, 0},
	}

	for _, tt := range tests {
		t.Run(tt.size.String(), func(t *testing.T) {
			s := newTestSession(8)
			pos := geom.V(150, 120)
			s.asteroids = []*object.Asteroid{still(s, tt.size, pos)}
			s.projectiles = []*object.Projectile{object.NewProjectile(pos, geom.Vec2{})}

			res := s.Step(frame, input.Input{})
			if res.Score != 1 {
				t.Errorf("Score = %d, want 1", res.Score)
			}
			if len(s.asteroids) != tt.fragments {
				t.Errorf("%d fragments, want %d", len(s.asteroids), tt.fragments)
			}
		})
	}
}

func TestProjectileDestroysOneAsteroid(t *testing.T) {
	s := newTestSession(4)
	pos := geom.V(120, 120)
	first := still(s, object.AsteroidSmall, pos)
	second := still(s, object.AsteroidSmall, pos)
	s.asteroids = []*object.Asteroid{first, second}
	s.projectiles = []*object.Projectile{object.NewProjectile(pos, geom.Vec2{})}

	res := s.Step(frame, input.Input{})

	if res.Score != 1 {
		t.Errorf("Score = %d, want 1", res.Score)
	}
	if len(s.asteroids) != 1 || s.asteroids[0] != second {
		t.Errorf("expected only the second asteroid to survive, got %d asteroids", len(s.asteroids))
	}
	if len(s.projectiles) != 0 {
		t.Error("used projectile should be swept")
	}
}

func TestFirstProjectileWins(t *testing.T) {
	s := newTestSession(6)
	pos := geom.V(200, 150)
	s.asteroids = []*object.Asteroid{still(s, object.AsteroidSmall, pos)}
	first := object.NewProjectile(pos, geom.Vec2{})
	second := object.NewProjectile(pos.Add(geom.V(1, 0)), geom.Vec2{})
	s.projectiles = []*object.Projectile{first, second}

	res := s.Step(frame, input.Input{})

	if res.Score != 1 {
		t.Errorf("Score = %d, want 1", res.Score)
	}
	if len(s.projectiles) != 1 || s.projectiles[0] != second {
		t.Error("the earlier projectile should be consumed and the later one kept")
	}
}

func TestProjectileCulling(t *testing.T) {
	tests := []struct {
		x    float64
		kept bool
	}{
		{float64(screen.Width) + 9, true},
		{float64(screen.Width) + 11, false},
	}

	for _, tt := range tests {
		s := newTestSession(10)
		// Keeps the wave spawner idle.
		s.asteroids = []*object.Asteroid{still(s, object.AsteroidSmall, geom.V(100, 100))}
		s.projectiles = []*object.Projectile{object.NewProjectile(geom.V(tt.x, 300), geom.Vec2{})}

		s.Step(frame, input.Input{})
		if got := len(s.projectiles) == 1; got != tt.kept {
			t.Errorf("projectile at x=%v kept = %v, want %v", tt.x, got, tt.kept)
		}
	}
}

func TestPlayerCollisionEndsSession(t *testing.T) {
	s := newTestSession(12)
	s.asteroids = []*object.Asteroid{still(s, object.AsteroidMedium, s.player.Pos)}

	res := s.Step(frame, input.Input{})
	if !res.Ended {
		t.Fatal("asteroid over the player should end the session")
	}

	before := s.Snapshot()
	after := s.Step(frame, input.Input{Thrust: true, Fire: true, Left: true})
	if after != res {
		t.Errorf("Step after end = %+v, want %+v", after, res)
	}
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("ended session changed state")
	}
}

func TestCollisionsResolvedOnFinalFrame(t *testing.T) {
	s := newTestSession(14)
	s.asteroids = []*object.Asteroid{
		still(s, object.AsteroidMedium, s.player.Pos),
		still(s, object.AsteroidSmall, geom.V(50, 50)),
	}
	s.projectiles = []*object.Projectile{object.NewProjectile(geom.V(50, 50), geom.Vec2{})}

	res := s.Step(frame, input.Input{})
	if !res.Ended || res.Score != 1 {
		t.Errorf("got %+v, want ended with score 1", res)
	}
}

func TestIdlePlayerDoesNotDrift(t *testing.T) {
	s := newTestSession(16)
	// A stationary asteroid far away keeps waves from spawning.
	s.asteroids = []*object.Asteroid{still(s, object.AsteroidSmall, geom.V(20, 20))}

	for range 1000 {
		s.Step(frame, input.Input{})
	}
	if s.player.Pos != screen.Center() {
		t.Errorf("idle player drifted to %v", s.player.Pos)
	}
}

func TestJetParticleUpdatedOnEmitFrame(t *testing.T) {
	s := newTestSession(18)
	s.asteroids = []*object.Asteroid{still(s, object.AsteroidSmall, geom.V(20, 20))}
	dt := 40 * time.Millisecond

	for range 3 {
		s.Step(dt, input.Input{Thrust: true})
	}
	snap := s.Snapshot()
	if len(snap.Particles) != 1 {
		t.Fatalf("%d particles, want 1", len(snap.Particles))
	}
	if p := snap.Particles[0]; p.Fade < 0.96-1e-9 || p.Fade > 0.96+1e-9 {
		t.Errorf("Fade = %v, want 0.96", p.Fade)
	}
}

func TestFiredProjectileMovesOnEmitFrame(t *testing.T) {
	s := newTestSession(20)
	s.asteroids = []*object.Asteroid{still(s, object.AsteroidSmall, geom.V(20, 20))}

	s.Step(frame, input.Input{Fire: true})
	if len(s.projectiles) != 1 {
		t.Fatalf("%d projectiles, want 1", len(s.projectiles))
	}
	want := screen.Center().Y - 240*frame.Seconds()
	if got := s.projectiles[0].Pos.Y; got > want+1e-9 || got < want-1e-9 {
		t.Errorf("projectile y = %v, want %v", got, want)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a := newTestSession(99)
	b := New(Options{Screen: screen, Rand: rand.New(rand.NewSource(99)), Logger: log.New(io.Discard)})

	inputs := []input.Input{
		{Thrust: true},
		{Thrust: true, Left: true, Fire: true},
		{Right: true, Fire: true},
		{Brake: true},
	}
	for i := range 300 {
		in := inputs[i%len(inputs)]
		if ra, rb := a.Step(frame, in), b.Step(frame, in); ra != rb {
			t.Fatalf("frame %d: results differ: %+v vs %+v", i, ra, rb)
		}
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Error("same seed produced different states")
	}
}

func TestDrawAndDebugOverlay(t *testing.T) {
	s := newTestSession(22)
	s.asteroids = []*object.Asteroid{still(s, object.AsteroidLarge, geom.V(100, 100))}

	c := &counter{}
	s.Draw(c)
	if c.lines != 2 || c.debug != 0 {
		t.Errorf("drew %d lines (%d debug), want player and asteroid only", c.lines, c.debug)
	}

	s.Step(frame, input.Input{Debug: true})
	if !s.Debug() {
		t.Fatal("debug overlay not toggled")
	}
	c = &counter{}
	s.Draw(c)
	if c.debug != 10 {
		t.Errorf("overlay drew %d triangles, want 10", c.debug)
	}

	snap := s.Snapshot()
	c = &counter{}
	snap.Draw(c)
	if c.lines != 2 {
		t.Errorf("snapshot drew %d lines, want 2", c.lines)
	}
}
