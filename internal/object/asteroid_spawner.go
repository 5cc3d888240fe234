package object

import (
	"math/rand"

	"github.com/tomz197/vectoroids/internal/geom"
)

// DefaultInitialWave is the number of large asteroids in the first wave.
const DefaultInitialWave = 2

// AsteroidSpawner releases waves of large asteroids from the screen edges.
// Each wave is twice the size of the previous one.
type AsteroidSpawner struct {
	next  int
	waves int
}

// NewAsteroidSpawner creates a spawner whose first wave has initial asteroids.
func NewAsteroidSpawner(initial int) *AsteroidSpawner {
	if initial < 1 {
		initial = DefaultInitialWave
	}
	return &AsteroidSpawner{
		next: initial,
	}
}

// Next returns the size of the upcoming wave.
func (s *AsteroidSpawner) Next() int {
	return s.next
}

// Waves returns how many waves have been spawned.
func (s *AsteroidSpawner) Waves() int {
	return s.waves
}

// SpawnWave creates the next wave and doubles the size of the following one.
func (s *AsteroidSpawner) SpawnWave(rng *rand.Rand, screen Screen) []*Asteroid {
	wave := make([]*Asteroid, 0, s.next)
	for range s.next {
		wave = append(wave, NewAsteroid(rng, AsteroidLarge, EdgePosition(rng, screen)))
	}
	s.waves++
	s.next *= 2
	return wave
}

// EdgePosition picks a spawn point just outside the nearest horizontal or
// vertical screen edge of a uniformly random point.
func EdgePosition(rng *rand.Rand, screen Screen) geom.Vec2 {
	w := float64(screen.Width)
	h := float64(screen.Height)
	offset := AsteroidLarge.Scale()

	x := rng.Float64() * w
	y := rng.Float64() * h

	if rng.Float64() < 0.5 {
		if y > h/2 {
			y = h + offset
		} else {
			y = -offset
		}
	} else {
		if x > w/2 {
			x = w + offset
		} else {
			x = -offset
		}
	}
	return geom.V(x, y)
}
