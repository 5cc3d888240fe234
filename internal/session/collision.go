package session

import (
	"github.com/tomz197/vectoroids/internal/object"
)

// resolveHits destroys every asteroid containing a live projectile.
//
// Asteroids are visited in collection order and each one is destroyed by the
// lowest-indexed projectile inside it that has not been used yet, so a
// projectile never destroys more than one asteroid. Fragments are appended
// after the pass and used projectiles are swept before returning.
func (s *Session) resolveHits() int {
	if len(s.projectiles) == 0 || len(s.asteroids) == 0 {
		return 0
	}

	s.grid.Clear()
	for i, p := range s.projectiles {
		s.grid.Insert(p.Pos, i)
	}

	destroyed := 0
	kept := s.asteroids[:0]
	for _, a := range s.asteroids {
		hit := s.firstHit(a)
		if hit < 0 {
			kept = append(kept, a)
			continue
		}

		s.projectiles[hit].MarkHit()
		s.score++
		destroyed++
		s.children = append(s.children, a.Split(s.rng)...)
	}
	clear(s.asteroids[len(kept):])
	s.asteroids = append(kept, s.children...)

	clear(s.children)
	s.children = s.children[:0]

	s.sweepProjectiles()
	return destroyed
}

// firstHit returns the index of the first unused projectile inside a, or -1.
func (s *Session) firstHit(a *object.Asteroid) int {
	hit := -1
	s.grid.QueryAround(a.Pos, func(i int) bool {
		if hit >= 0 && i > hit {
			return false
		}
		p := s.projectiles[i]
		if !p.IsHit() && a.Contains(p.Pos) {
			hit = i
		}
		return false
	})
	return hit
}

func (s *Session) sweepProjectiles() {
	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		if !p.IsHit() {
			kept = append(kept, p)
		}
	}
	clear(s.projectiles[len(kept):])
	s.projectiles = kept
}
