// Package physics provides collision detection for polygon-shaped entities.
//
// Shapes are tested by splitting them into a triangle fan around their local
// origin and checking each triangle with an area-sum test. This is exact only
// for polygons that are star-shaped around that origin (convex shapes, or
// mildly concave ones that contain their own center), which holds for every
// shape the game generates.
package physics

import (
	"math"

	"github.com/tomz197/vectoroids/internal/geom"
)

// AreaTolerance is the allowed difference between a triangle's area and the
// summed areas of the three sub-triangles formed with the probe point.
const AreaTolerance = 0.1

// Triangle is three world-space vertices.
type Triangle struct {
	A, B, C geom.Vec2
}

// TriangleArea returns the unsigned area of triangle abc.
func TriangleArea(a, b, c geom.Vec2) float64 {
	return math.Abs(a.X*(b.Y-c.Y)+b.X*(c.Y-a.Y)+c.X*(a.Y-b.Y)) / 2
}

// PointInTriangle reports whether p lies inside or on triangle abc.
// Degenerate (zero-area) triangles only match points lying on them.
func PointInTriangle(p, a, b, c geom.Vec2) bool {
	whole := TriangleArea(a, b, c)
	parts := TriangleArea(p, a, b) + TriangleArea(p, b, c) + TriangleArea(p, a, c)
	return math.Abs(whole-parts) < AreaTolerance
}

// Fan appends the world-space triangle fan of shape to dst and returns it.
// Each triangle joins the local origin with one edge of the shape, including
// the closing edge from the last vertex back to the first.
func Fan(dst []Triangle, shape []geom.Vec2, t geom.Transform) []Triangle {
	if len(shape) == 0 {
		return dst
	}
	center := t.Apply(geom.Vec2{})
	prev := t.Apply(shape[len(shape)-1])
	for _, p := range shape {
		cur := t.Apply(p)
		dst = append(dst, Triangle{A: center, B: prev, C: cur})
		prev = cur
	}
	return dst
}

// FanContains reports whether world point p lies inside shape placed by t.
func FanContains(shape []geom.Vec2, t geom.Transform, p geom.Vec2) bool {
	if len(shape) == 0 {
		return false
	}
	center := t.Apply(geom.Vec2{})
	prev := t.Apply(shape[len(shape)-1])
	for _, v := range shape {
		cur := t.Apply(v)
		if PointInTriangle(p, center, prev, cur) {
			return true
		}
		prev = cur
	}
	return false
}

// Reach returns the largest distance from the local origin to any vertex of
// shape after scaling. Used to size broad-phase cells.
func Reach(shape []geom.Vec2, scale float64) float64 {
	r := 0.0
	for _, p := range shape {
		if l := p.Len() * scale; l > r {
			r = l
		}
	}
	return r
}
