package geom

// Transform maps local shape points to world space.
// Points are scaled first, then rotated, then translated.
type Transform struct {
	Translation Vec2
	Rotation    float64 // Radians
	Scale       float64
}

// Apply maps a single local point to world space.
func (t Transform) Apply(p Vec2) Vec2 {
	return p.Scale(t.Scale).Rotate(t.Rotation).Add(t.Translation)
}

// ApplyAll maps every point of shape into dst and returns it.
// dst is grown if it is too small; pass nil to allocate.
func (t Transform) ApplyAll(dst, shape []Vec2) []Vec2 {
	if cap(dst) < len(shape) {
		dst = make([]Vec2, len(shape))
	}
	dst = dst[:len(shape)]
	for i, p := range shape {
		dst[i] = t.Apply(p)
	}
	return dst
}

// Closed returns points with the first vertex appended, ready for a polyline.
func Closed(points []Vec2) []Vec2 {
	if len(points) == 0 {
		return points
	}
	return append(points, points[0])
}
