package object

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/vectoroids/internal/geom"
)

// collector records spawned objects.
type collector struct {
	objects []Object
}

func (c *collector) Spawn(obj Object) {
	c.objects = append(c.objects, obj)
}

// recorder captures polylines emitted through the Renderer interface.
type recorder struct {
	lines  [][]geom.Vec2
	colors []color.Color
}

func (r *recorder) DrawPolyline(points []geom.Vec2, _ float64, c color.Color) {
	r.lines = append(r.lines, append([]geom.Vec2(nil), points...))
	r.colors = append(r.colors, c)
}

var testScreen = Screen{Width: 800, Height: 600}

func frame(dt float64) time.Duration {
	return time.Duration(dt * float64(time.Second))
}

func newContext(dt float64, in Input, spawner Spawner) UpdateContext {
	return UpdateContext{
		Delta:   frame(dt),
		Input:   in,
		Screen:  testScreen,
		Spawner: spawner,
		Rand:    rand.New(rand.NewSource(1)),
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestScreenWrap(t *testing.T) {
	tests := []struct {
		name string
		in   geom.Vec2
		want geom.Vec2
	}{
		{"inside", geom.V(400, 300), geom.V(400, 300)},
		{"left within margin", geom.V(-149, 300), geom.V(-149, 300)},
		{"past left", geom.V(-151, 300), geom.V(930, 300)},
		{"past right", geom.V(951, 300), geom.V(-130, 300)},
		{"past top", geom.V(10, -151), geom.V(10, 730)},
		{"past bottom", geom.V(10, 751), geom.V(10, -130)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testScreen.Wrap(tt.in, 150, 130); got != tt.want {
				t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScreenInside(t *testing.T) {
	if !testScreen.Inside(geom.V(809, 300), 10) {
		t.Error("W+9 should be inside the culling bounds")
	}
	if testScreen.Inside(geom.V(810, 300), 10) {
		t.Error("bounds are strict at W+10")
	}
	if testScreen.Inside(geom.V(300, -11), 10) {
		t.Error("-11 should be outside")
	}
}

func TestScreenCenter(t *testing.T) {
	if c := testScreen.Center(); c != geom.V(400, 300) {
		t.Errorf("Center = %v", c)
	}
}

func TestReleaseObject(t *testing.T) {
	proj := NewProjectile(geom.V(1, 2), geom.Vec2{})
	ReleaseObject(proj)
	if proj.Pos != geom.V(1, 2) {
		t.Error("releasing an unpooled object should leave it untouched")
	}

	ReleaseObject(NewParticle(geom.V(1, 2), geom.Vec2{}))
	if p := NewParticle(geom.V(3, 4), geom.V(5, 6)); p.Pos != geom.V(3, 4) || p.Size != 0 || p.Fade != 1 {
		t.Errorf("pooled particle not reinitialised: %+v", p)
	}
}
