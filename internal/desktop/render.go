package desktop

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tomz197/vectoroids/internal/geom"
)

const (
	titleSize = 32
	textSize  = 16
)

// screenRenderer strokes polylines onto an ebiten image.
type screenRenderer struct {
	dst *ebiten.Image
}

func (r screenRenderer) DrawPolyline(points []geom.Vec2, thickness float64, c color.Color) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		vector.StrokeLine(r.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(thickness), c, true)
	}
}

type fonts struct {
	title text.Face
	text  text.Face
}

func loadFonts() (fonts, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fonts{}, err
	}
	return fonts{
		title: &text.GoTextFace{Source: src, Size: titleSize},
		text:  &text.GoTextFace{Source: src, Size: textSize},
	}, nil
}

// drawText draws s with its top edge at y, aligned horizontally on x.
func drawText(dst *ebiten.Image, face text.Face, s string, x, y float64, align text.Align, alpha float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	op.ColorScale.ScaleAlpha(alpha)
	op.PrimaryAlign = align
	text.Draw(dst, s, face, op)
}
