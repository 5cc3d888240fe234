package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/vectoroids/internal/input"
)

// KeySource reports keyboard state for the current tick.
type KeySource interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

var (
	leftKeys   = []ebiten.Key{ebiten.KeyA, ebiten.KeyJ, ebiten.KeyArrowLeft}
	rightKeys  = []ebiten.Key{ebiten.KeyD, ebiten.KeyL, ebiten.KeyArrowRight}
	thrustKeys = []ebiten.Key{ebiten.KeyW, ebiten.KeyI, ebiten.KeyArrowUp}
	brakeKeys  = []ebiten.Key{ebiten.KeyS, ebiten.KeyK, ebiten.KeyArrowDown}
)

// ReadInput maps the keyboard onto the same controls as the terminal.
func ReadInput(keys KeySource) input.Input {
	return input.Input{
		Left:    anyPressed(keys, leftKeys),
		Right:   anyPressed(keys, rightKeys),
		Thrust:  anyPressed(keys, thrustKeys),
		Brake:   anyPressed(keys, brakeKeys),
		Fire:    keys.Pressed(ebiten.KeySpace),
		Confirm: keys.JustPressed(ebiten.KeySpace) || keys.JustPressed(ebiten.KeyEnter),
		Quit:    keys.JustPressed(ebiten.KeyQ) || keys.JustPressed(ebiten.KeyEscape),
		Debug:   keys.JustPressed(ebiten.KeyF),
	}
}

func anyPressed(keys KeySource, set []ebiten.Key) bool {
	for _, k := range set {
		if keys.Pressed(k) {
			return true
		}
	}
	return false
}
