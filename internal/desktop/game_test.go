package desktop

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/vectoroids/internal/config"
)

type fakeKeys struct {
	pressed map[ebiten.Key]bool
	just    map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{pressed: map[ebiten.Key]bool{}, just: map[ebiten.Key]bool{}}
}

func (f *fakeKeys) Pressed(k ebiten.Key) bool     { return f.pressed[k] }
func (f *fakeKeys) JustPressed(k ebiten.Key) bool { return f.just[k] }

func (f *fakeKeys) tap(k ebiten.Key) {
	f.pressed[k] = true
	f.just[k] = true
}

func (f *fakeKeys) release() {
	clear(f.pressed)
	clear(f.just)
}

func newTestGame(t *testing.T) (*Game, *fakeKeys) {
	t.Helper()
	keys := newFakeKeys()
	g, err := newGame(config.Game{
		Width:       800,
		Height:      600,
		Seed:        1,
		FPS:         60,
		InitialWave: 2,
	}, log.New(io.Discard), keys)
	if err != nil {
		t.Fatal(err)
	}
	return g, keys
}

func TestReadInput(t *testing.T) {
	keys := newFakeKeys()
	keys.pressed[ebiten.KeyArrowLeft] = true
	keys.pressed[ebiten.KeyI] = true
	keys.tap(ebiten.KeySpace)

	in := ReadInput(keys)
	if !in.Left || in.Right || !in.Thrust || in.Brake {
		t.Errorf("held keys mapped wrong: %+v", in)
	}
	if !in.Fire || !in.Confirm {
		t.Errorf("space should fire and confirm: %+v", in)
	}
	if in.Quit || in.Debug {
		t.Errorf("unexpected edge keys: %+v", in)
	}

	keys.release()
	keys.pressed[ebiten.KeySpace] = true
	if in := ReadInput(keys); !in.Fire || in.Confirm {
		t.Errorf("held space should fire without confirming: %+v", in)
	}

	keys.release()
	keys.tap(ebiten.KeyEscape)
	keys.tap(ebiten.KeyF)
	if in := ReadInput(keys); !in.Quit || !in.Debug {
		t.Errorf("escape and f not mapped: %+v", in)
	}
}

func TestMenuStartsSession(t *testing.T) {
	g, keys := newTestGame(t)
	if g.state != stateMenu {
		t.Fatalf("initial state = %v", g.state)
	}

	keys.tap(ebiten.KeySpace)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if g.state != statePlaying || g.sess == nil {
		t.Fatalf("state = %v, want playing", g.state)
	}

	keys.release()
	for range 10 {
		if err := g.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if g.result.Wave != 1 || g.result.Ended {
		t.Errorf("result = %+v, want first wave running", g.result)
	}
}

func TestQuitTerminates(t *testing.T) {
	g, keys := newTestGame(t)
	keys.tap(ebiten.KeyQ)
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("err = %v, want ebiten.Termination", err)
	}
}

func TestGameOverWaitsBeforeConfirm(t *testing.T) {
	g, keys := newTestGame(t)
	g.setState(stateGameOver)

	keys.tap(ebiten.KeySpace)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if g.state != stateGameOver {
		t.Fatal("confirm accepted before the delay")
	}

	keys.release()
	for range 40 {
		g.Update()
	}
	keys.tap(ebiten.KeySpace)
	g.Update()
	if g.state != stateMenu {
		t.Errorf("state = %v, want menu", g.state)
	}
}

func TestPromptPulses(t *testing.T) {
	g, _ := newTestGame(t)
	lo, hi := float32(1), float32(0)
	for range 200 {
		g.Update()
		lo = min(lo, g.promptAlpha)
		hi = max(hi, g.promptAlpha)
	}
	if lo > pulseLow+0.05 || hi < 0.95 {
		t.Errorf("alpha ranged [%v, %v], want about [%v, 1]", lo, hi, pulseLow)
	}
	if lo < pulseLow-0.001 || hi > 1.001 {
		t.Errorf("alpha left its range: [%v, %v]", lo, hi)
	}
}

func TestLayoutIsFixed(t *testing.T) {
	g, _ := newTestGame(t)
	if w, h := g.Layout(1920, 1080); w != 800 || h != 600 {
		t.Errorf("Layout = %dx%d", w, h)
	}
}

func TestStateString(t *testing.T) {
	if got := stateGameOver.String(); got != "game over" {
		t.Errorf("String() = %q", got)
	}
	if got := state(9).String(); got != "state(9)" {
		t.Errorf("String() = %q", got)
	}
}
