package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/vectoroids/internal/config"
)

func testOptions() Options {
	return Options{
		Game: config.Game{
			Width:       800,
			Height:      600,
			Seed:        1,
			FPS:         200,
			InitialWave: 2,
		},
		Logger:   log.New(io.Discard),
		TermSize: func() (int, int, error) { return 80, 30, nil },
		Renderer: lipgloss.NewRenderer(io.Discard),
	}
}

// newTestDriver returns a driver and a function that types keys after a delay.
func newTestDriver(t *testing.T, opts Options) (*Driver, *bytes.Buffer, func(delay time.Duration, keys string)) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	var out bytes.Buffer
	d := NewDriver(bufio.NewReader(pr), &out, opts)
	typeKeys := func(delay time.Duration, keys string) {
		go func() {
			time.Sleep(delay)
			pw.Write([]byte(keys))
		}()
	}
	return d, &out, typeKeys
}

func withTimeout(t *testing.T, d time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}

func TestRunMenuConfirm(t *testing.T) {
	d, out, typeKeys := newTestDriver(t, testOptions())
	typeKeys(50*time.Millisecond, " ")

	if err := d.RunMenu(withTimeout(t, 2*time.Second)); err != nil {
		t.Fatalf("RunMenu: %v", err)
	}
	for _, want := range []string{"A S T E R O I D S", "Space to shoot", "Press Space to begin"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("menu output missing %q", want)
		}
	}
}

func TestRunQuit(t *testing.T) {
	d, out, typeKeys := newTestDriver(t, testOptions())
	typeKeys(50*time.Millisecond, "q")

	if err := d.Run(withTimeout(t, 2*time.Second)); err != nil {
		t.Fatalf("quitting should not be an error: %v", err)
	}
	if !strings.HasSuffix(out.String(), "\033[?25h") {
		t.Error("cursor not restored on exit")
	}
}

func TestRunSessionDrawsHUD(t *testing.T) {
	d, out, _ := newTestDriver(t, testOptions())

	score, err := d.RunSession(withTimeout(t, 300*time.Millisecond))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if score != 0 {
		t.Errorf("score = %d", score)
	}
	for _, want := range []string{"Score: 0", "Wave: 1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("session output missing %q", want)
		}
	}
}

func TestRunGameOverIgnoresEarlyConfirm(t *testing.T) {
	d, out, typeKeys := newTestDriver(t, testOptions())
	typeKeys(100*time.Millisecond, " ")
	typeKeys(700*time.Millisecond, " ")

	start := time.Now()
	if err := d.RunGameOver(withTimeout(t, 3*time.Second), 42); err != nil {
		t.Fatalf("RunGameOver: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 600*time.Millisecond {
		t.Errorf("returned after %v, the early confirm should be ignored", elapsed)
	}
	if !strings.Contains(out.String(), "Score: 42") || !strings.Contains(out.String(), "GAME OVER") {
		t.Error("game over screen missing score")
	}
}

func TestIdleTimeout(t *testing.T) {
	opts := testOptions()
	opts.IdleTimeout = 100 * time.Millisecond
	d, _, _ := newTestDriver(t, opts)

	if err := d.Run(withTimeout(t, 2*time.Second)); !errors.Is(err, ErrIdle) {
		t.Errorf("err = %v, want ErrIdle", err)
	}
}

func TestNewDriverDefaults(t *testing.T) {
	d, _, _ := newTestDriver(t, Options{
		Logger:   log.New(io.Discard),
		TermSize: func() (int, int, error) { return 80, 30, nil },
		Renderer: lipgloss.NewRenderer(io.Discard),
	})
	if d.opts.Game.FPS != config.DefaultFPS || d.opts.Game.Width != config.DefaultWidth {
		t.Errorf("defaults not applied: %+v", d.opts.Game)
	}

	d.updateLayout()
	if col, row := d.center(); col != 41 || row != 16 {
		t.Errorf("center = (%d,%d), want (41,16)", col, row)
	}
}
