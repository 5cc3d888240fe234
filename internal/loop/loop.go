// Package loop drives the game on a terminal: it pumps frames, reads input,
// and moves between the menu, a running session and the game over screen.
package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/vectoroids/internal/config"
	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/input"
)

// ErrQuit is returned by the screens when the player asks to quit.
var ErrQuit = errors.New("quit")

// ErrIdle is returned when no input arrived within Options.IdleTimeout.
var ErrIdle = errors.New("idle timeout")

// Options configures a Driver.
type Options struct {
	Game   config.Game
	Logger *log.Logger

	// TermSize reports the terminal dimensions. Defaults to stdout's size.
	TermSize draw.TermSizeFunc

	// Renderer styles text for the output terminal. Defaults to lipgloss's
	// renderer for stdout.
	Renderer *lipgloss.Renderer

	// IdleTimeout ends the run after this long without input. Zero disables it.
	IdleTimeout time.Duration
}

// Driver runs screens on one terminal.
type Driver struct {
	opts   Options
	logger *log.Logger
	stream *input.Stream
	out    io.Writer
	cw     *draw.ChunkWriter
	canvas *draw.Canvas
	layout draw.Layout
	styles styles

	lastInput time.Time
}

// NewDriver creates a driver reading keys from r and drawing to w.
func NewDriver(r *bufio.Reader, w io.Writer, opts Options) *Driver {
	if opts.TermSize == nil {
		opts.TermSize = draw.DefaultTermSizeFunc
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}
	if opts.Game.FPS <= 0 {
		opts.Game.FPS = config.DefaultFPS
	}
	if opts.Game.Width <= 0 || opts.Game.Height <= 0 {
		opts.Game.Width = config.DefaultWidth
		opts.Game.Height = config.DefaultHeight
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Driver{
		opts:      opts,
		logger:    logger,
		stream:    input.StartStream(r),
		out:       w,
		cw:        draw.NewChunkWriter(w),
		canvas:    draw.NewScaledCanvas(1, 1, float64(opts.Game.Width), float64(opts.Game.Height)),
		styles:    newStyles(opts.Renderer),
		lastInput: time.Now(),
	}
}

// Run shows the menu, a session and the game over screen in turn until the
// player quits, the context is cancelled, or the terminal goes idle.
// Quitting is not an error.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewDriver(r, w, opts).Run(ctx)
}

// Run loops over the screens. See the package-level Run.
func (d *Driver) Run(ctx context.Context) error {
	draw.HideCursor(d.out)
	draw.ClearScreen(d.out)
	defer func() {
		draw.ClearScreen(d.out)
		draw.ShowCursor(d.out)
	}()

	for {
		if err := d.RunMenu(ctx); err != nil {
			return ignoreQuit(err)
		}
		score, err := d.RunSession(ctx)
		if err != nil {
			return ignoreQuit(err)
		}
		if err := d.RunGameOver(ctx, score); err != nil {
			return ignoreQuit(err)
		}
	}
}

func ignoreQuit(err error) error {
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

// frameFunc handles one frame. It returns true once the screen is finished.
type frameFunc func(dt time.Duration, in input.Input) (done bool, err error)

// pump runs frame at the configured rate until it reports done.
// Held keys from the previous screen are dropped before the first frame.
func (d *Driver) pump(ctx context.Context, frame frameFunc) error {
	d.stream.Reset()
	frameTime := d.opts.Game.FrameDuration()
	lastTime := time.Now()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		in := input.ReadInput(d.stream)
		if in.Quit {
			return ErrQuit
		}
		if err := d.checkIdle(in, frameStart); err != nil {
			return err
		}
		d.updateLayout()

		done, err := frame(delta, in)
		if err != nil || done {
			return err
		}

		// Frame timing
		if elapsed := time.Since(frameStart); elapsed < frameTime {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(frameTime - elapsed):
			}
		}
	}
}

func (d *Driver) checkIdle(in input.Input, now time.Time) error {
	if in != (input.Input{}) {
		d.lastInput = now
		return nil
	}
	if d.opts.IdleTimeout > 0 && now.Sub(d.lastInput) > d.opts.IdleTimeout {
		return ErrIdle
	}
	return nil
}

// updateLayout fits the canvas to the current terminal size.
func (d *Driver) updateLayout() {
	width, height, err := d.opts.TermSize()
	if err != nil {
		return
	}
	d.layout = draw.Fit(width, height, float64(d.opts.Game.Width), float64(d.opts.Game.Height))
	d.canvas.Resize(d.layout.Cols, d.layout.Rows)
	d.canvas.SetOffset(d.layout.OffsetCol, d.layout.OffsetRow)
}

// present clears the terminal and writes the canvas and texts in one flush.
func (d *Driver) present(texts ...draw.Text) error {
	d.cw.WriteString("\033[H\033[2J")
	if err := d.canvas.Render(d.cw); err != nil {
		return err
	}
	if err := d.canvas.RenderBorder(d.cw); err != nil {
		return err
	}
	for _, t := range texts {
		t.Draw(d.cw)
	}
	if err := d.cw.Flush(); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// center returns the 1-based terminal cell at the middle of the canvas.
func (d *Driver) center() (col, row int) {
	return d.layout.OffsetCol + d.layout.Cols/2 + 1, d.layout.OffsetRow + d.layout.Rows/2 + 1
}
