// Package desktop runs the game in a window using ebiten.
package desktop

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/tomz197/vectoroids/internal/config"
	"github.com/tomz197/vectoroids/internal/object"
	"github.com/tomz197/vectoroids/internal/session"
)

type state int

const (
	stateMenu state = iota
	statePlaying
	stateGameOver
)

func (s state) String() string {
	switch s {
	case stateMenu:
		return "menu"
	case statePlaying:
		return "playing"
	case stateGameOver:
		return "game over"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

const (
	confirmDelay = 500 * time.Millisecond
	pulseTime    = 0.8
	pulseLow     = 0.25
)

var menuControls = []string{
	"W to accelerate",
	"S to stabilize velocity",
	"A and D to turn",
	"Space to shoot",
	"F to show hitboxes",
	"Q to quit",
}

// Game implements ebiten.Game with a menu, a running session and a game
// over screen.
type Game struct {
	cfg    config.Game
	logger *log.Logger
	keys   KeySource
	fonts  fonts

	state   state
	sess    *session.Session
	result  session.Result
	started time.Time
	elapsed time.Duration // Time spent on the current screen

	prompt      *gween.Tween
	promptAlpha float32
	fadingOut   bool
}

// NewGame creates a game showing the menu. A nil logger uses the default.
func NewGame(cfg config.Game, logger *log.Logger) (*Game, error) {
	return newGame(cfg, logger, ebitenKeys{})
}

func newGame(cfg config.Game, logger *log.Logger, keys KeySource) (*Game, error) {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.FPS <= 0 {
		cfg.FPS = config.DefaultFPS
	}
	f, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	g := &Game{
		cfg:         cfg,
		logger:      logger,
		keys:        keys,
		fonts:       f,
		promptAlpha: 1,
		fadingOut:   true,
	}
	g.prompt = g.newPulse()
	return g, nil
}

func (g *Game) newPulse() *gween.Tween {
	if g.fadingOut {
		return gween.New(1, pulseLow, pulseTime, ease.InOutSine)
	}
	return gween.New(pulseLow, 1, pulseTime, ease.InOutSine)
}

// Update advances one tick.
func (g *Game) Update() error {
	dt := g.cfg.FrameDuration()
	in := ReadInput(g.keys)
	if in.Quit {
		return ebiten.Termination
	}

	g.elapsed += dt
	g.pulse(dt)

	switch g.state {
	case stateMenu:
		if in.Confirm {
			g.startSession()
		}
	case statePlaying:
		g.result = g.sess.Step(dt, in)
		if g.result.Ended {
			g.logger.Info("session ended",
				"score", g.result.Score,
				"waves", g.result.Wave,
				"duration", time.Since(g.started).Round(time.Second),
			)
			g.setState(stateGameOver)
		}
	case stateGameOver:
		if in.Confirm && g.elapsed >= confirmDelay {
			g.setState(stateMenu)
		}
	}
	return nil
}

func (g *Game) setState(s state) {
	g.logger.Debug("screen changed", "from", g.state, "to", s)
	g.state = s
	g.elapsed = 0
}

func (g *Game) startSession() {
	g.sess = session.New(session.Options{
		Screen:                    object.Screen{Width: g.cfg.Width, Height: g.cfg.Height},
		Seed:                      g.cfg.Seed,
		InitialWave:               g.cfg.InitialWave,
		FrameRateIndependentBrake: g.cfg.BrakeDT,
		Logger:                    g.logger,
	})
	g.result = session.Result{}
	g.started = time.Now()
	g.logger.Info("session started", "seed", g.sess.Seed())
	g.setState(statePlaying)
}

func (g *Game) pulse(dt time.Duration) {
	alpha, done := g.prompt.Update(float32(dt.Seconds()))
	g.promptAlpha = alpha
	if done {
		g.fadingOut = !g.fadingOut
		g.prompt = g.newPulse()
	}
}

// Draw renders the current screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	w, h := float64(g.cfg.Width), float64(g.cfg.Height)

	switch g.state {
	case stateMenu:
		top := h/2 - float64(len(menuControls)+6)*textSize/2
		drawText(screen, g.fonts.title, "A S T E R O I D S", w/2, top, text.AlignCenter, 1)
		for i, line := range menuControls {
			drawText(screen, g.fonts.text, line, w/2, top+3*textSize+float64(i)*textSize*1.5, text.AlignCenter, 1)
		}
		drawText(screen, g.fonts.text, "Press Space to begin", w/2, h-4*textSize, text.AlignCenter, g.promptAlpha)

	case statePlaying:
		g.sess.Draw(screenRenderer{dst: screen})
		g.drawHUD(screen)

	case stateGameOver:
		g.sess.Draw(screenRenderer{dst: screen})
		drawText(screen, g.fonts.title, "GAME OVER", w/2, h/2-3*textSize, text.AlignCenter, 1)
		drawText(screen, g.fonts.text, fmt.Sprintf("Score: %d", g.result.Score), w/2, h/2, text.AlignCenter, 1)
		drawText(screen, g.fonts.text, "Press Space to return to the menu", w/2, h/2+3*textSize, text.AlignCenter, g.promptAlpha)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	drawText(screen, g.fonts.text, fmt.Sprintf("Score: %d", g.result.Score), 10, 8, text.AlignStart, 1)
	drawText(screen, g.fonts.text, fmt.Sprintf("Wave: %d", g.result.Wave), float64(g.cfg.Width)-10, 8, text.AlignEnd, 1)
}

// Layout keeps the logical viewport fixed and lets ebiten scale the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
