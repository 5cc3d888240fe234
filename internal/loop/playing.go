package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/input"
	"github.com/tomz197/vectoroids/internal/object"
	"github.com/tomz197/vectoroids/internal/session"
)

// NewSession creates a session from the driver's game settings.
func (d *Driver) NewSession() *session.Session {
	g := d.opts.Game
	return session.New(session.Options{
		Screen:                    object.Screen{Width: g.Width, Height: g.Height},
		Seed:                      g.Seed,
		InitialWave:               g.InitialWave,
		FrameRateIndependentBrake: g.BrakeDT,
		Logger:                    d.logger,
	})
}

// RunSession plays one game and returns the final score once the ship is hit.
func (d *Driver) RunSession(ctx context.Context) (int, error) {
	sess := d.NewSession()
	started := time.Now()
	d.logger.Info("session started", "seed", sess.Seed())

	var res session.Result
	err := d.pump(ctx, func(dt time.Duration, in input.Input) (bool, error) {
		res = sess.Step(dt, in)

		d.canvas.Clear()
		sess.Draw(d.canvas)
		if err := d.present(d.hud(res)...); err != nil {
			return false, err
		}
		return res.Ended, nil
	})

	d.logger.Info("session ended",
		"score", res.Score,
		"waves", res.Wave,
		"duration", time.Since(started).Round(time.Second),
	)
	return res.Score, err
}

// hud returns the score and wave counters for the top canvas row.
func (d *Driver) hud(res session.Result) []draw.Text {
	score := fmt.Sprintf("Score: %d", res.Score)
	wave := fmt.Sprintf("Wave: %d", res.Wave)
	row := d.layout.OffsetRow + 1
	return []draw.Text{
		{Col: d.layout.OffsetCol + 2, Row: row, Value: score, Style: d.styles.hud},
		{Col: d.layout.OffsetCol + d.layout.Cols - len(wave), Row: row, Value: wave, Style: d.styles.hud},
	}
}
