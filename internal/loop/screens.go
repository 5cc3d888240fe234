package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/input"
)

// confirmDelay keeps a held fire key from skipping the game over screen.
const confirmDelay = 500 * time.Millisecond

var menuControls = []string{
	"W to accelerate",
	"S to stabilize velocity",
	"A and D to turn",
	"Space to shoot",
	"F to show hitboxes",
	"Q to quit",
}

type styles struct {
	title  lipgloss.Style
	text   lipgloss.Style
	prompt lipgloss.Style
	hud    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:  r.NewStyle().Bold(true),
		text:   r.NewStyle(),
		prompt: r.NewStyle().Bold(true).Blink(true),
		hud:    r.NewStyle().Bold(true),
	}
}

// RunMenu shows the title and controls until the player presses Space.
func (d *Driver) RunMenu(ctx context.Context) error {
	return d.pump(ctx, func(_ time.Duration, in input.Input) (bool, error) {
		if in.Confirm {
			return true, nil
		}

		col, row := d.center()
		texts := []draw.Text{
			draw.Centered(col, row-len(menuControls)/2-3, "A S T E R O I D S", d.styles.title),
		}
		for i, line := range menuControls {
			texts = append(texts, draw.Centered(col, row-len(menuControls)/2+i, line, d.styles.text))
		}
		texts = append(texts, draw.Centered(col, row+len(menuControls)/2+2, "Press Space to begin", d.styles.prompt))

		d.canvas.Clear()
		return false, d.present(texts...)
	})
}

// RunGameOver shows the final score until the player presses Space.
func (d *Driver) RunGameOver(ctx context.Context, score int) error {
	start := time.Now()
	return d.pump(ctx, func(_ time.Duration, in input.Input) (bool, error) {
		if in.Confirm && time.Since(start) >= confirmDelay {
			return true, nil
		}

		col, row := d.center()
		d.canvas.Clear()
		return false, d.present(
			draw.Centered(col, row-2, "GAME OVER", d.styles.title),
			draw.Centered(col, row, fmt.Sprintf("Score: %d", score), d.styles.text),
			draw.Centered(col, row+2, "Press Space to return to the menu", d.styles.prompt),
		)
	})
}
