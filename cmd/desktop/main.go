package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/vectoroids/internal/config"
	"github.com/tomz197/vectoroids/internal/desktop"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "vectoroids",
		Level:           settings.LogLevel,
	})

	game, err := desktop.NewGame(settings.Game, logger)
	if err != nil {
		logger.Fatal("failed to create game", "err", err)
	}

	ebiten.SetWindowTitle("Vectoroids")
	ebiten.SetWindowSize(settings.Game.Width, settings.Game.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(settings.Game.FPS)

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
