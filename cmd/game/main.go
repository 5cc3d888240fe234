package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/vectoroids/internal/config"
	"github.com/tomz197/vectoroids/internal/loop"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	level := settings.LogLevel
	if term.IsTerminal(int(os.Stderr.Fd())) {
		// Logs share the screen with the game; redirect stderr to keep them.
		level = max(level, log.WarnLevel)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "vectoroids",
		Level:           level,
	})

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Game:   settings.Game,
		Logger: logger,
	})
	stop()
	_ = term.Restore(fd, oldState)

	if err != nil && ctx.Err() == nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
