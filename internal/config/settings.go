package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Defaults.
const (
	DefaultWidth       = 800
	DefaultHeight      = 600
	DefaultFPS         = 60
	DefaultInitialWave = 2

	DefaultSSHHost     = "::"
	DefaultSSHPort     = "2222"
	DefaultSSHHostKey  = "/app/keys/host_key"
	DefaultWebHost     = "0.0.0.0"
	DefaultWebPort     = "8080"
	DefaultDisplayHost = "your-server.com"
)

// Game holds the simulation settings shared by every frontend.
type Game struct {
	Width       int
	Height      int
	Seed        int64 // 0 picks a time-based seed per session
	FPS         int
	InitialWave int
	BrakeDT     bool // Frame-rate independent brake
}

// FrameDuration returns the target time between frames.
func (g Game) FrameDuration() time.Duration {
	return time.Second / time.Duration(g.FPS)
}

// SSH holds the ssh server settings.
type SSH struct {
	Host    string
	Port    string
	HostKey string
}

// Web holds the landing page settings.
type Web struct {
	Host        string
	Port        string
	DisplayHost string // Host shown in the ssh command on the page
	SSHPort     string
}

// Settings is the full configuration read from the environment.
type Settings struct {
	Game     Game
	SSH      SSH
	Web      Web
	LogLevel log.Level
}

// Load reads settings from the environment, applying defaults for unset
// variables. Malformed or out-of-range values are reported together.
func Load() (Settings, error) {
	var errs []error
	intVar := func(key string, fallback int) int {
		n, err := GetEnvInt(key, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		return n
	}

	s := Settings{
		Game: Game{
			Width:       intVar("GAME_WIDTH", DefaultWidth),
			Height:      intVar("GAME_HEIGHT", DefaultHeight),
			FPS:         intVar("GAME_FPS", DefaultFPS),
			InitialWave: intVar("GAME_INITIAL_WAVE", DefaultInitialWave),
		},
		SSH: SSH{
			Host:    GetEnv("SSH_HOST", DefaultSSHHost),
			Port:    GetEnv("SSH_PORT", DefaultSSHPort),
			HostKey: GetEnv("SSH_HOST_KEY", DefaultSSHHostKey),
		},
		Web: Web{
			Host:        GetEnv("WEB_HOST", DefaultWebHost),
			Port:        GetEnv("WEB_PORT", DefaultWebPort),
			DisplayHost: GetEnv("SSH_DISPLAY_HOST", DefaultDisplayHost),
			SSHPort:     GetEnv("SSH_PORT", DefaultSSHPort),
		},
	}

	seed, err := GetEnvInt64("GAME_SEED", 0)
	if err != nil {
		errs = append(errs, err)
	}
	s.Game.Seed = seed

	brake, err := GetEnvBool("GAME_BRAKE_DT", false)
	if err != nil {
		errs = append(errs, err)
	}
	s.Game.BrakeDT = brake

	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	s.LogLevel = level

	if s.Game.Width <= 0 || s.Game.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport %dx%d must be positive", s.Game.Width, s.Game.Height))
	}
	if s.Game.FPS <= 0 {
		errs = append(errs, fmt.Errorf("GAME_FPS %d must be positive", s.Game.FPS))
	}
	if s.Game.InitialWave <= 0 {
		errs = append(errs, fmt.Errorf("GAME_INITIAL_WAVE %d must be positive", s.Game.InitialWave))
	}

	if err := errors.Join(errs...); err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	return s, nil
}
