package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/obonelli/the-witcher-trial/internal/config"
	"github.com/obonelli/the-witcher-trial/internal/core"
	"github.com/obonelli/the-witcher-trial/internal/sfx"
	"github.com/obonelli/the-witcher-trial/internal/sfx/speaker"
	"github.com/obonelli/the-witcher-trial/internal/storage"
)

const defaultLogFile = "~/.trial/trial.log"

// newLogger builds the process logger. Interactive commands own the
// terminal, so their logs go to a file unless --log-file says otherwise.
func newLogger(interactive bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q", flagLogLevel)
	}

	path := flagLogFile
	if path == "" && interactive {
		path = defaultLogFile
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if path != "" {
		f, openErr := openLogFile(path)
		if openErr != nil {
			return nil, nil, openErr
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "trial",
		Level:           level,
	})
	return logger, closer, nil
}

func openLogFile(path string) (*os.File, error) {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// loadConfig resolves the trial config and applies --difficulty.
func loadConfig() (config.TrialConfig, error) {
	cfg, err := config.LoadTrial(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
		}
		config.ApplyTrialPreset(&cfg, preset)
	}
	return cfg, nil
}

// runtimeConfig sizes the board from the terminal.
func runtimeConfig(cfg config.TrialConfig) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.Shell.TickRate
	if flagFPS > 0 {
		rc.TickRate = flagFPS
	}
	rc.Seed = flagSeed
	if name := os.Getenv("USER"); name != "" {
		rc.Player = name
	}
	return rc
}

// openStore opens the runs database. The trial still works without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("runs database unavailable", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// newPlayer prepares the sound player for the configured roster.
func newPlayer(cfg config.TrialConfig, logger *log.Logger) *speaker.Player {
	volume := sfx.DefaultVolume()
	volume.Mute = flagMute
	p := speaker.New(speaker.Options{
		Volume: volume,
		Seed:   flagSeed,
		Logger: logger.WithPrefix("sfx"),
	})
	if !flagMute {
		p.Warm(cfg.Glyphs())
	}
	return p
}
