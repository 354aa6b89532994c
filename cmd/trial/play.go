package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obonelli/the-witcher-trial/internal/platform/tui"
	"github.com/obonelli/the-witcher-trial/internal/trial"
)

var flagMode string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Face the trial",
	Long: `Start a trial run directly, skipping the menu.

Modes:
  live    - Tap each sign while it is lit
  classic - Watch the whole sequence, then repeat it

Controls:
  1-9        - Tap the sign in that board slot
  P          - Pause
  R          - Retry (after the run ends)
  B/Esc      - Give up
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower drain and a longer grace period
  normal - Default tuning
  hard   - Start at level 4 with harsher misses
  fixed  - No level progression

Examples:
  trial play
  trial play --mode classic
  trial play --difficulty hard --seed 42
  trial play --config ./my-trial.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "live", "Trial mode: live, classic")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagMode != string(trial.ModeLive) && flagMode != string(trial.ModeClassic) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (live, classic)\n", flagMode)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	store := openStore(logger)
	player := newPlayer(cfg, logger)

	deps := tui.Deps{
		Machine:  cfg.Machine(),
		Timing:   cfg.Timing(),
		Store:    store,
		Notifier: player,
		Logger:   logger,
	}

	runErr := tui.Run(deps, trial.ParseMode(flagMode), runtimeConfig(cfg))

	// Close before potential exit
	player.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running trial: %v\n", runErr)
		os.Exit(1)
	}
}
