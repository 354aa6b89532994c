package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obonelli/the-witcher-trial/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the trial with a mode picker menu",
	Long: `Start the trial in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a run ends, B returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  trial menu
  trial menu --fps 30
  trial menu --db ./runs.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
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

	if err := tui.RunSession(deps, runtimeConfig(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	// Cleanup
	player.Close()
	if store != nil {
		store.Close()
	}
}
