package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obonelli/the-witcher-trial/internal/config"
	"github.com/obonelli/the-witcher-trial/internal/platform/tui"
	"github.com/obonelli/the-witcher-trial/internal/storage"
	"github.com/obonelli/the-witcher-trial/internal/trial"
)

var (
	flagScoresMode  string
	flagLimit       int
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores for a mode",
	Long: `Display the top runs of the given mode.

Examples:
  trial scores
  trial scores --mode classic
  trial scores --limit 25
  trial scores -i          # browse both modes in the scoreboard screen`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "live", "Trial mode: live, classic")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the scoreboard screen")
}

func runScores(_ *cobra.Command, _ []string) {
	mode := trial.ParseMode(flagScoresMode)

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		rc := runtimeConfig(config.DefaultTrialConfig())
		if _, err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	runs, err := store.TopRuns(mode, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s trial\n", mode)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'trial play --mode %s' to set the first high score!\n", mode)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-8s  %-3s  %-4s  %-9s  %-16s  %s\n",
		"Rank", "Player", "Score", "Lvl", "Acc", "Ended", "Date", "Run")
	fmt.Printf("  %-4s  %-12s  %-8s  %-3s  %-4s  %-9s  %-16s  %s\n",
		"----", "------", "-----", "---", "---", "-----", "----", "---")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-8d  %-3d  %3.0f%%  %-9s  %-16s  %s\n",
			i+1, r.Player, r.Score, r.Level, r.Accuracy*100, r.EndReason,
			r.CreatedAt.Format("2006-01-02 15:04"), r.ID)
	}

	fmt.Println()
	if stats, statsErr := store.GetModeStats(mode); statsErr == nil {
		fmt.Printf("Runs: %d   Best: %d   Average: %.0f   Best level: %d   Best streak: %d\n",
			stats.RunsCount, stats.HighScore, stats.AvgScore, stats.BestLevel, stats.BestStreak)
	}
}
