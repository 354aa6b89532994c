package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obonelli/the-witcher-trial/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Re-run a stored run and check its score",
	Long: `Feed the recorded events of a stored run back through the trial
engine and compare the reproduced result with the stored one.

Use the same --config and --difficulty the run was played with.

Examples:
  trial scores            # find a run ID
  trial replay 3f0c...`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	runID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entry, err := store.RunByID(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if entry == nil {
		fmt.Fprintf(os.Stderr, "Error: no run with ID %q\n", runID)
		return
	}

	rp, err := store.ReplayByRun(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if rp == nil {
		fmt.Fprintf(os.Stderr, "Error: run %s has no recorded events\n", runID)
		return
	}

	final, err := cfg.Machine().Run(*rp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying run: %v\n", err)
		return
	}

	fmt.Printf("Run %s (%s, seed %d, %d events)\n", runID, rp.Mode, rp.Seed, len(rp.Records))
	fmt.Println()
	fmt.Printf("  %-10s  %-8s  %s\n", "", "Stored", "Replayed")
	fmt.Printf("  %-10s  %-8d  %d\n", "Score", entry.Score, final.Score)
	fmt.Printf("  %-10s  %-8d  %d\n", "Level", entry.Level, final.Level)
	fmt.Printf("  %-10s  %-8d  %d\n", "Correct", entry.CorrectTotal, final.CorrectTotal)
	fmt.Printf("  %-10s  %-8d  %d\n", "Played", entry.PlayedTotal, final.PlayedTotal)
	fmt.Printf("  %-10s  %-8s  %s\n", "Ended", entry.EndReason, final.EndReason)
	fmt.Println()

	if final.Score == entry.Score && final.Level == entry.Level && final.EndReason == entry.EndReason {
		fmt.Println("Replay matches the stored result.")
		return
	}
	fmt.Println("Replay DIVERGES from the stored result (different config or tuning?).")
	store.Close()
	os.Exit(1)
}
