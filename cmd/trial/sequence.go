package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obonelli/the-witcher-trial/internal/trial"
)

var flagLevel int

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Print the sequence of a level and seed",
	Long: `Print the glyph sequence a run with the given seed sees at a level,
together with the difficulty curve values for that level.

The same seed, level and config always print the same sequence.

Examples:
  trial sequence --level 1 --seed 12345
  trial sequence --level 12 --seed 7 --config ./my-trial.yaml`,
	Args: cobra.NoArgs,
	Run:  runSequence,
}

func init() {
	sequenceCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to generate")
}

func runSequence(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tuning := cfg.Tuning()
	roster := cfg.Glyphs()
	curve := tuning.Curve

	seq := trial.GenerateSequence(flagLevel, flagSeed, roster, tuning)
	names := make([]string, len(seq))
	for i, g := range seq {
		names[i] = string(g)
	}

	fmt.Printf("Level %d, seed %d\n", flagLevel, flagSeed)
	fmt.Println()
	fmt.Printf("  Sequence:     %s\n", strings.Join(names, " "))
	fmt.Printf("  Length:       %d\n", curve.SequenceLength(flagLevel))
	fmt.Printf("  Show time:    %d ms\n", curve.ShowTimeMs(flagLevel))
	fmt.Printf("  Input window: %d ms\n", curve.InputWindowMs(flagLevel, len(seq)))

	fakes := curve.FakeCount(flagLevel)
	fmt.Printf("  Decoys:       %d", fakes)
	if decoys := trial.Decoys(flagLevel, flagSeed, roster, tuning, fakes); len(decoys) > 0 {
		shown := make([]string, len(decoys))
		for i, g := range decoys {
			shown[i] = string(g)
		}
		fmt.Printf(" (%s)", strings.Join(shown, " "))
	}
	fmt.Println()
}
