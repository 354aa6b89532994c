// trial is a terminal rendition of the Witcher sign trial: watch the signs
// light up and tap them back before your strength gives out.
//
// Usage:
//
//	trial play                 - Face the trial directly
//	trial menu                 - Start the menu to pick a mode interactively
//	trial serve                - Start SSH server for remote play
//	trial scores               - Show high scores for a mode
//	trial sequence             - Print the sequence of a level and seed
//	trial replay <run-id>      - Re-run a stored run and check its score
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set run seed for reproducible trials
//	--db <path>           - Set database path (default: ~/.trial/runs.db)
//	--config <path>       - Custom trial config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--mute                - Disable sound
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trial",
	Short: "The Witcher Trial - a sign memory game for your terminal",
	Long: `The Witcher Trial lights up a sequence of signs and asks you to tap
them back. Every hit restores your strength, every miss and every idle
second drains it.

Available commands:
  play      - Face the trial directly
  menu      - Interactive mode picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  sequence  - Print the sequence of a level and seed
  replay    - Re-run a stored run

Examples:
  trial play
  trial play --mode classic --difficulty hard
  trial menu
  trial serve --ssh :2222
  trial scores --mode classic`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Run seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.trial/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom trial config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default: ~/.trial/trial.log for interactive commands)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(sequenceCmd)
	rootCmd.AddCommand(replayCmd)
}
