// survivors is a terminal survivors-like arena game.
//
// Usage:
//
//	survivors list              - List available games
//	survivors play [game]       - Play a game
//	survivors menu              - Start menu to pick games interactively
//	survivors serve             - Start SSH server for remote play
//	survivors scores [game]     - Show high scores for a game
//	survivors runs              - Show recorded runs
//	survivors content           - Validate a content file
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.survivors/scores.db)
//	--log-file <path>   - Write logs to a file
//	--debug             - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-survivors/internal/games/survivors"
)

const defaultGame = "survivors"

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	defer closeLog()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "survivors",
	Short: "Survivors - a roguelite arena in your terminal",
	Long: `Survivors is a terminal arena game: move, let your skills fire on their
own, collect gems, level up and outlast the waves and bosses.

Available commands:
  list     - Show all available games
  play     - Play a game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  runs     - View recorded runs with damage and kill breakdowns
  content  - Validate and summarise a content file

Examples:
  survivors play
  survivors play --difficulty hard --spectate :8080
  survivors menu
  survivors serve --ssh :2222
  survivors runs --limit 5`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(flagLogFile, flagDebug)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.survivors/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(contentCmd)
}
