package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors"
	"github.com/vovakirdan/tui-survivors/internal/platform/tui"
	"github.com/vovakirdan/tui-survivors/internal/registry"
	"github.com/vovakirdan/tui-survivors/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Left/Right to change difficulty and
Enter to play. After a game ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Play
  Tab          - High scores
  H            - Run history
  Q            - Quit

Examples:
  survivors menu
  survivors menu --fps 30
  survivors menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Initial difficulty preset")
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := runtimeConfig()
	if err != nil {
		return err
	}
	survivors.SetConfigPath(flagConfig)

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	var history tui.RunHistory
	var board tui.Leaderboard
	if store != nil {
		history, board = store, store
	}

	quietLogs()
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		switch {
		case menuResult.Quit:
			return nil

		case menuResult.WantsScoreboard:
			goBack, sbErr := tui.RunScoreboard(board, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return nil
			}
			continue

		case menuResult.WantsRuns:
			goBack, runsErr := tui.RunRuns(history, cfg.ScreenW, cfg.ScreenH)
			if runsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", runsErr)
			}
			if !goBack {
				return nil
			}
			continue
		}

		if menuResult.GameID == "" {
			return nil
		}
		if err := playFromMenu(menuResult.GameID, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func playFromMenu(gameID string, store *storage.Store, cfg core.RuntimeConfig) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	// A fixed --seed replays the same run from the menu too.
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return tui.Run(game, runSink(store), nil, cfg)
}
