package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors"
	"github.com/vovakirdan/tui-survivors/internal/platform/spectate"
	"github.com/vovakirdan/tui-survivors/internal/platform/tui"
	"github.com/vovakirdan/tui-survivors/internal/registry"
	"github.com/vovakirdan/tui-survivors/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSpectate   string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: survivors).

Controls:
  WASD/Arrows  - Move
  I            - Inventory (Enter equip, X discard, O sort)
  T/Tab        - Skill tree (Left/Right skill, Up/Down node, Enter allocate)
  1/2/3        - Pick a level-up choice
  P            - Pause
  R            - Restart (after game over)
  B/Esc        - Close panel
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  survivors play
  survivors play --difficulty hard
  survivors play --config ./my-survivors.yaml
  survivors play --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a WebSocket spectator feed on this address")
}

// terminalSize returns the size of stdout, or the default screen when it is
// not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	d := core.DefaultConfig()
	return d.ScreenW, d.ScreenH
}

func runtimeConfig() (core.RuntimeConfig, error) {
	if !slices.Contains(tui.Difficulties, flagDifficulty) {
		return core.RuntimeConfig{}, fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = terminalSize()
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	cfg.Difficulty = flagDifficulty
	return cfg, nil
}

// openStore opens the scores database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// runSink returns store as a RunSink without wrapping a nil pointer.
func runSink(store *storage.Store) tui.RunSink {
	if store == nil {
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'survivors list' to see available games)", gameID)
	}

	cfg, err := runtimeConfig()
	if err != nil {
		return err
	}
	survivors.SetConfigPath(flagConfig)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	var spectator tui.FramePublisher
	if flagSpectate != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		hub := spectate.NewHub(log.Default(), spectate.DefaultBuffer)
		go func() {
			if err := hub.ListenAndServe(ctx, flagSpectate); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("spectator feed stopped", "err", err)
			}
		}()
		spectator = hub
		fmt.Printf("Spectator feed on ws://%s/ws\n", flagSpectate)
	}

	quietLogs()
	if err := tui.Run(game, runSink(store), spectator, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
