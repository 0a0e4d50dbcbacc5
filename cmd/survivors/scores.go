package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivors/internal/registry"
	"github.com/vovakirdan/tui-survivors/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores and overall stats for a game
(default: survivors).

Examples:
  survivors scores
  survivors scores survivors --db ./scores.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

var (
	flagScoresClear bool
	flagScoresAll   bool
)

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the game")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show stats for every game played")
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(all) == 0 {
		fmt.Println("No games played yet.")
		return nil
	}
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Printf("  %-12s  %6s  %8s  %8s  %s\n", "Game", "Games", "Best", "Average", "Last played")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-12s  %6d  %8d  %8.0f  %s\n", id, st.GamesCount, st.HighScore, st.AvgScore,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'survivors list' to see available games)", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresAll {
		return printAllStats(store)
	}
	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'survivors play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if high, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Games: %d   Average: %.0f\n", stats.GamesCount, stats.AvgScore)
	}
	return nil
}
