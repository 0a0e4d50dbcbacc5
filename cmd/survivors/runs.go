package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivors/internal/storage"
)

var (
	flagRunsLimit int
	flagRunID     string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded runs",
	Long: `List the most recent runs, newest first. With --id, show one run's
damage by skill and kills by enemy type.

Examples:
  survivors runs
  survivors runs --limit 5
  survivors runs --id 3f2a...`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to list")
	runsCmd.Flags().StringVar(&flagRunID, "id", "", "Show details for one run")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagRunID != "" {
		return printRunDetail(store, flagRunID)
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-36s  %-16s  %7s  %4s  %6s  %4s  %6s\n", "Run", "Date", "Score", "Lvl", "Kills", "Boss", "Time")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-16s  %7d  %4d  %6d  %4d  %6s\n",
			r.RunID, r.CreatedAt.Format("2006-01-02 15:04"), r.Score, r.Level, r.Kills, r.BossKills,
			r.Survived.Round(time.Second))
	}
	return nil
}

func printRunDetail(store *storage.Store, runID string) error {
	d, err := store.RunDetails(runID)
	if errors.Is(err, storage.ErrRunNotFound) {
		return fmt.Errorf("no run with id %q", runID)
	}
	if err != nil {
		return fmt.Errorf("retrieving run: %w", err)
	}

	fmt.Printf("Run %s (%s)\n", d.RunID, d.GameID)
	fmt.Printf("  Date:     %s\n", d.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("  Seed:     %d\n", d.Seed)
	fmt.Printf("  Score:    %d\n", d.Score)
	fmt.Printf("  Level:    %d\n", d.Level)
	fmt.Printf("  Kills:    %d (%d bosses)\n", d.Kills, d.BossKills)
	fmt.Printf("  Survived: %s\n", d.Survived.Round(time.Second))

	fmt.Println()
	fmt.Println("Damage by skill:")
	for _, sd := range d.SkillDamage {
		fmt.Printf("  %-20s %10d\n", sd.SkillID, sd.Damage)
	}
	fmt.Println()
	fmt.Println("Kills by enemy:")
	for _, tk := range d.KillsByType {
		fmt.Printf("  %-20s %10d\n", tk.EnemyType, tk.Kills)
	}
	return nil
}
