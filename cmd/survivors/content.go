package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivors/internal/games/survivors/content"
)

var flagContentPath string

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Validate and summarise a content file",
	Long: `Load a content YAML file (skills, enemies, item affixes), validate it
and print a summary. Without --path the built-in content is checked.

Examples:
  survivors content
  survivors content --path ./my-content.yaml`,
	Args: cobra.NoArgs,
	RunE: runContent,
}

func init() {
	contentCmd.Flags().StringVar(&flagContentPath, "path", "", "Content YAML file (default: built-in)")
}

func runContent(_ *cobra.Command, _ []string) error {
	t, err := content.Load(flagContentPath)
	if err != nil {
		var verr content.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("invalid content [%s]: %s", verr.Code, verr.Message)
		}
		return err
	}

	source := flagContentPath
	if source == "" {
		source = "built-in"
	}
	fmt.Printf("Content OK (%s)\n\n", source)
	fmt.Printf("  Starting skill:  %s\n", t.StartingSkill)
	fmt.Printf("  Skills:          %d\n", len(t.Skills))
	for _, s := range t.Skills {
		fmt.Printf("    %-18s %-10s max rank %d, %d tree nodes\n", s.ID, s.Kind, s.MaxRank, len(s.Tree))
	}
	fmt.Printf("  Enemies:         %d\n", len(t.Enemies))
	fmt.Printf("  Monster affixes: %d\n", len(t.MonsterAffixes))
	fmt.Printf("  Item bases:      %d\n", len(t.ItemBases))
	fmt.Printf("  Affixes:         %d prefixes, %d suffixes\n", len(t.Prefixes), len(t.Suffixes))
	fmt.Printf("  Uniques:         %d\n", len(t.Uniques))
	return nil
}
