package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/jsgotchi/internal/config"
	"github.com/vovakirdan/jsgotchi/internal/storage"
)

var flagStatsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats [pet-id]",
	Short: "Show the pet's history",
	Long: `Display what a pet has achieved: frameworks shipped, their quality,
the latest frameworks and the leaderboard of every pet in the database.

Without an argument the local pet is shown.

Examples:
  gotchi stats
  gotchi stats --limit 20
  gotchi stats 5b1c0c3e-0a7e-4c55-9c53-1f4e1c7d2a10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of frameworks and leaderboard rows")
}

func runStats(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dbPath, err := config.ExpandHome(cfg.Storage.Path)
	if err != nil {
		return err
	}

	var petID string
	if len(args) == 1 {
		petID = args[0]
	} else {
		id, idErr := loadPetID(identityPath(dbPath))
		if idErr != nil {
			return idErr
		}
		petID = id.String()
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	name := petID
	if rec, recErr := store.Pet(petID); recErr == nil && rec != nil {
		name = fmt.Sprintf("%s (%s)", rec.Name, petID)
	}

	stats, err := store.GetPetStats(petID)
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	fmt.Printf("Pet - %s\n", name)
	fmt.Println()

	if stats.Frameworks == 0 {
		fmt.Println("No frameworks shipped yet.")
		fmt.Println()
		fmt.Println("Run 'gotchi play' and keep the pet company!")
	} else {
		fmt.Printf("  Level:       %d\n", stats.Level)
		fmt.Printf("  Frameworks:  %s\n", humanize.Comma(int64(stats.Frameworks)))
		fmt.Printf("  Average:     %.2f\n", stats.AverageQuality)
		fmt.Printf("  Best:        %d\n", stats.BestQuality)
		fmt.Printf("  Last:        %s\n", humanize.Time(stats.LastFramework))
		fmt.Println()

		fmt.Println("Quality")
		for q := cfg.Engine.MaxQuality; q >= 1; q-- {
			n := stats.QualityCounts[q]
			bar := strings.Repeat("#", barLength(n, stats.Frameworks, 30))
			fmt.Printf("  %d  %-30s  %s\n", q, bar, humanize.Comma(int64(n)))
		}
		fmt.Println()

		recent, recErr := store.RecentFrameworks(petID, flagStatsLimit)
		if recErr != nil {
			return fmt.Errorf("reading frameworks: %w", recErr)
		}
		fmt.Println("Latest frameworks")
		fmt.Printf("  %-8s  %-7s  %-11s  %-5s  %s\n", "#", "Quality", "Mood", "Level", "When")
		fmt.Printf("  %-8s  %-7s  %-11s  %-5s  %s\n", "-", "-------", "----", "-----", "----")
		for _, f := range recent {
			fmt.Printf("  %-8s  %-7d  %-11s  %-5d  %s\n",
				humanize.Comma(f.Number), f.Quality, f.State, f.Level, humanize.Time(f.CreatedAt))
		}
		fmt.Println()
	}

	top, err := store.TopLevels(flagStatsLimit)
	if err != nil {
		return fmt.Errorf("reading leaderboard: %w", err)
	}
	if len(top) == 0 {
		return nil
	}
	fmt.Println("Leaderboard")
	fmt.Printf("  %-4s  %-16s  %-5s  %s\n", "Rank", "Name", "Level", "Reached")
	fmt.Printf("  %-4s  %-16s  %-5s  %s\n", "----", "----", "-----", "-------")
	for i, e := range top {
		fmt.Printf("  %-4s  %-16s  %-5d  %s\n",
			humanize.Ordinal(i+1), e.Name, e.Level, humanize.Time(e.ReachedAt))
	}
	return nil
}

// barLength scales n out of total to a bar of at most width cells.
func barLength(n, total, width int) int {
	if total <= 0 || n <= 0 {
		return 0
	}
	l := n * width / total
	if l == 0 {
		l = 1
	}
	return l
}
