package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jsgotchi/internal/config"
	"github.com/vovakirdan/jsgotchi/internal/journal"
	"github.com/vovakirdan/jsgotchi/internal/platform/tui"
)

var (
	flagJournalList bool
	flagJournalJSON bool
)

var journalCmd = &cobra.Command{
	Use:   "journal [file]",
	Short: "Dump the event journal",
	Long: `Print the events recorded in the compressed hourly journal.

Without an argument the newest journal file is printed.

Examples:
  gotchi journal
  gotchi journal --list
  gotchi journal --json ~/.gotchi/journal/events-2024-01-01-12.jsonl.zst`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().BoolVar(&flagJournalList, "list", false, "List journal files instead of printing events")
	journalCmd.Flags().BoolVar(&flagJournalJSON, "json", false, "Print raw JSON lines")
}

func runJournal(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir, err := config.ExpandHome(cfg.Journal.Dir)
	if err != nil {
		return err
	}

	files, err := journal.Files(dir)
	if err != nil {
		return err
	}

	if flagJournalList {
		if len(files) == 0 {
			fmt.Println("No journal files yet.")
			return nil
		}
		for _, f := range files {
			info, statErr := os.Stat(f)
			if statErr != nil {
				continue
			}
			fmt.Printf("  %-40s  %d bytes\n", filepath.Base(f), info.Size())
		}
		return nil
	}

	var path string
	switch {
	case len(args) == 1:
		path = args[0]
	case len(files) > 0:
		path = files[len(files)-1]
	default:
		fmt.Println("No journal files yet.")
		return nil
	}

	if flagJournalJSON {
		return journal.Read(path, func(line []byte) error {
			fmt.Println(string(line))
			return nil
		})
	}

	events, err := journal.ReadEvents(path)
	if err != nil {
		return err
	}
	for _, e := range events {
		fmt.Printf("%s  #%-6d  %-20s  %s\n",
			e.At.Local().Format("2006-01-02 15:04:05"), e.Tick, e.Kind, tui.Describe(e))
	}
	return nil
}
