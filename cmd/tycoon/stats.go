package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mining-tycoon/internal/config"
	"github.com/vovakirdan/mining-tycoon/internal/platform/tui"
	"github.com/vovakirdan/mining-tycoon/internal/storage"
)

var (
	flagStatsAll   bool
	flagStatsLimit int
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded sessions",
	Long: `Display the best recorded play sessions, ranked by peak coins,
and list every save slot in the database.

Examples:
  tycoon stats
  tycoon stats --all
  tycoon stats --slot alt --clear`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsAll, "all", false, "Rank sessions from every slot")
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of sessions to show")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete the slot's session history")
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	slot := cfg.Save.Slot
	if flagSlot != "" {
		slot = flagSlot
	}

	// Open session storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening saves database: %w", err)
	}
	defer store.Close()

	if flagStatsClear {
		if err := store.ClearSessions(slot); err != nil {
			return err
		}
		fmt.Printf("Cleared session history of slot %s\n", slot)
		return nil
	}

	filter := slot
	title := "Best sessions - " + slot
	if flagStatsAll {
		filter = ""
		title = "Best sessions - all slots"
	}

	sessions, err := store.TopSessions(filter, flagStatsLimit)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}

	fmt.Println(title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tycoon play' and quit to record one!")
	} else {
		// Print header
		fmt.Printf("  %-4s  %-14s  %-14s  %-10s  %-16s  %s\n", "Rank", "Peak", "Final", "Played", "Slot", "Ended")
		fmt.Printf("  %-4s  %-14s  %-14s  %-10s  %-16s  %s\n", "----", "----", "-----", "------", "----", "-----")

		for i, s := range sessions {
			fmt.Printf("  %-4d  %-14s  %-14s  %-10s  %-16s  %s\n",
				i+1,
				tui.FormatCoins(s.PeakCoins),
				tui.FormatCoins(s.FinalCoins),
				fmt.Sprintf("%.1fs", s.Elapsed.Seconds()),
				s.Slot,
				humanize.Time(s.EndedAt),
			)
		}
	}

	if summary, err := store.GetSlotStats(slot); err == nil && summary.Sessions > 0 {
		fmt.Println()
		fmt.Printf("Slot %s: %d sessions, best %s coins, last played %s\n",
			slot, summary.Sessions, tui.FormatCoins(summary.BestPeak), humanize.Time(summary.LastPlayed))
	}

	slots, err := store.Slots()
	if err != nil || len(slots) == 0 {
		return nil
	}
	fmt.Println()
	fmt.Println("Save slots:")
	for _, s := range slots {
		fmt.Printf("  %-16s  %-8s  saved %s\n", s.Slot, humanize.Bytes(uint64(s.Size)), humanize.Time(s.UpdatedAt))
	}
	return nil
}
