package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mining-tycoon/internal/core"
	"github.com/vovakirdan/mining-tycoon/internal/platform/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the economy of a save slot",
	Long: `Print coins, yields, owned assets with their next price, upgrade
levels and achievements of a save slot.

Examples:
  tycoon status
  tycoon status --slot alt`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	sess, err := openSession(newLogger(os.Stderr, "tycoon"))
	if err != nil {
		return err
	}
	defer sess.store.Close()

	eng := sess.engine
	if err := eng.LoadErr(); err != nil {
		fmt.Printf("Warning: save is unreadable (%v); showing a fresh game\n\n", err)
	}

	fmt.Printf("Slot %s\n\n", sess.slot)
	fmt.Printf("  Coins       %s\n", tui.FormatCoins(eng.Currency()))
	fmt.Printf("  Per click   %s\n", tui.FormatCoins(eng.ClickYield()))
	fmt.Printf("  Per second  %s\n", humanize.CommafWithDigits(eng.PassiveYieldPerSecond(), 1))
	fmt.Printf("  Hash power  x%.2f   click x%.2f   auto x%.2f\n",
		eng.HashPower(), eng.ClickMultiplier(), eng.AutoMultiplier())
	fmt.Println()

	state := eng.Snapshot()
	catalog := eng.Catalog()
	for _, item := range core.Shop(catalog) {
		fmt.Printf("  %s\n", tui.ShopLine(catalog, state, item))
	}
	fmt.Println()

	achievements := eng.Achievements()
	if len(achievements) == 0 {
		fmt.Println("Achievements: none yet")
		return nil
	}
	fmt.Printf("Achievements: %s\n", strings.Join(achievements, ", "))
	return nil
}
