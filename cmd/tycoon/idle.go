package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mining-tycoon/internal/economy"
	"github.com/vovakirdan/mining-tycoon/internal/engine"
	"github.com/vovakirdan/mining-tycoon/internal/platform/tui"
)

var (
	flagIdleFor    time.Duration
	flagIdleReport time.Duration
)

var idleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Mine passively without a UI",
	Long: `Run production ticks against a save slot with no screen attached.
Owned assets keep mining at the normal rate and the slot autosaves as it
would in play. Stops after --for, or on Ctrl+C.

Examples:
  tycoon idle --for 10m
  tycoon idle --for 1h --report 5m --slot alt`,
	Args: cobra.NoArgs,
	RunE: runIdle,
}

func init() {
	idleCmd.Flags().DurationVar(&flagIdleFor, "for", 5*time.Minute, "How long to mine")
	idleCmd.Flags().DurationVar(&flagIdleReport, "report", time.Minute, "Progress log interval (0 disables)")
}

func runIdle(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "tycoon-idle")

	sess, err := openSession(logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	eng := sess.engine
	if eng.PassiveYieldPerSecond() == 0 {
		logger.Warn("no assets owned, idling will not earn anything")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, flagIdleFor)
	defer cancelTimeout()

	start := eng.Currency()
	reportEvery := uint64(flagIdleReport / economy.TickInterval)

	sched := engine.NewScheduler(eng).OnTick(func(tick uint64, _ float64) {
		for _, name := range eng.DrainUnlocked() {
			logger.Info("achievement unlocked", "name", name)
		}
		if reportEvery > 0 && tick%reportEvery == 0 {
			logger.Info("mining",
				"coins", tui.FormatCoins(eng.Currency()),
				"per_second", humanize.CommafWithDigits(eng.PassiveYieldPerSecond(), 1),
			)
		}
	})

	logger.Info("idling", "slot", sess.slot, "for", flagIdleFor)
	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("idle: %w", err)
	}

	fmt.Printf("Mined %s coins in %.1fs (balance %s)\n",
		tui.FormatCoins(eng.Currency()-start),
		eng.Elapsed().Seconds(),
		tui.FormatCoins(eng.Currency()),
	)
	return nil
}
