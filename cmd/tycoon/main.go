// tycoon is an idle mining economy game for the terminal.
//
// Usage:
//
//	tycoon play              - Play in the terminal
//	tycoon serve             - Start SSH server for remote play
//	tycoon idle --for 10m    - Mine passively without a UI
//	tycoon status            - Show the economy of a save slot
//	tycoon stats             - Show recorded sessions
//	tycoon export [-o file]  - Write the save to a JSON file
//	tycoon import <file>     - Replace the save with a JSON file
//	tycoon reset             - Start over
//
// Global flags:
//
//	--config <path>  - Config file (default: search ~/.tycoon, ./configs, built-in)
//	--db <path>      - Saves database (default: ~/.tycoon/tycoon.db)
//	--slot <name>    - Save slot (default: from config, "default")
//	--save-file <path> - Keep the save in a JSON file instead of the database
//	--verbose        - Debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mining-tycoon/internal/config"
	"github.com/vovakirdan/mining-tycoon/internal/engine"
	"github.com/vovakirdan/mining-tycoon/internal/save"
	"github.com/vovakirdan/mining-tycoon/internal/storage"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagSlot     string
	flagSaveFile string
	flagVerbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tycoon",
	Short: "Mining Tycoon - an idle mining economy in your terminal",
	Long: `Mining Tycoon is an idle clicker: mine coins by hand, buy miners, rigs
and farms that mine for you, and level up upgrades that multiply it all.

Available commands:
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  idle     - Mine passively without a UI
  status   - Show the economy of a save slot
  stats    - Show recorded sessions
  export   - Write the save to a JSON file
  import   - Replace the save with a JSON file
  reset    - Start over

Examples:
  tycoon play
  tycoon play --slot alt
  tycoon idle --for 30m
  tycoon export -o backup.json
  tycoon serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tycoon/tycoon.db", "Path to saves database")
	rootCmd.PersistentFlags().StringVar(&flagSlot, "slot", "", "Save slot (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagSaveFile, "save-file", "", "Keep the save in this JSON file instead of the database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(idleCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
}

// newLogger creates the CLI logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// session bundles what a command needs to work on one save slot.
type session struct {
	cfg    config.Config
	slot   string
	store  *storage.Store
	engine *engine.Engine
}

// openSession loads the config, opens the saves database and starts an engine
// on the selected slot, or on --save-file when given. Session history always
// goes to the database.
func openSession(logger *log.Logger) (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	slot := cfg.Save.Slot
	if flagSlot != "" {
		slot = flagSlot
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open saves database: %w", err)
	}

	slotStore, err := saveStore(store, slot, flagSaveFile)
	if err != nil {
		store.Close()
		return nil, err
	}

	eng, err := engine.New(engine.Options{
		Catalog:       cfg.Balance.Catalog(),
		Rules:         cfg.Balance.Rules(),
		Store:         slotStore,
		Logger:        logger.With("slot", slot),
		AutosaveTicks: cfg.Save.AutosaveTicks,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	return &session{cfg: cfg, slot: slot, store: store, engine: eng}, nil
}

// Close flushes the engine and closes the database.
func (s *session) Close() error {
	flushErr := s.engine.Flush()
	if err := s.store.Close(); err != nil {
		return err
	}
	return flushErr
}

// saveStore picks where the engine persists: the file at path when set,
// otherwise the slot row of the database.
func saveStore(store *storage.Store, slot, path string) (save.Store, error) {
	if path == "" {
		return store.Slot(slot), nil
	}
	expanded, err := storage.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("save file %s: %w", path, err)
	}
	return save.NewFileStore(expanded), nil
}
