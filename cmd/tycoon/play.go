package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mining-tycoon/internal/core"
	"github.com/vovakirdan/mining-tycoon/internal/platform/tui"
	"github.com/vovakirdan/mining-tycoon/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal.

Controls:
  M/Space    - Mine
  1-9        - Buy a shop item
  Up/Down    - Select shop item, Enter to buy
  R          - Reset (asks for confirmation)
  E / I      - Export / import the save
  T          - Session history
  ?          - All keys
  Q/Ctrl+C   - Quit (progress is saved)

Logs go to ~/.tycoon/tycoon.log while the game is on screen.

Examples:
  tycoon play
  tycoon play --slot alt
  tycoon play --config ./my-balance.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logFile, err := openLogFile()
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "tycoon")

	sess, err := openSession(logger)
	if err != nil {
		return err
	}

	// Get terminal size
	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Player = sess.slot

	runErr := tui.Run(tui.Options{
		Engine:        sess.engine,
		History:       sess.store,
		Slot:          sess.slot,
		Config:        cfg,
		ToastDuration: sess.cfg.UI.ToastDuration(),
		Logger:        logger,
		AllowFiles:    true,
	})

	// Close store before potential exit
	if err := sess.Close(); err != nil {
		logger.Warn("closing session", "error", err)
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

// openLogFile opens the log file next to the default database.
func openLogFile() (*os.File, error) {
	path, err := storage.ExpandHome("~/.tycoon/tycoon.log")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
