package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mining-tycoon/internal/economy"
	"github.com/vovakirdan/mining-tycoon/internal/save"
)

var (
	flagExportOut string
	flagResetYes  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the save to a JSON file",
	Long: `Write the slot's save to a JSON file that import (or another
installation) can read back. Use -o - to write to stdout.

Examples:
  tycoon export
  tycoon export -o backup.json
  tycoon export -o - --slot alt`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the save with a JSON file",
	Long: `Validate a save file and, if it is readable, replace the slot's save
with it. An unreadable file leaves the slot untouched. Use - to read stdin.

Examples:
  tycoon import web-mining-tycoon-save.json
  tycoon import backup.json --slot alt`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over",
	Long: `Replace the slot's save with a fresh game. Asks for confirmation
unless --yes is given.

Examples:
  tycoon reset
  tycoon reset --yes --slot alt`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", save.ExportFileName, "Output file (- for stdout)")
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Do not ask for confirmation")
}

func runExport(_ *cobra.Command, _ []string) error {
	sess, err := openSession(newLogger(os.Stderr, "tycoon"))
	if err != nil {
		return err
	}
	defer sess.Close()

	data, err := sess.engine.Export()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if flagExportOut == "-" {
		os.Stdout.Write(data)
		fmt.Println()
		return nil
	}
	if err := os.WriteFile(flagExportOut, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagExportOut, err)
	}
	fmt.Printf("Exported slot %s to %s\n", sess.slot, flagExportOut)
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	sess, err := openSession(newLogger(os.Stderr, "tycoon"))
	if err != nil {
		return err
	}
	defer sess.store.Close()

	if err := sess.engine.Import(data); err != nil {
		if errors.Is(err, economy.ErrCorruptSave) {
			return fmt.Errorf("%s is not a valid save: %w", args[0], err)
		}
		return fmt.Errorf("import: %w", err)
	}
	fmt.Printf("Imported %s into slot %s\n", args[0], sess.slot)
	return nil
}

func runReset(_ *cobra.Command, _ []string) error {
	sess, err := openSession(newLogger(os.Stderr, "tycoon"))
	if err != nil {
		return err
	}
	defer sess.store.Close()

	if !flagResetYes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("refusing to reset without --yes when stdin is not a terminal")
		}
		if !confirm(os.Stdin, fmt.Sprintf("Reset slot %s? All progress will be lost. [y/N] ", sess.slot)) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	sess.engine.Reset()
	if err := sess.engine.LastSaveErr(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fmt.Printf("Slot %s reset\n", sess.slot)
	return nil
}

// confirm prints question and reads a yes/no answer. Anything but y/yes is no.
func confirm(r io.Reader, question string) bool {
	fmt.Print(question)
	answer, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
