package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mining-tycoon/internal/core"
	"github.com/vovakirdan/mining-tycoon/internal/economy"
	"github.com/vovakirdan/mining-tycoon/internal/engine"
	"github.com/vovakirdan/mining-tycoon/internal/save"
	"github.com/vovakirdan/mining-tycoon/internal/storage"
)

// DefaultToastDuration is used when Options.ToastDuration is zero.
const DefaultToastDuration = 2500 * time.Millisecond

// Options configures a game screen.
type Options struct {
	Engine *engine.Engine

	// History records a session summary on quit and feeds the history view.
	// Nil disables both.
	History *storage.Store
	Slot    string

	Config        core.RuntimeConfig
	ToastDuration time.Duration
	Logger        *log.Logger

	// AllowFiles enables export/import to the local filesystem.
	// SSH sessions leave it off so remote users cannot touch server files.
	AllowFiles bool
}

type mode int

const (
	modePlay mode = iota
	modeConfirmReset
	modePrompt
	modeStats
)

type promptKind int

const (
	promptExport promptKind = iota
	promptImport
)

type toast struct {
	text  string
	warn  bool
	until time.Time
}

// maxToasts is how many toasts are visible at once; older ones are dropped.
const maxToasts = 3

// Model is the Bubble Tea model of one play session.
type Model struct {
	engine  *engine.Engine
	history *storage.Store
	slot    string
	config  core.RuntimeConfig
	logger  *log.Logger

	keys   KeyMap
	help   help.Model
	input  textinput.Model
	shop   []core.ShopItem
	cursor int

	mode   mode
	prompt promptKind
	stats  StatsModel

	toasts        []toast
	toastDuration time.Duration
	allowFiles    bool

	now      func() time.Time
	started  time.Time
	quitting bool
	recorded bool
}

// NewModel creates a game screen for the given engine.
func NewModel(opts Options) Model {
	if opts.Config.TickRate <= 0 {
		opts.Config.TickRate = economy.TicksPerSecond
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = DefaultToastDuration
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = save.ExportFileName
	ti.CharLimit = 256

	h := help.New()
	h.Width = opts.Config.ScreenW

	m := Model{
		engine:        opts.Engine,
		history:       opts.History,
		slot:          opts.Slot,
		config:        opts.Config,
		logger:        opts.Logger,
		keys:          DefaultKeyMap(),
		help:          h,
		input:         ti,
		shop:          core.Shop(opts.Engine.Catalog()),
		toastDuration: opts.ToastDuration,
		allowFiles:    opts.AllowFiles,
		now:           time.Now,
	}
	m.started = m.now()

	if err := opts.Engine.LoadErr(); err != nil {
		m.addToast("Save unreadable, starting fresh", true)
	} else if opts.Engine.Loaded() {
		m.addToast("Save loaded", false)
	}
	return m
}

// Init starts the production tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		if m.mode == modeStats {
			m.stats = m.stats.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case TickMsg:
		return m.handleTick()

	case tea.KeyMsg:
		switch m.mode {
		case modeConfirmReset:
			return m.handleConfirmKey(msg)
		case modePrompt:
			return m.handlePromptKey(msg)
		case modeStats:
			return m.handleStatsKey(msg)
		default:
			return m.handleKey(msg)
		}
	}

	if m.mode == modePrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleTick advances production by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.engine.Tick()
	m.collectUnlocked()
	m.expireToasts()
	return m, tickCmd(m.config.TickRate)
}

// handleKey processes keyboard input on the game screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.keys.MapKey(msg)

	switch in.Action {
	case core.ActionQuit:
		m.finish()
		return m, tea.Quit

	case core.ActionMine:
		gain := m.engine.Mine()
		m.addToast("+"+formatCoins(gain)+" coins", false)

	case core.ActionBuy:
		item := in.Item
		if item < 0 {
			item = m.cursor
		}
		if item < len(m.shop) {
			m.cursor = item
			m.buy(m.shop[item])
		}

	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case core.ActionDown:
		if m.cursor < len(m.shop)-1 {
			m.cursor++
		}

	case core.ActionReset:
		m.mode = modeConfirmReset

	case core.ActionExport, core.ActionImport:
		if !m.allowFiles {
			m.addToast("Files are not available in this session", true)
			break
		}
		m.prompt = promptExport
		if in.Action == core.ActionImport {
			m.prompt = promptImport
		}
		m.input.SetValue(save.ExportFileName)
		m.input.CursorEnd()
		m.mode = modePrompt
		cmd := m.input.Focus()
		return m, cmd

	case core.ActionStats:
		m.stats = NewStatsModel(m.history, m.slot, m.config.ScreenW, m.config.ScreenH)
		m.mode = modeStats

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	m.collectUnlocked()
	return m, nil
}

// buy purchases one shop item and reports the outcome as a toast.
func (m *Model) buy(item core.ShopItem) {
	var err error
	if item.IsUpgrade() {
		_, err = m.engine.BuyUpgrade(item.Upgrade)
	} else {
		_, err = m.engine.BuyAsset(item.Asset)
	}

	switch {
	case errors.Is(err, economy.ErrInsufficientFunds):
		m.addToast("Not enough coins", true)
	case err != nil:
		m.addToast(err.Error(), true)
	case item.IsUpgrade():
		m.addToast("Upgrade purchased!", false)
	default:
		m.addToast("Bought 1 "+assetName(m.engine.Catalog(), item.Asset), false)
	}
}

// handleConfirmKey answers the reset question.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapConfirmKey(msg) {
	case core.ActionConfirm:
		m.engine.Reset()
		m.cursor = 0
		m.mode = modePlay
		m.addToast("Game reset", false)
	case core.ActionBack:
		m.mode = modePlay
	case core.ActionQuit:
		m.finish()
		return m, tea.Quit
	}
	return m, nil
}

// handlePromptKey edits and submits the export/import path.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.finish()
		return m, tea.Quit
	case tea.KeyEsc:
		m.input.Blur()
		m.mode = modePlay
		return m, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			path = save.ExportFileName
		}
		m.input.Blur()
		m.mode = modePlay
		if m.prompt == promptExport {
			m.exportTo(path)
		} else {
			m.importFrom(path)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) exportTo(path string) {
	data, err := m.engine.Export()
	if err != nil {
		m.logger.Warn("export failed", "error", err)
		if errors.Is(err, economy.ErrCorruptSave) {
			m.addToast("Export failed: stored save is unreadable, play or import first", true)
			return
		}
		m.addToast("Export failed", true)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		m.logger.Warn("export write failed", "path", path, "error", err)
		m.addToast("Export failed: "+err.Error(), true)
		return
	}
	m.logger.Info("save exported", "path", path)
	m.addToast("Exported to "+path, false)
}

// importFrom replaces the save with the file at path and restarts the session from it.
func (m *Model) importFrom(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		m.addToast("Import failed: "+err.Error(), true)
		return
	}
	if err := m.engine.Import(data); err != nil {
		if errors.Is(err, economy.ErrCorruptSave) {
			m.addToast("Invalid save file", true)
		} else {
			m.addToast("Import failed", true)
		}
		m.logger.Warn("import rejected", "path", path, "error", err)
		return
	}

	m.recordSession()
	if err := m.engine.Reload(); err != nil {
		m.logger.Error("reload after import failed", "error", err)
		m.addToast("Import failed", true)
		return
	}
	m.recorded = false
	m.started = m.now()
	m.cursor = 0
	m.addToast("Save loaded", false)
}

// handleStatsKey forwards input to the history view until it closes.
func (m Model) handleStatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.finish()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.stats, cmd = m.stats.Update(msg)
	if m.stats.Done() {
		m.mode = modePlay
	}
	return m, cmd
}

// finish flushes pending income and records the session once.
func (m *Model) finish() {
	m.quitting = true
	if err := m.engine.Flush(); err != nil {
		m.logger.Warn("final save failed", "error", err)
	}
	m.recordSession()
}

func (m *Model) recordSession() {
	if m.recorded || m.history == nil {
		return
	}
	m.recorded = true
	id, err := m.history.RecordSession(storage.SessionRecord{
		Slot:         m.slot,
		StartedAt:    m.started,
		EndedAt:      m.now(),
		PeakCoins:    m.engine.PeakCurrency(),
		FinalCoins:   m.engine.Currency(),
		Elapsed:      m.engine.Elapsed(),
		Achievements: len(m.engine.Achievements()),
	})
	if err != nil {
		m.logger.Warn("could not record session", "error", err)
		return
	}
	m.logger.Debug("session recorded", "id", id, "slot", m.slot)
}

func (m *Model) collectUnlocked() {
	for _, name := range m.engine.DrainUnlocked() {
		m.addToast(fmt.Sprintf("Achievement unlocked: %s", name), false)
	}
}

func (m *Model) addToast(text string, warn bool) {
	m.toasts = append(m.toasts, toast{text: text, warn: warn, until: m.now().Add(m.toastDuration)})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
}

func (m *Model) expireToasts() {
	now := m.now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if now.Before(t.until) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// IsQuitting returns true if the user asked to leave.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(Model); !ok || !fm.quitting {
		// Interrupted without passing through quit handling.
		if flushErr := opts.Engine.Flush(); flushErr != nil {
			opts.Logger.Warn("final save failed", "error", flushErr)
		}
	}
	return err
}

func assetName(c economy.Catalog, kind economy.AssetKind) string {
	if spec, ok := c.Asset(kind); ok && spec.Name != "" {
		return strings.ToLower(spec.Name)
	}
	return string(kind)
}
