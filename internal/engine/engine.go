// Package engine owns the Economy State for one session. Every mutation goes
// through an Engine method, which re-evaluates achievements and persists the
// result through a save.Store.
//
// An Engine is not safe for concurrent use. Front-ends drive it from a single
// loop (the Bubble Tea update loop or a Scheduler).
package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mining-tycoon/internal/achievement"
	"github.com/vovakirdan/mining-tycoon/internal/economy"
	"github.com/vovakirdan/mining-tycoon/internal/save"
)

// Options configures a new Engine. Zero values fall back to defaults.
type Options struct {
	Catalog economy.Catalog
	Rules   achievement.Rules
	Store   save.Store
	Logger  *log.Logger

	// AutosaveTicks is how many ticks may pass between persistence writes
	// of passive income. 0 persists only on operations and Flush.
	AutosaveTicks int
}

// Engine runs the economy of one session.
type Engine struct {
	catalog economy.Catalog
	rules   achievement.Rules
	codec   *save.Codec
	store   save.Store
	logger  *log.Logger

	state    *economy.State
	loaded   bool
	loadErr  error
	// unreadable holds while the store still has the corrupt save found at
	// start. Autosave, Flush and Export leave it in place.
	unreadable bool
	unlocked   []string

	ticks         uint64
	elapsed       time.Duration
	peak          float64
	autosaveTicks int
	dirtyTicks    int
	lastSaveErr   error
}

// New creates an engine and loads the store's save. A missing save starts
// from defaults. A corrupt save also starts from defaults; the decode error
// is kept in LoadErr and the save is only overwritten by the next operation.
func New(opts Options) (*Engine, error) {
	if opts.Catalog.Assets == nil {
		opts.Catalog = economy.DefaultCatalog()
	}
	if opts.Rules == nil {
		opts.Rules = achievement.DefaultRules()
	}
	if err := opts.Catalog.Validate(); err != nil {
		return nil, fmt.Errorf("engine: invalid catalog: %w", err)
	}
	if err := opts.Rules.Validate(opts.Catalog); err != nil {
		return nil, fmt.Errorf("engine: invalid achievements: %w", err)
	}
	if opts.Store == nil {
		opts.Store = save.NewMemoryStore(nil)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	e := &Engine{
		catalog:       opts.Catalog,
		rules:         opts.Rules,
		codec:         save.NewCodec(opts.Catalog),
		store:         opts.Store,
		logger:        opts.Logger,
		state:         economy.NewState(opts.Catalog),
		autosaveTicks: opts.AutosaveTicks,
	}

	if err := e.load(); err != nil {
		return nil, err
	}
	e.peak = e.state.Currency
	return e, nil
}

func (e *Engine) load() error {
	data, ok, err := e.store.Load()
	if err != nil {
		return fmt.Errorf("engine: load save: %w", err)
	}
	if !ok {
		return nil
	}

	s, err := e.codec.Decode(data)
	if err != nil {
		e.loadErr = err
		e.unreadable = true
		e.logger.Warn("ignoring unreadable save", "error", err)
		return nil
	}

	e.state = s
	e.loaded = true
	e.logger.Debug("save loaded", "currency", s.Currency, "achievements", len(s.Achievements))
	return nil
}

// Loaded reports whether the session started from a persisted save.
func (e *Engine) Loaded() bool { return e.loaded }

// LoadErr returns the decode error of a corrupt save found at start, if any.
func (e *Engine) LoadErr() error { return e.loadErr }

// LastSaveErr returns the error of the most recent persistence write, if it failed.
func (e *Engine) LastSaveErr() error { return e.lastSaveErr }

// Mine performs one manual mine and returns the coins gained.
func (e *Engine) Mine() float64 {
	gain := economy.Mine(e.state)
	e.afterMutation()
	return gain
}

// BuyAsset buys one unit of kind and returns the price paid. A rejected
// purchase returns ErrInsufficientFunds (or ErrUnknownAsset) and changes nothing.
func (e *Engine) BuyAsset(kind economy.AssetKind) (float64, error) {
	price, err := economy.BuyAsset(e.state, e.catalog, kind)
	if err != nil {
		return price, err
	}
	e.afterMutation()
	e.logger.Debug("asset bought", "kind", kind, "price", price, "owned", e.state.Count(kind))
	return price, nil
}

// BuyUpgrade buys the next level of key and applies its effect.
func (e *Engine) BuyUpgrade(key economy.UpgradeKey) (float64, error) {
	cost, err := economy.BuyUpgrade(e.state, e.catalog, key)
	if err != nil {
		return cost, err
	}
	e.afterMutation()
	e.logger.Debug("upgrade bought", "key", key, "cost", cost, "level", e.state.Level(key))
	return cost, nil
}

// Reset restores the catalog defaults and persists them. Confirmation is the
// caller's job.
func (e *Engine) Reset() {
	economy.Reset(e.state, e.catalog)
	e.unlocked = nil
	e.peak = 0
	e.unreadable = false
	e.persist()
	e.logger.Info("game reset")
}

// Tick advances passive income by one scheduler step and the elapsed clock
// by TickInterval. The yield is read from the current state, so a purchase
// counts from the very next tick.
func (e *Engine) Tick() float64 {
	gain := economy.TickYield(e.state, e.catalog)
	e.state.Currency += gain
	e.ticks++
	e.elapsed += economy.TickInterval
	e.evaluate()

	e.dirtyTicks++
	if e.autosaveTicks > 0 && e.dirtyTicks >= e.autosaveTicks {
		e.persist()
	}
	return gain
}

// Import validates data and, when it decodes, replaces the persisted save.
// The running state is not touched; the new save takes effect on Reload or
// on the next session. A corrupt value returns ErrCorruptSave and leaves
// both the store and the running state as they were.
func (e *Engine) Import(data []byte) error {
	s, err := e.codec.Decode(data)
	if err != nil {
		return err
	}
	normalized, err := e.codec.Encode(s)
	if err != nil {
		return err
	}
	if err := e.store.Save(normalized); err != nil {
		return fmt.Errorf("engine: store imported save: %w", err)
	}
	e.unreadable = false
	e.logger.Info("save imported", "currency", s.Currency)
	return nil
}

// Export persists the current state and returns the persisted value. While
// the store still holds an unreadable save nothing is written and the decode
// error, wrapping ErrCorruptSave, is returned.
func (e *Engine) Export() ([]byte, error) {
	if e.unreadable {
		return nil, fmt.Errorf("engine: export: %w", e.loadErr)
	}
	data, err := e.codec.Encode(e.state)
	if err != nil {
		return nil, err
	}
	if err := e.store.Save(data); err != nil {
		return nil, fmt.Errorf("engine: store save before export: %w", err)
	}
	e.dirtyTicks = 0
	return data, nil
}

// Reload restarts the session from the store: state, clock and peak are
// replaced by what was persisted. A corrupt store value leaves the session as
// it was and returns ErrCorruptSave.
func (e *Engine) Reload() error {
	data, ok, err := e.store.Load()
	if err != nil {
		return fmt.Errorf("engine: load save: %w", err)
	}
	s := economy.NewState(e.catalog)
	if ok {
		if s, err = e.codec.Decode(data); err != nil {
			return err
		}
	}

	e.state = s
	e.loaded = ok
	e.loadErr = nil
	e.unreadable = false
	e.unlocked = nil
	e.ticks = 0
	e.elapsed = 0
	e.dirtyTicks = 0
	e.peak = s.Currency
	return nil
}

// Flush persists pending passive income.
func (e *Engine) Flush() error {
	e.persist()
	return e.lastSaveErr
}

// DrainUnlocked returns achievements unlocked since the last call.
func (e *Engine) DrainUnlocked() []string {
	names := e.unlocked
	e.unlocked = nil
	return names
}

func (e *Engine) afterMutation() {
	e.unreadable = false
	e.evaluate()
	e.persist()
}

func (e *Engine) evaluate() {
	if e.state.Currency > e.peak {
		e.peak = e.state.Currency
	}
	if names := e.rules.Evaluate(e.state); len(names) > 0 {
		e.unlocked = append(e.unlocked, names...)
		e.logger.Info("achievement unlocked", "names", names)
	}
}

// persist writes the current state. Failures are logged and remembered but
// never interrupt play.
func (e *Engine) persist() {
	e.dirtyTicks = 0
	if e.unreadable {
		return
	}
	data, err := e.codec.Encode(e.state)
	if err == nil {
		err = e.store.Save(data)
	}
	switch {
	case err != nil && e.lastSaveErr == nil:
		e.logger.Warn("could not persist save", "error", err)
	case err == nil && e.lastSaveErr != nil:
		e.logger.Info("persistence recovered")
	}
	e.lastSaveErr = err
}
