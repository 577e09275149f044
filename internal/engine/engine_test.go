package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mining-tycoon/internal/economy"
	"github.com/vovakirdan/mining-tycoon/internal/save"
)

// countingStore records how many times the engine persisted.
type countingStore struct {
	save.MemoryStore
	saves int
	fail  error
}

func (c *countingStore) Save(data []byte) error {
	if c.fail != nil {
		return c.fail
	}
	c.saves++
	return c.MemoryStore.Save(data)
}

func newEngine(t *testing.T, store save.Store) *Engine {
	t.Helper()
	e, err := New(Options{Store: store})
	require.NoError(t, err)
	return e
}

func decodeStored(t *testing.T, store save.Store) *economy.State {
	t.Helper()
	data, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok, "nothing persisted")
	s, err := save.NewCodec(economy.DefaultCatalog()).Decode(data)
	require.NoError(t, err)
	return s
}

func TestFreshSessionMine(t *testing.T) {
	store := &countingStore{}
	e := newEngine(t, store)

	assert.False(t, e.Loaded())
	assert.Equal(t, 1.0, e.Mine())
	assert.Equal(t, 1.0, e.Currency())
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, 1.0, decodeStored(t, store).Currency)
}

func TestEveryOperationPersists(t *testing.T) {
	store := &countingStore{}
	e := newEngine(t, store)

	for range 60 {
		e.Mine()
	}
	_, err := e.BuyAsset(economy.AssetMiner)
	require.NoError(t, err)
	_, err = e.BuyUpgrade(economy.UpgradeBetterChip)
	require.NoError(t, err)

	assert.Equal(t, 62, store.saves)
	assert.True(t, e.Snapshot().Equal(decodeStored(t, store)))

	e.Reset()
	assert.Equal(t, 63, store.saves)
	assert.True(t, decodeStored(t, store).Equal(economy.NewState(economy.DefaultCatalog())))
}

func TestFailedPurchaseIsANoop(t *testing.T) {
	store := &countingStore{}
	e := newEngine(t, store)
	for range 9 {
		e.Mine()
	}
	before := e.Snapshot()
	saves := store.saves

	_, err := e.BuyAsset(economy.AssetMiner)
	require.ErrorIs(t, err, economy.ErrInsufficientFunds)
	_, err = e.BuyUpgrade(economy.UpgradeCooling)
	require.ErrorIs(t, err, economy.ErrInsufficientFunds)

	assert.True(t, before.Equal(e.Snapshot()))
	assert.Equal(t, saves, store.saves, "failed purchase must not persist")
	assert.Equal(t, 9.0, e.Currency())
}

func TestAchievementsUnlockThroughOperations(t *testing.T) {
	seed := `{"currency": 1000, "assetCounts": {"miner": 9}}`
	e := newEngine(t, save.NewMemoryStore([]byte(seed)))
	require.True(t, e.Loaded())

	_, err := e.BuyAsset(economy.AssetMiner)
	require.NoError(t, err)

	assert.Equal(t, []string{"10 miners"}, e.DrainUnlocked())
	assert.Empty(t, e.DrainUnlocked())

	_, err = e.BuyAsset(economy.AssetMiner)
	require.NoError(t, err)
	assert.Empty(t, e.DrainUnlocked())
	assert.Equal(t, []string{"10 miners"}, e.Achievements())
}

func TestTickUsesCurrentState(t *testing.T) {
	e := newEngine(t, save.NewMemoryStore([]byte(`{"currency": 10}`)))

	assert.Equal(t, 0.0, e.Tick())

	_, err := e.BuyAsset(economy.AssetMiner)
	require.NoError(t, err)

	// The purchase shows up on the very next tick.
	assert.Equal(t, 0.05, e.Tick())
	assert.Equal(t, uint64(2), e.Ticks())
	assert.Equal(t, 200*time.Millisecond, e.Elapsed())
}

func TestTenTicksDeliverOneSecond(t *testing.T) {
	seed := `{"assetCounts": {"miner": 2, "rig": 1, "farm": 1}, "autoMultiplier": 2}`
	e := newEngine(t, save.NewMemoryStore([]byte(seed)))
	require.Equal(t, 72.0, e.PassiveYieldPerSecond())

	total := NewScheduler(e).Advance(economy.TicksPerSecond)

	assert.InDelta(t, 72.0, total, 1e-9)
	assert.InDelta(t, 72.0, e.Currency(), 1e-9)
	assert.Equal(t, time.Second, e.Elapsed())
}

func TestTickUnlocksCurrencyAchievement(t *testing.T) {
	seed := `{"currency": 9999.9, "assetCounts": {"rig": 1}}`
	e := newEngine(t, save.NewMemoryStore([]byte(seed)))

	e.Tick() // +0.5

	assert.Equal(t, []string{"10k coins"}, e.Achievements())
}

func TestAutosaveCadence(t *testing.T) {
	store := &countingStore{}
	e, err := New(Options{Store: store, AutosaveTicks: 10})
	require.NoError(t, err)

	NewScheduler(e).Advance(25)
	assert.Equal(t, 2, store.saves)

	require.NoError(t, e.Flush())
	assert.Equal(t, 3, store.saves)
}

func TestCorruptSaveAtStart(t *testing.T) {
	store := save.NewMemoryStore([]byte(`{"currency": "oops"`))
	e := newEngine(t, store)

	assert.False(t, e.Loaded())
	require.ErrorIs(t, e.LoadErr(), economy.ErrCorruptSave)
	assert.True(t, e.Snapshot().Equal(economy.NewState(economy.DefaultCatalog())))

	// Nothing is written until the player acts.
	data, _, _ := store.Load()
	assert.Equal(t, `{"currency": "oops"`, string(data))
}

func TestUnreadableSaveSurvivesUntilPlayerActs(t *testing.T) {
	const corrupt = `{"currency": -5}`
	store := save.NewMemoryStore([]byte(corrupt))
	e, err := New(Options{Store: store, AutosaveTicks: 10})
	require.NoError(t, err)
	require.ErrorIs(t, e.LoadErr(), economy.ErrCorruptSave)

	_, err = e.Export()
	require.ErrorIs(t, err, economy.ErrCorruptSave)
	for range 25 {
		e.Tick()
	}
	require.NoError(t, e.Flush())

	data, _, _ := store.Load()
	assert.Equal(t, corrupt, string(data), "export, autosave and flush must keep the stored save")

	e.Mine()
	exported, err := e.Export()
	require.NoError(t, err)
	assert.Equal(t, 1.0, decodeStored(t, store).Currency)
	stored, _, _ := store.Load()
	assert.Equal(t, stored, exported)
}

func TestImportReplacesStoreOnly(t *testing.T) {
	store := &countingStore{}
	e := newEngine(t, store)
	e.Mine()

	require.NoError(t, e.Import([]byte(`{"currency": 500, "assetCounts": {"rig": 2}}`)))

	assert.Equal(t, 1.0, e.Currency(), "running session must not change before reload")
	assert.Equal(t, 500.0, decodeStored(t, store).Currency)

	require.NoError(t, e.Reload())
	assert.Equal(t, 500.0, e.Currency())
	assert.Equal(t, 2, e.Count(economy.AssetRig))
	assert.Equal(t, time.Duration(0), e.Elapsed())
}

func TestImportCorruptLeavesEverything(t *testing.T) {
	store := &countingStore{}
	e := newEngine(t, store)
	e.Mine()
	e.Mine()
	before := e.Snapshot()
	persisted, _, _ := store.Load()

	err := e.Import([]byte(`not json at all`))
	require.ErrorIs(t, err, economy.ErrCorruptSave)

	after, _, _ := store.Load()
	assert.Equal(t, persisted, after)
	assert.True(t, before.Equal(e.Snapshot()))
}

func TestExportMatchesPersisted(t *testing.T) {
	store := &countingStore{}
	e, err := New(Options{Store: store, AutosaveTicks: 0})
	require.NoError(t, err)
	e.Mine()
	_, err = e.BuyAsset(economy.AssetMiner)
	require.ErrorIs(t, err, economy.ErrInsufficientFunds)

	data, err := e.Export()
	require.NoError(t, err)

	stored, _, _ := store.Load()
	assert.Equal(t, stored, data)
}

func TestPersistFailureDoesNotStopPlay(t *testing.T) {
	boom := errors.New("disk full")
	store := &countingStore{fail: boom}
	e := newEngine(t, store)

	assert.Equal(t, 1.0, e.Mine())
	require.ErrorIs(t, e.LastSaveErr(), boom)

	store.fail = nil
	e.Mine()
	assert.NoError(t, e.LastSaveErr())
	assert.Equal(t, 2.0, decodeStored(t, store).Currency)
}

func TestPricesFollowState(t *testing.T) {
	e := newEngine(t, save.NewMemoryStore([]byte(`{"currency": 100000}`)))

	assert.Equal(t, 10.0, e.AssetPrice(economy.AssetMiner))
	_, err := e.BuyAsset(economy.AssetMiner)
	require.NoError(t, err)
	assert.Equal(t, 11.0, e.AssetPrice(economy.AssetMiner))

	assert.Equal(t, 250.0, e.UpgradePrice(economy.UpgradeCooling))
	_, err = e.BuyUpgrade(economy.UpgradeCooling)
	require.NoError(t, err)
	assert.Equal(t, 500.0, e.UpgradePrice(economy.UpgradeCooling))
	assert.Equal(t, 1.4, e.AutoMultiplier())
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	e := newEngine(t, save.NewMemoryStore([]byte(`{"assetCounts": {"farm": 1}}`)))

	ctx, cancel := context.WithTimeout(context.Background(), 350*time.Millisecond)
	defer cancel()

	var observed uint64
	err := NewScheduler(e).OnTick(func(tick uint64, gain float64) {
		observed = tick
	}).Run(ctx)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, observed, uint64(1))
	assert.Equal(t, observed, e.Ticks())
	assert.InDelta(t, float64(e.Ticks())*3, e.Currency(), 1e-9)
}
