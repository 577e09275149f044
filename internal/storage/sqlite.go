// Package storage provides SQLite-based persistence for save slots and
// session history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/mining-tycoon/internal/save"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sqlx.DB
}

// SlotInfo describes one stored save slot.
type SlotInfo struct {
	Slot      string
	Size      int // bytes
	UpdatedAt time.Time
}

// SessionRecord is the summary of one finished play session.
type SessionRecord struct {
	ID           string
	Slot         string
	StartedAt    time.Time
	EndedAt      time.Time
	PeakCoins    float64
	FinalCoins   float64
	Elapsed      time.Duration
	Achievements int
}

// sessionRow is the on-disk layout of SessionRecord. Times are unix milliseconds.
type sessionRow struct {
	ID           string  `db:"id"`
	Slot         string  `db:"slot"`
	StartedAt    int64   `db:"started_at"`
	EndedAt      int64   `db:"ended_at"`
	PeakCoins    float64 `db:"peak_coins"`
	FinalCoins   float64 `db:"final_coins"`
	ElapsedMs    int64   `db:"elapsed_ms"`
	Achievements int     `db:"achievements"`
}

func (r sessionRow) record() SessionRecord {
	return SessionRecord{
		ID:           r.ID,
		Slot:         r.Slot,
		StartedAt:    time.UnixMilli(r.StartedAt),
		EndedAt:      time.UnixMilli(r.EndedAt),
		PeakCoins:    r.PeakCoins,
		FinalCoins:   r.FinalCoins,
		Elapsed:      time.Duration(r.ElapsedMs) * time.Millisecond,
		Achievements: r.Achievements,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	path, err := ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer; also keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			slot TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			peak_coins REAL NOT NULL DEFAULT 0,
			final_coins REAL NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			achievements INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_slot ON sessions(slot);
		CREATE INDEX IF NOT EXISTS idx_sessions_peak ON sessions(slot, peak_coins DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadSave returns the save stored in slot. ok is false if the slot is empty.
func (s *Store) LoadSave(slot string) ([]byte, bool, error) {
	var data string
	err := s.db.Get(&data, "SELECT data FROM saves WHERE slot = ?", slot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot load save %q: %w", slot, err)
	}
	return []byte(data), true, nil
}

// WriteSave stores data in slot, replacing what was there.
func (s *Store) WriteSave(slot string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (slot, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		slot, string(data), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write save %q: %w", slot, err)
	}
	return nil
}

// DeleteSave removes slot. Deleting an empty slot is not an error.
func (s *Store) DeleteSave(slot string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete save %q: %w", slot, err)
	}
	return nil
}

// Slots lists stored save slots, most recently updated first.
func (s *Store) Slots() ([]SlotInfo, error) {
	rows, err := s.db.Queryx(
		`SELECT slot, LENGTH(data) AS size, updated_at FROM saves ORDER BY updated_at DESC, slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	defer rows.Close()

	var slots []SlotInfo
	for rows.Next() {
		var info SlotInfo
		var updatedMs int64
		if err := rows.Scan(&info.Slot, &info.Size, &updatedMs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = time.UnixMilli(updatedMs)
		slots = append(slots, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return slots, nil
}

// Slot returns a save.Store bound to one slot of this database.
func (s *Store) Slot(name string) *SlotStore {
	return &SlotStore{store: s, slot: name}
}

// SlotStore adapts one save slot to the engine's persistence port.
type SlotStore struct {
	store *Store
	slot  string
}

// Ensure SlotStore implements save.Store
var _ save.Store = (*SlotStore)(nil)

// Name returns the slot name.
func (ss *SlotStore) Name() string { return ss.slot }

func (ss *SlotStore) Load() ([]byte, bool, error) { return ss.store.LoadSave(ss.slot) }

func (ss *SlotStore) Save(data []byte) error { return ss.store.WriteSave(ss.slot, data) }

// RecordSession stores a finished session and returns its generated ID.
func (s *Store) RecordSession(rec SessionRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	row := sessionRow{
		ID:           rec.ID,
		Slot:         rec.Slot,
		StartedAt:    rec.StartedAt.UnixMilli(),
		EndedAt:      rec.EndedAt.UnixMilli(),
		PeakCoins:    rec.PeakCoins,
		FinalCoins:   rec.FinalCoins,
		ElapsedMs:    rec.Elapsed.Milliseconds(),
		Achievements: rec.Achievements,
	}

	_, err := s.db.NamedExec(
		`INSERT INTO sessions
		 (id, slot, started_at, ended_at, peak_coins, final_coins, elapsed_ms, achievements)
		 VALUES (:id, :slot, :started_at, :ended_at, :peak_coins, :final_coins, :elapsed_ms, :achievements)`,
		row,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot record session: %w", err)
	}
	return rec.ID, nil
}

// TopSessions returns the best sessions by peak coins. An empty slot matches all slots.
func (s *Store) TopSessions(slot string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []sessionRow
	err := s.db.Select(&rows,
		`SELECT id, slot, started_at, ended_at, peak_coins, final_coins, elapsed_ms, achievements
		 FROM sessions
		 WHERE ? = '' OR slot = ?
		 ORDER BY peak_coins DESC, ended_at DESC
		 LIMIT ?`,
		slot, slot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}

	records := make([]SessionRecord, len(rows))
	for i, r := range rows {
		records[i] = r.record()
	}
	return records, nil
}

// SlotStats contains aggregated statistics for a save slot.
type SlotStats struct {
	Slot         string
	Sessions     int
	BestPeak     float64
	TotalElapsed time.Duration
	LastPlayed   time.Time
}

// GetSlotStats aggregates the session history of slot.
func (s *Store) GetSlotStats(slot string) (*SlotStats, error) {
	var row struct {
		Sessions  int     `db:"sessions"`
		BestPeak  float64 `db:"best_peak"`
		ElapsedMs int64   `db:"elapsed_ms"`
		LastEnded int64   `db:"last_ended"`
	}
	err := s.db.Get(&row,
		`SELECT COUNT(*) AS sessions,
		        COALESCE(MAX(peak_coins), 0) AS best_peak,
		        COALESCE(SUM(elapsed_ms), 0) AS elapsed_ms,
		        COALESCE(MAX(ended_at), 0) AS last_ended
		 FROM sessions WHERE slot = ?`,
		slot,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get slot stats: %w", err)
	}

	stats := &SlotStats{
		Slot:         slot,
		Sessions:     row.Sessions,
		BestPeak:     row.BestPeak,
		TotalElapsed: time.Duration(row.ElapsedMs) * time.Millisecond,
	}
	if row.LastEnded > 0 {
		stats.LastPlayed = time.UnixMilli(row.LastEnded)
	}
	return stats, nil
}

// ClearSessions deletes the session history of slot.
func (s *Store) ClearSessions(slot string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}
