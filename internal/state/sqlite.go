package state

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/internal/registry"
	"github.com/tonality-labs/tonality/pkg/theory"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore implements SessionStore on a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens the database. Use ":memory:" for an in-memory store.
func (s *SQLiteStore) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping session database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	s.db = db
	s.path = path
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the session tables when missing.
func (s *SQLiteStore) InitSchema() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// SaveScale upserts a session scale keyed by name.
func (s *SQLiteStore) SaveScale(record *registry.Record) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if record == nil || record.Entry == nil {
		return fmt.Errorf("save scale: empty record")
	}
	pcs, tokens, midi, err := encodeRecord(record)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO session_scales (id, name, pitch_classes, scope, tokens, absolute_midi, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   pitch_classes = excluded.pitch_classes,
		   scope = excluded.scope,
		   tokens = excluded.tokens,
		   absolute_midi = excluded.absolute_midi`,
		record.ID, record.Entry.Name, pcs, record.Context.Scope, tokens, midi, createdAt(record),
	)
	if err != nil {
		return fmt.Errorf("failed to save scale %q: %w", record.Entry.Name, err)
	}
	return nil
}

// SaveChord upserts a session chord quality keyed by name.
func (s *SQLiteStore) SaveChord(record *registry.Record) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if record == nil || record.Entry == nil {
		return fmt.Errorf("save chord: empty record")
	}
	intervals, tokens, midi, err := encodeRecord(record)
	if err != nil {
		return err
	}
	tensions, err := json.Marshal(pcInts(record.Entry.Tensions))
	if err != nil {
		return fmt.Errorf("failed to encode tensions: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO session_chords (id, name, intervals, tensions, scope, tokens, absolute_midi, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   intervals = excluded.intervals,
		   tensions = excluded.tensions,
		   scope = excluded.scope,
		   tokens = excluded.tokens,
		   absolute_midi = excluded.absolute_midi`,
		record.ID, record.Entry.Name, intervals, string(tensions), record.Context.Scope, tokens, midi, createdAt(record),
	)
	if err != nil {
		return fmt.Errorf("failed to save chord %q: %w", record.Entry.Name, err)
	}
	return nil
}

// ListScales returns every persisted session scale, oldest first.
func (s *SQLiteStore) ListScales() ([]*registry.Record, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.Query(
		`SELECT id, name, pitch_classes, '[]', scope, tokens, absolute_midi, created_at
		 FROM session_scales ORDER BY created_at, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scales: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListChords returns every persisted session chord, oldest first.
func (s *SQLiteStore) ListChords() ([]*registry.Record, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.Query(
		`SELECT id, name, intervals, tensions, scope, tokens, absolute_midi, created_at
		 FROM session_chords ORDER BY created_at, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chords: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// DeleteScale removes a persisted scale by name.
func (s *SQLiteStore) DeleteScale(name string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.Exec(`DELETE FROM session_scales WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete scale %q: %w", name, err)
	}
	return nil
}

// DeleteChord removes a persisted chord by name.
func (s *SQLiteStore) DeleteChord(name string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.Exec(`DELETE FROM session_chords WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete chord %q: %w", name, err)
	}
	return nil
}

// Clear wipes both session tables.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.Exec(`DELETE FROM session_scales`); err != nil {
		return fmt.Errorf("failed to clear scales: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM session_chords`); err != nil {
		return fmt.Errorf("failed to clear chords: %w", err)
	}
	return nil
}

// SaveRegistry persists every current session entry.
func (s *SQLiteStore) SaveRegistry(reg *registry.Registry) error {
	for _, record := range reg.Scales() {
		if err := s.SaveScale(record); err != nil {
			return err
		}
	}
	for _, record := range reg.Chords() {
		if err := s.SaveChord(record); err != nil {
			return err
		}
	}
	return nil
}

// LoadRegistry restores persisted entries into the registry. Entries that
// no longer validate are skipped rather than failing the whole load.
func (s *SQLiteStore) LoadRegistry(reg *registry.Registry) error {
	scales, err := s.ListScales()
	if err != nil {
		return err
	}
	for _, record := range scales {
		if err := reg.Restore("scale", record); err != nil {
			return err
		}
	}
	chords, err := s.ListChords()
	if err != nil {
		return err
	}
	for _, record := range chords {
		if err := reg.Restore("chord", record); err != nil {
			return err
		}
	}
	return nil
}

func encodeRecord(record *registry.Record) (pcs, tokens, midi string, err error) {
	pcsJSON, err := json.Marshal(pcInts(record.Entry.PitchClasses))
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode pitch classes: %w", err)
	}
	tokenList := record.Context.Tokens
	if tokenList == nil {
		tokenList = []string{}
	}
	tokensJSON, err := json.Marshal(tokenList)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode tokens: %w", err)
	}
	midiList := record.Context.AbsoluteMIDI
	if midiList == nil {
		midiList = []int{}
	}
	midiJSON, err := json.Marshal(midiList)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode midi list: %w", err)
	}
	return string(pcsJSON), string(tokensJSON), string(midiJSON), nil
}

func scanRecords(rows *sql.Rows) ([]*registry.Record, error) {
	var out []*registry.Record
	for rows.Next() {
		var (
			id, name, pcsJSON, tensionsJSON, scope, tokensJSON, midiJSON string
			created                                                      time.Time
		)
		if err := rows.Scan(&id, &name, &pcsJSON, &tensionsJSON, &scope, &tokensJSON, &midiJSON, &created); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		record, err := decodeRecord(id, name, pcsJSON, tensionsJSON, scope, tokensJSON, midiJSON, created)
		if err != nil {
			// a malformed row should not poison the session
			continue
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}
	return out, nil
}

func decodeRecord(id, name, pcsJSON, tensionsJSON, scope, tokensJSON, midiJSON string, created time.Time) (*registry.Record, error) {
	var pcs, tensions, midi []int
	var tokens []string
	if err := json.Unmarshal([]byte(pcsJSON), &pcs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tensionsJSON), &tensions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tokensJSON), &tokens); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(midiJSON), &midi); err != nil {
		return nil, err
	}
	entry, err := catalog.NewEntry(name, intPCs(pcs), nil, intPCs(tensions))
	if err != nil {
		return nil, err
	}
	return &registry.Record{
		ID:    id,
		Entry: entry,
		Context: registry.Context{
			Scope:        scope,
			Tokens:       tokens,
			AbsoluteMIDI: midi,
		},
		CreatedAt: created,
	}, nil
}

func createdAt(record *registry.Record) time.Time {
	if record.CreatedAt.IsZero() {
		return time.Now().UTC()
	}
	return record.CreatedAt.UTC()
}

func pcInts(pcs []theory.PitchClass) []int {
	out := make([]int, 0, len(pcs))
	for _, pc := range pcs {
		out = append(out, int(pc))
	}
	return out
}

func intPCs(values []int) []theory.PitchClass {
	out := make([]theory.PitchClass, 0, len(values))
	for _, v := range values {
		out = append(out, theory.PitchClass(v))
	}
	return out
}
