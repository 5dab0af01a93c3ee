package models

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const DefaultSaveDir = ".saves"

// ErrSlotNotFound is wrapped by a PersistenceError when a slot has no save.
var ErrSlotNotFound = errors.New("save slot not found")

// PersistenceError reports a failed load or save. The caller's in-memory
// state is never touched when one is returned.
type PersistenceError struct {
	Op   string // "load", "save", "list", "record" or "top"
	Slot string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Slot == "" {
		return fmt.Sprintf("%s saves: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s slot %q: %v", e.Op, e.Slot, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type sessionMeta struct {
	ID      uuid.UUID `yaml:"id"`
	SavedAt time.Time `yaml:"saved_at"`
}

// FileStore keeps each save slot in its own directory of YAML files.
type FileStore struct {
	Dir string
	now func() time.Time
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultSaveDir
	}
	return &FileStore{Dir: dir, now: time.Now}
}

func validSlot(slot string) error {
	if strings.TrimSpace(slot) == "" {
		return fmt.Errorf("slot name is required")
	}
	if strings.ContainsAny(slot, `/\`) || slot == "." || slot == ".." {
		return fmt.Errorf("invalid slot name %q", slot)
	}
	return nil
}

// Save writes the session, stamping SavedAt on success.
func (fs *FileStore) Save(ctx context.Context, s *GameSession) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "save", Slot: s.Slot, Err: err}
	}
	if err := validSlot(s.Slot); err != nil {
		return &PersistenceError{Op: "save", Slot: s.Slot, Err: err}
	}

	dir := filepath.Join(fs.Dir, s.Slot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &PersistenceError{Op: "save", Slot: s.Slot, Err: err}
	}

	savedAt := fs.now().UTC()
	docs := []struct {
		file string
		v    any
	}{
		{"session.yaml", sessionMeta{ID: s.ID, SavedAt: savedAt}},
		{"player.yaml", s.Player.PlayerRecord},
		{"flags.yaml", s.Player.SessionFlags},
		{"history.yaml", s.History},
	}
	for _, doc := range docs {
		data, err := yaml.Marshal(doc.v)
		if err != nil {
			return &PersistenceError{Op: "save", Slot: s.Slot, Err: fmt.Errorf("marshal %s: %w", doc.file, err)}
		}
		if err := os.WriteFile(filepath.Join(dir, doc.file), data, 0644); err != nil {
			return &PersistenceError{Op: "save", Slot: s.Slot, Err: err}
		}
	}

	s.SavedAt = savedAt
	return nil
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

// Load reads the session stored in slot.
func (fs *FileStore) Load(ctx context.Context, slot string) (*GameSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{Op: "load", Slot: slot, Err: err}
	}
	if err := validSlot(slot); err != nil {
		return nil, &PersistenceError{Op: "load", Slot: slot, Err: err}
	}
	dir := filepath.Join(fs.Dir, slot)

	var record PlayerRecord
	if err := readYAML(filepath.Join(dir, "player.yaml"), &record); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = ErrSlotNotFound
		}
		return nil, &PersistenceError{Op: "load", Slot: slot, Err: err}
	}

	// Older saves may lack these files.
	var meta sessionMeta
	if err := readYAML(filepath.Join(dir, "session.yaml"), &meta); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, &PersistenceError{Op: "load", Slot: slot, Err: err}
	}
	var flags SessionFlags
	if err := readYAML(filepath.Join(dir, "flags.yaml"), &flags); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, &PersistenceError{Op: "load", Slot: slot, Err: err}
	}
	var history GameHistory
	if err := readYAML(filepath.Join(dir, "history.yaml"), &history); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, &PersistenceError{Op: "load", Slot: slot, Err: err}
	}

	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}

	return &GameSession{
		ID:      meta.ID,
		Slot:    slot,
		SavedAt: meta.SavedAt,
		Player:  PlayerState{PlayerRecord: record, SessionFlags: flags},
		History: history,
	}, nil
}

// List returns every slot with a player record, most recently saved first.
func (fs *FileStore) List(ctx context.Context) ([]SlotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	if _, err := os.Stat(fs.Dir); os.IsNotExist(err) {
		return []SlotInfo{}, nil
	}

	entries, err := os.ReadDir(fs.Dir)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}

	slots := []SlotInfo{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(fs.Dir, entry.Name())
		// player.yaml marks a valid slot
		var record PlayerRecord
		if err := readYAML(filepath.Join(dir, "player.yaml"), &record); err != nil {
			continue
		}
		var meta sessionMeta
		_ = readYAML(filepath.Join(dir, "session.yaml"), &meta)
		slots = append(slots, SlotInfo{
			Slot:    entry.Name(),
			Name:    record.Name,
			Age:     record.Age,
			SavedAt: meta.SavedAt,
		})
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].SavedAt.After(slots[j].SavedAt)
	})
	return slots, nil
}

// SessionStore is a save-slot backend.
type SessionStore interface {
	Save(ctx context.Context, s *GameSession) error
	Load(ctx context.Context, slot string) (*GameSession, error)
	List(ctx context.Context) ([]SlotInfo, error)
}

// Leaderboard ranks finished lives by net worth.
type Leaderboard interface {
	Record(ctx context.Context, e LeaderboardEntry) error
	Top(ctx context.Context, n int) ([]LeaderboardEntry, error)
}

var (
	_ SessionStore = (*FileStore)(nil)
	_ Leaderboard  = (*FileLeaderboard)(nil)
)

// FileLeaderboard keeps every entry in a single YAML document.
type FileLeaderboard struct {
	Path string
}

func NewFileLeaderboard(dir string) *FileLeaderboard {
	if dir == "" {
		dir = DefaultSaveDir
	}
	return &FileLeaderboard{Path: filepath.Join(dir, "leaderboard.yaml")}
}

func (lb *FileLeaderboard) read() ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	if err := readYAML(lb.Path, &entries); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return entries, nil
}

// Record adds an entry.
func (lb *FileLeaderboard) Record(ctx context.Context, e LeaderboardEntry) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "record", Err: err}
	}
	entries, err := lb.read()
	if err != nil {
		return &PersistenceError{Op: "record", Err: err}
	}
	entries = append(entries, e)

	data, err := yaml.Marshal(entries)
	if err != nil {
		return &PersistenceError{Op: "record", Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(lb.Path), 0755); err != nil {
		return &PersistenceError{Op: "record", Err: err}
	}
	if err := os.WriteFile(lb.Path, data, 0644); err != nil {
		return &PersistenceError{Op: "record", Err: err}
	}
	return nil
}

// Top returns at most n entries, richest first.
func (lb *FileLeaderboard) Top(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{Op: "top", Err: err}
	}
	entries, err := lb.read()
	if err != nil {
		return nil, &PersistenceError{Op: "top", Err: err}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].NetWorth > entries[j].NetWorth
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
