package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tatianab/lifesim/internal/models"
	"gopkg.in/yaml.v3"
)

// Store is a models.SessionStore backed by the saves table. Each aggregate
// is kept as its own YAML column, the same documents the file store writes.
type Store struct {
	db *DB
}

var _ models.SessionStore = (*Store)(nil)

func (db *DB) Saves() *Store { return &Store{db: db} }

// Save upserts the session into its slot, stamping SavedAt on success.
func (s *Store) Save(ctx context.Context, session *models.GameSession) error {
	if session.Slot == "" {
		return &models.PersistenceError{Op: "save", Err: fmt.Errorf("slot name is required")}
	}
	player, err := yaml.Marshal(session.Player.PlayerRecord)
	if err != nil {
		return &models.PersistenceError{Op: "save", Slot: session.Slot, Err: fmt.Errorf("marshal player: %w", err)}
	}
	flags, err := yaml.Marshal(session.Player.SessionFlags)
	if err != nil {
		return &models.PersistenceError{Op: "save", Slot: session.Slot, Err: fmt.Errorf("marshal flags: %w", err)}
	}
	history, err := yaml.Marshal(session.History)
	if err != nil {
		return &models.PersistenceError{Op: "save", Slot: session.Slot, Err: fmt.Errorf("marshal history: %w", err)}
	}

	savedAt := s.db.now().UTC()
	_, err = s.db.sqlDB.ExecContext(ctx, `
		INSERT INTO saves (slot, session_id, name, age, saved_at, player, flags, history)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			session_id = excluded.session_id,
			name = excluded.name,
			age = excluded.age,
			saved_at = excluded.saved_at,
			player = excluded.player,
			flags = excluded.flags,
			history = excluded.history`,
		session.Slot, session.ID.String(), session.Player.Name, session.Player.Age,
		toMillis(savedAt), string(player), string(flags), string(history),
	)
	if err != nil {
		return &models.PersistenceError{Op: "save", Slot: session.Slot, Err: err}
	}
	session.SavedAt = savedAt
	return nil
}

// Load reads the session stored in slot.
func (s *Store) Load(ctx context.Context, slot string) (*models.GameSession, error) {
	var (
		id                     string
		savedAt                int64
		player, flags, history string
	)
	err := s.db.sqlDB.QueryRowContext(ctx,
		`SELECT session_id, saved_at, player, flags, history FROM saves WHERE slot = ?`, slot,
	).Scan(&id, &savedAt, &player, &flags, &history)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.PersistenceError{Op: "load", Slot: slot, Err: models.ErrSlotNotFound}
	}
	if err != nil {
		return nil, &models.PersistenceError{Op: "load", Slot: slot, Err: err}
	}

	session := &models.GameSession{Slot: slot, SavedAt: fromMillis(savedAt)}
	if session.ID, err = uuid.Parse(id); err != nil {
		return nil, &models.PersistenceError{Op: "load", Slot: slot, Err: fmt.Errorf("session id: %w", err)}
	}
	for _, doc := range []struct {
		name string
		data string
		v    any
	}{
		{"player", player, &session.Player.PlayerRecord},
		{"flags", flags, &session.Player.SessionFlags},
		{"history", history, &session.History},
	} {
		if err := yaml.Unmarshal([]byte(doc.data), doc.v); err != nil {
			return nil, &models.PersistenceError{Op: "load", Slot: slot, Err: fmt.Errorf("unmarshal %s: %w", doc.name, err)}
		}
	}
	return session, nil
}

// List returns every saved slot, most recently saved first.
func (s *Store) List(ctx context.Context) ([]models.SlotInfo, error) {
	rows, err := s.db.sqlDB.QueryContext(ctx,
		`SELECT slot, name, age, saved_at FROM saves ORDER BY saved_at DESC`)
	if err != nil {
		return nil, &models.PersistenceError{Op: "list", Err: err}
	}
	defer rows.Close()

	slots := []models.SlotInfo{}
	for rows.Next() {
		var (
			info    models.SlotInfo
			savedAt int64
		)
		if err := rows.Scan(&info.Slot, &info.Name, &info.Age, &savedAt); err != nil {
			return nil, &models.PersistenceError{Op: "list", Err: err}
		}
		info.SavedAt = fromMillis(savedAt)
		slots = append(slots, info)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.PersistenceError{Op: "list", Err: err}
	}
	return slots, nil
}
