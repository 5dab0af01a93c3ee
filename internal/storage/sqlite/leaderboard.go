package sqlite

import (
	"context"

	"github.com/tatianab/lifesim/internal/models"
)

// Leaderboard is a models.Leaderboard backed by the leaderboard table.
type Leaderboard struct {
	db *DB
}

var _ models.Leaderboard = (*Leaderboard)(nil)

func (db *DB) Leaderboard() *Leaderboard { return &Leaderboard{db: db} }

// Record inserts a finished life. Recording the same entry twice is a no-op.
func (l *Leaderboard) Record(ctx context.Context, e models.LeaderboardEntry) error {
	_, err := l.db.sqlDB.ExecContext(ctx, `
		INSERT INTO leaderboard (id, name, age, net_worth, major, ended_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		e.ID, e.Name, e.Age, e.NetWorth, string(e.Major), toMillis(e.EndedAt),
	)
	if err != nil {
		return &models.PersistenceError{Op: "record", Err: err}
	}
	return nil
}

// Top returns the n richest lives.
func (l *Leaderboard) Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	rows, err := l.db.sqlDB.QueryContext(ctx, `
		SELECT id, name, age, net_worth, major, ended_at
		FROM leaderboard
		ORDER BY net_worth DESC, ended_at ASC
		LIMIT ?`, n)
	if err != nil {
		return nil, &models.PersistenceError{Op: "top", Err: err}
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var (
			e       models.LeaderboardEntry
			major   string
			endedAt int64
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Age, &e.NetWorth, &major, &endedAt); err != nil {
			return nil, &models.PersistenceError{Op: "top", Err: err}
		}
		e.Major = models.Major(major)
		e.EndedAt = fromMillis(endedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.PersistenceError{Op: "top", Err: err}
	}
	return entries, nil
}
