package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dori/tackle/internal/store"
)

// HistoryLimit is how many past revisions are kept per key
const HistoryLimit = 20

// Revision is one past write of a snapshot
type Revision struct {
	ID        int64
	Size      int
	CreatedAt time.Time
}

// Read returns the current snapshot stored under key
func (db *DB) Read(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

// Write replaces the snapshot under key and records the previous one in
// the history.
func (db *DB) Write(ctx context.Context, key string, data []byte) error {
	now := time.Now().UTC()
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO snapshot_history (key, data, created_at)
			SELECT key, data, updated_at FROM snapshots WHERE key = ?
		`, key)
		if err != nil {
			return fmt.Errorf("failed to archive snapshot: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
		`, key, data, now)
		if err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			DELETE FROM snapshot_history
			WHERE key = ? AND id NOT IN (
				SELECT id FROM snapshot_history WHERE key = ? ORDER BY id DESC LIMIT ?
			)
		`, key, key, HistoryLimit)
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
		return nil
	})
}

// History lists the archived revisions of key, newest first
func (db *DB) History(ctx context.Context, key string) ([]Revision, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, length(data), created_at
		FROM snapshot_history
		WHERE key = ?
		ORDER BY id DESC
	`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.ID, &r.Size, &r.CreatedAt); err != nil {
			return nil, err
		}
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

// Restore makes an archived revision the current snapshot again. The
// snapshot it replaces goes to the history like any other write.
func (db *DB) Restore(ctx context.Context, key string, id int64) ([]byte, error) {
	var data []byte
	err := db.QueryRowContext(ctx, `SELECT data FROM snapshot_history WHERE key = ? AND id = ?`, key, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("revision %d: %w", id, store.ErrNoSnapshot)
	}
	if err != nil {
		return nil, err
	}
	if err := db.Write(ctx, key, data); err != nil {
		return nil, err
	}
	return data, nil
}
