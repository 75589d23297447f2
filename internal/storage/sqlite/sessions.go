package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/aiden/internal/core"
	"github.com/sandevgo/aiden/pkg/log"
)

type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

// GetOrCreate returns the session for key, creating an empty one if absent.
// The insert is ON CONFLICT DO NOTHING, so a concurrent first access for the
// same key collapses to a single row and never duplicates history.
func (r *SessionsRepo) GetOrCreate(ctx context.Context, key string) (core.Session, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, created_at, last_accessed) VALUES (?, ?, ?) ON CONFLICT(id) DO NOTHING`,
		key, now, now,
	)
	if err != nil {
		return core.Session{}, fmt.Errorf("%w: create session: %v", core.ErrStoreUnavailable, err)
	}

	var sess core.Session
	err = r.db.QueryRowContext(ctx,
		`SELECT id, created_at, last_accessed FROM sessions WHERE id = ?`, key,
	).Scan(&sess.ID, &sess.CreatedAt, &sess.LastAccessed)
	if err != nil {
		return core.Session{}, fmt.Errorf("%w: load session: %v", core.ErrStoreUnavailable, err)
	}

	sess.Messages, err = r.Read(ctx, key)
	if err != nil {
		return core.Session{}, err
	}
	return sess, nil
}

// Append adds one message to the end of the session's history. A single
// INSERT keeps the operation atomic; concurrent appends on one key can
// interleave but never lose each other.
func (r *SessionsRepo) Append(ctx context.Context, key string, msg core.Message) error {
	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin append: %v", core.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (session_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		key, msg.Role, msg.Content, ts,
	)
	if err != nil {
		return fmt.Errorf("%w: insert message: %v", core.ErrStoreUnavailable, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE sessions SET last_accessed = ? WHERE id = ?`, ts, key,
	)
	if err != nil {
		return fmt.Errorf("%w: touch session: %v", core.ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit append: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *SessionsRepo) Read(ctx context.Context, key string) ([]core.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT role, content, created_at FROM messages WHERE session_id = ? ORDER BY id ASC`, key,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query messages: %v", core.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var messages []core.Message
	for rows.Next() {
		var msg core.Message
		if err := rows.Scan(&msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scan message: %v", core.ErrStoreUnavailable, err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate messages: %v", core.ErrStoreUnavailable, err)
	}

	log.FromCtx(ctx).Debug().Str("session", key).Int("count", len(messages)).Msg("loaded history messages")
	return messages, nil
}

// Delete removes the session and its history. Deleting an unknown key is
// not an error.
func (r *SessionsRepo) Delete(ctx context.Context, key string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin delete: %v", core.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, key); err != nil {
		return fmt.Errorf("%w: delete messages: %v", core.ErrStoreUnavailable, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, key); err != nil {
		return fmt.Errorf("%w: delete session: %v", core.ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit delete: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteIdle removes every session whose last access is before cutoff and
// returns how many were dropped.
func (r *SessionsRepo) DeleteIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin sweep: %v", core.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM messages WHERE session_id IN (SELECT id FROM sessions WHERE last_accessed < ?)`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: sweep messages: %v", core.ErrStoreUnavailable, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE last_accessed < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: sweep sessions: %v", core.ErrStoreUnavailable, err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: sweep count: %v", core.ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit sweep: %v", core.ErrStoreUnavailable, err)
	}
	return count, nil
}
