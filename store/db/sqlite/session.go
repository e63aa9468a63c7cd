package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/moodroute/moodroute/store"
)

func (d *DB) CreateSession(ctx context.Context, create *store.Session) (*store.Session, error) {
	fields := []string{"user_id", "token_hash", "created_ts", "expires_ts"}
	args := []any{create.UserID, create.TokenHash, create.CreatedTs, create.ExpiresTs}

	stmt := `INSERT INTO user_session (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return create, nil
}

func (d *DB) GetSession(ctx context.Context, find *store.FindSession) (*store.Session, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.UserID != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *find.UserID)
	}
	if find.TokenHash != nil {
		where, args = append(where, "token_hash = "+placeholder(len(args)+1)), append(args, *find.TokenHash)
	}

	query := `SELECT id, user_id, token_hash, created_ts, expires_ts FROM user_session WHERE ` + strings.Join(where, " AND ") + ` LIMIT 1`
	session := &store.Session{}
	err := d.db.QueryRowContext(ctx, query, args...).Scan(
		&session.ID, &session.UserID, &session.TokenHash, &session.CreatedTs, &session.ExpiresTs,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (d *DB) DeleteSession(ctx context.Context, delete *store.DeleteSession) error {
	where, args := []string{}, []any{}

	if delete.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *delete.ID)
	}
	if delete.UserID != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *delete.UserID)
	}
	if delete.TokenHash != nil {
		where, args = append(where, "token_hash = "+placeholder(len(args)+1)), append(args, *delete.TokenHash)
	}

	if len(where) == 0 {
		return fmt.Errorf("no condition to delete")
	}

	stmt := `DELETE FROM user_session WHERE ` + strings.Join(where, " AND ")
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (d *DB) DeleteExpiredSessions(ctx context.Context, nowTs int64) (int64, error) {
	result, err := d.db.ExecContext(ctx, `DELETE FROM user_session WHERE expires_ts <= `+placeholder(1), nowTs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sessions: %w", err)
	}
	return rows, nil
}
