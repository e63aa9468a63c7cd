package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/moodroute/moodroute/store"
)

func (d *DB) CreateUser(ctx context.Context, create *store.User) (*store.User, error) {
	fields := []string{"email", "username", "password_hash", "github_id", "github_avatar_url", "created_ts", "updated_ts"}
	args := []any{create.Email, create.Username, create.PasswordHash, create.GithubID, create.GithubAvatarURL, create.CreatedTs, create.UpdatedTs}

	stmt := `INSERT INTO "user" (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return create, nil
}

func (d *DB) GetUser(ctx context.Context, find *store.FindUser) (*store.User, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.Email != nil {
		where, args = append(where, "email = "+placeholder(len(args)+1)), append(args, *find.Email)
	}
	if find.Username != nil {
		where, args = append(where, "username = "+placeholder(len(args)+1)), append(args, *find.Username)
	}
	if find.GithubID != nil {
		where, args = append(where, "github_id = "+placeholder(len(args)+1)), append(args, *find.GithubID)
	}

	query := `SELECT id, email, username, password_hash, github_id, github_avatar_url, created_ts, updated_ts FROM "user" WHERE ` + strings.Join(where, " AND ") + ` LIMIT 1`
	user := &store.User{}
	err := d.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.GithubID, &user.GithubAvatarURL, &user.CreatedTs, &user.UpdatedTs,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (d *DB) UpdateUser(ctx context.Context, update *store.UpdateUser) (*store.User, error) {
	set, args := []string{}, []any{}

	if update.Username != nil {
		set, args = append(set, "username = "+placeholder(len(args)+1)), append(args, *update.Username)
	}
	if update.PasswordHash != nil {
		set, args = append(set, "password_hash = "+placeholder(len(args)+1)), append(args, *update.PasswordHash)
	}
	if update.GithubID != nil {
		set, args = append(set, "github_id = "+placeholder(len(args)+1)), append(args, *update.GithubID)
	}
	if update.GithubAvatarURL != nil {
		set, args = append(set, "github_avatar_url = "+placeholder(len(args)+1)), append(args, *update.GithubAvatarURL)
	}
	if update.UpdatedTs != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *update.UpdatedTs)
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	args = append(args, update.ID)
	stmt := `UPDATE "user" SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args)) + ` RETURNING id, email, username, password_hash, github_id, github_avatar_url, created_ts, updated_ts`
	user := &store.User{}
	err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.GithubID, &user.GithubAvatarURL, &user.CreatedTs, &user.UpdatedTs,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (d *DB) DeleteUser(ctx context.Context, delete *store.DeleteUser) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM "user" WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}
