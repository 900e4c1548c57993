package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/huynhdieutuong/DevCamper-API/app/entity"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, is_verified,
		       reset_password_token_hash, reset_password_expires_at, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, is_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = uint64(id)
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*entity.User, error) {
	user := &entity.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsVerified,
		&user.ResetPasswordTokenHash,
		&user.ResetPasswordExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE email = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// FindByResetTokenHash matches only an unexpired reset token; expired rows
// behave as if absent.
func (r *UserRepository) FindByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE reset_password_token_hash = ? AND reset_password_expires_at > ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, tokenHash, now))
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET
			name = ?,
			email = ?,
			password_hash = ?,
			role = ?,
			is_verified = ?,
			reset_password_token_hash = ?,
			reset_password_expires_at = ?,
			updated_at = ?
		WHERE id = ?
	`
	user.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsVerified,
		user.ResetPasswordTokenHash,
		user.ResetPasswordExpiresAt,
		user.UpdatedAt,
		user.ID,
	)
	return translateError(err)
}

// SetResetToken writes only the reset-token pair, bypassing the full-row
// update so an in-flight reset cannot clobber unrelated fields.
func (r *UserRepository) SetResetToken(ctx context.Context, userID uint64, tokenHash sql.NullString, expiresAt sql.NullTime) error {
	query := `
		UPDATE users SET
			reset_password_token_hash = ?,
			reset_password_expires_at = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, tokenHash, expiresAt, time.Now(), userID)
	return err
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users ORDER BY id LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user := &entity.User{}
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.IsVerified,
			&user.ResetPasswordTokenHash,
			&user.ResetPasswordExpiresAt,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *UserRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
