package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/huynhdieutuong/DevCamper-API/app/entity"
)

type VerificationTokenRepository struct {
	db DBTX
}

func NewVerificationTokenRepository(db DBTX) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

func (r *VerificationTokenRepository) Create(ctx context.Context, token *entity.VerificationToken) error {
	query := `
		INSERT INTO verification_tokens (user_id, email, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		token.UserID,
		token.Email,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	token.ID = uint64(id)
	return nil
}

// FindByHashForUpdate locks the matching unexpired row for the duration of
// the surrounding transaction. Callers must be inside a transaction; the lock
// plus the rows-affected check in DeleteByID make consumption at-most-once.
func (r *VerificationTokenRepository) FindByHashForUpdate(ctx context.Context, tokenHash string, now time.Time) (*entity.VerificationToken, error) {
	query := `
		SELECT id, user_id, email, token_hash, expires_at, created_at
		FROM verification_tokens WHERE token_hash = ? AND expires_at > ? FOR UPDATE
	`
	token := &entity.VerificationToken{}
	err := r.db.QueryRowContext(ctx, query, tokenHash, now).Scan(
		&token.ID,
		&token.UserID,
		&token.Email,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (r *VerificationTokenRepository) DeleteByID(ctx context.Context, id uint64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM verification_tokens WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteExpired reaps rows whose expiry has passed. Unconsumed tokens are
// never deleted inline by the request path, so this runs on a timer.
func (r *VerificationTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM verification_tokens WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
