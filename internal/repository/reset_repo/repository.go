package reset_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop_backend/internal/model"
	"shop_backend/internal/repository"
)

const (
	table        = "password_reset_tokens"
	colID        = "id"
	colUserID    = "user_id"
	colTokenHash = "token_hash"
	colExpiresAt = "expires_at"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewResetTokenRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.ResetTokenRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

func (r *repo) CreateResetToken(ctx context.Context, t *model.ResetToken) error {
	query := sq.Insert(table).
		Columns(colID, colUserID, colTokenHash, colExpiresAt, colCreatedAt).
		Values(t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.CreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// ConsumeResetToken удаляет токен и возвращает удаленную запись.
// Повторный вызов с тем же токеном вернет ErrNotFound - ровно одно использование.
func (r *repo) ConsumeResetToken(ctx context.Context, userID string, tokenHash string) (*model.ResetToken, error) {
	query := sq.Delete(table).
		Where(sq.Eq{colUserID: userID, colTokenHash: tokenHash}).
		Suffix("RETURNING " + colID + ", " + colUserID + ", " + colTokenHash + ", " + colExpiresAt + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var t model.ResetToken
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&t.ID,
		&t.UserID,
		&t.TokenHash,
		&t.ExpiresAt,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &t, nil
}
