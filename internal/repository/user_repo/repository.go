package user_repo

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop_backend/internal/model"
	"shop_backend/internal/repository"
)

const (
	table               = "users"
	colID               = "id"
	colFirstName        = "first_name"
	colLastName         = "last_name"
	colEmail            = "email"
	colUsername         = "username"
	colPasswordHash     = "password_hash"
	colIsSuspended      = "is_suspended"
	colRefreshHash      = "refresh_hash"
	colRefreshExpiresAt = "refresh_expires_at"

	rolesTable = "user_roles"
	colUserID  = "user_id"
	colRole    = "role"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// conn возвращает транзакцию из контекста, если txManager её открыл,
// иначе пул
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

func (r *repo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, sq.Eq{colEmail: email})
}

func (r *repo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getUser(ctx, sq.Eq{colUsername: username})
}

func (r *repo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUser(ctx, sq.Eq{colID: id})
}

// getUser - выборка аккаунта вместе с ролями
func (r *repo) getUser(ctx context.Context, where sq.Eq) (*model.User, error) {
	query := sq.Select(
		colID, colFirstName, colLastName, colEmail, colUsername,
		colPasswordHash, colIsSuspended, colRefreshHash, colRefreshExpiresAt,
	).
		From(table).
		Where(where).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.IsSuspended,
		&user.RefreshHash,
		&user.RefreshExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	user.Roles, err = r.getRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repo) getRoles(ctx context.Context, userID string) ([]string, error) {
	query := sq.Select(colRole).
		From(rolesTable).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colRole).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

// UpdateRefreshState - единственная операция записи refresh-состояния.
// nil refreshHash означает отзыв: оба поля сбрасываются в NULL.
// nil expiresAt при непустом хэше оставляет прежний срок (рефреш без продления).
func (r *repo) UpdateRefreshState(ctx context.Context, userID string, refreshHash *string, expiresAt *time.Time) error {
	query := sq.Update(table).
		Set(colRefreshHash, refreshHash).
		Where(sq.Eq{colID: userID}).
		PlaceholderFormat(sq.Dollar)

	if refreshHash == nil {
		query = query.Set(colRefreshExpiresAt, nil)
	} else if expiresAt != nil {
		query = query.Set(colRefreshExpiresAt, *expiresAt)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *repo) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	query := sq.Update(table).
		Set(colPasswordHash, passwordHash).
		Where(sq.Eq{colID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
