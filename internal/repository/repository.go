package repository

import (
	"context"
	"errors"
	"time"

	"shop_backend/internal/model"
)

// ErrNotFound возвращается, когда запись отсутствует в хранилище
var ErrNotFound = errors.New("record not found")

// UserRepository - узкий интерфейс хранилища аккаунтов, единственная
// точка синхронизации refresh-состояния.
//
// Семантика UpdateRefreshState:
//   - refreshHash != nil, expiresAt != nil: новый токен, новый срок (логин)
//   - refreshHash != nil, expiresAt == nil: новый токен, срок не трогаем (рефреш)
//   - refreshHash == nil: отзыв, оба поля сбрасываются в NULL
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	UpdateRefreshState(ctx context.Context, userID string, refreshHash *string, expiresAt *time.Time) error
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error
}

// ResetTokenRepository - провайдер одноразовых токенов сброса пароля.
// Consume удаляет запись, повторное использование невозможно.
type ResetTokenRepository interface {
	CreateResetToken(ctx context.Context, t *model.ResetToken) error
	ConsumeResetToken(ctx context.Context, userID string, tokenHash string) (*model.ResetToken, error)
}
