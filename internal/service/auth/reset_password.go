package auth

import (
	"context"
	"errors"
	"time"

	"shop_backend/internal/repository"
	"shop_backend/internal/service"
	"shop_backend/pkg/pass"
	"shop_backend/pkg/token"
)

// ResetPassword потребляет одноразовый токен сброса и меняет пароль.
// Refresh-состояние аккаунта этот поток не трогает.
func (s *serv) ResetPassword(ctx context.Context, email, resetToken, newPassword string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return service.ErrInvalidResetToken
		}
		return err
	}

	passwordHash, err := pass.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// Потребление токена и смена пароля - одна транзакция
	return s.txManager.Do(ctx, func(ctx context.Context) error {
		reset, err := s.resetRepo.ConsumeResetToken(ctx, user.ID, token.HashRefreshToken(resetToken))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return service.ErrInvalidResetToken
			}
			return err
		}

		if !reset.ExpiresAt.After(time.Now()) {
			return service.ErrInvalidResetToken
		}

		return s.userRepo.UpdatePasswordHash(ctx, user.ID, passwordHash)
	})
}
