package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"shop_backend/internal/model"
	"shop_backend/internal/repository"
	"shop_backend/internal/service"
	"shop_backend/pkg/token"
)

// Refresh обменивает истекший access токен + живой refresh токен на новую пару.
// Все причины отказа схлопываются в ErrUnauthorized, детали остаются в логе.
func (s *serv) Refresh(ctx context.Context, accessToken, refreshToken string) (*model.AuthData, error) {
	// Подпись, издатель и аудитория проверяются, срок действия - нет:
	// access токен как раз истек, из него нужен только identity
	claims, err := s.codec.Decode(accessToken, true)
	if err != nil {
		s.logger.Debug("refresh: access token rejected", zap.Error(err))
		return nil, service.ErrUnauthorized
	}

	var data *model.AuthData

	// Проверка хранимого состояния и перезапись слота - одна транзакция
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetUserByUsername(ctx, claims.PreferredUsername)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.logger.Debug("refresh: account not found",
					zap.String("username", claims.PreferredUsername))
				return service.ErrUnauthorized
			}
			return err
		}

		if user.RefreshHash == nil || !token.VerifyRefreshToken(refreshToken, *user.RefreshHash) {
			s.logger.Debug("refresh: presented token does not match stored state",
				zap.String("user_id", user.ID))
			return service.ErrUnauthorized
		}

		if user.RefreshExpiresAt == nil || !user.RefreshExpiresAt.After(time.Now()) {
			s.logger.Debug("refresh: stored refresh token expired",
				zap.String("user_id", user.ID))
			return service.ErrUnauthorized
		}

		// Токен заменяется, но хранимый срок действия не продлевается
		data, err = s.issueSession(ctx, user, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}
