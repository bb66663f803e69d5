package auth

import (
	"context"
	"time"

	"shop_backend/internal/model"
	"shop_backend/pkg/token"
)

// issueSession выпускает пару (access, refresh) для аккаунта.
// Refresh токен генерируется заново при каждом вызове - прежний токен
// аккаунта после записи перестает приниматься (один слот на аккаунт).
// При extendRefreshExpiry == false хранимый срок действия не продлевается:
// сессию нельзя тянуть бесконечно одними рефрешами.
func (s *serv) issueSession(ctx context.Context, user *model.User, extendRefreshExpiry bool) (*model.AuthData, error) {
	claims := token.ClaimsFor(user)

	accessToken, err := s.codec.Encode(claims)
	if err != nil {
		return nil, err
	}

	refreshToken, err := token.GenerateRefreshToken(s.jwtCfg.RefreshTokenLength())
	if err != nil {
		return nil, err
	}
	refreshHash := token.HashRefreshToken(refreshToken)

	var expiresAt *time.Time
	if extendRefreshExpiry {
		t := time.Now().UTC().Add(s.jwtCfg.RefreshTokenDuration())
		expiresAt = &t
	}

	// Выпуск и запись - одно целое: если запись не прошла,
	// пара наружу не возвращается
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.userRepo.UpdateRefreshState(ctx, user.ID, &refreshHash, expiresAt)
	})
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
