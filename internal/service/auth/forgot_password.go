package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"shop_backend/internal/model"
	"shop_backend/internal/repository"
	"shop_backend/pkg/token"
)

const resetTokenLength = 32

// ForgotPassword создает одноразовый токен сброса и отправляет ссылку на почту.
// Для неизвестного email ответ тот же, что и для известного
func (s *serv) ForgotPassword(ctx context.Context, email, clientURI string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Debug("password reset requested for unknown email")
			return nil
		}
		return err
	}

	raw, err := token.GenerateRefreshToken(resetTokenLength)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	reset := &model.ResetToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: token.HashRefreshToken(raw),
		ExpiresAt: now.Add(s.resetCfg.ResetTokenDuration()),
		CreatedAt: now,
	}

	if err := s.resetRepo.CreateResetToken(ctx, reset); err != nil {
		return err
	}

	// Токен уже в URL-safe кодировке, экранируется только email
	link := fmt.Sprintf("%s?email=%s&token=%s", clientURI, url.QueryEscape(user.Email), raw)
	body := fmt.Sprintf("To reset your password, follow the link: %s", link)

	return s.mail.Send(ctx, user.Email, "Password reset", body)
}
