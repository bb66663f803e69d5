package auth

import (
	"context"
	"errors"

	"shop_backend/internal/model"
	"shop_backend/internal/repository"
	"shop_backend/internal/service"
	"shop_backend/pkg/pass"
)

func (s *serv) Login(ctx context.Context, email, password string) (*model.AuthData, error) {
	// Получение пользователя из бд по email
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Несуществующий email неотличим снаружи от неверного пароля
			return nil, service.ErrInvalidCredentials
		}
		return nil, err
	}

	// Верификация пароля; заблокированный аккаунт отклоняется той же ошибкой
	if !pass.VerifyPassword(user.PasswordHash, password) || user.IsSuspended {
		return nil, service.ErrInvalidCredentials
	}

	// Новая сессия: refresh токен и срок его действия перезаписываются
	return s.issueSession(ctx, user, true)
}
