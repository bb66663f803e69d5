package auth

import (
	"context"
	"errors"

	"shop_backend/internal/repository"
	"shop_backend/internal/service"
)

// Revoke сбрасывает refresh-состояние аккаунта: refresh токен и срок
// обнуляются, следующий рефреш невозможен. Уже выданный access токен
// продолжает действовать до своего истечения.
func (s *serv) Revoke(ctx context.Context, userID string) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.userRepo.UpdateRefreshState(ctx, userID, nil, nil)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Аккаунт исчез после выдачи токена - это ошибка клиента,
			// а не молчаливый успех
			return service.ErrAccountNotFound
		}
		return err
	}

	return nil
}
