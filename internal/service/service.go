package service

import (
	"context"

	"shop_backend/internal/model"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*model.AuthData, error)
	Revoke(ctx context.Context, userID string) error
	ForgotPassword(ctx context.Context, email, clientURI string) error
	ResetPassword(ctx context.Context, email, resetToken, newPassword string) error
}
