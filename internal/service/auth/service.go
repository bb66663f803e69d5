package auth

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"

	"shop_backend/internal/config"
	"shop_backend/internal/mailer"
	"shop_backend/internal/repository"
	"shop_backend/internal/service"
	"shop_backend/pkg/token"
)

type serv struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	resetRepo repository.ResetTokenRepository
	codec     *token.Codec
	mail      mailer.Sender
	jwtCfg    config.JWTConfig
	resetCfg  config.ResetConfig
	logger    *zap.Logger
}

func NewService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	resetRepo repository.ResetTokenRepository,
	codec *token.Codec,
	mail mailer.Sender,
	jwtCfg config.JWTConfig,
	resetCfg config.ResetConfig,
	logger *zap.Logger,
) service.AuthService {
	return &serv{
		txManager: txManager,
		userRepo:  userRepo,
		resetRepo: resetRepo,
		codec:     codec,
		mail:      mail,
		jwtCfg:    jwtCfg,
		resetCfg:  resetCfg,
		logger:    logger,
	}
}
