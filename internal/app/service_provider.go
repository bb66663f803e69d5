package app

import (
	"context"
	"os"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	authAPI "shop_backend/internal/api/auth"
	"shop_backend/internal/config"
	"shop_backend/internal/config/env"
	"shop_backend/internal/logger"
	"shop_backend/internal/mailer"
	"shop_backend/internal/middleware"
	"shop_backend/internal/repository"
	"shop_backend/internal/repository/reset_repo"
	"shop_backend/internal/repository/user_repo"
	"shop_backend/internal/service"
	authServ "shop_backend/internal/service/auth"
	"shop_backend/pkg/token"
)

const configYAMLPath = "config.yaml"

type ServiceProvider struct {
	// TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Repositories
	userRepo  repository.UserRepository
	resetRepo repository.ResetTokenRepository

	// Token bits
	jwtCfg config.JWTConfig
	codec  *token.Codec

	// Password reset bits
	resetCfg config.ResetConfig
	mail     mailer.Sender

	// Auth bits
	authServ service.AuthService
	authHand *authAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router

	logger *zap.Logger
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.logger == nil {
		l, err := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.logger = l
	}
	return sp.logger
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.userRepo
}

func (sp *ServiceProvider) ResetRepo(ctx context.Context) repository.ResetTokenRepository {
	if sp.resetRepo == nil {
		sp.resetRepo = reset_repo.NewResetTokenRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.resetRepo
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfigFromYAML(configYAMLPath)
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) Codec() *token.Codec {
	if sp.codec == nil {
		cfg := sp.JWTCfg()
		c, err := token.NewCodec(
			cfg.SigningSecret(),
			cfg.Issuer(),
			cfg.Audience(),
			cfg.AccessTokenDuration(),
		)
		if err != nil {
			panic("failed to create token codec: " + err.Error())
		}
		sp.codec = c
	}
	return sp.codec
}

func (sp *ServiceProvider) ResetCfg() config.ResetConfig {
	if sp.resetCfg == nil {
		cfg, err := env.NewResetConfigFromYAML(configYAMLPath)
		if err != nil {
			panic("failed to get reset config: " + err.Error())
		}
		sp.resetCfg = cfg
	}
	return sp.resetCfg
}

func (sp *ServiceProvider) Mail() mailer.Sender {
	if sp.mail == nil {
		sp.mail = mailer.NewLogSender(sp.ResetCfg().MailFrom(), sp.Logger())
	}
	return sp.mail
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = authServ.NewService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.ResetRepo(ctx),
			sp.Codec(),
			sp.Mail(),
			sp.JWTCfg(),
			sp.ResetCfg(),
			sp.Logger(),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv:   sp.AuthService(ctx),
			Logger: sp.Logger(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Credential endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/forgot-password", authHandler.ForgotPassword)
			rr.Post("/reset-password", authHandler.ResetPassword)

			// Отзыв доступен только с валидным bearer токеном
			rr.With(middleware.Auth(sp.Codec(), sp.Logger())).
				Post("/revoke", authHandler.Revoke)
		})

		sp.router = r
	}
	return sp.router
}
