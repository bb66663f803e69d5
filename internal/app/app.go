package app

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"shop_backend/internal/config"
	"shop_backend/migrations"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run() error {
	// .env загружается до инициализации провайдера:
	// конфиги и логгер читают окружение
	loadErr := config.Load(".env")

	s.initServiceProvider()
	log := s.ServiceProvider.Logger()
	if loadErr != nil {
		log.Warn("error loading .env file", zap.Error(loadErr))
	}

	ctx := context.Background()

	if err := s.runMigrations(ctx); err != nil {
		return err
	}

	r := s.ServiceProvider.Router(ctx)

	log.Info("starting server", zap.String("address", s.ServiceProvider.HTTPCfg().Address()))
	if err := http.ListenAndServe(s.ServiceProvider.HTTPCfg().Address(), r); err != nil {
		return err
	}
	return nil
}

// runMigrations накатывает встроенные goose-миграции до старта сервера
func (s *App) runMigrations(ctx context.Context) error {
	db, err := sql.Open("pgx", s.ServiceProvider.PgConfig().DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
