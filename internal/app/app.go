package app

import (
	"context"
	"database/sql"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appconfig "chargenet/internal/config"
	httpserver "chargenet/internal/http"
	"chargenet/internal/http/handlers"
	"chargenet/internal/http/middleware"
	"chargenet/internal/redisstore"
	"chargenet/internal/repository"
	"chargenet/internal/service"
	"chargenet/libs/db"
	libredis "chargenet/libs/redis"
)

// App wires dependencies for the ChargeNet API.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// New builds the application graph.
func New(cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	redisClient, err := libredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	tariff, err := service.NewTariff(cfg.Tariff.RatePerKWh)
	if err != nil {
		sqlDB.Close()
		redisClient.Close()
		return nil, err
	}

	userRepo := repository.NewUserRepository(sqlDB)
	entityRepo := repository.NewEntityRepository(sqlDB)
	sessionRepo := repository.NewSessionRepository(sqlDB)

	denylist := redisstore.NewDenylist(redisClient)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())
	authSvc := service.NewAuthService(userRepo, tokenSvc, denylist, logger)
	entitySvc := service.NewEntityService(entityRepo, logger)
	sessionsSvc := service.NewSessionsService(sessionRepo, tariff, logger)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		AuthHandlers:    handlers.NewAuthHandlers(authSvc, logger),
		EntityHandlers:  handlers.NewEntityHandlers(entitySvc, logger),
		UserHandlers:    handlers.NewUserHandlers(userRepo, sessionsSvc, authSvc, logger),
		SessionHandlers: handlers.NewSessionHandlers(sessionsSvc, logger),
		HealthHandler:   handlers.NewHealthHandler(),
	}, middleware.Auth(tokenSvc, denylist))

	handler := middleware.Chain(router,
		middleware.Recovery(logger),
		middleware.RequestLogging(logger),
	)

	server := httpserver.NewServer(cfg.HTTPAddress(), handler, logger)

	return &App{
		server: server,
		db:     sqlDB,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
