package app

import (
	"context"
	openingAPI "lootbox_backend/internal/api/opening"
	verificationAPI "lootbox_backend/internal/api/verification"
	walletAPI "lootbox_backend/internal/api/wallet"
	"lootbox_backend/internal/config"
	"lootbox_backend/internal/config/env"
	"lootbox_backend/internal/middleware"
	"lootbox_backend/internal/repository"
	"lootbox_backend/internal/repository/abuse_repo"
	"lootbox_backend/internal/repository/abuse_window_redis_repo"
	"lootbox_backend/internal/repository/abuse_window_repo"
	"lootbox_backend/internal/repository/case_repo"
	"lootbox_backend/internal/repository/draw_repo"
	"lootbox_backend/internal/repository/inventory_repo"
	"lootbox_backend/internal/repository/user_repo"
	"lootbox_backend/internal/service"
	"lootbox_backend/internal/service/abuse"
	"lootbox_backend/internal/service/distribution"
	"lootbox_backend/internal/service/notify"
	"lootbox_backend/internal/service/opening"
	"lootbox_backend/internal/service/verification"
	"lootbox_backend/internal/service/wallet"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const gameConfigPath = "config.yaml"

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Redis, только для abuse.store: redis
	redisConfig config.RedisConfig
	redisClient *redis.Client

	// Auth
	jwtConfig config.JWTConfig

	// Repositories
	userRepo        repository.UserRepository
	caseRepo        repository.CaseRepository
	inventoryRepo   repository.InventoryRepository
	drawRepo        repository.DrawRepository
	abuseRepo       repository.AbuseRepository
	abuseWindowRepo repository.AbuseWindowRepository

	// Game config
	drawCfg  config.DrawConfig
	abuseCfg config.AbuseConfig

	// Services
	notifyServ       service.NotifyService
	abuseGate        service.AbuseGate
	distributionServ service.DistributionService
	openingServ      service.OpeningService
	verificationServ service.VerificationService
	walletServ       service.WalletService

	// Handlers
	openingHand      *openingAPI.Handler
	verificationHand *verificationAPI.Handler
	walletHand       *walletAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

// Close закрывает соединения с базой и redis
func (sp *ServiceProvider) Close() {
	if sp.redisClient != nil {
		if err := sp.redisClient.Close(); err != nil {
			logger.Warningf("failed to close redis client: %v", err)
		}
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
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

func (sp *ServiceProvider) RedisConfig() config.RedisConfig {
	if sp.redisConfig == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisConfig = cfg
	}
	return sp.redisConfig
}

func (sp *ServiceProvider) RedisClient(ctx context.Context) *redis.Client {
	if sp.redisClient == nil {
		cfg := sp.RedisConfig()
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password(),
			DB:       cfg.DB(),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			panic("failed to ping redis: " + err.Error())
		}
		sp.redisClient = client
	}
	return sp.redisClient
}

func (sp *ServiceProvider) JWTConfig() config.JWTConfig {
	if sp.jwtConfig == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtConfig = cfg
	}
	return sp.jwtConfig
}

func (sp *ServiceProvider) DrawCfg() config.DrawConfig {
	if sp.drawCfg == nil {
		cfg, err := env.NewDrawConfigFromYAML(gameConfigPath)
		if err != nil {
			panic("failed to get draw config: " + err.Error())
		}
		sp.drawCfg = cfg
	}
	return sp.drawCfg
}

func (sp *ServiceProvider) AbuseCfg() config.AbuseConfig {
	if sp.abuseCfg == nil {
		cfg, err := env.NewAbuseConfigFromYAML(gameConfigPath)
		if err != nil {
			panic("failed to get abuse config: " + err.Error())
		}
		sp.abuseCfg = cfg
	}
	return sp.abuseCfg
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) CaseRepo(ctx context.Context) repository.CaseRepository {
	if sp.caseRepo == nil {
		sp.caseRepo = case_repo.NewCaseRepository(sp.DBClient(ctx))
	}
	return sp.caseRepo
}

func (sp *ServiceProvider) InventoryRepo(ctx context.Context) repository.InventoryRepository {
	if sp.inventoryRepo == nil {
		sp.inventoryRepo = inventory_repo.NewInventoryRepository(sp.DBClient(ctx))
	}
	return sp.inventoryRepo
}

func (sp *ServiceProvider) DrawRepo(ctx context.Context) repository.DrawRepository {
	if sp.drawRepo == nil {
		sp.drawRepo = draw_repo.NewDrawRepository(sp.DBClient(ctx))
	}
	return sp.drawRepo
}

func (sp *ServiceProvider) AbuseRepo(ctx context.Context) repository.AbuseRepository {
	if sp.abuseRepo == nil {
		sp.abuseRepo = abuse_repo.NewAbuseRepository(sp.DBClient(ctx))
	}
	return sp.abuseRepo
}

// AbuseWindowRepo - окна счетчиков в памяти процесса или в redis
func (sp *ServiceProvider) AbuseWindowRepo(ctx context.Context) repository.AbuseWindowRepository {
	if sp.abuseWindowRepo == nil {
		switch sp.AbuseCfg().Store() {
		case config.AbuseStoreRedis:
			sp.abuseWindowRepo = abuse_window_redis_repo.NewAbuseWindowRepository(sp.RedisClient(ctx))
		default:
			sp.abuseWindowRepo = abuse_window_repo.NewAbuseWindowRepository()
		}
	}
	return sp.abuseWindowRepo
}

func (sp *ServiceProvider) NotifyService() service.NotifyService {
	if sp.notifyServ == nil {
		sp.notifyServ = notify.NewNotifyService()
	}
	return sp.notifyServ
}

func (sp *ServiceProvider) AbuseGate(ctx context.Context) service.AbuseGate {
	if sp.abuseGate == nil {
		sp.abuseGate = abuse.NewAbuseGate(
			sp.AbuseCfg(),
			sp.AbuseWindowRepo(ctx),
			sp.AbuseRepo(ctx),
			sp.UserRepo(ctx),
			sp.NotifyService(),
		)
	}
	return sp.abuseGate
}

func (sp *ServiceProvider) DistributionService() service.DistributionService {
	if sp.distributionServ == nil {
		sp.distributionServ = distribution.NewDistributionService(sp.DrawCfg())
	}
	return sp.distributionServ
}

func (sp *ServiceProvider) OpeningService(ctx context.Context) service.OpeningService {
	if sp.openingServ == nil {
		sp.openingServ = opening.NewOpeningService(opening.Deps{
			Cfg:           sp.DrawCfg(),
			UserRepo:      sp.UserRepo(ctx),
			CaseRepo:      sp.CaseRepo(ctx),
			InventoryRepo: sp.InventoryRepo(ctx),
			DrawRepo:      sp.DrawRepo(ctx),
			Gate:          sp.AbuseGate(ctx),
			Distribution:  sp.DistributionService(),
			TxManager:     sp.TXManager(ctx),
		})
	}
	return sp.openingServ
}

func (sp *ServiceProvider) VerificationService() service.VerificationService {
	if sp.verificationServ == nil {
		sp.verificationServ = verification.NewVerificationService(sp.DistributionService())
	}
	return sp.verificationServ
}

func (sp *ServiceProvider) WalletService(ctx context.Context) service.WalletService {
	if sp.walletServ == nil {
		sp.walletServ = wallet.NewWalletService(sp.UserRepo(ctx), sp.AbuseGate(ctx), sp.TXManager(ctx))
	}
	return sp.walletServ
}

func (sp *ServiceProvider) OpeningHandler(ctx context.Context) *openingAPI.Handler {
	if sp.openingHand == nil {
		sp.openingHand = openingAPI.NewHandler(openingAPI.HandlerDeps{
			Serv: sp.OpeningService(ctx),
		})
	}
	return sp.openingHand
}

func (sp *ServiceProvider) VerificationHandler() *verificationAPI.Handler {
	if sp.verificationHand == nil {
		sp.verificationHand = verificationAPI.NewHandler(verificationAPI.HandlerDeps{
			Serv: sp.VerificationService(),
		})
	}
	return sp.verificationHand
}

func (sp *ServiceProvider) WalletHandler(ctx context.Context) *walletAPI.Handler {
	if sp.walletHand == nil {
		sp.walletHand = walletAPI.NewHandler(walletAPI.HandlerDeps{Serv: sp.WalletService(ctx)})
	}
	return sp.walletHand
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
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		openingHandler := sp.OpeningHandler(ctx)
		verificationHandler := sp.VerificationHandler()
		walletHandler := sp.WalletHandler(ctx)

		// Публичные endpoints
		r.Get("/cases/{id}/odds", openingHandler.Odds)
		r.Post("/verify", verificationHandler.Verify)

		// Endpoints пользователя
		r.Group(func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTConfig().AccessTokenSecretKey()))

			rr.Post("/cases/{id}/open", openingHandler.Open)
			rr.Get("/draws", openingHandler.ListDraws)
			rr.Get("/draws/{id}", openingHandler.GetDraw)

			rr.Route("/wallet", func(wr chi.Router) {
				wr.Get("/", walletHandler.Get)
				wr.Post("/deposit", walletHandler.Deposit)
			})
		})

		sp.router = r
	}

	return sp.router
}
