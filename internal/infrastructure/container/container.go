// Package container provides dependency injection using Uber FX
package container

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pantrychef/v1/internal/application/chat"
	"github.com/pantrychef/v1/internal/application/feasibility"
	"github.com/pantrychef/v1/internal/application/importer"
	"github.com/pantrychef/v1/internal/infrastructure/ai/gemini"
	"github.com/pantrychef/v1/internal/infrastructure/config"
	"github.com/pantrychef/v1/internal/infrastructure/http/apiserver"
	"github.com/pantrychef/v1/internal/infrastructure/persistence/postgres"
	redisrepo "github.com/pantrychef/v1/internal/infrastructure/persistence/redis"
	"github.com/pantrychef/v1/internal/ports/inbound"
	"github.com/pantrychef/v1/internal/ports/outbound"
	"github.com/pantrychef/v1/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides all dependency injection modules for the API server
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	EngineModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ImportModule provides the dependencies for the one-shot importer
var ImportModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	RepositoryModule,
	fx.Provide(importer.NewService),
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		format := "json"
		if cfg.App.Debug {
			format = "console"
		}
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      format,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the PostgreSQL connection pool
var DatabaseModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*pgxpool.Pool, error) {
		pool, err := postgres.NewPool(context.Background(), cfg, log)
		if err != nil {
			return nil, err
		}

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				pool.Close()
				return nil
			},
		})

		return pool, nil
	},
)

// CacheModule provides the reply cache. When Redis is disabled the
// cache is nil and the chat service skips caching entirely.
var CacheModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if !cfg.Redis.Enabled {
			log.Info("Reply cache disabled")
			return nil, nil
		}

		client, err := redisrepo.NewClient(context.Background(), cfg, log)
		if err != nil {
			return nil, err
		}

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})

		return redisrepo.NewCacheRepository(client, log), nil
	},
)

// RepositoryModule provides data access implementations
var RepositoryModule = fx.Provide(
	postgres.NewPantryRepository,
	postgres.NewRecipeRepository,
)

// EngineModule provides the feasibility engine components
var EngineModule = fx.Provide(
	func() feasibility.Normalizer {
		return feasibility.NewNormalizer(feasibility.DefaultConfig())
	},
	func(n feasibility.Normalizer) *feasibility.Scorer {
		return feasibility.NewScorer(n, feasibility.DefaultVitalIngredients())
	},
	feasibility.NewRanker,
	feasibility.NewPromptBuilder,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.AIService {
		return gemini.NewClient(cfg, log)
	},
	func(
		cfg *config.Config,
		pantryRepo outbound.PantryRepository,
		recipeRepo outbound.RecipeRepository,
		aiService outbound.AIService,
		cache outbound.CacheRepository,
		ranker *feasibility.Ranker,
		prompts *feasibility.PromptBuilder,
		log *zap.Logger,
	) inbound.ChatService {
		return chat.NewService(pantryRepo, recipeRepo, aiService, cache,
			ranker, prompts, cfg.Redis.ReplyTTL, log)
	},
)

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	apiserver.NewServer,
)

// LifecycleModule starts and stops the HTTP server with the app
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, server *apiserver.Server, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := server.Start(); err != nil {
						log.Error("API server stopped unexpectedly", zap.Error(err))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Stop(ctx)
			},
		})
	},
)
