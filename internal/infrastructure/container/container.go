package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/profilematch/backend/internal/config"
	"github.com/profilematch/backend/internal/delivery/http/handler"
	"github.com/profilematch/backend/internal/delivery/http/router"
	"github.com/profilematch/backend/internal/infrastructure/database"
	"github.com/profilematch/backend/internal/infrastructure/identity"
	"github.com/profilematch/backend/internal/infrastructure/server"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository/postgres"
	"github.com/profilematch/backend/internal/repository/rediscache"
	"github.com/profilematch/backend/internal/usecase/attributes"
	"github.com/profilematch/backend/internal/usecase/auth"
	"github.com/profilematch/backend/internal/usecase/ego"
	"github.com/profilematch/backend/internal/usecase/interests"
	"github.com/profilematch/backend/internal/usecase/profile"
	"github.com/profilematch/backend/internal/usecase/teams"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Log    *logger.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer wires configuration, storage, use cases and the HTTP
// stack together. Redis is optional: when it is unreachable the
// dictionary endpoints fall back to direct database reads.
func NewContainer(cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, dictionary cache disabled", "error", err)
		redisClient = nil
	}

	identityClient := identity.NewClient(
		cfg.Identity.BaseURL,
		cfg.Identity.AnonKey,
		cfg.Identity.ServiceKey,
		cfg.Identity.Timeout,
	)

	dictionaryRepo := postgres.NewDictionaryRepository(db)
	cachedDictionaries := rediscache.NewDictionaryCache(dictionaryRepo, redisClient, cfg.Redis.DictionaryTTL, log)
	profileRepo := postgres.NewProfileRepository(db, log)
	attributeRepo := postgres.NewAttributeRepository(db)
	egoRepo := postgres.NewEgoRepository(db)
	teamRepo := postgres.NewTeamRepository(db)

	authUseCase := auth.NewUseCase(identityClient, profileRepo, log)
	profileUseCase := profile.NewUseCase(profileRepo, cachedDictionaries, log)
	attributesUseCase := attributes.NewUseCase(attributeRepo, log)
	egoUseCase := ego.NewUseCase(egoRepo, log)
	teamsUseCase := teams.NewUseCase(teamRepo, profileRepo, cachedDictionaries, log)
	interestsUseCase := interests.NewUseCase(profileRepo, cachedDictionaries, log)

	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authUseCase, log),
		Profile:   handler.NewProfileHandler(profileUseCase, log),
		Attribute: handler.NewAttributeHandler(attributesUseCase, log),
		Ego:       handler.NewEgoHandler(egoUseCase, log),
		Team:      handler.NewTeamHandler(teamsUseCase, log),
		Interest:  handler.NewInterestHandler(interestsUseCase, log),
	}

	engine := router.Setup(cfg, log, handlers)
	srv := server.NewServer(&cfg.Server, engine, log)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close releases database and cache connections.
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("error closing redis", "error", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
