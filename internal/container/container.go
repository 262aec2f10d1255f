package container

import (
	"context"
	"fmt"

	"guitarcenter/harvester/internal/cache"
	"guitarcenter/harvester/internal/client"
	"guitarcenter/harvester/internal/config"
	"guitarcenter/harvester/internal/proxy"
	"guitarcenter/harvester/internal/repository"
	"guitarcenter/harvester/internal/service"
	"guitarcenter/harvester/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config       *config.Config
	Cache        cache.Store
	Client       client.CatalogClient
	Repository   repository.CatalogRepository
	StateManager state.Manager

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	proxySupplier, err := proxy.NewSupplier(context.Background(), cfg.Catalog.Proxies, cfg.Catalog.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize proxy supplier: %w", err)
	}

	db, err := pgxpool.New(context.Background(),
		fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
		))
	if err != nil {
		return nil, err
	}
	container.db = db

	catalogRepo := repository.NewCatalogRepository(db)
	container.Repository = catalogRepo

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	container.redis = rdb

	log.Info("✅ Connected to Redis successfully")

	stateManager := state.NewRedisManager(rdb)
	container.StateManager = stateManager

	store := cache.NewFileStore(cfg.Cache.Path)
	container.Cache = store

	fetcher := client.NewFetcher(cfg.Catalog, store, proxySupplier)
	catalogClient := client.NewCatalogClient(cfg.Catalog, cfg.Brands, fetcher)
	container.Client = catalogClient

	container.Service = service.NewService(
		catalogRepo,
		catalogClient,
		stateManager,
		cfg.Catalog.MaxWorkers,
	)

	return container, nil
}

// Run executes a full harvest of brands and products
func (c *Container) Run(ctx context.Context) error {
	return c.Service.Run(ctx)
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	c.db.Close()
	c.redis.Close()

	log.Info("Container shut down successfully")
	return nil
}
