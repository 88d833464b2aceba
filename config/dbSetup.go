package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/store"
)

func ConnectDB(cfg StoreConfig) (*mongo.Client, error) {
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGOURI not set in environment")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}
	return client, nil
}

// OpenStore connects the configured document store backend.
func OpenStore(cfg StoreConfig, log *zap.Logger) (store.Store, error) {
	switch cfg.Driver {
	case "mongo":
		client, err := ConnectDB(cfg)
		if err != nil {
			return nil, err
		}
		log.Info("Connected to MongoDB", zap.String("database", cfg.Database))
		return store.NewMongoStore(client, cfg.Database, log, cfg.PollInterval), nil
	case "postgres", "mysql", "sqlite":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("DATABASE_DSN not set for %s store", cfg.Driver)
		}
		s, err := store.OpenSQL(cfg.Driver, cfg.DSN, log, cfg.PollInterval)
		if err != nil {
			return nil, err
		}
		log.Info("Connected to SQL document store", zap.String("driver", cfg.Driver))
		return s, nil
	case "memory":
		log.Warn("Using in-memory store, data will not survive a restart")
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Driver)
	}
}
