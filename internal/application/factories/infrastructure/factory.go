package infrastructure

import (
	"context"
	"fmt"
	"time"

	pgxpool "github.com/jackc/pgx/v5/pgxpool"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"

	"github.com/max3tmk/ImageGallery/activity/internal/config"
	"github.com/max3tmk/ImageGallery/activity/internal/domain/activity"
	"github.com/max3tmk/ImageGallery/activity/internal/infrastructure/kafka"
	"github.com/max3tmk/ImageGallery/activity/internal/infrastructure/memory"
	"github.com/max3tmk/ImageGallery/activity/internal/infrastructure/mongo"
	"github.com/max3tmk/ImageGallery/activity/internal/infrastructure/postgres"
)

const connectAttempts = 5

// Stores is the pair of persistence ports the consumer writes to.
type Stores struct {
	Likes    activity.LikeEventStore
	Comments activity.CommentEventStore
}

// Factory lazily opens shared clients and closes whatever it opened.
type Factory struct {
	cfg         *config.Config
	log         *zap.Logger
	pgPool      *pgxpool.Pool
	mongoClient *mongodriver.Client
	stores      *Stores
}

func NewFactory(cfg *config.Config, log *zap.Logger) *Factory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Factory{
		cfg: cfg,
		log: log,
	}
}

// Stores builds the ports for the configured backend.
func (f *Factory) Stores(ctx context.Context) (*Stores, error) {
	if f.stores != nil {
		return f.stores, nil
	}

	timeout := f.cfg.Store.OperationTimeout

	switch f.cfg.Store.Backend {
	case config.BackendMongo:
		client, err := f.Mongo(ctx)
		if err != nil {
			return nil, err
		}
		db := client.Database(f.cfg.Mongo.Database)
		f.stores = &Stores{
			Likes:    mongo.NewLikeEventRepository(db, f.cfg.Mongo.LikeCollection, timeout),
			Comments: mongo.NewCommentEventRepository(db, f.cfg.Mongo.CommentCollection, timeout),
		}
	case config.BackendPostgres:
		pool, err := f.Postgres(ctx)
		if err != nil {
			return nil, err
		}
		f.stores = &Stores{
			Likes:    postgres.NewLikeEventRepository(pool, timeout),
			Comments: postgres.NewCommentEventRepository(pool, timeout),
		}
	case config.BackendMemory:
		f.stores = &Stores{
			Likes:    memory.NewLikeEventStore(),
			Comments: memory.NewCommentEventStore(),
		}
	default:
		return nil, fmt.Errorf("unknown store backend %q", f.cfg.Store.Backend)
	}

	f.log.Info("Store backend ready", zap.String("backend", f.cfg.Store.Backend))
	return f.stores, nil
}

func (f *Factory) Mongo(ctx context.Context) (*mongodriver.Client, error) {
	if f.mongoClient != nil {
		return f.mongoClient, nil
	}

	var client *mongodriver.Client
	err := f.retry(ctx, "mongo", func() error {
		var err error
		client, err = mongo.NewClient(ctx, mongo.Config{URI: f.cfg.Mongo.URI})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init mongo after retries: %w", err)
	}

	f.mongoClient = client
	return client, nil
}

// Postgres opens the pool and applies migrations.
func (f *Factory) Postgres(ctx context.Context) (*pgxpool.Pool, error) {
	if f.pgPool != nil {
		return f.pgPool, nil
	}

	pgCfg := postgres.Config{
		Host:     f.cfg.Postgres.Host,
		Port:     f.cfg.Postgres.Port,
		User:     f.cfg.Postgres.User,
		Password: f.cfg.Postgres.Password,
		DBName:   f.cfg.Postgres.DBName,
		SSLMode:  f.cfg.Postgres.SSLMode,
	}

	var pool *pgxpool.Pool
	err := f.retry(ctx, "postgres", func() error {
		var err error
		pool, err = postgres.NewClient(ctx, pgCfg)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres after retries: %w", err)
	}

	if err := postgres.Migrate(pgCfg.DSN()); err != nil {
		pool.Close()
		return nil, err
	}

	f.pgPool = pool
	return pool, nil
}

// NewReader opens a group reader for one topic.
func (f *Factory) NewReader(topic, groupID string) *kafka.Consumer {
	return kafka.NewConsumer(kafka.ReaderConfig{
		Brokers:     f.cfg.Kafka.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		StartOffset: f.cfg.Kafka.StartOffset,
	})
}

// Ping checks the opened backend. The memory backend is always ready.
func (f *Factory) Ping(ctx context.Context) error {
	if f.mongoClient != nil {
		if err := f.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			return fmt.Errorf("mongo: %w", err)
		}
	}
	if f.pgPool != nil {
		if err := f.pgPool.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	return nil
}

func (f *Factory) Close(ctx context.Context) {
	if f.pgPool != nil {
		f.pgPool.Close()
	}
	if f.mongoClient != nil {
		if err := f.mongoClient.Disconnect(ctx); err != nil {
			f.log.Error("failed to disconnect mongo", zap.Error(err))
		}
	}
}

func (f *Factory) retry(ctx context.Context, name string, connect func() error) error {
	var err error
	for i := 0; i < connectAttempts; i++ {
		if err = connect(); err == nil {
			return nil
		}
		f.log.Warn("Failed to connect, retrying in 2s",
			zap.String("backend", name),
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", connectAttempts),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return err
}
