package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Backend names accepted by Store.Backend.
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	App      App      `yaml:"app"`
	HTTP     HTTP     `yaml:"http"`
	Log      Log      `yaml:"log"`
	Kafka    Kafka    `yaml:"kafka"`
	Store    Store    `yaml:"store"`
	Mongo    Mongo    `yaml:"mongo"`
	Postgres Postgres `yaml:"postgres"`
}

type App struct {
	Name    string `yaml:"name" env:"APP_NAME" env-default:"activity-service"`
	Version string `yaml:"version" env:"APP_VERSION" env-default:"1.0.0"`
}

// HTTP is the ops listener serving /health, /ready and /metrics.
type HTTP struct {
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8081"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type Kafka struct {
	Brokers      []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	LikeTopic    string   `yaml:"like_topic" env:"KAFKA_LIKE_TOPIC" env-default:"image-like-events"`
	CommentTopic string   `yaml:"comment_topic" env:"KAFKA_COMMENT_TOPIC" env-default:"image-comment-events"`
	GroupID      string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"activity-group"`
	// StartOffset applies only when the group has no committed offset: "earliest" or "latest".
	StartOffset string `yaml:"start_offset" env:"KAFKA_START_OFFSET" env-default:"earliest"`
	// Concurrency is the number of readers started per topic inside the group.
	Concurrency int `yaml:"concurrency" env:"KAFKA_CONCURRENCY" env-default:"1"`
}

type Store struct {
	Backend string `yaml:"backend" env:"STORE_BACKEND" env-default:"mongo"`
	// OperationTimeout bounds a single store call. Zero disables it.
	OperationTimeout time.Duration `yaml:"operation_timeout" env:"STORE_OPERATION_TIMEOUT" env-default:"0s"`
}

type Mongo struct {
	URI               string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database          string `yaml:"database" env:"MONGO_DATABASE" env-default:"activitydb"`
	LikeCollection    string `yaml:"like_collection" env:"MONGO_LIKE_COLLECTION" env-default:"like_event"`
	CommentCollection string `yaml:"comment_collection" env:"MONGO_COMMENT_COLLECTION" env-default:"comment_event"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-default:"activityuser"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"activitypass"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB" env-default:"activitydb"`
	SSLMode  string `yaml:"sslmode" env:"POSTGRES_SSLMODE" env-default:"disable"`
}

// DSN returns a postgres:// connection URL usable by both pgx and migrate.
func (p Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

func New() (*Config, error) {
	return Load("config.yaml")
}

// Load reads path when it exists and lets env vars override it.
// A missing file falls back to env vars and defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	_, statErr := os.Stat(path)
	switch {
	case errors.Is(statErr, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	case statErr != nil:
		return nil, fmt.Errorf("config error: %w", statErr)
	default:
		// ReadConfig applies env overrides after the file.
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendMongo, BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("config error: unknown store backend %q", c.Store.Backend)
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config error: no kafka brokers")
	}
	if c.Kafka.Concurrency < 1 {
		c.Kafka.Concurrency = 1
	}
	return nil
}
