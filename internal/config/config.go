package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "CART"

const (
	CatalogBackendStatic   = "static"
	CatalogBackendPostgres = "postgres"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	DB      DBConfig
	Session SessionConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"CART_APP_ENV" default:"dev"`
	Port     string `envconfig:"CART_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"CART_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

type CatalogConfig struct {
	Backend string `envconfig:"CART_CATALOG_BACKEND" default:"static"`
}

type DBConfig struct {
	Host          string `envconfig:"CART_DB_HOST" default:"localhost"`
	Port          string `envconfig:"CART_DB_PORT" default:"5432"`
	User          string `envconfig:"CART_DB_USER" default:"postgres"`
	Password      string `envconfig:"CART_DB_PASSWORD" default:"postgres"`
	Name          string `envconfig:"CART_DB_NAME" default:"cartdb"`
	SSLMode       string `envconfig:"CART_DB_SSLMODE" default:"disable"`
	MigrationsDir string `envconfig:"CART_DB_MIGRATIONS_DIR" default:"db/migrations"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
}

type SessionConfig struct {
	Backend string        `envconfig:"CART_SESSION_BACKEND" default:"memory"`
	TTL     time.Duration `envconfig:"CART_SESSION_TTL" default:"30m"`
}

type RedisConfig struct {
	Addr     string `envconfig:"CART_REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"CART_REDIS_PASSWORD"`
	DB       int    `envconfig:"CART_REDIS_DB" default:"0"`
}

type KafkaConfig struct {
	Enabled           bool   `envconfig:"CART_EVENTS_ENABLED" default:"false"`
	Brokers           string `envconfig:"CART_KAFKA_BROKERS" default:"localhost:9092"`
	ClientID          string `envconfig:"CART_KAFKA_CLIENT_ID" default:"cart-service"`
	TopicPartitions   int    `envconfig:"CART_KAFKA_TOPIC_PARTITIONS" default:"3"`
	ReplicationFactor int16  `envconfig:"CART_KAFKA_REPLICATION_FACTOR" default:"1"`
}

func (k KafkaConfig) BrokerList() []string {
	return strings.Split(k.Brokers, ",")
}
