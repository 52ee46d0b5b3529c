// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	// StorageDriverPostgres хранилище на PostgreSQL.
	StorageDriverPostgres = "postgres"
	// StorageDriverMongo документное хранилище MongoDB.
	StorageDriverMongo = "mongo"

	// SinkModeDirect записи отправляются в таблицу напрямую из процесса API.
	SinkModeDirect = "direct"
	// SinkModeQueue записи публикуются в RabbitMQ и доставляются cmd/sheet-forwarder.
	SinkModeQueue = "queue"
	// SinkModeOff пересылка выключена.
	SinkModeOff = "off"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	SentryDSN  string `yaml:"sentry_dsn" env:"SENTRY_DSN"`
	FreePlanID string `yaml:"free_plan_id" env:"FREE_PLAN_ID" env-default:"0001"`

	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	GRPCServer      `yaml:"grpc_server"`
	IdentityToken   `yaml:"identity_token"`
	Stripe          `yaml:"stripe"`
	Sink            `yaml:"sink"`
	RabbitMQ        `yaml:"rabbitmq"`
}

// Storage структура для выбора и настройки хранилища
type Storage struct {
	Driver                  string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	StorageConnectionString string        `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	MongoURI                string        `yaml:"mongo_uri" env:"MONGODB_URL"`
	MongoDatabase           string        `yaml:"mongo_database" env:"MONGODB_DATABASE" env-default:"elevator-server"`
	MongoConnectTimeout     time.Duration `yaml:"mongo_connect_timeout" env-default:"10s"`
	MongoRetryAttempts      int           `yaml:"mongo_retry_attempts" env-default:"3"`
	MongoRetryInterval      time.Duration `yaml:"mongo_retry_interval" env-default:"2s"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP     string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":3000"`
	TimeoutHTTP     time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
	RateLimit       float64       `yaml:"rate_limit" env-default:"5"`
	RateBurst       int           `yaml:"rate_burst" env-default:"10"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"*"`
}

// GRPCServer структура для настройки gRPC health-сервера
type GRPCServer struct {
	AddressGRPC string `yaml:"addressgrpc" env:"GRPC_ADDRESS"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
	PlanTTL      time.Duration `yaml:"plan_ttl" env-default:"10m"`
}

// IdentityToken структура для проверки токенов личности (bearer JWT)
type IdentityToken struct {
	SecretKey string `yaml:"secret_key" env:"IDENTITY_TOKEN_SECRET"`
	Issuer    string `yaml:"issuer" env:"IDENTITY_TOKEN_ISSUER"`
	Audience  string `yaml:"audience" env:"IDENTITY_TOKEN_AUDIENCE"`
}

// Stripe структура для работы с платёжным провайдером
type Stripe struct {
	SecretKey     string `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	WebhookSecret string `yaml:"webhook_secret" env:"STRIPE_WEBHOOK_SECRET"`
	Currency      string `yaml:"currency" env:"STRIPE_CURRENCY" env-default:"usd"`
}

// Sink структура для настройки пересылки подписок во внешнюю таблицу
type Sink struct {
	Mode    string        `yaml:"mode" env:"SINK_MODE" env-default:"direct"`
	URL     string        `yaml:"url" env:"SINK_URL"`
	Timeout time.Duration `yaml:"timeout" env:"SINK_TIMEOUT" env-default:"5s"`
}

// RabbitMQ структура для подключения к брокеру
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
	RabbitMQPrefetch   int           `yaml:"prefetch" env-default:"10"`
}

// MustLoad функция для загрузки конфига, завершает процесс при ошибке.
// Путь берётся из CONFIG_PATH; переменные из .env подгружаются заранее.
func MustLoad() *Config {
	// .env может отсутствовать
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла и проверяет его.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.Driver {
	case StorageDriverPostgres:
		if c.StorageConnectionString == "" {
			return fmt.Errorf("storage_connection_string is required for driver %q", c.Driver)
		}
	case StorageDriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("mongo_uri is required for driver %q", c.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}

	switch c.Sink.Mode {
	case SinkModeDirect:
		if c.Sink.URL == "" {
			return fmt.Errorf("sink url is required for mode %q", c.Sink.Mode)
		}
	case SinkModeQueue:
		if c.RabbitMQURL == "" {
			return fmt.Errorf("rabbitmq url is required for sink mode %q", c.Sink.Mode)
		}
	case SinkModeOff:
	default:
		return fmt.Errorf("unknown sink mode %q", c.Sink.Mode)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"FreePlanID: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  MongoDatabase: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  PlanTTL: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Sink:\n"+
			"  Mode: %s\n"+
			"  Timeout: %s\n",
		c.Env,
		c.FreePlanID,
		c.Driver,
		c.MongoDatabase,
		c.AddressRedis,
		c.DB,
		c.PlanTTL,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Sink.Mode,
		c.Sink.Timeout,
	)
}
