package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"

	NotifyTransportRedis = "redis"
	NotifyTransportNATS  = "nats"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL"`
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"postgres"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Geo Config
	GeohashPrecision            int           `env:"GEOHASH_PRECISION" envDefault:"10"`
	ResponderSearchRadiusMeters float64       `env:"RESPONDER_SEARCH_RADIUS_METERS" envDefault:"5000"`
	CrimeSearchRadiusMeters     float64       `env:"CRIME_SEARCH_RADIUS_METERS" envDefault:"1000"`
	StoreTimeout                time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`

	// Notification Config
	NotifyTransport   string        `env:"NOTIFY_TRANSPORT" envDefault:"redis"`
	NotifyTimeout     time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
	NotifyConcurrency int           `env:"NOTIFY_CONCURRENCY" envDefault:"16"`
	NATSURL           string        `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NATSMaxReconnects int           `env:"NATS_MAX_RECONNECTS" envDefault:"10"`
	NATSReconnectWait time.Duration `env:"NATS_RECONNECT_WAIT" envDefault:"2s"`
	NATSTimeout       time.Duration `env:"NATS_TIMEOUT" envDefault:"5s"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Cost bcrypt для хешей двойных секретов
	SecretHashCost int `env:"SECRET_HASH_COST" envDefault:"10"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:                 os.Getenv("DATABASE_URL"),
		HTTPPort:                    getEnv("HTTP_PORT", "8080"),
		LogLevel:                    getEnv("LOG_LEVEL", "info"),
		StorageBackend:              getEnv("STORAGE_BACKEND", StorageBackendPostgres),
		RedisAddr:                   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:                   os.Getenv("REDIS_PASSWORD"),
		RedisDB:                     getEnvAsInt("REDIS_DB", 0),
		GeohashPrecision:            getEnvAsInt("GEOHASH_PRECISION", 10),
		ResponderSearchRadiusMeters: getEnvAsFloat("RESPONDER_SEARCH_RADIUS_METERS", 5000),
		CrimeSearchRadiusMeters:     getEnvAsFloat("CRIME_SEARCH_RADIUS_METERS", 1000),
		StoreTimeout:                getEnvAsDuration("STORE_TIMEOUT", 3*time.Second),
		NotifyTransport:             getEnv("NOTIFY_TRANSPORT", NotifyTransportRedis),
		NotifyTimeout:               getEnvAsDuration("NOTIFY_TIMEOUT", 5*time.Second),
		NotifyConcurrency:           getEnvAsInt("NOTIFY_CONCURRENCY", 16),
		NATSURL:                     getEnv("NATS_URL", "nats://localhost:4222"),
		NATSMaxReconnects:           getEnvAsInt("NATS_MAX_RECONNECTS", 10),
		NATSReconnectWait:           getEnvAsDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		NATSTimeout:                 getEnvAsDuration("NATS_TIMEOUT", 5*time.Second),
		WebhookURL:                  os.Getenv("WEBHOOK_URL"),
		WebhookSecret:               os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:              getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:           getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:            getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		SecretHashCost:              getEnvAsInt("SECRET_HASH_COST", 10),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required")
		}
	case StorageBackendMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	switch c.NotifyTransport {
	case NotifyTransportRedis, NotifyTransportNATS:
	default:
		return fmt.Errorf("unknown NOTIFY_TRANSPORT %q", c.NotifyTransport)
	}

	// длину geohash нельзя менять без переиндексации всех сущностей
	if c.GeohashPrecision < 1 || c.GeohashPrecision > 22 {
		return fmt.Errorf("GEOHASH_PRECISION must be within 1..22, got %d", c.GeohashPrecision)
	}
	if c.ResponderSearchRadiusMeters <= 0 || c.CrimeSearchRadiusMeters <= 0 {
		return fmt.Errorf("search radius must be positive")
	}
	if c.StoreTimeout <= 0 || c.NotifyTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT and NOTIFY_TIMEOUT must be positive")
	}
	if c.NotifyConcurrency < 1 {
		c.NotifyConcurrency = 1
	}
	return nil
}

// RedisRequired сообщает, нужен ли Redis: индекс спасателей и кэш вызовов
// в бэкенде postgres или очередь оповещений в транспорте redis
func (c *Config) RedisRequired() bool {
	return c.StorageBackend == StorageBackendPostgres || c.NotifyTransport == NotifyTransportRedis
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
