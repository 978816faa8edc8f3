package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	AES      AESConfig      `mapstructure:"aes"`
	Log      LogConfig      `mapstructure:"log"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Fees     FeeConfig      `mapstructure:"fees"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Tokens   TokenConfig    `mapstructure:"tokens"`
	Orders   OrderConfig    `mapstructure:"orders"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // postgres, memory
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	TxMaxRetries    int           `mapstructure:"tx_max_retries"`
	LockTimeout     time.Duration `mapstructure:"lock_timeout"`
	AppName         string        `mapstructure:"application_name"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	PoolSize int           `mapstructure:"pool_size"`
	Timeout  time.Duration `mapstructure:"timeout"` // dial, read and write
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig configures verification of identity tokens issued upstream.
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded master key
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// GatewayConfig configures the hosted-checkout payment gateway.
type GatewayConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	SecretKey     string        `mapstructure:"secret_key"`
	WebhookSecret string        `mapstructure:"webhook_secret"`
	Timeout       time.Duration `mapstructure:"timeout"`
	SuccessURL    string        `mapstructure:"success_url"`
	CancelURL     string        `mapstructure:"cancel_url"`
	Currency      string        `mapstructure:"currency"`
}

// FeeConfig holds the platform commission and courier fare schedule.
// Monetary values are minor units (centavos).
type FeeConfig struct {
	PlatformRate string  `mapstructure:"platform_rate"` // decimal string, e.g. "0.20"
	BaseFare     int64   `mapstructure:"base_fare"`
	PerBlockFare int64   `mapstructure:"per_block_fare"`
	BlockKm      float64 `mapstructure:"block_km"`
	IncludedKm   float64 `mapstructure:"included_km"`
}

type WalletConfig struct {
	MinWithdrawal  int64         `mapstructure:"min_withdrawal"`
	WithdrawalLock time.Duration `mapstructure:"withdrawal_lock"`
	HoldTTL        time.Duration `mapstructure:"hold_ttl"`
}

type TokenConfig struct {
	Freshness time.Duration `mapstructure:"freshness"`
}

type OrderConfig struct {
	CheckoutTTL time.Duration `mapstructure:"checkout_ttl"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: LH_.
// Nested keys use underscore: LH_DATABASE_HOST, LH_GATEWAY_WEBHOOK_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "laundry_hub")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.tx_max_retries", 5)
	v.SetDefault("database.lock_timeout", "5s")
	v.SetDefault("database.application_name", "laundry-hub")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.timeout", "250ms")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "laundry-hub-identity")
	v.SetDefault("aes.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("gateway.base_url", "https://api.paymongo.com/v1")
	v.SetDefault("gateway.secret_key", "")
	v.SetDefault("gateway.webhook_secret", "")
	v.SetDefault("gateway.timeout", "10s")
	v.SetDefault("gateway.success_url", "https://laundryhub.app/payments/success")
	v.SetDefault("gateway.cancel_url", "https://laundryhub.app/payments/cancel")
	v.SetDefault("gateway.currency", "PHP")
	v.SetDefault("fees.platform_rate", "0.20")
	v.SetDefault("fees.base_fare", 4900)
	v.SetDefault("fees.per_block_fare", 3000)
	v.SetDefault("fees.block_km", 5)
	v.SetDefault("fees.included_km", 5)
	v.SetDefault("wallet.min_withdrawal", 50000)
	v.SetDefault("wallet.withdrawal_lock", "360h")
	v.SetDefault("wallet.hold_ttl", "30m")
	v.SetDefault("tokens.freshness", "10m")
	v.SetDefault("orders.checkout_ttl", "30m")
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "laundry.order-events")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// LH_GATEWAY_WEBHOOK_SECRET -> gateway.webhook_secret
	v.SetEnvPrefix("LH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks settings that have no safe default.
// Secrets are only mandatory outside debug/test mode.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Server.Mode != "release" {
		return nil
	}
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if len(c.AES.Key) != 64 {
		errs = append(errs, errors.New("aes.key must be 64 hex characters"))
	}
	if c.Gateway.WebhookSecret == "" {
		errs = append(errs, errors.New("gateway.webhook_secret is required"))
	}
	if c.Gateway.SecretKey == "" {
		errs = append(errs, errors.New("gateway.secret_key is required"))
	}
	return errors.Join(errs...)
}
