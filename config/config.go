package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is constructed once at
// process start and injected into constructors; nothing reads the
// environment at call time.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Tokens   TokensConfig   `mapstructure:"tokens"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
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
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AuthConfig covers verification of session tokens issued by the auth
// collaborator. This service never issues tokens itself.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type WalletConfig struct {
	// EncryptionKey is a 64-character hex string (32 bytes) used for
	// AES-256-GCM encryption of wallet private keys at rest.
	EncryptionKey string `mapstructure:"encryption_key"`
}

// ChainConfig describes the external signing relayer and token contract.
// Chain mirroring is enabled only when all three are set.
type ChainConfig struct {
	RelayerURL      string        `mapstructure:"relayer_url"`
	RelayerSecret   string        `mapstructure:"relayer_secret"`
	ContractAddress string        `mapstructure:"contract_address"`
	ExplorerBaseURL string        `mapstructure:"explorer_base_url"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// Enabled reports whether ledger entries should be mirrored on-chain.
func (c ChainConfig) Enabled() bool {
	return c.RelayerURL != "" && c.RelayerSecret != "" && c.ContractAddress != ""
}

type SyncConfig struct {
	// Secret authenticates the external scheduler's batch trigger.
	Secret string `mapstructure:"secret"`
	// Schedule is a cron expression for the in-process batch job;
	// empty disables it (external scheduler only).
	Schedule  string `mapstructure:"schedule"`
	BatchSize int    `mapstructure:"batch_size"`
}

type TokensConfig struct {
	DailyCap int64 `mapstructure:"daily_cap"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: TKV_.
// Nested keys use underscore: TKV_DATABASE_HOST, TKV_SYNC_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "tokenvine")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "familyvine-auth")
	v.SetDefault("wallet.encryption_key", "")
	v.SetDefault("chain.relayer_url", "")
	v.SetDefault("chain.relayer_secret", "")
	v.SetDefault("chain.contract_address", "")
	v.SetDefault("chain.explorer_base_url", "https://sepolia.basescan.org")
	v.SetDefault("chain.request_timeout", "30s")
	v.SetDefault("sync.secret", "")
	v.SetDefault("sync.schedule", "")
	v.SetDefault("sync.batch_size", 50)
	v.SetDefault("tokens.daily_cap", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: TKV_DATABASE_HOST -> database.host
	v.SetEnvPrefix("TKV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Tokens.DailyCap <= 0 {
		return nil, fmt.Errorf("tokens.daily_cap must be positive, got %d", cfg.Tokens.DailyCap)
	}

	return &cfg, nil
}
