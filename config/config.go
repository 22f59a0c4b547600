package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Mode        string `mapstructure:"mode"` // debug, release, test
	FrontendURL string `mapstructure:"frontend_url"`
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

// ChainConfig configures access to the Stacks network and the custodial
// escrow account. EscrowSecretKey (raw hex) and EscrowMnemonic (BIP39 phrase)
// are alternative encodings of the same secret material; exactly one must be
// set, and it is normalized once when the chain client is constructed.
type ChainConfig struct {
	APIURL          string        `mapstructure:"api_url"`         // Hiro extended API
	FacilitatorURL  string        `mapstructure:"facilitator_url"` // x402 settle endpoint
	CustodianURL    string        `mapstructure:"custodian_url"`   // escrow signer/broadcast service
	EscrowAddress   string        `mapstructure:"escrow_address"`
	EscrowSecretKey string        `mapstructure:"escrow_secret_key"`
	EscrowMnemonic  string        `mapstructure:"escrow_mnemonic"`
	VerifyTimeout   time.Duration `mapstructure:"verify_timeout"`
}

type GatewayConfig struct {
	FeePercent      float64       `mapstructure:"fee_percent"`
	UpstreamTimeout time.Duration `mapstructure:"upstream_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: AXG_ (Axiom Gateway).
// Nested keys use underscore: AXG_DATABASE_HOST, AXG_CHAIN_ESCROW_ADDRESS, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.frontend_url", "http://localhost:3000")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "axiom_gateway")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("chain.api_url", "https://api.mainnet.hiro.so")
	v.SetDefault("chain.facilitator_url", "https://x402.org/facilitator")
	v.SetDefault("chain.custodian_url", "")
	v.SetDefault("chain.escrow_address", "")
	v.SetDefault("chain.escrow_secret_key", "")
	v.SetDefault("chain.escrow_mnemonic", "")
	v.SetDefault("chain.verify_timeout", "30s")
	v.SetDefault("gateway.fee_percent", 10.0)
	v.SetDefault("gateway.upstream_timeout", "15s")
	v.SetDefault("gateway.max_upload_bytes", 10<<20)
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

	// Environment variables: AXG_DATABASE_HOST -> database.host
	v.SetEnvPrefix("AXG")
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

	if cfg.Gateway.FeePercent < 0 || cfg.Gateway.FeePercent > 100 {
		return nil, fmt.Errorf("gateway.fee_percent must be in [0,100], got %v", cfg.Gateway.FeePercent)
	}

	return &cfg, nil
}
