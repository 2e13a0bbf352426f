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
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Replay   ReplayConfig   `mapstructure:"replay"`
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

// ChainConfig holds the blockchain RPC endpoint, contract addresses and
// signing keys for the authorization and settlement paths.
type ChainConfig struct {
	RPCURL         string        `mapstructure:"rpc_url"`
	ChainID        int64         `mapstructure:"chain_id"`
	TokenContract  string        `mapstructure:"token_contract"` // burnable ERC-20
	PrizeContract  string        `mapstructure:"prize_contract"` // collectible minter
	AuthorityKey   string        `mapstructure:"authority_key"`  // hex private key: signs burn authorizations
	TreasuryKey    string        `mapstructure:"treasury_key"`   // hex private key: funds payouts and mints
	CallTimeout    time.Duration `mapstructure:"call_timeout"`
	ConfirmTimeout time.Duration `mapstructure:"confirm_timeout"`
	MintGasLimit   uint64        `mapstructure:"mint_gas_limit"`
}

// PricingConfig controls the USD-to-token conversion on authorization.
type PricingConfig struct {
	TokenPriceUSD float64 `mapstructure:"token_price_usd"`
	TokenDecimals int     `mapstructure:"token_decimals"`
}

// ReplayConfig bounds the authorization validity window.
type ReplayConfig struct {
	MaxAge        time.Duration `mapstructure:"max_age"`         // how stale a timestamp may be
	MaxFutureSkew time.Duration `mapstructure:"max_future_skew"` // clock drift allowance
	RecordTTL     time.Duration `mapstructure:"record_ttl"`      // replay record retention
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: MBX_ (Mystery Box).
// Nested keys use underscore: MBX_DATABASE_HOST, MBX_CHAIN_RPC_URL, etc.
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
	v.SetDefault("database.dbname", "mystery_box")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("chain.rpc_url", "")
	v.SetDefault("chain.chain_id", 1)
	v.SetDefault("chain.token_contract", "")
	v.SetDefault("chain.prize_contract", "")
	v.SetDefault("chain.authority_key", "")
	v.SetDefault("chain.treasury_key", "")
	v.SetDefault("chain.call_timeout", "5s")
	v.SetDefault("chain.confirm_timeout", "90s")
	v.SetDefault("chain.mint_gas_limit", 300000)
	v.SetDefault("pricing.token_price_usd", 0.002)
	v.SetDefault("pricing.token_decimals", 18)
	v.SetDefault("replay.max_age", "10m")
	v.SetDefault("replay.max_future_skew", "2m")
	v.SetDefault("replay.record_ttl", "24h")
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

	// Environment variables: MBX_DATABASE_HOST -> database.host
	v.SetEnvPrefix("MBX")
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

	return &cfg, nil
}
