package config

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string `env:"PORT,      default=8080"`
	Env           string `env:"ENV,       default=development"`
	JWTSecret     string `env:"JWT_SECRET"`
	LogLevel      string `env:"LOG_LEVEL, default=info"`
	TrustedOrigin string `env:"TRUSTED_ORIGIN, default=https://wolt.com"`

	OrderAPI OrderAPIConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Summary  SummaryConfig
}

type OrderAPIConfig struct {
	URL     string        `env:"ORDER_API_URL,     default=https://restaurant-api.wolt.com/v2/order_details/"`
	Timeout time.Duration `env:"ORDER_API_TIMEOUT, default=30s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=datawolt"`

	// CredentialsFile and Credentials carry a {"uri","database"} document that
	// overrides URI and Database. The file wins over the base64 blob.
	CredentialsFile string `env:"STORE_CREDENTIALS_FILE"`
	Credentials     string `env:"STORE_CREDENTIALS"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type SummaryConfig struct {
	CacheTTL     time.Duration `env:"SUMMARY_CACHE_TTL,      default=10m"`
	MinItemCount int           `env:"SUMMARY_MIN_ITEM_COUNT, default=10"`
	MinUnitPrice float64       `env:"SUMMARY_MIN_UNIT_PRICE, default=0"`
	TopN         int           `env:"SUMMARY_TOP_N,          default=10"`
}

// storeCredential is the layout of STORE_CREDENTIALS and STORE_CREDENTIALS_FILE.
type storeCredential struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

// IsProduction reports whether ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads a .env file when present, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom processes configuration from l and resolves the store credential.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Mongo.resolveCredential(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Summary.MinItemCount < 0 || cfg.Summary.MinUnitPrice < 0 {
		return nil, fmt.Errorf("config: summary thresholds must not be negative")
	}
	return &cfg, nil
}

func (m *MongoConfig) resolveCredential() error {
	var raw []byte
	switch {
	case m.CredentialsFile != "":
		b, err := os.ReadFile(m.CredentialsFile)
		if err != nil {
			return fmt.Errorf("read store credentials: %w", err)
		}
		raw = b
	case m.Credentials != "":
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(m.Credentials))
		if err != nil {
			return fmt.Errorf("decode store credentials: %w", err)
		}
		raw = b
	default:
		return nil
	}

	var cred storeCredential
	if err := json.Unmarshal(raw, &cred); err != nil {
		return fmt.Errorf("parse store credentials: %w", err)
	}
	if cred.URI == "" {
		return fmt.Errorf("store credentials: missing uri")
	}
	m.URI = cred.URI
	if cred.Database != "" {
		m.Database = cred.Database
	}
	return nil
}
