package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers selectable with STORAGE_DRIVER.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

const (
	defaultPort           = "8000"
	defaultSQLitePath     = "./data/expenses.db"
	defaultRateLimit      = "100-M"
	defaultAMQPExchange   = "expense_tracker"
	defaultAMQPRoutingKey = "transactions"
	defaultStatementTitle = "Bank Statement"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StorageDriver string
	DatabaseURL   string
	SQLitePath    string
	EnableDBCheck bool

	AuthEnabled bool
	JWTSecret   string

	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter format, e.g. "100-M"; empty disables

	AMQPURL        string // Empty disables event publishing
	AMQPExchange   string
	AMQPRoutingKey string

	PosthogAPIKey   string
	PosthogEndpoint string

	StatementTitle string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", defaultPort)
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_DRIVER", StorageSQLite)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_PATH", defaultSQLitePath)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("AUTH_ENABLED", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT", defaultRateLimit)
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", defaultAMQPExchange)
	viper.SetDefault("AMQP_ROUTING_KEY", defaultAMQPRoutingKey)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")
	viper.SetDefault("STATEMENT_TITLE", defaultStatementTitle)

	viper.AutomaticEnv()

	cfg := &Config{
		Port:            viper.GetString("PORT"),
		IsProduction:    viper.GetBool("IS_PRODUCTION"),
		StorageDriver:   strings.ToLower(strings.TrimSpace(viper.GetString("STORAGE_DRIVER"))),
		DatabaseURL:     viper.GetString("PGSQL_URL"),
		SQLitePath:      viper.GetString("SQLITE_PATH"),
		EnableDBCheck:   viper.GetBool("ENABLE_DB_CHECK"),
		AuthEnabled:     viper.GetBool("AUTH_ENABLED"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		RateLimit:       strings.TrimSpace(viper.GetString("RATE_LIMIT")),
		AMQPURL:         viper.GetString("AMQP_URL"),
		AMQPExchange:    viper.GetString("AMQP_EXCHANGE"),
		AMQPRoutingKey:  viper.GetString("AMQP_ROUTING_KEY"),
		PosthogAPIKey:   viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: viper.GetString("POSTHOG_ENDPOINT"),
		StatementTitle:  viper.GetString("STATEMENT_TITLE"),
	}
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = StorageSQLite
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = defaultSQLitePath
	}
	if cfg.StatementTitle == "" {
		cfg.StatementTitle = defaultStatementTitle
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports combinations of settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageSQLite:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL must be set when STORAGE_DRIVER is %q", StoragePostgres)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q, expected %q or %q", c.StorageDriver, StorageSQLite, StoragePostgres)
	}
	if c.AuthEnabled && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set when AUTH_ENABLED is true")
	}
	return nil
}

// AllowsAllOrigins reports whether CORS is open to every origin.
func (c *Config) AllowsAllOrigins() bool {
	for _, o := range c.CORSAllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
