package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort  string `mapstructure:"SERVER_PORT"`
	Env         string `mapstructure:"ENV"`
	DBUrl       string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	Timezone    string `mapstructure:"APP_TIMEZONE"`
	RedisURL    string `mapstructure:"REDIS_URL"`
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	DBMaxOpenConns int `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int `mapstructure:"DB_MAX_IDLE_CONNS"`

	ExportBucket    string `mapstructure:"EXPORT_S3_BUCKET"`
	ExportRegion    string `mapstructure:"EXPORT_S3_REGION"`
	ExportEndpoint  string `mapstructure:"EXPORT_S3_ENDPOINT"`
	ExportAccessKey string `mapstructure:"EXPORT_S3_ACCESS_KEY"`
	ExportSecretKey string `mapstructure:"EXPORT_S3_SECRET_KEY"`

	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
}

const defaultJWTSecret = "changeme"

var keys = []string{
	"SERVER_PORT",
	"ENV",
	"DATABASE_URL",
	"JWT_SECRET",
	"APP_TIMEZONE",
	"REDIS_URL",
	"CORS_ORIGINS",
	"DB_MAX_OPEN_CONNS",
	"DB_MAX_IDLE_CONNS",
	"EXPORT_S3_BUCKET",
	"EXPORT_S3_REGION",
	"EXPORT_S3_ENDPOINT",
	"EXPORT_S3_ACCESS_KEY",
	"EXPORT_S3_SECRET_KEY",
	"ADMIN_USERNAME",
	"ADMIN_PASSWORD",
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("EXPORT_S3_REGION", "us-east-1")

	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.IsProduction() && cfg.JWTSecret == defaultJWTSecret {
		return nil, errors.New("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

// RequireDatabase is checked by the commands that open a connection.
func (c *Config) RequireDatabase() error {
	if strings.TrimSpace(c.DBUrl) == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) ExportArchiveEnabled() bool {
	return c.ExportBucket != ""
}
