package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/invoicely/internal/database"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"Invoicely"`
		Port      int    `envconfig:"PORT" default:"8080"`
		LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	}

	DB struct {
		Driver      database.Driver `envconfig:"DB_DRIVER" default:"postgres"`
		Host        string          `envconfig:"DB_HOST" default:"localhost"`
		Port        int             `envconfig:"DB_PORT" default:"5432"`
		User        string          `envconfig:"DB_USER" default:"postgres"`
		Password    string          `envconfig:"DB_PASSWORD" default:""`
		Name        string          `envconfig:"DB_NAME" default:"invoicely"`
		SQLitePath  string          `envconfig:"DB_SQLITE_PATH" default:"./data/invoicely.db"`
		AutoMigrate bool            `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		// DevUserID is used for every request when no JWT secret is configured.
		DevUserID string `envconfig:"AUTH_DEV_USER_ID" default:"00000000-0000-0000-0000-000000000001"`
	}

	AMQP struct {
		URL      string `envconfig:"AMQP_URL"`
		Exchange string `envconfig:"AMQP_EXCHANGE" default:"invoicely"`
	}
}

// ConnectionString returns the DSN for the configured driver.
func (c *Config) ConnectionString() string {
	if c.DB.Driver == database.DriverSQLite {
		return c.DB.SQLitePath
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// DevUser parses AUTH_DEV_USER_ID.
func (c *Config) DevUser() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Auth.DevUserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid AUTH_DEV_USER_ID: %w", err)
	}

	return id, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case database.DriverPostgres, database.DriverSQLite, database.DriverMemory:
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: must be postgres, sqlite or memory", c.DB.Driver)
	}

	if c.App.Port < 1 || c.App.Port > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 1 and 65535", c.App.Port)
	}

	if _, err := c.DevUser(); err != nil {
		return err
	}

	if _, err := parseLevel(c.App.LogLevel); err != nil {
		return err
	}

	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}

	return level, nil
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.App.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(c.App.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("app", c.App.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
