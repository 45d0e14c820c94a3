// Package config loads storefront settings from the environment, an
// optional .env file and command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Prefix namespaces environment variables, e.g. STOREFRONT_DB_PATH.
const Prefix = "STOREFRONT"

type Config struct {
	Web   WebConfig
	DB    DBConfig
	Auth  AuthConfig
	Log   LogConfig
	Kafka KafkaConfig
}

type WebConfig struct {
	Address           string        `conf:"default:0.0.0.0:8080"`
	ReadHeaderTimeout time.Duration `conf:"default:10s"`
	ReadTimeout       time.Duration `conf:"default:15s"`
	WriteTimeout      time.Duration `conf:"default:30s"`
	IdleTimeout       time.Duration `conf:"default:120s"`
	ShutdownTimeout   time.Duration `conf:"default:5s"`
	CookieSecure      bool          `conf:"default:true,help:set false for plain-http local development"`
}

type DBConfig struct {
	Path string `conf:"default:storefront.db"`
}

type AuthConfig struct {
	JWTSecret       string        `conf:"required,mask,help:HMAC key for session tokens (32+ chars)"`
	BcryptCost      int           `conf:"default:12"`
	SessionLifetime time.Duration `conf:"default:24h"`
	LoginRate       float64       `conf:"default:0.2,help:login attempts per second per client"`
	LoginBurst      int           `conf:"default:5"`
}

type LogConfig struct {
	Level  string `conf:"default:info"`
	Format string `conf:"default:text,help:text or json"`
}

type KafkaConfig struct {
	Brokers string `conf:"help:comma separated broker list; empty disables publishing"`
	Topic   string `conf:"default:storefront.orders"`
}

// BrokerList returns the configured brokers with blanks removed.
func (k KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Parse loads .env if present, then environment variables and flags.
// It returns conf.ErrHelpWanted after printing usage when --help is given.
func Parse() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	help, err := conf.Parse(Prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Fprintln(os.Stdout, help)
		}
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that conf cannot express as tags.
func (c Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return errors.New("auth jwt secret must be at least 32 characters")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 14 {
		return fmt.Errorf("auth bcrypt cost must be between 4 and 14, got %d", c.Auth.BcryptCost)
	}
	if c.Auth.SessionLifetime <= 0 {
		return fmt.Errorf("auth session lifetime must be positive, got %s", c.Auth.SessionLifetime)
	}
	if c.Auth.LoginRate < 0 {
		return fmt.Errorf("auth login rate must not be negative, got %v", c.Auth.LoginRate)
	}
	if c.Auth.LoginBurst < 1 {
		return fmt.Errorf("auth login burst must be at least 1, got %d", c.Auth.LoginBurst)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log format must be text or json, got %q", c.Log.Format)
	}
	if len(c.Kafka.BrokerList()) > 0 && c.Kafka.Topic == "" {
		return errors.New("kafka topic is required when brokers are set")
	}
	return nil
}

// String renders the configuration with secrets masked.
func (c Config) String() string {
	out, err := conf.String(&c)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return out
}

// ConfigureLogging applies level and format to the standard logrus logger.
func ConfigureLogging(c LogConfig) error {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	switch c.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
