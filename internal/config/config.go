// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds all application configuration. Populated from environment
// variables at startup and passed to other packages via dependency
// injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used for links and CORS origins.
	BaseURL string

	// AllowedOrigins is the list of origins permitted to call the widget
	// cross-origin. Defaults to just the BaseURL; "*" opens it up.
	AllowedOrigins []string

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// Database holds MariaDB connection settings (date restrictions).
	Database DatabaseConfig

	// Redis holds Redis connection settings (theme preferences).
	Redis RedisConfig

	// Widget holds the default picker behavior for new widget instances.
	Widget WidgetConfig
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// are read from separate env vars so container orchestrators can manage
// each independently. If DATABASE_URL is set, it takes precedence.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	// User is the MariaDB username (default: "rondel").
	User string

	// Password is the MariaDB password (default: "rondel").
	Password string

	// Name is the database name (default: "rondel").
	Name string

	// dsnOverride is set when DATABASE_URL is provided, bypassing the
	// individual fields.
	dsnOverride string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL
// was set, it is returned as-is. Otherwise the DSN is built from the
// individual fields using the driver's Config.FormatDSN() to safely
// handle special characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include
// one. Allows DB_HOST=mydb (gets :3306) or DB_HOST=mydb:3307 (as-is).
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// WidgetConfig holds the default behavior applied to newly created picker
// instances. Individual clients can still change modes at runtime.
type WidgetConfig struct {
	// TimeSelectionEnabled makes day picks open the hour/minute rings.
	TimeSelectionEnabled bool

	// TwelveHourClock renders the hour ring with 12 slices plus AM/PM.
	TwelveHourClock bool

	// WeekViewEnabled inserts the week ring between days and hours.
	WeekViewEnabled bool

	// AllowPastDates permits selecting dates before today.
	AllowPastDates bool

	// InstanceTTL is how long an idle widget instance is kept before its
	// state is dropped.
	InstanceTTL time.Duration
}

// Load reads configuration from environment variables with sensible
// defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", nil),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "rondel"),
			Password:        getEnv("DB_PASSWORD", "rondel"),
			Name:            getEnv("DB_NAME", "rondel"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		Widget: WidgetConfig{
			TimeSelectionEnabled: getEnvBool("WIDGET_TIME_SELECTION", false),
			TwelveHourClock:      getEnvBool("WIDGET_12H_CLOCK", false),
			WeekViewEnabled:      getEnvBool("WIDGET_WEEK_VIEW", false),
			AllowPastDates:       getEnvBool("WIDGET_ALLOW_PAST", true),
			InstanceTTL:          getEnvDuration("WIDGET_INSTANCE_TTL", 30*time.Minute),
		},
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{cfg.BaseURL}
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvBool reads a boolean env var ("true"/"false", "1"/"0") or returns
// the default.
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvList reads a comma-separated env var or returns the default.
func getEnvList(key string, defaultVal []string) []string {
	if val, ok := os.LookupEnv(key); ok {
		var list []string
		for _, item := range strings.Split(val, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		if len(list) > 0 {
			return list
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "30m") or returns the
// default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
