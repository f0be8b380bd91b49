package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // delivery timezone must resolve on slim images
)

// Config is the application-wide configuration.
type Config struct {
	Port string // server port (8080)

	DatabaseURL      string // takes priority over the POSTGRES_* parts
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string

	JWTSecret      string
	AccessTokenTTL time.Duration

	GoEnv        string // dev/prod
	CookieSecure bool
	SessionTTL   time.Duration

	// zone-less delivery times are read in this location
	DeliveryTimezone string
	// cook + pack + deliver latency
	MinDeliveryLead time.Duration
}

// Location resolves DeliveryTimezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.DeliveryTimezone)
	if err != nil {
		return nil, fmt.Errorf("DELIVERY_TIMEZONE %q: %w", c.DeliveryTimezone, err)
	}
	return loc, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func (c Config) IsProd() bool { return c.GoEnv == "prod" }

// Load reads the environment.
func Load() (Config, error) {
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	accessTTL, err := durationDefault("ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}
	sessionTTL, err := durationDefault("SESSION_TTL", 14*24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	lead, err := durationDefault("MIN_DELIVERY_LEAD", 30*time.Minute)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "pizzeria"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: accessTTL,

		GoEnv:        getenv("GO_ENV", "dev"),
		CookieSecure: envBool("COOKIE_SECURE", false),
		SessionTTL:   sessionTTL,

		DeliveryTimezone: getenv("DELIVERY_TIMEZONE", "Europe/Kyiv"),
		MinDeliveryLead:  lead,
	}

	// required
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv != "dev" && cfg.GoEnv != "prod" {
		return Config{}, fmt.Errorf("GO_ENV must be dev or prod")
	}
	if cfg.MinDeliveryLead <= 0 {
		return Config{}, fmt.Errorf("MIN_DELIVERY_LEAD must be positive")
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}
