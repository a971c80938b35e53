package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	MigrationsPath  string
	StaticFilesPath string
	Debug           bool

	// Child profile seed values for the app_config row
	BirthTimestamp   string
	BirthWeightGrams int

	// Calendar days and the overnight window are evaluated in this zone
	TimeZone       string
	NightStartHour int
	NightEndHour   int

	// Write protection
	AuthPasswordHash string
	JWTSecret        string
	TokenTTL         time.Duration

	// Daily digest email
	SESFromEmail  string
	SESFromName   string
	AWSRegion     string
	AppBaseURL    string
	DigestToEmail string
	DigestHour    int
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		ServerPort:       getEnv("PORT", "8080"),
		DatabaseType:     strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DatabasePath:     getEnv("DB_PATH", "./webbaby.db"),
		DatabaseURL:      databaseURL(),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "./migrations"),
		StaticFilesPath:  getEnv("STATIC_PATH", "./public"),
		Debug:            getEnvBool("DEBUG", false),
		BirthTimestamp:   getEnv("BIRTH_TS", ""),
		BirthWeightGrams: getEnvInt("BIRTH_WEIGHT_GRAMS", 0),
		TimeZone:         getEnv("TZ_NAME", "Local"),
		NightStartHour:   getEnvInt("NIGHT_START_HOUR", 20),
		NightEndHour:     getEnvInt("NIGHT_END_HOUR", 8),
		AuthPasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		TokenTTL:         getEnvDuration("TOKEN_TTL", 720*time.Hour),
		SESFromEmail:     getEnv("SES_FROM_EMAIL", ""),
		SESFromName:      getEnv("SES_FROM_NAME", "Web-Baby"),
		AWSRegion:        getEnv("AWS_REGION", "eu-central-1"),
		AppBaseURL:       getEnv("APP_BASE_URL", ""),
		DigestToEmail:    getEnv("DIGEST_TO_EMAIL", ""),
		DigestHour:       getEnvInt("DIGEST_HOUR", 9),
	}
}

// Validate rejects settings Load cannot repair. The night window needs two
// distinct hours in 0..23.
func (c *Config) Validate() error {
	for _, h := range []struct {
		key   string
		value int
	}{
		{"NIGHT_START_HOUR", c.NightStartHour},
		{"NIGHT_END_HOUR", c.NightEndHour},
	} {
		if h.value < 0 || h.value > 23 {
			return fmt.Errorf("%s must be between 0 and 23, got %d", h.key, h.value)
		}
	}
	if c.NightStartHour == c.NightEndHour {
		return fmt.Errorf("NIGHT_START_HOUR and NIGHT_END_HOUR must differ, both are %d", c.NightStartHour)
	}
	return nil
}

// Location resolves TimeZone, falling back to the process local zone
func (c *Config) Location() *time.Location {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		log.Printf("Warning: unknown time zone %q, using local time: %v", c.TimeZone, err)
		return time.Local
	}
	return loc
}

// AuthEnabled reports whether write routes require a bearer token
func (c *Config) AuthEnabled() bool {
	return c.AuthPasswordHash != "" && c.JWTSecret != ""
}

// databaseURL returns DATABASE_URL, or composes a MySQL DSN from the
// individual DB_* variables when only those are set.
func databaseURL() string {
	if url := getEnv("DATABASE_URL", ""); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "")
	name := getEnv("DB_NAME", "")
	if host == "" || name == "" {
		return ""
	}

	return composeMySQLDSN(
		getEnv("DB_USER", "root"),
		getEnv("DB_PASSWORD", ""),
		host,
		getEnv("DB_PORT", "3306"),
		name,
	)
}

func composeMySQLDSN(user, password, host, port, name string) string {
	cred := user
	if password != "" {
		cred += ":" + password
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC", cred, host, port, name)
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid integer for %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid duration for %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
