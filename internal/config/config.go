package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver   string `yaml:"dbDriver" validate:"required,oneof=mysql postgres sqlite"`
	DBHost     string `yaml:"dbHost" validate:"required_unless=DBDriver sqlite"`
	DBPort     string `yaml:"dbPort" validate:"required_unless=DBDriver sqlite"`
	DBUser     string `yaml:"dbUser"`
	DBPassword string `yaml:"dbPassword"`
	DBName     string `yaml:"dbName" validate:"required_unless=DBDriver sqlite"`
	DBPath     string `yaml:"dbPath" validate:"required_if=DBDriver sqlite"`

	RedisHost     string `yaml:"redisHost" validate:"required"`
	RedisPort     string `yaml:"redisPort" validate:"required"`
	SessionSecret string `yaml:"sessionSecret" validate:"required,min=16"`

	GinMode        string        `yaml:"ginMode" validate:"oneof=debug release test"`
	Port           string        `yaml:"port" validate:"required,numeric"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	LockTimeout    time.Duration `yaml:"lockTimeout" validate:"gte=0"`

	RateLimitPerMinute int `yaml:"rateLimitPerMinute" validate:"gte=1"`
	RateLimitBurst     int `yaml:"rateLimitBurst" validate:"gte=1"`
	CalendarWindowDays int `yaml:"calendarWindowDays" validate:"gte=1,lte=365"`

	LogLevel string `yaml:"logLevel" validate:"oneof=debug info warn error"`
	LogDir   string `yaml:"logDir"`
}

var validate = validator.New()

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE and finally the environment (a local .env file is honoured).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromPath loads defaults overlaid with a YAML file, without consulting the environment
func LoadFromPath(path string) (*Config, error) {
	cfg := Defaults()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Defaults returns the development configuration
func Defaults() *Config {
	return &Config{
		DBDriver:           "mysql",
		DBHost:             "localhost",
		DBPort:             "3306",
		DBUser:             "volunteer",
		DBPassword:         "volunteerpassword",
		DBName:             "volunteer_scheduling",
		DBPath:             "volunteer.db",
		RedisHost:          "localhost",
		RedisPort:          "6379",
		SessionSecret:      "default-secret-key-change-me",
		GinMode:            "debug",
		Port:               "8080",
		AllowedOrigins:     []string{"http://localhost:3000"},
		LockTimeout:        5 * time.Second,
		RateLimitPerMinute: 30,
		RateLimitBurst:     5,
		CalendarWindowDays: 30,
		LogLevel:           "info",
	}
}

// Validate runs struct validation on the configuration
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// IsProduction reports whether gin runs in release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// RedisAddr returns host:port of the session store
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// CalendarWindow is the look-ahead of the calendar view
func (c *Config) CalendarWindow() time.Duration {
	return time.Duration(c.CalendarWindowDays) * 24 * time.Hour
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.RedisHost = getEnv("REDIS_HOST", c.RedisHost)
	c.RedisPort = getEnv("REDIS_PORT", c.RedisPort)
	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogDir = getEnv("LOG_DIR", c.LogDir)
	c.LockTimeout = getEnvAsDuration("LOCK_TIMEOUT", c.LockTimeout)
	c.RateLimitPerMinute = getEnvAsInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)
	c.RateLimitBurst = getEnvAsInt("RATE_LIMIT_BURST", c.RateLimitBurst)
	c.CalendarWindowDays = getEnvAsInt("CALENDAR_WINDOW_DAYS", c.CalendarWindowDays)

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
