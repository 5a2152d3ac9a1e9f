package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	App           AppConfig           `toml:"app"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Auth          AuthConfig          `toml:"auth"`
	Storage       StorageConfig       `toml:"storage"`
	Notifications NotificationsConfig `toml:"notifications"`
	Availability  AvailabilityConfig  `toml:"availability"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type AppConfig struct {
	Timezone           string   `toml:"timezone"` // часовой пояс офиса, в нем считается "сегодня" и "текущий час"
	AllowedOrigins     []string `toml:"allowed_origins"`
	RateLimitPerSecond int      `toml:"rate_limit_per_second"` // 0 - без ограничения
}

// Location возвращает часовой пояс офиса
func (a AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret"`
	TokenTTLMinutes   int    `toml:"token_ttl_minutes"`
	BootstrapEmail    string `toml:"bootstrap_email"`
	BootstrapPassword string `toml:"bootstrap_password"`
}

// TokenTTL время жизни токена администратора
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"use_ssl"`
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Queue   string `toml:"queue"`
}

type AvailabilityConfig struct {
	RefreshSchedule string `toml:"refresh_schedule"` // cron-выражение, например "@every 1m"
}

// Load читает TOML-файл, затем .env (если есть) и переменные окружения с секретами
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	// .env необязателен - в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		App: AppConfig{
			Timezone:           "America/Santo_Domingo",
			RateLimitPerSecond: 20,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "visa-booking-service",
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 60,
		},
		Storage: StorageConfig{
			Bucket: "receipts",
		},
		Notifications: NotificationsConfig{
			Queue: "appointment_notifications",
		},
		Availability: AvailabilityConfig{
			RefreshSchedule: "@every 1m",
		},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func applyEnv(cfg *Config) error {
	overrides := map[string]*string{
		"DB_HOST":          &cfg.Database.Host,
		"DB_USER":          &cfg.Database.User,
		"DB_PASSWORD":      &cfg.Database.Password,
		"DB_NAME":          &cfg.Database.DBName,
		"JWT_SECRET":       &cfg.Auth.JWTSecret,
		"ADMIN_EMAIL":      &cfg.Auth.BootstrapEmail,
		"ADMIN_PASSWORD":   &cfg.Auth.BootstrapPassword,
		"MINIO_ENDPOINT":   &cfg.Storage.Endpoint,
		"MINIO_ACCESS_KEY": &cfg.Storage.AccessKey,
		"MINIO_SECRET_KEY": &cfg.Storage.SecretKey,
		"RABBITMQ_URL":     &cfg.Notifications.URL,
		"APP_TIMEZONE":     &cfg.App.Timezone,
		"LOG_LEVEL":        &cfg.Logs.Level,
	}
	for key, target := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*target = v
		}
	}

	if v, ok := os.LookupEnv("DB_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DB_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		cfg.Database.Port = port
	}

	if v, ok := os.LookupEnv("HTTP_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		cfg.Server.HTTPPort = port
	}

	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("%w: app.timezone %q: %v", ErrInvalidConfig, c.App.Timezone, err)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("%w: auth.jwt_secret must be at least 16 characters", ErrInvalidConfig)
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("%w: auth.token_ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.Storage.Endpoint == "" || c.Storage.Bucket == "" {
		return fmt.Errorf("%w: storage.endpoint and storage.bucket are required", ErrInvalidConfig)
	}
	if c.Notifications.Enabled && c.Notifications.URL == "" {
		return fmt.Errorf("%w: notifications.url is required when notifications are enabled", ErrInvalidConfig)
	}
	if c.Availability.RefreshSchedule == "" {
		return fmt.Errorf("%w: availability.refresh_schedule is required", ErrInvalidConfig)
	}
	return nil
}
