package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `toml:"host"`
	Port               string `toml:"port"`
	User               string `toml:"user"`
	Password           string `toml:"password"`
	Name               string `toml:"name"`
	SSLMode            string `toml:"sslmode"`
	MaxOpenConns       int    `toml:"max_open_conns"`
	MaxIdleConns       int    `toml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `toml:"conn_max_lifetime_sec"`
}

// RedisConfig holds the message bus / ephemeral state connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"use_ssl"`
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret    string        `toml:"jwt_secret"`
	TokenTTL     time.Duration `toml:"token_ttl"`
	SecureCookie bool          `toml:"secure_cookie"`
}

// ProviderConfig holds media source credentials.
type ProviderConfig struct {
	YouTubeKey        string  `toml:"youtube_key"`
	YouTubeBaseURL    string  `toml:"youtube_base_url"`
	SoundCloudKey     string  `toml:"soundcloud_key"`
	SoundCloudBaseURL string  `toml:"soundcloud_base_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// AppConfig is the centralized configuration struct for the application.
type AppConfig struct {
	AppHost  string         `toml:"app_host"`
	Port     string         `toml:"port"`
	Location string         `toml:"location"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	MinIO    MinIOConfig    `toml:"minio"`
	Auth     AuthConfig     `toml:"auth"`
	Provider ProviderConfig `toml:"provider"`
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	cfg := defaults()
	applyEnv(cfg)
	return cfg
}

// LoadFile decodes the TOML file at path on top of the defaults and then applies
// environment variables, which take precedence. An empty path behaves like Load.
func LoadFile(path string) (*AppConfig, error) {
	cfg := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

// LoadLocation resolves the configured time zone, falling back to UTC.
func (c *AppConfig) LoadLocation() *time.Location {
	if c.Location == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.UTC
	}
	return loc
}

func defaults() *AppConfig {
	return &AppConfig{
		AppHost:  "localhost:8080",
		Port:     "8080",
		Location: "UTC",
		Database: DatabaseConfig{
			Port:               "5432",
			SSLMode:            "disable",
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetimeSec: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Auth: AuthConfig{
			TokenTTL: 30 * 24 * time.Hour,
		},
		Provider: ProviderConfig{
			YouTubeBaseURL:    "https://www.googleapis.com/youtube/v3",
			SoundCloudBaseURL: "https://api.soundcloud.com",
			RequestsPerSecond: 5,
		},
	}
}

func applyEnv(cfg *AppConfig) {
	cfg.AppHost = getEnv("APP_HOST", cfg.AppHost)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Location = getEnv("TZ_LOCATION", cfg.Location)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ConnMaxLifetimeSec = getEnvInt("DB_CONN_MAX_LIFETIME_SEC", cfg.Database.ConnMaxLifetimeSec)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)

	cfg.MinIO.Endpoint = getEnv("MINIO_ENDPOINT", cfg.MinIO.Endpoint)
	cfg.MinIO.AccessKey = getEnv("MINIO_ACCESS_KEY", cfg.MinIO.AccessKey)
	cfg.MinIO.SecretKey = getEnv("MINIO_SECRET_KEY", cfg.MinIO.SecretKey)
	cfg.MinIO.Bucket = getEnv("MINIO_BUCKET", cfg.MinIO.Bucket)
	cfg.MinIO.UseSSL = getEnvBool("MINIO_USE_SSL", cfg.MinIO.UseSSL)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTL = getEnvDuration("JWT_TTL", cfg.Auth.TokenTTL)
	cfg.Auth.SecureCookie = getEnvBool("COOKIE_SECURE", cfg.Auth.SecureCookie)

	cfg.Provider.YouTubeKey = getEnv("YOUTUBE_API_KEY", cfg.Provider.YouTubeKey)
	cfg.Provider.YouTubeBaseURL = getEnv("YOUTUBE_BASE_URL", cfg.Provider.YouTubeBaseURL)
	cfg.Provider.SoundCloudKey = getEnv("SOUNDCLOUD_CLIENT_ID", cfg.Provider.SoundCloudKey)
	cfg.Provider.SoundCloudBaseURL = getEnv("SOUNDCLOUD_BASE_URL", cfg.Provider.SoundCloudBaseURL)
	cfg.Provider.RequestsPerSecond = getEnvFloat("PROVIDER_RPS", cfg.Provider.RequestsPerSecond)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
