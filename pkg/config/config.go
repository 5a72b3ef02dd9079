package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// History backends understood by HistoryConfig.Backend.
const (
	HistoryBackendMemory   = "memory"
	HistoryBackendFile     = "file"
	HistoryBackendRedis    = "redis"
	HistoryBackendPostgres = "postgres"
)

type Config struct {
	Env            string
	Port           int
	APIPrefix      string
	BodyLimitBytes int64
	SessionTTL     time.Duration

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	History  HistoryConfig
	Export   ExportConfig
	Evidence EvidenceConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// HistoryConfig selects where finalized checklist snapshots are kept.
type HistoryConfig struct {
	Backend  string
	Key      string
	Capacity int
	Dir      string
}

// ExportConfig drives document rendering and archived downloads.
type ExportConfig struct {
	LogoPath        string
	Timezone        string
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

// EvidenceConfig bounds photo uploads and the encoding worker pool.
type EvidenceConfig struct {
	MaxFileSizeBytes int64
	Workers          int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.BodyLimitBytes = v.GetInt64("BODY_LIMIT_BYTES")
	if cfg.BodyLimitBytes <= 0 {
		cfg.BodyLimitBytes = 2 * 1024 * 1024
	}
	cfg.SessionTTL = parseDuration(v.GetString("SESSION_TTL"), 12*time.Hour)
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	capacity := v.GetInt("HISTORY_CAPACITY")
	if capacity <= 0 {
		capacity = 10
	}
	cfg.History = HistoryConfig{
		Backend:  strings.ToLower(strings.TrimSpace(v.GetString("HISTORY_BACKEND"))),
		Key:      v.GetString("HISTORY_KEY"),
		Capacity: capacity,
		Dir:      v.GetString("HISTORY_DIR"),
	}

	cfg.Export = ExportConfig{
		LogoPath:        v.GetString("EXPORT_LOGO_PATH"),
		Timezone:        v.GetString("EXPORT_TIMEZONE"),
		StorageDir:      v.GetString("EXPORT_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORT_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORT_SIGNED_URL_TTL"), 24*time.Hour),
	}

	maxEvidence := v.GetInt64("EVIDENCE_MAX_FILE_SIZE")
	if maxEvidence <= 0 {
		maxEvidence = 5 * 1024 * 1024
	}
	cfg.Evidence = EvidenceConfig{
		MaxFileSizeBytes: maxEvidence,
		Workers:          v.GetInt("EVIDENCE_WORKERS"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3001)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("BODY_LIMIT_BYTES", 2*1024*1024)
	v.SetDefault("SESSION_TTL", "12h")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "checklist")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("HISTORY_BACKEND", HistoryBackendFile)
	v.SetDefault("HISTORY_KEY", "checklist-salvos")
	v.SetDefault("HISTORY_CAPACITY", 10)
	v.SetDefault("HISTORY_DIR", "./data")

	v.SetDefault("EXPORT_LOGO_PATH", "./public/logo-engeletrica.png")
	v.SetDefault("EXPORT_TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("EXPORT_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORT_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORT_SIGNED_URL_TTL", "24h")

	v.SetDefault("EVIDENCE_MAX_FILE_SIZE", 5*1024*1024)
	v.SetDefault("EVIDENCE_WORKERS", 2)
}

// Location resolves the export timezone, falling back to UTC when unknown.
func (c ExportConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
