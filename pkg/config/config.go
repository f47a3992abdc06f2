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

// Supported notice store drivers.
const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	StoreDriver string
	Mongo       MongoConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Session     SessionConfig
	CORS        CORSConfig
	Log         LogConfig
	Notices     NoticeConfig
	Attachments AttachmentConfig
}

// MongoConfig points at the document store holding notices and admins.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
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

// SessionConfig names the role cookies and the secret used to verify the admin token.
type SessionConfig struct {
	Secret        string
	TeacherCookie string
	AdminCookie   string
	StudentCookie string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// NoticeConfig tunes listing, caching and calendar behaviour.
type NoticeConfig struct {
	Timezone          string
	PageSize          int
	EnrichConcurrency int
	CacheEnabled      bool
	CacheTTL          time.Duration
}

// AttachmentConfig controls where uploaded notice files are written.
type AttachmentConfig struct {
	Dir          string
	MaxSizeBytes int64
	PublicPath   string
}

// Location resolves the configured notice timezone, falling back to the process zone.
func (c NoticeConfig) Location() *time.Location {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
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
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.StoreDriver = strings.ToLower(v.GetString("STORE_DRIVER"))

	cfg.Mongo = MongoConfig{
		URI:      v.GetString("MONGO_URI"),
		Database: v.GetString("MONGO_DATABASE"),
		Timeout:  parseDuration(v.GetString("MONGO_TIMEOUT"), 10*time.Second),
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

	cfg.Session = SessionConfig{
		Secret:        v.GetString("SESSION_SECRET"),
		TeacherCookie: v.GetString("SESSION_TEACHER_COOKIE"),
		AdminCookie:   v.GetString("SESSION_ADMIN_COOKIE"),
		StudentCookie: v.GetString("SESSION_STUDENT_COOKIE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	pageSize := v.GetInt("NOTICE_PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 5
	}
	concurrency := v.GetInt("ENRICH_CONCURRENCY")
	if concurrency <= 0 {
		concurrency = 8
	}
	cfg.Notices = NoticeConfig{
		Timezone:          v.GetString("NOTICE_TIMEZONE"),
		PageSize:          pageSize,
		EnrichConcurrency: concurrency,
		CacheEnabled:      v.GetBool("ENABLE_NOTICE_CACHE"),
		CacheTTL:          parseDuration(v.GetString("NOTICE_CACHE_TTL"), 2*time.Minute),
	}

	maxSize := v.GetInt64("ATTACHMENTS_MAX_SIZE")
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024
	}
	cfg.Attachments = AttachmentConfig{
		Dir:          v.GetString("ATTACHMENTS_DIR"),
		MaxSizeBytes: maxSize,
		PublicPath:   v.GetString("ATTACHMENTS_PUBLIC_PATH"),
	}

	if cfg.StoreDriver != StoreDriverMongo && cfg.StoreDriver != StoreDriverPostgres {
		return nil, errors.New("STORE_DRIVER must be one of: mongo, postgres")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("STORE_DRIVER", StoreDriverMongo)

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "nawa_db")
	v.SetDefault("MONGO_TIMEOUT", "10s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "nawa_notices")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_SECRET", "dev_secret")
	v.SetDefault("SESSION_TEACHER_COOKIE", "teacherToken")
	v.SetDefault("SESSION_ADMIN_COOKIE", "adminToken")
	v.SetDefault("SESSION_STUDENT_COOKIE", "studentToken")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("NOTICE_TIMEZONE", "Local")
	v.SetDefault("NOTICE_PAGE_SIZE", 5)
	v.SetDefault("ENRICH_CONCURRENCY", 8)
	v.SetDefault("ENABLE_NOTICE_CACHE", false)
	v.SetDefault("NOTICE_CACHE_TTL", "2m")

	v.SetDefault("ATTACHMENTS_DIR", "./public/notice_files")
	v.SetDefault("ATTACHMENTS_MAX_SIZE", 10*1024*1024)
	v.SetDefault("ATTACHMENTS_PUBLIC_PATH", "/notice_files")
}

// viper reports a missing explicit config file as a path error rather than ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
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
