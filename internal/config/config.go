package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Admin    AdminConfig
	Session  SessionConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Events   EventsConfig
}

type AppConfig struct {
	AppName        string
	Environment    string
	HTTPPort       string
	UploadMaxBytes int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32

	RunMigrations bool
	MigrationsDir string
	RunSeeders    bool
}

type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type StorageConfig struct {
	Driver    string
	UploadDir string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	Enabled  bool
}

type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"

	defaultUploadDir      = "static/uploads"
	defaultUploadMaxBytes = 10 << 20
	defaultSessionTTL     = 12 * time.Hour
	defaultCookieName     = "admin_session"
	defaultEventsExchange = "resume_events"
)

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads the process environment. A .env file in the working directory
// is applied first when present; variables already set win.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}

	cfg.App = AppConfig{
		AppName:        req("APP_NAME"),
		Environment:    req("APP_ENV"),
		HTTPPort:       req("HTTP_PORT"),
		UploadMaxBytes: intOr(opt("UPLOAD_MAX_BYTES"), defaultUploadMaxBytes),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         opt("DB_PORT"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     getenv("DB_PASSWORD"),
		DBSSLMode:      stringOr(opt("DB_SSL_MODE"), "disable"),
		ConnectTimeout: durationOr(opt("DB_CONNECT_TIMEOUT"), 0),
		PoolMaxConns:   int32(intOr(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:   int32(intOr(opt("DB_POOL_MIN_CONNS"), 0)),
		RunMigrations:  boolOr(opt("DB_RUN_MIGRATIONS"), true),
		MigrationsDir:  opt("MIGRATIONS_DIR"),
		RunSeeders:     boolOr(opt("DB_RUN_SEEDERS"), false),
	}

	cfg.Admin = AdminConfig{
		Username:     req("ADMIN_USERNAME"),
		Password:     getenv("ADMIN_PASSWORD"),
		PasswordHash: opt("ADMIN_PASSWORD_HASH"),
	}
	if cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		missing = append(missing, "ADMIN_PASSWORD|ADMIN_PASSWORD_HASH")
	}

	cfg.Session = SessionConfig{
		Secret:     req("SESSION_SECRET"),
		TTL:        durationOr(opt("SESSION_TTL"), defaultSessionTTL),
		CookieName: stringOr(opt("SESSION_COOKIE_NAME"), defaultCookieName),
		Secure:     boolOr(opt("SESSION_COOKIE_SECURE"), false),
	}

	cfg.Storage = StorageConfig{
		Driver:      strings.ToLower(stringOr(opt("STORAGE_DRIVER"), StorageDriverLocal)),
		UploadDir:   stringOr(opt("UPLOAD_DIR"), defaultUploadDir),
		S3Bucket:    opt("S3_BUCKET"),
		S3Region:    stringOr(opt("S3_REGION"), "auto"),
		S3Endpoint:  opt("S3_ENDPOINT"),
		S3AccessKey: opt("S3_ACCESS_KEY"),
		S3SecretKey: opt("S3_SECRET_KEY"),
		S3Prefix:    opt("S3_PREFIX"),
	}
	switch cfg.Storage.Driver {
	case StorageDriverLocal:
	case StorageDriverS3:
		if cfg.Storage.S3Bucket == "" {
			missing = append(missing, "S3_BUCKET")
		}
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	cfg.Redis = RedisConfig{
		Host:     stringOr(opt("REDIS_HOST"), "localhost"),
		Port:     stringOr(opt("REDIS_PORT"), "6379"),
		Password: opt("REDIS_PASSWORD"),
		Enabled:  boolOr(opt("REDIS_ENABLED"), true),
	}

	cfg.Events = EventsConfig{
		AMQPURL:  opt("EVENTS_AMQP_URL"),
		Exchange: stringOr(opt("EVENTS_EXCHANGE"), defaultEventsExchange),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func boolOr(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

// durationOr accepts Go durations ("15m") or a bare number of seconds.
func durationOr(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
