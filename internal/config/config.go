package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends. One is selected at start and used for the whole process.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// EnvProduction switches logging to JSON.
const EnvProduction = "production"

// Args carries the command-line arguments the configuration is parsed from.
type Args []string

// S3Config describes the object storage used by the remote backend.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	Env                string
	StorageBackend     string
	DatabaseURI        string
	AutoMigrate        bool
	LocalDatabasePath  string
	ReceiptsDir        string
	PublicBaseURL      string
	S3                 S3Config
	JWTSecret          string
	TokenTTL           time.Duration
	ShutdownTimeout    time.Duration
	ReportTimezone     string
	ReportLocation     *time.Location
	ReportCacheTTL     time.Duration
	JanitorInterval    time.Duration
	GeolocationTimeout time.Duration
	MaxReceiptBytes    int64
	AllowedOrigins     []string
	AdminName          string
	AdminEmail         string
	AdminPassword      string
}

const (
	defaultRunAddress         = ":8080"
	defaultEnv                = "development"
	defaultStorageBackend     = BackendLocal
	defaultLocalDatabasePath  = "sysretirada.db"
	defaultReceiptsDir        = "receipts"
	defaultPublicBaseURL      = "http://localhost:8080"
	defaultS3Region           = "us-east-1"
	defaultJWTSecret          = "change-me-in-production"
	defaultTokenTTL           = 24 * time.Hour
	defaultShutdownTimeout    = 10 * time.Second
	defaultReportTimezone     = "America/Sao_Paulo"
	defaultReportCacheTTL     = 30 * time.Minute
	defaultJanitorInterval    = time.Minute
	defaultGeolocationTimeout = 5 * time.Second
	defaultMaxReceiptBytes    = 10 << 20
	defaultAllowedOrigins     = "*"
)

// Load reads an optional .env file and CONFIG_FILE, then parses
// configuration from environment variables and args.
func Load(args Args) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	if file, ok := os.LookupEnv("CONFIG_FILE"); ok && file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return load(args, viperLookup(v))
}

type envLookup func(string) (string, bool)

func viperLookup(v *viper.Viper) envLookup {
	return func(key string) (string, bool) {
		if !v.IsSet(key) {
			return "", false
		}
		return v.GetString(key), true
	}
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		Env:               getString(lookup, "APP_ENV", defaultEnv),
		StorageBackend:    getString(lookup, "STORAGE_BACKEND", defaultStorageBackend),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		AutoMigrate:       getBool(lookup, "AUTO_MIGRATE", true),
		LocalDatabasePath: getString(lookup, "LOCAL_DB_PATH", defaultLocalDatabasePath),
		ReceiptsDir:       getString(lookup, "RECEIPTS_DIR", defaultReceiptsDir),
		PublicBaseURL:     getString(lookup, "PUBLIC_BASE_URL", defaultPublicBaseURL),
		S3: S3Config{
			Bucket:          getString(lookup, "S3_BUCKET", ""),
			Region:          getString(lookup, "S3_REGION", defaultS3Region),
			Endpoint:        getString(lookup, "S3_ENDPOINT", ""),
			AccessKeyID:     getString(lookup, "S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getString(lookup, "S3_SECRET_ACCESS_KEY", ""),
			PublicURL:       getString(lookup, "S3_PUBLIC_URL", ""),
		},
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:           getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		ReportTimezone:     getString(lookup, "REPORT_TIMEZONE", defaultReportTimezone),
		ReportCacheTTL:     getDuration(lookup, "REPORT_CACHE_TTL", defaultReportCacheTTL),
		JanitorInterval:    getDuration(lookup, "JANITOR_INTERVAL", defaultJanitorInterval),
		GeolocationTimeout: getDuration(lookup, "GEOLOCATION_TIMEOUT", defaultGeolocationTimeout),
		MaxReceiptBytes:    getInt64(lookup, "MAX_RECEIPT_BYTES", defaultMaxReceiptBytes),
		AdminName:          getString(lookup, "ADMIN_NAME", ""),
		AdminEmail:         getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword:      getString(lookup, "ADMIN_PASSWORD", ""),
	}
	origins := getString(lookup, "ALLOWED_ORIGINS", defaultAllowedOrigins)

	fs := flag.NewFlagSet("sysretirada", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		reportTTLStr       = cfg.ReportCacheTTL.String()
		janitorStr         = cfg.JanitorInterval.String()
		geoTimeoutStr      = cfg.GeolocationTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.Env, "env", cfg.Env, "Runtime environment (development or production)")
	fs.StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "Storage backend: local or remote")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.BoolVar(&cfg.AutoMigrate, "auto-migrate", cfg.AutoMigrate, "Apply migrations on start")
	fs.StringVar(&cfg.LocalDatabasePath, "local-db", cfg.LocalDatabasePath, "Local fallback database file")
	fs.StringVar(&cfg.ReceiptsDir, "receipts-dir", cfg.ReceiptsDir, "Local receipts directory")
	fs.StringVar(&cfg.PublicBaseURL, "public-url", cfg.PublicBaseURL, "Public base URL of local receipts")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued tokens")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.ReportTimezone, "report-tz", cfg.ReportTimezone, "Default reporting time zone")
	fs.StringVar(&reportTTLStr, "report-ttl", reportTTLStr, "Lifetime of a user's current report")
	fs.StringVar(&janitorStr, "janitor-interval", janitorStr, "Interval between cache sweeps")
	fs.StringVar(&geoTimeoutStr, "geo-timeout", geoTimeoutStr, "Geolocation wait bound")
	fs.Int64Var(&cfg.MaxReceiptBytes, "max-receipt", cfg.MaxReceiptBytes, "Maximum receipt photo size in bytes")
	fs.StringVar(&origins, "cors", origins, "Comma separated CORS origins")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	if cfg.ReportCacheTTL, err = time.ParseDuration(reportTTLStr); err != nil {
		return nil, fmt.Errorf("invalid report ttl: %w", err)
	}
	if cfg.JanitorInterval, err = time.ParseDuration(janitorStr); err != nil {
		return nil, fmt.Errorf("invalid janitor interval: %w", err)
	}
	if cfg.GeolocationTimeout, err = time.ParseDuration(geoTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid geolocation timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.AllowedOrigins = splitList(origins)
	cfg.normalize()

	if cfg.ReportLocation, err = time.LoadLocation(cfg.ReportTimezone); err != nil {
		return nil, fmt.Errorf("invalid report timezone: %w", err)
	}

	switch cfg.StorageBackend {
	case BackendLocal:
	case BackendRemote:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided for remote storage")
		}
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("s3 bucket must be provided for remote storage")
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return cfg, nil
}

func (c *Config) normalize() {
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))

	if c.TokenTTL <= 0 {
		c.TokenTTL = defaultTokenTTL
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.ReportCacheTTL <= 0 {
		c.ReportCacheTTL = defaultReportCacheTTL
	}
	if c.JanitorInterval <= 0 {
		c.JanitorInterval = defaultJanitorInterval
	}
	if c.GeolocationTimeout <= 0 {
		c.GeolocationTimeout = defaultGeolocationTimeout
	}
	if c.MaxReceiptBytes <= 0 {
		c.MaxReceiptBytes = defaultMaxReceiptBytes
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{defaultAllowedOrigins}
	}
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// SeedsAdmin reports whether a bootstrap administrator is configured.
func (c *Config) SeedsAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
