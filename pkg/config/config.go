package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Webhooks     WebhookConfig
	Poller       PollerConfig
	Amazon       AmazonConfig
	Ebay         EbayConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOCKSYNC_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKSYNC_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOCKSYNC_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKSYNC_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOCKSYNC_DB_DSN"`
	Driver string `envconfig:"STOCKSYNC_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOCKSYNC_DB_HOST"`
	LegacyPort     int    `envconfig:"STOCKSYNC_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOCKSYNC_DB_USER"`
	LegacyPassword string `envconfig:"STOCKSYNC_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOCKSYNC_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOCKSYNC_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCKSYNC_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKSYNC_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKSYNC_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKSYNC_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKSYNC_REDIS_URL"`
	Address      string        `envconfig:"STOCKSYNC_REDIS_ADDR"`
	Password     string        `envconfig:"STOCKSYNC_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOCKSYNC_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOCKSYNC_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKSYNC_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKSYNC_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKSYNC_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKSYNC_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKSYNC_AUTO_MIGRATE" default:"false"`
}

// WebhookConfig holds the shared secrets the webhook receivers compare
// inbound tokens against. Matching is exact and case-sensitive.
type WebhookConfig struct {
	VerificationToken    string `envconfig:"STOCKSYNC_WEBHOOK_VERIFICATION_TOKEN" required:"true"`
	AccountDeletionToken string `envconfig:"STOCKSYNC_WEBHOOK_ACCOUNT_DELETION_TOKEN" required:"true"`
}

// PollerConfig drives the marketplace stock poller. Mapping entries use the
// form "ASIN=listingID" joined by commas.
type PollerConfig struct {
	Interval       time.Duration `envconfig:"STOCKSYNC_POLLER_INTERVAL" default:"30m"`
	Mapping        string        `envconfig:"STOCKSYNC_POLLER_MAPPING"`
	LowStockValues string        `envconfig:"STOCKSYNC_POLLER_LOW_STOCK_VALUES" default:"わずか,1,0"`
	LockKey        string        `envconfig:"STOCKSYNC_POLLER_LOCK_KEY" default:"stocksync:poller:lock"`
	LockTTL        time.Duration `envconfig:"STOCKSYNC_POLLER_LOCK_TTL" default:"25m"`
	MetricsAddr    string        `envconfig:"STOCKSYNC_POLLER_METRICS_ADDR" default:":9090"`
}

// MappingEntry pairs a marketplace product identifier with the listing it
// feeds.
type MappingEntry struct {
	ASIN      string
	ListingID string
}

// MappingEntries parses the configured ASIN to listing mapping.
func (p PollerConfig) MappingEntries() ([]MappingEntry, error) {
	raw := strings.TrimSpace(p.Mapping)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	entries := make([]MappingEntry, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || strings.TrimSpace(kv[0]) == "" || strings.TrimSpace(kv[1]) == "" {
			return nil, fmt.Errorf("invalid poller mapping entry %q (expected ASIN=listingID)", part)
		}
		entries = append(entries, MappingEntry{
			ASIN:      strings.TrimSpace(kv[0]),
			ListingID: strings.TrimSpace(kv[1]),
		})
	}
	return entries, nil
}

// LowSignals returns the stock signal values treated as low/empty.
func (p PollerConfig) LowSignals() []string {
	parts := strings.Split(p.LowStockValues, ",")
	signals := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			signals = append(signals, trimmed)
		}
	}
	return signals
}

type AmazonConfig struct {
	BaseURL string `envconfig:"STOCKSYNC_AMAZON_BASE_URL" default:"https://www.amazon.co.jp"`
	Timeout time.Duration `envconfig:"STOCKSYNC_AMAZON_TIMEOUT" default:"15s"`
}

type EbayConfig struct {
	BaseURL   string        `envconfig:"STOCKSYNC_EBAY_BASE_URL" default:"https://api.ebay.com"`
	AuthToken string        `envconfig:"STOCKSYNC_EBAY_AUTH_TOKEN"`
	Timeout   time.Duration `envconfig:"STOCKSYNC_EBAY_TIMEOUT" default:"15s"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
