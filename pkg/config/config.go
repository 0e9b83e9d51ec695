package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cache        CacheConfig
	Address      AddressConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Address.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env            string        `envconfig:"RESTAURANT_APP_ENV" default:"dev"`
	Port           string        `envconfig:"PORT" default:"3000"`
	LogLevel       string        `envconfig:"RESTAURANT_LOG_LEVEL" default:"info"`
	LogWarnStack   bool          `envconfig:"RESTAURANT_LOG_WARN_STACK" default:"false"`
	RequestTimeout time.Duration `envconfig:"RESTAURANT_REQUEST_TIMEOUT" default:"30s"`
	CORSOrigins    []string      `envconfig:"RESTAURANT_CORS_ALLOWED_ORIGINS" default:"*"`
	StaticDir      string        `envconfig:"RESTAURANT_STATIC_DIR"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"RESTAURANT_DB_DSN"`

	Host     string `envconfig:"PGHOST" default:"localhost"`
	Port     int    `envconfig:"PGPORT" default:"5432"`
	User     string `envconfig:"PGUSER" default:"rbarnes"`
	Password string `envconfig:"PGPASSWORD"`
	Name     string `envconfig:"PGDATABASE" default:"restaurant"`
	SSLMode  string `envconfig:"PGSSLMODE" default:"disable"`
	Schema   string `envconfig:"RESTAURANT_DB_SCHEMA" default:"restaurant"`

	ConnectTimeout  time.Duration `envconfig:"RESTAURANT_DB_CONNECT_TIMEOUT" default:"2s"`
	MaxOpenConns    int           `envconfig:"RESTAURANT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"RESTAURANT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RESTAURANT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RESTAURANT_DB_CONN_MAX_IDLE_TIME" default:"30s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RESTAURANT_REDIS_URL"`
	PoolSize     int           `envconfig:"RESTAURANT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RESTAURANT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RESTAURANT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RESTAURANT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"RESTAURANT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether a redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type CacheConfig struct {
	LookupTTL      time.Duration `envconfig:"RESTAURANT_LOOKUP_CACHE_TTL" default:"5m"`
	IdempotencyTTL time.Duration `envconfig:"RESTAURANT_IDEMPOTENCY_TTL" default:"24h"`
}

type AddressConfig struct {
	MaintenanceDefaultScope string `envconfig:"RESTAURANT_ADDRESS_MAINTENANCE_DEFAULT_SCOPE" default:"global"`
}

func (a AddressConfig) validate() error {
	if _, err := enums.ParseDefaultScope(a.MaintenanceDefaultScope); err != nil {
		return fmt.Errorf("%s: %w", EnvAddressMaintenanceScope, err)
	}
	return nil
}

// MaintenanceScope returns the default-flag scope for the maintenance address routes.
func (a AddressConfig) MaintenanceScope() enums.DefaultScope {
	scope, err := enums.ParseDefaultScope(a.MaintenanceDefaultScope)
	if err != nil {
		return enums.DefaultScopeGlobal
	}
	return scope
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"RESTAURANT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	q := u.Query()
	if db.SSLMode != "" {
		q.Set("sslmode", db.SSLMode)
	}
	if db.ConnectTimeout > 0 {
		secs := int(db.ConnectTimeout.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		q.Set("connect_timeout", strconv.Itoa(secs))
	}
	if db.Schema != "" {
		q.Set("search_path", db.Schema)
	}
	u.RawQuery = q.Encode()

	db.DSN = u.String()
	return nil
}
