package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App         AppConfig
	DB          DBConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Credentials CredentialsConfig
	Gateway     GatewayConfig
	CORS        CORSConfig
	Features    FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Credentials.validate(cfg.App); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FUELMYWORK_APP_ENV" required:"true"`
	Port         string `envconfig:"FUELMYWORK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FUELMYWORK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FUELMYWORK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FUELMYWORK_DB_DSN"`
	Driver string `envconfig:"FUELMYWORK_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FUELMYWORK_DB_HOST"`
	Port     int    `envconfig:"FUELMYWORK_DB_PORT" default:"5432"`
	User     string `envconfig:"FUELMYWORK_DB_USER"`
	Password string `envconfig:"FUELMYWORK_DB_PASSWORD"`
	Name     string `envconfig:"FUELMYWORK_DB_NAME"`
	SSLMode  string `envconfig:"FUELMYWORK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FUELMYWORK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FUELMYWORK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FUELMYWORK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FUELMYWORK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FUELMYWORK_REDIS_URL" required:"true"`
	Password     string        `envconfig:"FUELMYWORK_REDIS_PASSWORD"`
	DB           int           `envconfig:"FUELMYWORK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FUELMYWORK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FUELMYWORK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FUELMYWORK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FUELMYWORK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FUELMYWORK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FUELMYWORK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FUELMYWORK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FUELMYWORK_JWT_EXPIRATION_MINUTES" default:"60"`
}

// CredentialsConfig controls encryption of creator gateway secrets at rest.
type CredentialsConfig struct {
	Passphrase string `envconfig:"FUELMYWORK_CREDENTIALS_PASSPHRASE"`
	KeySalt    string `envconfig:"FUELMYWORK_CREDENTIALS_KEY_SALT" default:"fuelmywork-credentials-v1"`
}

// validate refuses to boot a production process without an encryption
// passphrase. Dev and test may run with a pass-through codec, which the
// caller must surface as a warning at startup.
func (c CredentialsConfig) validate(app AppConfig) error {
	if strings.TrimSpace(c.Passphrase) == "" && app.IsProd() {
		return fmt.Errorf("%s is required in production", EnvCredentialsPassphrase)
	}
	return nil
}

type GatewayConfig struct {
	BaseURL          string        `envconfig:"FUELMYWORK_GATEWAY_BASE_URL" default:"https://api.razorpay.com"`
	Timeout          time.Duration `envconfig:"FUELMYWORK_GATEWAY_TIMEOUT" default:"15s"`
	CallbackGuardTTL time.Duration `envconfig:"FUELMYWORK_GATEWAY_CALLBACK_GUARD_TTL" default:"720h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FUELMYWORK_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FUELMYWORK_AUTO_MIGRATE" default:"false"`
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

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
