package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/yungbote/assetdesk-backend/internal/data/db"
	"github.com/yungbote/assetdesk-backend/internal/observability"
)

const (
	EnvPrefix     = "ASSETDESK"
	EnvConfigFile = "ASSETDESK_CONFIG"

	devJWTSecret = "assetdesk-dev-secret-change-me"
)

type Config struct {
	HTTP    HTTPConfig
	Log     LogConfig
	DB      db.Config
	Migrate bool
	Auth    AuthConfig
	Storage StorageConfig
	Redis   RedisConfig
	Otel    observability.OtelConfig
}

type HTTPConfig struct {
	Addr            string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Mode  string
	Level string
}

type AuthConfig struct {
	JWTSecret  string
	Issuer     string
	AccessTTL  time.Duration
	PolicyFile string
}

type StorageConfig struct {
	Mode          string
	LocalRoot     string
	PublicBaseURL string
	Bucket        string
	EmulatorHost  string
	CDNDomain     string
	Credentials   string
}

// RedisConfig selects the flash store; an empty Addr keeps messages in memory.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{})
	v.SetDefault("http.shutdown_timeout", "15s")

	v.SetDefault("log.mode", "development")
	v.SetDefault("log.level", "")

	v.SetDefault("db.driver", db.DriverPostgres)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "assetdesk")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.auto_migrate", true)

	v.SetDefault("auth.jwt_secret", devJWTSecret)
	v.SetDefault("auth.issuer", "assetdesk")
	v.SetDefault("auth.access_ttl", "24h")
	v.SetDefault("auth.policy_file", "")

	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.local_root", "./media")
	v.SetDefault("storage.public_base_url", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.emulator_host", "")
	v.SetDefault("storage.cdn_domain", "")
	v.SetDefault("storage.credentials", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "assetdesk:flash")
	v.SetDefault("redis.ttl", "10m")

	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.service_name", "assetdesk")
	v.SetDefault("otel.environment", "")
	v.SetDefault("otel.version", "")
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.headers", "")
	v.SetDefault("otel.insecure", false)
	v.SetDefault("otel.sample_ratio", 1.0)
}

// NewViper layers defaults, an optional config file and ASSETDESK_* env vars.
// configFile falls back to $ASSETDESK_CONFIG when empty.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = strings.TrimSpace(os.Getenv(EnvConfigFile))
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", configFile, err)
		}
	}
	return v, nil
}

func LoadConfig(configFile string) (Config, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return Config{}, err
	}
	return ConfigFromViper(v)
}

func ConfigFromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Addr:            v.GetString("http.addr"),
			CORSOrigins:     splitList(v.GetStringSlice("http.cors_origins")),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Log: LogConfig{
			Mode:  v.GetString("log.mode"),
			Level: v.GetString("log.level"),
		},
		DB: db.Config{
			Driver:       v.GetString("db.driver"),
			DSN:          v.GetString("db.dsn"),
			Host:         v.GetString("db.host"),
			Port:         v.GetString("db.port"),
			User:         v.GetString("db.user"),
			Password:     v.GetString("db.password"),
			Name:         v.GetString("db.name"),
			SSLMode:      v.GetString("db.sslmode"),
			MaxOpenConns: v.GetInt("db.max_open_conns"),
			MaxIdleConns: v.GetInt("db.max_idle_conns"),
		},
		Migrate: v.GetBool("db.auto_migrate"),
		Auth: AuthConfig{
			JWTSecret:  v.GetString("auth.jwt_secret"),
			Issuer:     v.GetString("auth.issuer"),
			AccessTTL:  v.GetDuration("auth.access_ttl"),
			PolicyFile: v.GetString("auth.policy_file"),
		},
		Storage: StorageConfig{
			Mode:          v.GetString("storage.mode"),
			LocalRoot:     v.GetString("storage.local_root"),
			PublicBaseURL: v.GetString("storage.public_base_url"),
			Bucket:        v.GetString("storage.bucket"),
			EmulatorHost:  v.GetString("storage.emulator_host"),
			CDNDomain:     v.GetString("storage.cdn_domain"),
			Credentials:   v.GetString("storage.credentials"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("redis.addr"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
			TTL:       v.GetDuration("redis.ttl"),
		},
		Otel: observability.OtelConfig{
			Enabled:     v.GetBool("otel.enabled"),
			ServiceName: v.GetString("otel.service_name"),
			Environment: v.GetString("otel.environment"),
			Version:     v.GetString("otel.version"),
			Endpoint:    v.GetString("otel.endpoint"),
			Headers:     observability.ParseHeaders(v.GetString("otel.headers")),
			Insecure:    v.GetBool("otel.insecure"),
			SampleRatio: v.GetFloat64("otel.sample_ratio"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	switch strings.ToLower(strings.TrimSpace(c.Log.Mode)) {
	case "prod", "production":
		return true
	}
	return false
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("http.shutdown_timeout must be positive"))
	}
	if c.Auth.AccessTTL <= 0 {
		errs = append(errs, errors.New("auth.access_ttl must be positive"))
	}
	if c.IsProduction() && c.Auth.JWTSecret == devJWTSecret {
		errs = append(errs, errors.New("auth.jwt_secret must be set in production"))
	}
	if c.Otel.SampleRatio < 0 || c.Otel.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("otel.sample_ratio=%v must be within [0,1]", c.Otel.SampleRatio))
	}
	return errors.Join(errs...)
}

// splitList accepts both YAML lists and comma-separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
