package config

import (
	"alcyxob/coachy/internal/repository/memory"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Catalog backends
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// CatalogConfig selects where exercises, users and preferences live.
// With the memory backend nothing survives a restart.
type CatalogConfig struct {
	Backend     string        `mapstructure:"backend"`
	ListLatency time.Duration `mapstructure:"list_latency"`
	GetLatency  time.Duration `mapstructure:"get_latency"`
	Seed        bool          `mapstructure:"seed"` // Seed an empty mongo collection with the built-in catalog
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Enabled reports whether media storage is configured at all.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
	// Guest tokens are long-lived; a guest has nothing to lose but settings.
	GuestExpiration time.Duration `mapstructure:"guest_expiration"`
}

type LogConfig struct {
	Mode   string `mapstructure:"mode"` // dev or prod
	Redact bool   `mapstructure:"redact"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No file; defaults and env vars only.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if err = config.Validate(); err != nil {
		return
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "coachy")
	v.SetDefault("catalog.backend", BackendMemory)
	v.SetDefault("catalog.list_latency", memory.DefaultListLatency)
	v.SetDefault("catalog.get_latency", memory.DefaultGetLatency)
	v.SetDefault("catalog.seed", true)
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("jwt.guest_expiration", "720h")
	v.SetDefault("log.mode", "dev")
	v.SetDefault("log.redact", true)
	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{"s3.endpoint", "s3.region", "s3.access_key_id", "s3.secret_access_key", "s3.bucket_name"} {
		v.SetDefault(key, "")
	}
}

// Validate rejects configurations the server can't start with.
func (c Config) Validate() error {
	switch c.Catalog.Backend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("catalog.backend must be %q or %q, got %q", BackendMemory, BackendMongo, c.Catalog.Backend)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if c.Catalog.ListLatency < 0 || c.Catalog.GetLatency < 0 {
		return fmt.Errorf("catalog latencies cannot be negative")
	}
	return nil
}
