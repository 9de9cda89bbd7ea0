package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	API     APIConfig     `yaml:"api"`
	Retry   RetryConfig   `yaml:"retry"`
	Order   OrderConfig   `yaml:"order"`
	Catalog CatalogConfig `yaml:"catalog"`
	Redis   RedisConfig   `yaml:"redis"`
	Notify  NotifyConfig  `yaml:"notify"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig is the loopback API. WriteTimeout has to cover a remote
// call with all of its retries.
type ServerConfig struct {
	Port         int           `yaml:"port"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// APIConfig points at the marketplace backend.
type APIConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

type RetryConfig struct {
	MaxRetries   int           `yaml:"maxRetries"`
	InitialDelay time.Duration `yaml:"initialDelay"`
}

type OrderConfig struct {
	TotalIncludesDeliveryFee bool `yaml:"totalIncludesDeliveryFee"`
}

type CatalogConfig struct {
	Database DatabaseConfig `yaml:"database"`
	CacheTTL time.Duration  `yaml:"cacheTtl"`
}

// DatabaseConfig is the read replica the catalog index falls back to. An
// empty Host disables it.
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type NotifyConfig struct {
	Capacity int `yaml:"capacity"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_WRITE_TIMEOUT", "3m")
	v.SetDefault("API_BASE_URL", "http://localhost:5000")
	v.SetDefault("API_TOKEN", "")
	v.SetDefault("API_TIMEOUT", "30s")
	v.SetDefault("RETRY_MAX_RETRIES", 3)
	v.SetDefault("RETRY_INITIAL_DELAY", "1s")
	v.SetDefault("ORDER_TOTAL_INCLUDES_DELIVERY_FEE", true)
	v.SetDefault("CATALOG_DB_HOST", "")
	v.SetDefault("CATALOG_DB_PORT", 3306)
	v.SetDefault("CATALOG_DB_USER", "campusmart")
	v.SetDefault("CATALOG_DB_PASSWORD", "")
	v.SetDefault("CATALOG_DB_NAME", "campusmart")
	v.SetDefault("CATALOG_DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("CATALOG_DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("CATALOG_DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("CATALOG_CACHE_TTL", "10m")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("NOTIFY_CAPACITY", 50)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	writeTimeout, err := duration(v, "SERVER_WRITE_TIMEOUT")
	if err != nil {
		return nil, err
	}
	apiTimeout, err := duration(v, "API_TIMEOUT")
	if err != nil {
		return nil, err
	}
	retryDelay, err := duration(v, "RETRY_INITIAL_DELAY")
	if err != nil {
		return nil, err
	}
	connMaxLifetime, err := duration(v, "CATALOG_DB_CONN_MAX_LIFETIME")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := duration(v, "CATALOG_CACHE_TTL")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("SERVER_PORT"),
			WriteTimeout: writeTimeout,
		},
		API: APIConfig{
			BaseURL: v.GetString("API_BASE_URL"),
			Token:   v.GetString("API_TOKEN"),
			Timeout: apiTimeout,
		},
		Retry: RetryConfig{
			MaxRetries:   v.GetInt("RETRY_MAX_RETRIES"),
			InitialDelay: retryDelay,
		},
		Order: OrderConfig{
			TotalIncludesDeliveryFee: v.GetBool("ORDER_TOTAL_INCLUDES_DELIVERY_FEE"),
		},
		Catalog: CatalogConfig{
			Database: DatabaseConfig{
				Host:            v.GetString("CATALOG_DB_HOST"),
				Port:            v.GetInt("CATALOG_DB_PORT"),
				User:            v.GetString("CATALOG_DB_USER"),
				Password:        v.GetString("CATALOG_DB_PASSWORD"),
				Name:            v.GetString("CATALOG_DB_NAME"),
				MaxOpenConns:    v.GetInt("CATALOG_DB_MAX_OPEN_CONNS"),
				MaxIdleConns:    v.GetInt("CATALOG_DB_MAX_IDLE_CONNS"),
				ConnMaxLifetime: connMaxLifetime,
			},
			CacheTTL: cacheTTL,
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Notify: NotifyConfig{
			Capacity: v.GetInt("NOTIFY_CAPACITY"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	return cfg, nil
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
