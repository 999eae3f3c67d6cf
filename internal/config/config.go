package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServiceEndpoint holds the gateway URL and API key for one Watson service.
type ServiceEndpoint struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type Config struct {
	// Alchemy covers AlchemyLanguage and AlchemyData News, which share a gateway.
	Alchemy     ServiceEndpoint `mapstructure:"alchemy"`
	Translation ServiceEndpoint `mapstructure:"translation"`

	HTTP struct {
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"http"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Database struct {
		// DSN selects the history store: postgres:// or postgresql:// use Postgres,
		// anything else is a SQLite file path. Empty disables history.
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`

	Redis struct {
		Address  string `mapstructure:"address"` // empty disables background jobs
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`

	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`

	Output struct {
		Format string `mapstructure:"format"`
	} `mapstructure:"output"`
}

// SetDefaults registers every key so AutomaticEnv can override it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("alchemy.base_url", "http://gateway-a.watsonplatform.net/calls")
	v.SetDefault("alchemy.api_key", "")
	v.SetDefault("translation.base_url", "https://gateway.watsonplatform.net/language-translation/api")
	v.SetDefault("translation.api_key", "")
	v.SetDefault("http.timeout", 60*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("database.dsn", "alchemy.db")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("worker.concurrency", 5)
	v.SetDefault("worker.queues", map[string]int{"analysis": 1})
	v.SetDefault("server.addr", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("output.format", "table")
}

// LoadConfig reads config.yaml (from the working directory or ~/.alchemy) and
// the environment. A non-empty path loads that file instead.
func LoadConfig(path string) (*Config, error) {
	return Load(viper.GetViper(), path)
}

// Load is LoadConfig against an explicit viper instance.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.alchemy")
	}

	// ALCHEMY_HTTP_TIMEOUT -> http.timeout, ALCHEMY_DATABASE_DSN -> database.dsn, ...
	v.SetEnvPrefix("ALCHEMY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The keys are commonly exported without the section prefix.
	_ = v.BindEnv("alchemy.api_key", "ALCHEMY_API_KEY")
	_ = v.BindEnv("translation.api_key", "ALCHEMY_TRANSLATION_API_KEY", "TRANSLATION_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		// A missing config.yaml is fine: defaults and env vars still apply.
		// An explicitly named file must exist.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	// Translation falls back to the Alchemy key when it has none of its own.
	if cfg.Translation.APIKey == "" {
		cfg.Translation.APIKey = cfg.Alchemy.APIKey
	}
	return &cfg, nil
}

// ListenAddr joins server.addr and server.port.
func (c *Config) ListenAddr() string {
	return c.Server.Addr + ":" + c.Server.Port
}
