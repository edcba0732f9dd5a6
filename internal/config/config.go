package config

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36"

type Config struct {
	Host            string        `mapstructure:"HOST"`
	Port            int           `mapstructure:"PORT"`
	Debug           bool          `mapstructure:"DEBUG"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"`
	ProxyURL        string        `mapstructure:"PROXY_URL"`
	UpstreamTimeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	FEVersion       string        `mapstructure:"FE_VERSION"`
	UserAgent       string        `mapstructure:"USER_AGENT"`
	AcceptLanguage  string        `mapstructure:"ACCEPT_LANGUAGE"`
	UsageDBPath     string        `mapstructure:"USAGE_DB_PATH"`
	UsageWorkers    uint          `mapstructure:"USAGE_WORKERS"`
	UsageQueueSize  uint          `mapstructure:"USAGE_QUEUE_SIZE"`
}

// Addr is the listen address built from Host and Port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// UsageEnabled reports whether exchanges should be recorded to the usage ledger.
func (c *Config) UsageEnabled() bool {
	return strings.TrimSpace(c.UsageDBPath) != ""
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", 8001)
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("PROXY_URL", "https://chat.z.ai")
	viper.SetDefault("UPSTREAM_TIMEOUT", "100s")
	viper.SetDefault("FE_VERSION", "prod-fe-1.0.95")
	viper.SetDefault("USER_AGENT", defaultUserAgent)
	viper.SetDefault("ACCEPT_LANGUAGE", "zh-CN")
	viper.SetDefault("USAGE_DB_PATH", "")
	viper.SetDefault("USAGE_WORKERS", 2)
	viper.SetDefault("USAGE_QUEUE_SIZE", 256)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ProxyURL = strings.TrimRight(cfg.ProxyURL, "/")

	return &cfg, nil
}
