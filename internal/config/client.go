package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Viper keys for the CLI client.
const (
	KeyAPIURL   = "api_url"
	KeyTimeout  = "timeout"
	KeyLogLevel = "log_level"
	KeyConfig   = "config"
)

const (
	DefaultAPIURL  = "http://localhost:8080/api/v1"
	DefaultTimeout = 10 * time.Second
)

// ClientConfig configures the CLI and terminal view.
type ClientConfig struct {
	APIURL   string
	Timeout  time.Duration
	LogLevel string
}

// SetClientDefaults registers defaults and environment bindings on v.
// Environment variables use the TODO_ prefix, e.g. TODO_API_URL.
func SetClientDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyLogLevel, "warn")

	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// ReadClientConfigFile reads the optional config file. A missing file is not
// an error unless it was named explicitly.
func ReadClientConfigFile(v *viper.Viper) error {
	if cfgFile := v.GetString(KeyConfig); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %q: %w", cfgFile, err)
		}
		return nil
	}

	v.SetConfigName("todo")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/todo")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()
	return nil
}

// LoadClient builds a validated ClientConfig from v.
func LoadClient(v *viper.Viper) (ClientConfig, error) {
	cfg := ClientConfig{
		APIURL:   strings.TrimRight(v.GetString(KeyAPIURL), "/"),
		Timeout:  v.GetDuration(KeyTimeout),
		LogLevel: v.GetString(KeyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func (c ClientConfig) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api_url %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api_url %q: host is required", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s: must be positive", c.Timeout)
	}
	return nil
}
