package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/blogem/webtemplate/database"
	"github.com/blogem/webtemplate/sqlmap"
)

// Config holds the runtime settings read from the environment
type Config struct {
	Port               int           `mapstructure:"port"`
	DatabasePath       string        `mapstructure:"database_path"`
	UseHTTPS           bool          `mapstructure:"use_https"`
	SessionLifetime    time.Duration `mapstructure:"session_lifetime"`
	LogRetentionMonths int           `mapstructure:"log_retention_months"`
	QueryTimeout       time.Duration `mapstructure:"query_timeout"`
	CaptureSQL         bool          `mapstructure:"capture_sql"`
	LogonPasswordHash  string        `mapstructure:"logon_password_hash"`
	LogLevel           string        `mapstructure:"log_level"`
	LogFormat          string        `mapstructure:"log_format"`

	OIDC struct {
		Domain       string `mapstructure:"domain"`
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
		CallbackURL  string `mapstructure:"callback_url"`
	} `mapstructure:"oidc"`
}

// Load reads .env (when present) and the process environment
func Load() (*Config, error) {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()

	// OIDC_CLIENT_ID and friends map onto the nested oidc.* keys
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so Unmarshal picks up its env var
	v.SetDefault("port", 8080)
	v.SetDefault("database_path", database.DefaultFileName)
	v.SetDefault("use_https", false)
	v.SetDefault("session_lifetime", time.Hour)
	v.SetDefault("log_retention_months", 1)
	v.SetDefault("query_timeout", sqlmap.DefaultQueryTimeout)
	v.SetDefault("capture_sql", false)
	v.SetDefault("logon_password_hash", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("oidc.domain", "")
	v.SetDefault("oidc.client_id", "")
	v.SetDefault("oidc.client_secret", "")
	v.SetDefault("oidc.callback_url", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings that have no safe fallback
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.LogRetentionMonths < 1 {
		return fmt.Errorf("log retention must be at least one month, got %d", c.LogRetentionMonths)
	}
	if c.SessionLifetime < time.Minute {
		return fmt.Errorf("session lifetime too short: %s", c.SessionLifetime)
	}
	if c.OIDC.Domain != "" && (c.OIDC.ClientID == "" || c.OIDC.ClientSecret == "" || c.OIDC.CallbackURL == "") {
		return fmt.Errorf("OIDC_DOMAIN is set but client ID, client secret or callback URL is missing")
	}
	return nil
}

// OIDCEnabled reports whether single sign-on is configured
func (c *Config) OIDCEnabled() bool {
	return c.OIDC.Domain != ""
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
