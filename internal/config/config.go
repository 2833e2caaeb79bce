// Package config loads timesheet configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key, e.g. TIMESHEET_MYSQL_DSN.
const EnvPrefix = "TIMESHEET"

var tablePrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// Config holds environment-driven configuration.
type Config struct {
	HTTP struct {
		Addr       string `mapstructure:"addr"`
		AuthHeader string `mapstructure:"auth_header"`
	} `mapstructure:"http"`
	MySQL struct {
		DSN         string `mapstructure:"dsn"` // e.g., user:pass@tcp(host:3306)/dbname?multiStatements=true
		TablePrefix string `mapstructure:"table_prefix"`
	} `mapstructure:"mysql"`
	Holiday struct {
		BaseURL  string        `mapstructure:"base_url"`
		CacheDir string        `mapstructure:"cache_dir"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"holiday"`
	AdminGroup string `mapstructure:"admin_group"`
	LogLevel   string `mapstructure:"log_level"`
}

// Load reads configuration. Values from envFile are applied only for
// variables not already set in the process environment; a missing file is
// not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if envMap, err := godotenv.Read(envFile); err == nil {
			for k, val := range envMap {
				if _, exists := os.LookupEnv(k); !exists {
					_ = os.Setenv(k, val)
				}
			}
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, cfg.Validate()
}

var keys = []string{
	"http.addr",
	"http.auth_header",
	"mysql.dsn",
	"mysql.table_prefix",
	"holiday.base_url",
	"holiday.cache_dir",
	"holiday.cache_ttl",
	"holiday.timeout",
	"admin_group",
	"log_level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.auth_header", "X-Timesheet-User")
	v.SetDefault("mysql.table_prefix", "oc_")
	v.SetDefault("holiday.base_url", "https://get.api-feiertage.de")
	v.SetDefault("holiday.cache_dir", "./data/holidays")
	v.SetDefault("holiday.cache_ttl", 4380*time.Hour)
	v.SetDefault("holiday.timeout", 10*time.Second)
	v.SetDefault("admin_group", "admin")
	v.SetDefault("log_level", "info")
}

// Validate checks values that are required regardless of the command. The
// DSN is checked by RequireMySQL since not every command needs it.
func (c Config) Validate() error {
	if !tablePrefixPattern.MatchString(c.MySQL.TablePrefix) {
		return fmt.Errorf("MYSQL_TABLE_PREFIX %q may only contain letters, digits and underscores", c.MySQL.TablePrefix)
	}
	if strings.TrimSpace(c.HTTP.AuthHeader) == "" {
		return errors.New("HTTP_AUTH_HEADER must not be empty")
	}
	if c.Holiday.CacheTTL <= 0 {
		return errors.New("HOLIDAY_CACHE_TTL must be positive")
	}
	if c.Holiday.Timeout <= 0 {
		return errors.New("HOLIDAY_TIMEOUT must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// RequireMySQL reports an error when no DSN is configured.
func (c Config) RequireMySQL() error {
	if c.MySQL.DSN == "" {
		return errors.New(EnvPrefix + "_MYSQL_DSN is required")
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}
