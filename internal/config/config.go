// Package config builds the explicit configuration structs handed to each
// binary at startup. Values come from defaults, .env files, the environment
// and command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Web configures the presentation server.
type Web struct {
	BooksAPIURL                 string        `mapstructure:"books_api_url" validate:"required,url"`
	PrefixURLPath               string        `mapstructure:"prefix_url_path" validate:"omitempty,startswith=/"`
	AppInsightsConnectionString string        `mapstructure:"applicationinsights_connection_string"`
	Addr                        string        `mapstructure:"app_addr" validate:"required"`
	LogLevel                    string        `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	HomeTimeout                 time.Duration `mapstructure:"home_timeout" validate:"gt=0"`
	RateLimitRPS                float64       `mapstructure:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst              int           `mapstructure:"rate_limit_burst" validate:"gte=0"`
	EnableHSTS                  bool          `mapstructure:"enable_hsts"`
}

// API configures the books API server.
type API struct {
	Addr           string        `mapstructure:"app_addr" validate:"required"`
	DSN            string        `mapstructure:"db_dsn"`
	DBTimeout      time.Duration `mapstructure:"db_timeout" validate:"gt=0"`
	Seed           bool          `mapstructure:"seed"`
	LogLevel       string        `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst" validate:"gte=0"`
}

// Flag names keyed by the config key they override.
var (
	webFlags = map[string]string{
		"books_api_url":   "books-api-url",
		"prefix_url_path": "prefix",
		"app_addr":        "addr",
		"log_level":       "log-level",
	}
	apiFlags = map[string]string{
		"app_addr":  "addr",
		"db_dsn":    "dsn",
		"seed":      "seed",
		"log_level": "log-level",
	}
)

// RegisterWebFlags defines the web server's flags on fs.
func RegisterWebFlags(fs *pflag.FlagSet) {
	fs.StringP("books-api-url", "u", "http://localhost:5000", "base URL of the books API")
	fs.StringP("prefix", "p", "", "URL path prefix for every page, e.g. /web")
	fs.StringP("addr", "a", ":8000", "the address to bind the server to ([IP]:PORT)")
	fs.String("log-level", "info", "debug, info, warn or error")
}

// RegisterAPIFlags defines the books API server's flags on fs.
func RegisterAPIFlags(fs *pflag.FlagSet) {
	fs.StringP("addr", "a", ":5000", "the address to bind the server to ([IP]:PORT)")
	fs.String("dsn", "", "Postgres DSN; the in-memory store is used when empty")
	fs.Bool("seed", true, "insert sample books into an empty store")
	fs.String("log-level", "info", "debug, info, warn or error")
}

// LoadWeb reads the web server configuration. fs may be nil.
func LoadWeb(fs *pflag.FlagSet) (*Web, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetDefault("books_api_url", "http://localhost:5000")
	v.SetDefault("prefix_url_path", "")
	v.SetDefault("applicationinsights_connection_string", "")
	v.SetDefault("app_addr", ":8000")
	v.SetDefault("log_level", "info")
	v.SetDefault("home_timeout", "5s")
	v.SetDefault("rate_limit_rps", 50)
	v.SetDefault("rate_limit_burst", 100)
	v.SetDefault("enable_hsts", false)
	v.AutomaticEnv()

	if err := bindFlags(v, fs, webFlags); err != nil {
		return nil, err
	}

	var cfg Web
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal web config: %w", err)
	}
	cfg.BooksAPIURL = strings.TrimRight(strings.TrimSpace(cfg.BooksAPIURL), "/")
	cfg.PrefixURLPath = strings.TrimRight(strings.TrimSpace(cfg.PrefixURLPath), "/")

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid web config: %w", err)
	}
	return &cfg, nil
}

// LoadAPI reads the books API server configuration. fs may be nil.
func LoadAPI(fs *pflag.FlagSet) (*API, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetDefault("app_addr", ":5000")
	v.SetDefault("db_dsn", "")
	v.SetDefault("db_timeout", "3s")
	v.SetDefault("seed", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 0)
	v.AutomaticEnv()

	if err := bindFlags(v, fs, apiFlags); err != nil {
		return nil, err
	}

	var cfg API
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal api config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid api config: %w", err)
	}
	return &cfg, nil
}

// RedactDSN hides the credentials of a URL-style DSN.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet, names map[string]string) error {
	if fs == nil {
		return nil
	}
	for key, name := range names {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}
